package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"curaise/internal/models"

	"github.com/google/uuid"
)

// FundraiserRepository handles fundraiser data operations
type FundraiserRepository struct {
	db *sql.DB
}

// NewFundraiserRepository creates a new fundraiser repository
func NewFundraiserRepository(db *sql.DB) *FundraiserRepository {
	return &FundraiserRepository{db: db}
}

const fundraiserColumns = `id, organization_id, name, description, image_url, goal_amount,
	buying_starts_at, buying_ends_at, pickup_starts_at, pickup_ends_at, created_at, updated_at`

// Create creates a new fundraiser
func (r *FundraiserRepository) Create(req *models.FundraiserCreateRequest) (*models.Fundraiser, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO fundraisers (organization_id, name, description, image_url, goal_amount,
			buying_starts_at, buying_ends_at, pickup_starts_at, pickup_ends_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING ` + fundraiserColumns

	f := &models.Fundraiser{}
	err := r.db.QueryRow(
		query,
		req.OrganizationID,
		req.Name,
		req.Description,
		req.ImageURL,
		req.GoalAmount,
		req.BuyingStartsAt,
		req.BuyingEndsAt,
		req.PickupStartsAt,
		req.PickupEndsAt,
		time.Now(),
	).Scan(
		&f.ID,
		&f.OrganizationID,
		&f.Name,
		&f.Description,
		&f.ImageURL,
		&f.GoalAmount,
		&f.BuyingStartsAt,
		&f.BuyingEndsAt,
		&f.PickupStartsAt,
		&f.PickupEndsAt,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create fundraiser: %w", err)
	}

	return f, nil
}

// GetAll retrieves all fundraisers, newest buying window first
func (r *FundraiserRepository) GetAll() ([]*models.Fundraiser, error) {
	query := `
		SELECT ` + fundraiserColumns + `
		FROM fundraisers
		ORDER BY buying_starts_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list fundraisers: %w", err)
	}
	defer rows.Close()

	return scanFundraisers(rows)
}

// GetByID retrieves a fundraiser by ID
func (r *FundraiserRepository) GetByID(id uuid.UUID) (*models.Fundraiser, error) {
	query := `
		SELECT ` + fundraiserColumns + `
		FROM fundraisers
		WHERE id = $1`

	f := &models.Fundraiser{}
	err := r.db.QueryRow(query, id).Scan(
		&f.ID,
		&f.OrganizationID,
		&f.Name,
		&f.Description,
		&f.ImageURL,
		&f.GoalAmount,
		&f.BuyingStartsAt,
		&f.BuyingEndsAt,
		&f.PickupStartsAt,
		&f.PickupEndsAt,
		&f.CreatedAt,
		&f.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrFundraiserNotFound
		}
		return nil, fmt.Errorf("failed to get fundraiser: %w", err)
	}

	return f, nil
}

// GetItems retrieves all items offered by a fundraiser
func (r *FundraiserRepository) GetItems(fundraiserID uuid.UUID) ([]*models.FundraiserItem, error) {
	query := `
		SELECT id, fundraiser_id, name, description, price, image_url, offsale, created_at
		FROM fundraiser_items
		WHERE fundraiser_id = $1
		ORDER BY created_at`

	rows, err := r.db.Query(query, fundraiserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get fundraiser items: %w", err)
	}
	defer rows.Close()

	var items []*models.FundraiserItem
	for rows.Next() {
		item := &models.FundraiserItem{}
		err := rows.Scan(
			&item.ID,
			&item.FundraiserID,
			&item.Name,
			&item.Description,
			&item.Price,
			&item.ImageURL,
			&item.Offsale,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fundraiser item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// GetItemsByIDs retrieves the given items of a fundraiser, keyed by item ID.
// Items belonging to other fundraisers are not returned.
func (r *FundraiserRepository) GetItemsByIDs(fundraiserID uuid.UUID, itemIDs []uuid.UUID) (map[uuid.UUID]*models.FundraiserItem, error) {
	items, err := r.GetItems(fundraiserID)
	if err != nil {
		return nil, err
	}

	wanted := make(map[uuid.UUID]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}

	out := make(map[uuid.UUID]*models.FundraiserItem)
	for _, item := range items {
		if wanted[item.ID] {
			out[item.ID] = item
		}
	}

	return out, nil
}

// GetPickupEvents retrieves a fundraiser's pickup events in time order
func (r *FundraiserRepository) GetPickupEvents(fundraiserID uuid.UUID) ([]*models.PickupEvent, error) {
	query := `
		SELECT id, fundraiser_id, location, starts_at, ends_at
		FROM pickup_events
		WHERE fundraiser_id = $1
		ORDER BY starts_at`

	rows, err := r.db.Query(query, fundraiserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pickup events: %w", err)
	}
	defer rows.Close()

	var events []*models.PickupEvent
	for rows.Next() {
		event := &models.PickupEvent{}
		if err := rows.Scan(&event.ID, &event.FundraiserID, &event.Location, &event.StartsAt, &event.EndsAt); err != nil {
			return nil, fmt.Errorf("failed to scan pickup event: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

// GetAnnouncements retrieves a fundraiser's announcements, newest first
func (r *FundraiserRepository) GetAnnouncements(fundraiserID uuid.UUID) ([]*models.Announcement, error) {
	query := `
		SELECT id, fundraiser_id, message, created_at
		FROM announcements
		WHERE fundraiser_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(query, fundraiserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get announcements: %w", err)
	}
	defer rows.Close()

	var announcements []*models.Announcement
	for rows.Next() {
		a := &models.Announcement{}
		if err := rows.Scan(&a.ID, &a.FundraiserID, &a.Message, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan announcement: %w", err)
		}
		announcements = append(announcements, a)
	}

	return announcements, rows.Err()
}

// scanFundraisers reads fundraiser rows produced by fundraiserColumns queries
func scanFundraisers(rows *sql.Rows) ([]*models.Fundraiser, error) {
	var fundraisers []*models.Fundraiser
	for rows.Next() {
		f := &models.Fundraiser{}
		err := rows.Scan(
			&f.ID,
			&f.OrganizationID,
			&f.Name,
			&f.Description,
			&f.ImageURL,
			&f.GoalAmount,
			&f.BuyingStartsAt,
			&f.BuyingEndsAt,
			&f.PickupStartsAt,
			&f.PickupEndsAt,
			&f.CreatedAt,
			&f.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fundraiser: %w", err)
		}
		fundraisers = append(fundraisers, f)
	}

	return fundraisers, rows.Err()
}
