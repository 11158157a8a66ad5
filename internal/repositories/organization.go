package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"curaise/internal/models"

	"github.com/google/uuid"
)

// OrganizationRepository handles organization data operations
type OrganizationRepository struct {
	db *sql.DB
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db *sql.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// Create creates a new organization. New organizations start unauthorized
// until vetted.
func (r *OrganizationRepository) Create(req *models.OrganizationCreateRequest) (*models.Organization, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO organizations (name, description, logo_url, website_url, instagram_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, description, logo_url, website_url, instagram_url, authorized, created_at, updated_at`

	org := &models.Organization{}
	err := r.db.QueryRow(query, req.Name, req.Description, req.LogoURL, req.WebsiteURL, req.InstagramURL).Scan(
		&org.ID,
		&org.Name,
		&org.Description,
		&org.LogoURL,
		&org.WebsiteURL,
		&org.InstagramURL,
		&org.Authorized,
		&org.CreatedAt,
		&org.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	return org, nil
}

// GetByID retrieves an organization by ID
func (r *OrganizationRepository) GetByID(id uuid.UUID) (*models.Organization, error) {
	query := `
		SELECT id, name, description, logo_url, website_url, instagram_url, authorized, created_at, updated_at
		FROM organizations
		WHERE id = $1`

	org := &models.Organization{}
	err := r.db.QueryRow(query, id).Scan(
		&org.ID,
		&org.Name,
		&org.Description,
		&org.LogoURL,
		&org.WebsiteURL,
		&org.InstagramURL,
		&org.Authorized,
		&org.CreatedAt,
		&org.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	return org, nil
}

// GetFundraisers retrieves all fundraisers run by an organization
func (r *OrganizationRepository) GetFundraisers(organizationID uuid.UUID) ([]*models.Fundraiser, error) {
	query := `
		SELECT id, organization_id, name, description, image_url, goal_amount,
		       buying_starts_at, buying_ends_at, pickup_starts_at, pickup_ends_at, created_at, updated_at
		FROM fundraisers
		WHERE organization_id = $1
		ORDER BY buying_starts_at DESC`

	rows, err := r.db.Query(query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get organization fundraisers: %w", err)
	}
	defer rows.Close()

	return scanFundraisers(rows)
}

// AddMember records a user as a member of an organization. Adding an
// existing member returns ErrDuplicateEntry.
func (r *OrganizationRepository) AddMember(organizationID, userID uuid.UUID) error {
	result, err := r.db.Exec(
		"INSERT INTO organization_members (organization_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		organizationID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to add organization member: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to add organization member: %w", err)
	}
	if affected == 0 {
		return models.ErrDuplicateEntry
	}
	return nil
}
