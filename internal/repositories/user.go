package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"curaise/internal/models"

	"github.com/google/uuid"
)

// UserRepository handles user data operations
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Upsert creates or updates the profile row for a provider-issued user ID
func (r *UserRepository) Upsert(id uuid.UUID, req *models.UserUpsertRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO users (id, email, name, netid, venmo_handle, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email,
		    name = EXCLUDED.name,
		    netid = EXCLUDED.netid,
		    venmo_handle = EXCLUDED.venmo_handle,
		    updated_at = EXCLUDED.updated_at
		RETURNING id, email, name, netid, venmo_handle, created_at, updated_at`

	user := &models.User{}
	err := r.db.QueryRow(query, id, req.Email, req.Name, req.NetID, req.VenmoHandle, time.Now()).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.NetID,
		&user.VenmoHandle,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return nil, fmt.Errorf("user with email %s already exists", req.Email)
		}
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id uuid.UUID) (*models.User, error) {
	query := `
		SELECT id, email, name, netid, venmo_handle, created_at, updated_at
		FROM users
		WHERE id = $1`

	user := &models.User{}
	err := r.db.QueryRow(query, id).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.NetID,
		&user.VenmoHandle,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetOrganizations retrieves the organizations a user belongs to
func (r *UserRepository) GetOrganizations(userID uuid.UUID) ([]*models.Organization, error) {
	query := `
		SELECT o.id, o.name, o.description, o.logo_url, o.website_url, o.instagram_url, o.authorized, o.created_at, o.updated_at
		FROM organizations o
		JOIN organization_members m ON m.organization_id = o.id
		WHERE m.user_id = $1
		ORDER BY o.name`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user organizations: %w", err)
	}
	defer rows.Close()

	var organizations []*models.Organization
	for rows.Next() {
		org := &models.Organization{}
		err := rows.Scan(
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
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		organizations = append(organizations, org)
	}

	return organizations, rows.Err()
}

// IsOrganizationMember reports whether the user belongs to the organization
func (r *UserRepository) IsOrganizationMember(userID, organizationID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM organization_members WHERE user_id = $1 AND organization_id = $2)",
		userID, organizationID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check organization membership: %w", err)
	}
	return exists, nil
}
