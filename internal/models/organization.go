package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Organization represents a student organization running fundraisers
type Organization struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	LogoURL      string    `json:"logo_url" db:"logo_url"`
	WebsiteURL   string    `json:"website_url" db:"website_url"`
	InstagramURL string    `json:"instagram_url" db:"instagram_url"`
	Authorized   bool      `json:"authorized" db:"authorized"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// OrganizationCreateRequest represents the data needed to create an organization
type OrganizationCreateRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	LogoURL      string `json:"logo_url"`
	WebsiteURL   string `json:"website_url"`
	InstagramURL string `json:"instagram_url"`
}

// Validate validates organization creation data
func (req *OrganizationCreateRequest) Validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.New("organization name is required")
	}

	if len(req.Name) > 255 {
		return errors.New("organization name must be less than 255 characters")
	}

	if len(req.Description) > 2000 {
		return errors.New("organization description must be less than 2000 characters")
	}

	return nil
}
