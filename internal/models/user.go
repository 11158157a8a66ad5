package models

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a user account. Identity is owned by the external auth
// provider; the ID here is the provider-issued subject.
type User struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	Name        string    `json:"name" db:"name"`
	NetID       string    `json:"netid" db:"netid"`
	VenmoHandle string    `json:"venmo_handle" db:"venmo_handle"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// UserUpsertRequest represents the data needed to create or update a user profile
type UserUpsertRequest struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	NetID       string `json:"netid"`
	VenmoHandle string `json:"venmo_handle"`
}

var userEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validate validates user profile data
func (req *UserUpsertRequest) Validate() error {
	if req.Email == "" {
		return errors.New("email is required")
	}

	if len(req.Email) > 255 {
		return errors.New("email must be less than 255 characters")
	}

	if !userEmailRegex.MatchString(req.Email) {
		return errors.New("email format is invalid")
	}

	if strings.TrimSpace(req.Name) == "" {
		return errors.New("name is required")
	}

	if len(req.Name) > 255 {
		return errors.New("name must be less than 255 characters")
	}

	return nil
}
