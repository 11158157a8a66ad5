package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Fundraiser represents a time-boxed sales campaign run by an organization,
// with a buying window and one or more pickup events.
type Fundraiser struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	OrganizationID uuid.UUID       `json:"organization_id" db:"organization_id"`
	Name           string          `json:"name" db:"name"`
	Description    string          `json:"description" db:"description"`
	ImageURL       string          `json:"image_url" db:"image_url"`
	GoalAmount     decimal.Decimal `json:"goal_amount" db:"goal_amount"`
	BuyingStartsAt time.Time       `json:"buying_starts_at" db:"buying_starts_at"`
	BuyingEndsAt   time.Time       `json:"buying_ends_at" db:"buying_ends_at"`
	PickupStartsAt time.Time       `json:"pickup_starts_at" db:"pickup_starts_at"`
	PickupEndsAt   time.Time       `json:"pickup_ends_at" db:"pickup_ends_at"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// FundraiserItem represents an item offered for sale within a fundraiser
type FundraiserItem struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	FundraiserID uuid.UUID       `json:"fundraiser_id" db:"fundraiser_id"`
	Name         string          `json:"name" db:"name"`
	Description  string          `json:"description" db:"description"`
	Price        decimal.Decimal `json:"price" db:"price"`
	ImageURL     string          `json:"image_url" db:"image_url"`
	Offsale      bool            `json:"offsale" db:"offsale"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// PickupEvent represents a location/time-window at which purchased items
// are physically handed to buyers.
type PickupEvent struct {
	ID           uuid.UUID `json:"id" db:"id"`
	FundraiserID uuid.UUID `json:"fundraiser_id" db:"fundraiser_id"`
	Location     string    `json:"location" db:"location"`
	StartsAt     time.Time `json:"starts_at" db:"starts_at"`
	EndsAt       time.Time `json:"ends_at" db:"ends_at"`
}

// Announcement represents a message posted by the organization on a fundraiser
type Announcement struct {
	ID           uuid.UUID `json:"id" db:"id"`
	FundraiserID uuid.UUID `json:"fundraiser_id" db:"fundraiser_id"`
	Message      string    `json:"message" db:"message"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// FundraiserDetail bundles a fundraiser with its pickup events and announcements
type FundraiserDetail struct {
	*Fundraiser
	PickupEvents  []*PickupEvent  `json:"pickup_events"`
	Announcements []*Announcement `json:"announcements"`
}

// FundraiserCreateRequest represents the data needed to create a fundraiser
type FundraiserCreateRequest struct {
	OrganizationID uuid.UUID       `json:"organization_id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	ImageURL       string          `json:"image_url"`
	GoalAmount     decimal.Decimal `json:"goal_amount"`
	BuyingStartsAt time.Time       `json:"buying_starts_at"`
	BuyingEndsAt   time.Time       `json:"buying_ends_at"`
	PickupStartsAt time.Time       `json:"pickup_starts_at"`
	PickupEndsAt   time.Time       `json:"pickup_ends_at"`
}

// Validate validates fundraiser creation data
func (req *FundraiserCreateRequest) Validate() error {
	if req.OrganizationID == uuid.Nil {
		return errors.New("organization id is required")
	}

	if strings.TrimSpace(req.Name) == "" {
		return errors.New("fundraiser name is required")
	}

	if len(req.Name) > 255 {
		return errors.New("fundraiser name must be less than 255 characters")
	}

	if req.GoalAmount.IsNegative() {
		return errors.New("goal amount cannot be negative")
	}

	if !req.BuyingEndsAt.After(req.BuyingStartsAt) {
		return errors.New("buying window must end after it starts")
	}

	if !req.PickupEndsAt.After(req.PickupStartsAt) {
		return errors.New("pickup window must end after it starts")
	}

	if req.PickupStartsAt.Before(req.BuyingStartsAt) {
		return errors.New("pickup window cannot start before the buying window")
	}

	return nil
}

// IsBuyingOpen returns true if the fundraiser's buying window contains t
func (f *Fundraiser) IsBuyingOpen(t time.Time) bool {
	return !t.Before(f.BuyingStartsAt) && t.Before(f.BuyingEndsAt)
}

// IsPickupOpen returns true if the fundraiser's pickup window contains t
func (f *Fundraiser) IsPickupOpen(t time.Time) bool {
	return !t.Before(f.PickupStartsAt) && t.Before(f.PickupEndsAt)
}
