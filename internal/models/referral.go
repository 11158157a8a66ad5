package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Referral represents a tracked association crediting an organization member
// for bringing in a buyer's order.
type Referral struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	FundraiserID uuid.UUID  `json:"fundraiser_id" db:"fundraiser_id"`
	ReferrerID   uuid.UUID  `json:"referrer_id" db:"referrer_id"`
	OrderID      *uuid.UUID `json:"order_id,omitempty" db:"order_id"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

// ReferralCreateRequest represents the data needed to record a referral
type ReferralCreateRequest struct {
	ReferrerID uuid.UUID  `json:"referrer_id"`
	OrderID    *uuid.UUID `json:"order_id,omitempty"`
}

// Validate validates referral creation data
func (req *ReferralCreateRequest) Validate() error {
	if req.ReferrerID == uuid.Nil {
		return errors.New("referrer id is required")
	}

	return nil
}
