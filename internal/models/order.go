package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the manual payment-verification state of an order
type PaymentStatus string

const (
	PaymentPending      PaymentStatus = "PENDING"
	PaymentConfirmed    PaymentStatus = "CONFIRMED"
	PaymentUnverifiable PaymentStatus = "UNVERIFIABLE"
)

// Order represents a buyer's order against a fundraiser. Payment is verified
// manually (Venmo), so the status moves PENDING -> CONFIRMED/UNVERIFIABLE
// by explicit seller action.
type Order struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	BuyerID         uuid.UUID       `json:"buyer_id" db:"buyer_id"`
	FundraiserID    uuid.UUID       `json:"fundraiser_id" db:"fundraiser_id"`
	PickupEventID   *uuid.UUID      `json:"pickup_event_id,omitempty" db:"pickup_event_id"`
	TotalAmount     decimal.Decimal `json:"total_amount" db:"total_amount"`
	PaymentStatus   PaymentStatus   `json:"payment_status" db:"payment_status"`
	PickupCompleted bool            `json:"pickup_completed" db:"pickup_completed"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// OrderItem represents one (item, quantity) pair within an order
type OrderItem struct {
	OrderID  uuid.UUID `json:"order_id" db:"order_id"`
	ItemID   uuid.UUID `json:"item_id" db:"item_id"`
	Quantity int       `json:"quantity" db:"quantity"`
}

// OrderItemDetail is an order item joined with its fundraiser item
type OrderItemDetail struct {
	Item     *FundraiserItem `json:"item"`
	Quantity int             `json:"quantity"`
}

// OrderWithItems bundles an order with its line item details
type OrderWithItems struct {
	*Order
	Items []*OrderItemDetail `json:"items"`
}

// OrderItemInput is the minimal line-item shape accepted by order creation
type OrderItemInput struct {
	ItemID   uuid.UUID `json:"item_id"`
	Quantity int       `json:"quantity"`
}

// OrderCreateRequest represents the data needed to create a new order
type OrderCreateRequest struct {
	FundraiserID  uuid.UUID        `json:"fundraiser_id"`
	PickupEventID *uuid.UUID       `json:"pickup_event_id,omitempty"`
	Items         []OrderItemInput `json:"items"`
}

// Validate validates order creation data
func (req *OrderCreateRequest) Validate() error {
	if req.FundraiserID == uuid.Nil {
		return errors.New("fundraiser id is required")
	}

	if len(req.Items) == 0 {
		return errors.New("order must contain at least one item")
	}

	seen := make(map[uuid.UUID]bool, len(req.Items))
	for _, item := range req.Items {
		if item.ItemID == uuid.Nil {
			return errors.New("item id is required")
		}
		if item.Quantity <= 0 {
			return errors.New("item quantity must be positive")
		}
		if seen[item.ItemID] {
			return errors.New("duplicate item in order")
		}
		seen[item.ItemID] = true
	}

	return nil
}

// ValidateStatus validates a payment status value
func ValidatePaymentStatus(status PaymentStatus) error {
	switch status {
	case PaymentPending, PaymentConfirmed, PaymentUnverifiable:
		return nil
	default:
		return errors.New("invalid payment status")
	}
}

// IsPending returns true if the order's payment is awaiting verification
func (o *Order) IsPending() bool {
	return o.PaymentStatus == PaymentPending
}

// IsConfirmed returns true if the order's payment has been confirmed
func (o *Order) IsConfirmed() bool {
	return o.PaymentStatus == PaymentConfirmed
}

// CanCompletePickup returns true if the order is eligible for pickup completion
func (o *Order) CanCompletePickup() bool {
	return o.PaymentStatus == PaymentConfirmed && !o.PickupCompleted
}
