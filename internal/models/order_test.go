package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOrderCreateRequestValidate(t *testing.T) {
	fundraiserID := uuid.New()
	itemID := uuid.New()

	tests := []struct {
		name    string
		req     OrderCreateRequest
		wantErr string
	}{
		{
			name: "valid",
			req: OrderCreateRequest{
				FundraiserID: fundraiserID,
				Items:        []OrderItemInput{{ItemID: itemID, Quantity: 2}},
			},
		},
		{
			name:    "missing fundraiser",
			req:     OrderCreateRequest{Items: []OrderItemInput{{ItemID: itemID, Quantity: 1}}},
			wantErr: "fundraiser id is required",
		},
		{
			name:    "no items",
			req:     OrderCreateRequest{FundraiserID: fundraiserID},
			wantErr: "order must contain at least one item",
		},
		{
			name: "zero quantity",
			req: OrderCreateRequest{
				FundraiserID: fundraiserID,
				Items:        []OrderItemInput{{ItemID: itemID, Quantity: 0}},
			},
			wantErr: "item quantity must be positive",
		},
		{
			name: "duplicate item",
			req: OrderCreateRequest{
				FundraiserID: fundraiserID,
				Items: []OrderItemInput{
					{ItemID: itemID, Quantity: 1},
					{ItemID: itemID, Quantity: 2},
				},
			},
			wantErr: "duplicate item in order",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePaymentStatus(t *testing.T) {
	assert.NoError(t, ValidatePaymentStatus(PaymentPending))
	assert.NoError(t, ValidatePaymentStatus(PaymentConfirmed))
	assert.NoError(t, ValidatePaymentStatus(PaymentUnverifiable))
	assert.Error(t, ValidatePaymentStatus(PaymentStatus("PAID")))
}

func TestCanCompletePickup(t *testing.T) {
	order := &Order{PaymentStatus: PaymentPending}
	assert.False(t, order.CanCompletePickup())

	order.PaymentStatus = PaymentConfirmed
	assert.True(t, order.CanCompletePickup())

	order.PickupCompleted = true
	assert.False(t, order.CanCompletePickup())
}

func TestIsBuyingOpen(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 15, 17, 0, 0, 0, time.UTC)
	f := &Fundraiser{BuyingStartsAt: start, BuyingEndsAt: end}

	assert.False(t, f.IsBuyingOpen(start.Add(-time.Second)))
	assert.True(t, f.IsBuyingOpen(start))
	assert.True(t, f.IsBuyingOpen(start.Add(24*time.Hour)))
	assert.False(t, f.IsBuyingOpen(end))
}
