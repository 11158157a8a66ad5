package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is the snapshot of a fundraiser item captured when it is added to a
// cart. Quantities are tracked on the line item, not here.
type Item struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
}

// LineItem is one (item, quantity) pair within a buyer's cart for a
// specific fundraiser.
type LineItem struct {
	Item     Item `json:"item"`
	Quantity int  `json:"quantity"`
}

// Snapshot is the persisted shape of a buyer's carts, keyed by fundraiser ID.
type Snapshot struct {
	Carts map[string][]LineItem `json:"carts"`
}

// NewSnapshot returns an empty snapshot
func NewSnapshot() *Snapshot {
	return &Snapshot{Carts: make(map[string][]LineItem)}
}

// Subtotal returns the line item's price times quantity
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Item.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Total sums the subtotals of the given line items. It never mutates its
// input and is exact for decimal prices.
func Total(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, li := range items {
		total = total.Add(li.Subtotal())
	}
	return total
}
