package cart

import (
	"context"
	"fmt"
	"sync"

	"curaise/internal/models"

	"github.com/google/uuid"
)

// SnapshotRepository persists cart snapshots keyed by owner. Consumers define
// this interface; implementations decide the storage medium.
type SnapshotRepository interface {
	Load(ctx context.Context, ownerID string) (*Snapshot, error)
	Save(ctx context.Context, ownerID string, snap *Snapshot) error
}

// Store maintains, per fundraiser, a buyer's in-progress selection of items
// and quantities. Every mutation synchronously writes the full snapshot to
// the injected repository, so the persisted copy always reflects the last
// mutation. Invariants: at most one line item per distinct item ID within a
// fundraiser's list, and no line item with a non-positive quantity.
type Store struct {
	mu      sync.Mutex
	ownerID string
	repo    SnapshotRepository
	carts   map[string][]LineItem
}

// NewStore creates an empty store for the given owner
func NewStore(ownerID string, repo SnapshotRepository) *Store {
	return &Store{
		ownerID: ownerID,
		repo:    repo,
		carts:   make(map[string][]LineItem),
	}
}

// Open rehydrates a store from the owner's persisted snapshot. A missing
// snapshot is treated as empty.
func Open(ctx context.Context, ownerID string, repo SnapshotRepository) (*Store, error) {
	snap, err := repo.Load(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart snapshot: %w", err)
	}

	store := NewStore(ownerID, repo)
	if snap != nil && snap.Carts != nil {
		store.carts = snap.Carts
	}

	return store, nil
}

// AddItem adds quantity of the item to the fundraiser's cart, merging into
// an existing line item for the same item ID. If the resulting quantity is
// not positive the line item is removed instead of storing a zero or
// negative quantity.
func (s *Store) AddItem(ctx context.Context, fundraiserID string, item Item, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[fundraiserID]
	merged := false

	next := make([]LineItem, 0, len(items)+1)
	for _, li := range items {
		if li.Item.ID == item.ID {
			li.Quantity += quantity
			merged = true
			if li.Quantity <= 0 {
				continue
			}
		}
		next = append(next, li)
	}

	if !merged && quantity > 0 {
		next = append(next, LineItem{Item: item, Quantity: quantity})
	}

	s.carts[fundraiserID] = next
	return s.persist(ctx)
}

// RemoveItem deletes the line item matching the item ID, no-op if absent
func (s *Store) RemoveItem(ctx context.Context, fundraiserID string, itemID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[fundraiserID]
	next := make([]LineItem, 0, len(items))
	for _, li := range items {
		if li.Item.ID != itemID {
			next = append(next, li)
		}
	}

	s.carts[fundraiserID] = next
	return s.persist(ctx)
}

// UpdateQuantity sets the quantity for the matching line item. A quantity of
// zero or less removes the line item entirely.
func (s *Store) UpdateQuantity(ctx context.Context, fundraiserID string, itemID uuid.UUID, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[fundraiserID]
	next := make([]LineItem, 0, len(items))
	for _, li := range items {
		if li.Item.ID == itemID {
			if quantity <= 0 {
				continue
			}
			li.Quantity = quantity
		}
		next = append(next, li)
	}

	s.carts[fundraiserID] = next
	return s.persist(ctx)
}

// ClearCart replaces the fundraiser's list with an empty list, leaving
// other fundraisers' carts untouched
func (s *Store) ClearCart(ctx context.Context, fundraiserID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[fundraiserID] = []LineItem{}
	return s.persist(ctx)
}

// ClearAllCarts resets the entire map to empty
func (s *Store) ClearAllCarts(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts = make(map[string][]LineItem)
	return s.persist(ctx)
}

// GetCartItems returns the fundraiser's line items. An absent fundraiser
// yields an empty list.
func (s *Store) GetCartItems(fundraiserID string) []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[fundraiserID]
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}

// GetTotalQuantity returns the summed quantity across the fundraiser's
// line items
func (s *Store) GetTotalQuantity(fundraiserID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, li := range s.carts[fundraiserID] {
		total += li.Quantity
	}
	return total
}

// PrepareOrderItems projects the fundraiser's cart into the minimal shape
// required by order creation, dropping the item snapshot fields
func (s *Store) PrepareOrderItems(fundraiserID string) []models.OrderItemInput {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[fundraiserID]
	out := make([]models.OrderItemInput, 0, len(items))
	for _, li := range items {
		out = append(out, models.OrderItemInput{
			ItemID:   li.Item.ID,
			Quantity: li.Quantity,
		})
	}
	return out
}

// Snapshot returns a copy of the current cart map in its persisted shape
func (s *Store) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() *Snapshot {
	snap := NewSnapshot()
	for fundraiserID, items := range s.carts {
		list := make([]LineItem, len(items))
		copy(list, items)
		snap.Carts[fundraiserID] = list
	}
	return snap
}

// persist writes the full snapshot after an in-memory mutation. Callers must
// hold s.mu.
func (s *Store) persist(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.ownerID, s.snapshotLocked()); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}
