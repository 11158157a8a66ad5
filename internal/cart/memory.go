package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryRepository is an in-process SnapshotRepository. Snapshots are stored
// serialized so loads go through the same round trip as a real backend.
type MemoryRepository struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

// NewMemoryRepository creates a new in-memory snapshot repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{snapshots: make(map[string][]byte)}
}

// Load returns the owner's snapshot, or an empty snapshot if none is stored
func (r *MemoryRepository) Load(ctx context.Context, ownerID string) (*Snapshot, error) {
	r.mu.RLock()
	data, ok := r.snapshots[ownerID]
	r.mu.RUnlock()

	if !ok {
		return NewSnapshot(), nil
	}

	snap := NewSnapshot()
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("failed to decode cart snapshot: %w", err)
	}
	return snap, nil
}

// Save stores the owner's snapshot, replacing any previous one
func (r *MemoryRepository) Save(ctx context.Context, ownerID string, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode cart snapshot: %w", err)
	}

	r.mu.Lock()
	r.snapshots[ownerID] = data
	r.mu.Unlock()
	return nil
}
