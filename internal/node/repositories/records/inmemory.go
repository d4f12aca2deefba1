package records

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/locshare/internal/common"
	"github.com/dmitrijs2005/locshare/internal/node/models"
)

// InMemoryRepository is a map-backed Repository used in tests and for
// running a throwaway node without postgres.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*models.Record
}

// NewInMemoryRepository constructs an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{items: make(map[string]*models.Record)}
}

func (r *InMemoryRepository) Insert(_ context.Context, record *models.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[record.ID]; ok {
		return common.ErrValidation
	}
	clone := *record
	r.items[record.ID] = &clone
	return nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id string) (*models.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.items[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *record
	return &clone, nil
}

func (r *InMemoryRepository) ListIDs(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]string, 0, len(r.items))
	for _, record := range r.sorted() {
		result = append(result, record.ID)
	}
	return result, nil
}

func (r *InMemoryRepository) ListAll(_ context.Context) ([]*models.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*models.Record, 0, len(r.items))
	for _, record := range r.sorted() {
		clone := *record
		result = append(result, &clone)
	}
	return result, nil
}

func (r *InMemoryRepository) MarkVerified(_ context.Context, id string, revealedValue int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.items[id]
	if !ok {
		return common.ErrNotFound
	}
	if record.Verified {
		return common.ErrAlreadyVerified
	}
	record.Verified = true
	record.RevealedValue = revealedValue
	return nil
}

// sorted returns records in creation order. Callers must hold the lock.
func (r *InMemoryRepository) sorted() []*models.Record {
	result := make([]*models.Record, 0, len(r.items))
	for _, record := range r.items {
		result = append(result, record)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt != result[j].CreatedAt {
			return result[i].CreatedAt < result[j].CreatedAt
		}
		return result[i].ID < result[j].ID
	})
	return result
}
