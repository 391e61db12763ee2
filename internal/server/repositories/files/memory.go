package files

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/smartdrive/internal/server/models"
)

type key struct {
	owner string
	name  string
}

// MemoryRepository is a process-local Repository used by the memory backend and tests.
// Fail* fields inject errors into the corresponding operation.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[key]models.FileRecord

	FailPut    error
	FailList   error
	FailDelete error
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[key]models.FileRecord)}
}

func (r *MemoryRepository) Put(_ context.Context, file *models.FileRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailPut != nil {
		return r.FailPut
	}
	r.items[key{file.Owner, file.FileName}] = *file
	return nil
}

func (r *MemoryRepository) ListByOwner(_ context.Context, owner string) ([]*models.FileRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.FailList != nil {
		return nil, r.FailList
	}

	result := make([]*models.FileRecord, 0)
	for k, v := range r.items {
		if k.owner != owner {
			continue
		}
		item := v
		result = append(result, &item)
	}
	return result, nil
}

func (r *MemoryRepository) Delete(_ context.Context, owner, fileName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailDelete != nil {
		return r.FailDelete
	}
	delete(r.items, key{owner, fileName})
	return nil
}
