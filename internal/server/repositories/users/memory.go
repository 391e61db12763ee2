package users

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/smartdrive/internal/common"
	"github.com/dmitrijs2005/smartdrive/internal/server/models"
)

// MemoryRepository is a process-local Repository used by the memory backend and tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]models.User

	// FailCreate, when set, is returned by Create.
	FailCreate error
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]models.User)}
}

func (r *MemoryRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailCreate != nil {
		return r.FailCreate
	}
	if _, ok := r.users[user.UserName]; ok {
		return common.ErrAlreadyExists
	}

	u := *user
	u.PasswordHash = append([]byte(nil), user.PasswordHash...)
	r.users[user.UserName] = u
	return nil
}

func (r *MemoryRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}
