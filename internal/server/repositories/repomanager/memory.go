package repomanager

import (
	"context"

	"github.com/dmitrijs2005/smartdrive/internal/server/repositories/files"
	"github.com/dmitrijs2005/smartdrive/internal/server/repositories/users"
)

type InMemoryRepositoryManager struct {
	users *users.MemoryRepository
	files *files.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users: users.NewMemoryRepository(),
		files: files.NewMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *InMemoryRepositoryManager) Users() users.Repository { return m.users }

func (m *InMemoryRepositoryManager) Files() files.Repository { return m.files }

func (m *InMemoryRepositoryManager) Close() error { return nil }
