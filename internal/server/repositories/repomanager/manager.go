// Package repomanager vends the metadata repositories for the configured backend.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/smartdrive/internal/server/repositories/files"
	"github.com/dmitrijs2005/smartdrive/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Users() users.Repository
	Files() files.Repository
	Close() error
}
