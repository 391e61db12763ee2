package files

import (
	"context"

	"github.com/dmitrijs2005/smartdrive/internal/server/models"
)

// Repository stores per-owner file records keyed by (owner, file name).
//
// Put overwrites an existing record with the same key. ListByOwner returns
// records in unspecified order; ordering is applied by the caller.
// Delete of a missing record is not an error.
type Repository interface {
	Put(ctx context.Context, file *models.FileRecord) error
	ListByOwner(ctx context.Context, owner string) ([]*models.FileRecord, error)
	Delete(ctx context.Context, owner, fileName string) error
}
