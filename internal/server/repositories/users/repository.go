package users

import (
	"context"

	"github.com/dmitrijs2005/smartdrive/internal/server/models"
)

// Repository stores user accounts.
//
// Create returns common.ErrAlreadyExists when the username is taken.
// GetByUsername returns common.ErrorNotFound when no such user exists.
type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
