package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/smartdrive/internal/client/models"
)

// Client is the SmartDrive API as seen by the CLI. Authenticated calls use
// the token installed with SetToken.
type Client interface {
	Health(ctx context.Context) error
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, error)
	SetToken(token string)
	Upload(ctx context.Context, fileName string, r io.Reader) (string, error)
	List(ctx context.Context) ([]*models.File, error)
	Delete(ctx context.Context, fileName string) error
	Share(ctx context.Context, fileName string) (*models.ShareLink, error)
}
