// Package server wires the configured storage backends into the services and
// runs the HTTP API and gRPC health endpoints until shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/smartdrive/internal/logging"
	"github.com/dmitrijs2005/smartdrive/internal/server/blobstore"
	"github.com/dmitrijs2005/smartdrive/internal/server/config"
	"github.com/dmitrijs2005/smartdrive/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/smartdrive/internal/server/services"

	gs "github.com/dmitrijs2005/smartdrive/internal/server/grpc"
	hs "github.com/dmitrijs2005/smartdrive/internal/server/http"
)

var (
	newPostgresRepositoryManager = func(ctx context.Context, c *config.Config) (repomanager.RepositoryManager, error) {
		return repomanager.NewPostgresRepositoryManager(ctx, c.DatabaseDSN, c.UsersTable, c.FilesTable)
	}

	newS3Store = func(ctx context.Context, c *config.Config) (blobstore.Store, error) {
		return blobstore.NewS3Store(ctx, blobstore.S3Options{
			Bucket:        c.S3Bucket,
			Region:        c.S3Region,
			AccessKey:     c.S3RootUser,
			SecretKey:     c.S3RootPassword,
			BaseEndpoint:  c.S3BaseEndpoint,
			PublicURLBase: c.PublicURLBase(),
		})
	}
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repos       repomanager.RepositoryManager
	userService *services.UserService
	fileService *services.FileService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)
	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	repos, err := openMetadata(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := repos.RunMigrations(ctx); err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	blobs, err := openBlobStore(ctx, c)
	if err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	us := services.NewUserService(repos.Users(), c)
	fs := services.NewFileService(blobs, repos.Files(), c.ShareLinkValidityDuration, logger)

	logger.Info(ctx, "backends ready", "metadata", c.MetadataBackend, "storage", c.StorageBackend)

	return &App{config: c, logger: logger, repos: repos, userService: us, fileService: fs}, nil
}

func openMetadata(ctx context.Context, c *config.Config) (repomanager.RepositoryManager, error) {
	switch c.MetadataBackend {
	case config.BackendPostgres:
		return newPostgresRepositoryManager(ctx, c)
	case config.BackendMemory:
		return repomanager.NewInMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unknown metadata backend %q", c.MetadataBackend)
	}
}

func openBlobStore(ctx context.Context, c *config.Config) (blobstore.Store, error) {
	switch c.StorageBackend {
	case config.BackendS3:
		return newS3Store(ctx, c)
	case config.BackendMemory:
		return blobstore.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives. It
// returns the first server error, if any.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		app.logger.Error(ctx, err.Error())
		errOnce.Do(func() { firstErr = err })
		cancelFunc()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		s := hs.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.userService, app.fileService, app.config.MaxUploadSize)
		if err := s.Run(ctx); err != nil {
			fail(fmt.Errorf("http server: %w", err))
		}
	}()

	if app.config.EndpointAddrGRPC != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger)
			if err := s.Run(ctx); err != nil {
				fail(fmt.Errorf("grpc server: %w", err))
			}
		}()
	}

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(context.Background(), "db close error", "error", err)
	}

	app.logger.Info(context.Background(), "App stopped")
	return firstErr
}
