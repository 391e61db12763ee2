package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/smartdrive/internal/server/migrations"
	"github.com/dmitrijs2005/smartdrive/internal/server/repositories/files"
	"github.com/dmitrijs2005/smartdrive/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// migrationRunner is the part of *goose.Provider used here.
type migrationRunner interface {
	Up(ctx context.Context) ([]*goose.MigrationResult, error)
}

var (
	// sqlOpen is a seam for testing sql.Open.
	sqlOpen = sql.Open

	// newMigrationProvider is a seam for testing goose.NewProvider.
	newMigrationProvider = func(db *sql.DB, ms ...*goose.Migration) (migrationRunner, error) {
		return goose.NewProvider(goose.DialectPostgres, db, nil, goose.WithGoMigrations(ms...))
	}
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories sharing one *sql.DB.
type PostgresRepositoryManager struct {
	db         *sql.DB
	usersTable string
	filesTable string
	users      *users.PostgresRepository
	files      *files.PostgresRepository
}

// NewPostgresRepositoryManager opens dsn with the pgx driver and verifies the connection.
func NewPostgresRepositoryManager(ctx context.Context, dsn, usersTable, filesTable string) (*PostgresRepositoryManager, error) {
	db, err := sqlOpen("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	m, err := NewPostgresRepositoryManagerFromDB(db, usersTable, filesTable)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return m, nil
}

// NewPostgresRepositoryManagerFromDB binds repositories to an existing connection pool.
func NewPostgresRepositoryManagerFromDB(db *sql.DB, usersTable, filesTable string) (*PostgresRepositoryManager, error) {
	ur, err := users.NewPostgresRepository(db, usersTable)
	if err != nil {
		return nil, fmt.Errorf("users table: %w", err)
	}
	fr, err := files.NewPostgresRepository(db, filesTable)
	if err != nil {
		return nil, fmt.Errorf("files table: %w", err)
	}

	return &PostgresRepositoryManager{
		db:         db,
		usersTable: usersTable,
		filesTable: filesTable,
		users:      ur,
		files:      fr,
	}, nil
}

// RunMigrations applies every pending schema migration.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	ms, err := migrations.Migrations(m.usersTable, m.filesTable)
	if err != nil {
		return err
	}

	p, err := newMigrationProvider(m.db, ms...)
	if err != nil {
		return fmt.Errorf("migration provider error: %w", err)
	}
	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return nil
}

func (m *PostgresRepositoryManager) Users() users.Repository { return m.users }

func (m *PostgresRepositoryManager) Files() files.Repository { return m.files }

func (m *PostgresRepositoryManager) Close() error { return m.db.Close() }
