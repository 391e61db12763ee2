// Package users persists user accounts in PostgreSQL.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/smartdrive/internal/common"
	"github.com/dmitrijs2005/smartdrive/internal/dbx"
	"github.com/dmitrijs2005/smartdrive/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db    dbx.DBTX
	table string
}

// NewPostgresRepository binds a repository to db and the given users table.
func NewPostgresRepository(db dbx.DBTX, table string) (*PostgresRepository, error) {
	quoted, err := dbx.TableName(table)
	if err != nil {
		return nil, err
	}
	return &PostgresRepository{db: db, table: quoted}, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (username, password_hash, created_at)
         VALUES ($1, $2, $3)`, r.table)

	_, err := r.db.ExecContext(ctx, query, user.UserName, user.PasswordHash, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := fmt.Sprintf(
		`SELECT username, password_hash, created_at FROM %s
		 WHERE username = $1`, r.table)

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&user.UserName, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}
