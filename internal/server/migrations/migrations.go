// Package migrations holds the schema for the users and files tables.
//
// Table names are configurable, so migrations are registered as goose Go
// migrations rendered against validated, quoted identifiers instead of
// static SQL files.
package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/smartdrive/internal/dbx"
	"github.com/pressly/goose/v3"
)

func createUsersTable(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	username      TEXT PRIMARY KEY,
	password_hash BYTEA NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`, table)
}

func createFilesTable(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	username    TEXT NOT NULL,
	file_name   TEXT NOT NULL,
	file_url    TEXT NOT NULL,
	storage_key TEXT NOT NULL,
	upload_date TEXT NOT NULL,
	PRIMARY KEY (username, file_name)
)`, table)
}

func dropTable(table string) string {
	return fmt.Sprintf(`DROP TABLE IF EXISTS %s`, table)
}

func execTx(stmt string) func(context.Context, *sql.Tx) error {
	return func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, stmt)
		return err
	}
}

// Migrations returns the ordered schema migrations for the given table names.
func Migrations(usersTable, filesTable string) ([]*goose.Migration, error) {
	users, err := dbx.TableName(usersTable)
	if err != nil {
		return nil, fmt.Errorf("users table: %w", err)
	}
	files, err := dbx.TableName(filesTable)
	if err != nil {
		return nil, fmt.Errorf("files table: %w", err)
	}

	return []*goose.Migration{
		goose.NewGoMigration(1,
			&goose.GoFunc{RunTx: execTx(createUsersTable(users))},
			&goose.GoFunc{RunTx: execTx(dropTable(users))},
		),
		goose.NewGoMigration(2,
			&goose.GoFunc{RunTx: execTx(createFilesTable(files))},
			&goose.GoFunc{RunTx: execTx(dropTable(files))},
		),
	}, nil
}
