// Package files persists file metadata records in PostgreSQL.
package files

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/smartdrive/internal/dbx"
	"github.com/dmitrijs2005/smartdrive/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
// The table's primary key is (username, file_name).
type PostgresRepository struct {
	db    dbx.DBTX
	table string
}

// NewPostgresRepository binds a repository to db and the given files table.
func NewPostgresRepository(db dbx.DBTX, table string) (*PostgresRepository, error) {
	quoted, err := dbx.TableName(table)
	if err != nil {
		return nil, err
	}
	return &PostgresRepository{db: db, table: quoted}, nil
}

// Put upserts the record for (Owner, FileName). Last writer wins.
func (r *PostgresRepository) Put(ctx context.Context, file *models.FileRecord) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (username, file_name, file_url, storage_key, upload_date)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (username, file_name)
		DO UPDATE SET
			file_url = EXCLUDED.file_url,
			storage_key = EXCLUDED.storage_key,
			upload_date = EXCLUDED.upload_date`, r.table)

	_, err := r.db.ExecContext(ctx, query,
		file.Owner, file.FileName, file.PublicURL, file.StorageKey, file.UploadDate)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListByOwner returns every record whose partition key is owner.
func (r *PostgresRepository) ListByOwner(ctx context.Context, owner string) ([]*models.FileRecord, error) {
	query := fmt.Sprintf(`SELECT username, file_name, file_url, storage_key, upload_date FROM %s
		WHERE username = $1`, r.table)

	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	result := make([]*models.FileRecord, 0)
	for rows.Next() {
		var item models.FileRecord
		if err := rows.Scan(&item.Owner, &item.FileName, &item.PublicURL, &item.StorageKey, &item.UploadDate); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes the record for (owner, fileName). Zero affected rows is fine.
func (r *PostgresRepository) Delete(ctx context.Context, owner, fileName string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE username = $1 AND file_name = $2`, r.table)
	if _, err := r.db.ExecContext(ctx, query, owner, fileName); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
