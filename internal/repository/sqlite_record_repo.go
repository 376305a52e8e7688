package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"careervision/internal/apperrors"
	"careervision/internal/model"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const recordSchema = `
CREATE TABLE IF NOT EXISTS records (
	seq         INTEGER PRIMARY KEY AUTOINCREMENT,
	id          TEXT NOT NULL UNIQUE,
	payload     TEXT NOT NULL,
	created_at  TEXT NOT NULL
);
`

// OpenSQLite opens (creating if needed) the record database at path and runs migrations.
func OpenSQLite(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." && path != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma busy_timeout: %w", err)
	}
	if _, err := db.Exec(recordSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

type sqliteRecordRepo struct {
	db *sql.DB
}

// NewSQLiteRecordRepo stores records in db, which must already carry the schema.
func NewSQLiteRecordRepo(db *sql.DB) RecordRepo {
	return &sqliteRecordRepo{db: db}
}

func (r *sqliteRecordRepo) Append(ctx context.Context, record *model.StorageRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return apperrors.NewStorageWrite("append", fmt.Errorf("marshal record: %w", err))
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO records (id, payload, created_at) VALUES (?, ?, ?)`,
		record.ID, string(payload), record.Date,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewStorageDuplicate(record.ID, err)
		}
		return apperrors.NewStorageWrite("append", err)
	}
	return nil
}

func (r *sqliteRecordRepo) List(ctx context.Context) ([]*model.StorageRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT payload FROM records ORDER BY seq ASC`)
	if err != nil {
		return nil, apperrors.NewStorageRead("list", err)
	}
	defer rows.Close()

	records := make([]*model.StorageRecord, 0)
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, apperrors.NewStorageRead("list", err)
		}
		var rec model.StorageRecord
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return nil, apperrors.NewStorageRead("list", fmt.Errorf("decode record: %w", err))
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageRead("list", err)
	}
	return records, nil
}

func (r *sqliteRecordRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return apperrors.NewStorageWrite("clear", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
