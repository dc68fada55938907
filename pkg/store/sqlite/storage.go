package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const DocumentsTableSchema = `
	CREATE TABLE IF NOT EXISTS documents (
		name TEXT NOT NULL PRIMARY KEY,
		body BLOB NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
`

var bootQueries = []string{
	DocumentsTableSchema,
}

type Settings struct {
	DbPath string
}

// NewDB opens the database at settings.DbPath and applies the boot schema.
// ":memory:" opens a private in-memory database.
func NewDB(ctx context.Context, settings Settings) (*sql.DB, error) {
	if settings.DbPath == "" {
		return nil, fmt.Errorf("database path is empty")
	}
	if settings.DbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(settings.DbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", settings.DbPath)
	if err != nil {
		return nil, err
	}
	// a single connection serializes writers and keeps :memory: databases shared
	db.SetMaxOpenConns(1)

	if err := Boot(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func Boot(ctx context.Context, db *sql.DB) error {
	for _, query := range bootQueries {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
