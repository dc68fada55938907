package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/dashboard/pkg/store/docstore"
)

const (
	selectDocumentQuery = `SELECT body FROM documents WHERE name = ?`
	upsertDocumentQuery = `
		INSERT INTO documents (name, body, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`
)

type queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// DocumentBackend keeps documents as rows of the documents table. It
// implements docstore.Transactor, so each Mutate cycle runs in one transaction.
type DocumentBackend struct {
	db  *sql.DB
	now func() time.Time
}

var (
	_ docstore.Backend    = (*DocumentBackend)(nil)
	_ docstore.Transactor = (*DocumentBackend)(nil)
)

func NewDocumentBackend(db *sql.DB) (*DocumentBackend, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &DocumentBackend{
		db:  db,
		now: time.Now,
	}, nil
}

func (b *DocumentBackend) conn(ctx context.Context) queryer {
	if tx := GetTransaction(ctx); tx != nil {
		return tx
	}
	return b.db
}

func (b *DocumentBackend) Read(ctx context.Context, name string) ([]byte, error) {
	var body []byte
	err := b.conn(ctx).QueryRowContext(ctx, selectDocumentQuery, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, docstore.ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", name, err)
	}
	return body, nil
}

func (b *DocumentBackend) Write(ctx context.Context, name string, data []byte) error {
	_, err := b.conn(ctx).ExecContext(ctx, upsertDocumentQuery, name, data, b.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write document %s: %w", name, err)
	}
	return nil
}

func (b *DocumentBackend) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if GetTransaction(ctx) != nil {
		return fn(ctx)
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(WithTransaction(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
