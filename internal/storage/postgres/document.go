// Package postgres stores documents in a PostgreSQL table through pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgxpool.Pool, pgx.Conn and pgx.Tx used here.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const createTable = `CREATE TABLE IF NOT EXISTS lead_documents (
	key        text PRIMARY KEY,
	body       jsonb NOT NULL,
	updated_at timestamptz NOT NULL DEFAULT now()
)`

const selectBody = `SELECT body FROM lead_documents WHERE key = $1`

const upsertBody = `INSERT INTO lead_documents (key, body, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`

// EnsureSchema creates the lead_documents table if it does not exist.
func EnsureSchema(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, createTable); err != nil {
		return fmt.Errorf("create lead_documents: %w", err)
	}
	return nil
}

// Document is one row of lead_documents.
type Document struct {
	db  DBTX
	key string
}

// NewDocument returns the document stored under key.
func NewDocument(db DBTX, key string) *Document {
	return &Document{db: db, key: key}
}

func (d *Document) Read(ctx context.Context) ([]byte, error) {
	var body []byte
	err := d.db.QueryRow(ctx, selectBody, d.key).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select document %q: %w", d.key, err)
	}
	return body, nil
}

func (d *Document) Write(ctx context.Context, data []byte) error {
	// jsonb parameters must be sent as text, not bytea
	if _, err := d.db.Exec(ctx, upsertBody, d.key, string(data)); err != nil {
		return fmt.Errorf("upsert document %q: %w", d.key, err)
	}
	return nil
}
