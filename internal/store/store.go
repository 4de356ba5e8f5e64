// Package store is the PostgreSQL persistence layer for crew import data:
// the vessel registry, crew profiles, vessel assignments, audit log and
// import-run history.
package store

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed schema.sql
var schemaSQL string

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Store provides datastore access for the import pipeline and the read APIs.
type Store struct {
	db DBTX
}

// New creates a Store backed by the given connection.
func New(db DBTX) *Store {
	return &Store{db: db}
}

// EnsureSchema applies the embedded schema. Every statement is idempotent
// (CREATE TABLE IF NOT EXISTS), so running it at startup is safe.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Ping verifies datastore connectivity, for the health endpoint.
func (s *Store) Ping(ctx context.Context) error {
	var one int
	if err := s.db.QueryRow(ctx, `SELECT 1`).Scan(&one); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}
