package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Queryer is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Store methods that must be able to join a caller's transaction accept a
// Queryer; passing nil means "use the store's own handle".
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside a transaction. A returned error rolls back; otherwise
// the transaction is committed.
func WithTx(ctx context.Context, db *sql.DB, fn func(q Queryer) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
