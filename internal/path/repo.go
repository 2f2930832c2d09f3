package path

import (
	"context"
	"errors"

	"github.com/edupath/edupath-backend/internal/db"
)

var ErrNotFound = errors.New("learning path not found")

// Store persists paths. CreatePath/CreateItems take a Queryer so the builder
// can run both inside one transaction; a nil Queryer writes standalone.
type Store interface {
	CreatePath(ctx context.Context, q db.Queryer, p Path) error
	CreateItems(ctx context.Context, q db.Queryer, items []Item) error

	// GetPath hydrates the path with its items in position order.
	GetPath(ctx context.Context, id string) (Path, error)
	// ListActiveByUser returns the student's active paths, newest first,
	// hydrated.
	ListActiveByUser(ctx context.Context, userID string) ([]Path, error)
}

// TxRunner scopes a builder run to one atomic unit of work. The SQL store
// backs it with a real transaction; in-memory stores snapshot and restore.
type TxRunner interface {
	RunTx(ctx context.Context, fn func(q db.Queryer) error) error
}
