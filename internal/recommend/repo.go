package recommend

import (
	"context"
	"errors"

	"github.com/edupath/edupath-backend/internal/db"
)

// ErrNoAnalytics: the student has no graded responses to profile from.
var ErrNoAnalytics = errors.New("no assessment history for student")

const DefaultListLimit = 10

type ListOpts struct {
	UserID     string
	EntityType EntityType // optional filter
	Limit      int        // default DefaultListLimit
}

type Store interface {
	// CreateBatch appends one generation run's rows. Pass a Queryer to join
	// an enclosing transaction; nil writes standalone.
	CreateBatch(ctx context.Context, q db.Queryer, recs []Recommendation) error
	// ListByUser returns the most recent standing suggestions, highest score
	// first. Never deduplicates across generation runs.
	ListByUser(ctx context.Context, opts ListOpts) ([]Recommendation, error)
}
