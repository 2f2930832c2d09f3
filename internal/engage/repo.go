package engage

import "context"

type Store interface {
	// Progress returns the engagement row for (student, block). When none
	// exists yet the row comes back zero-valued with Percent 0.
	Progress(ctx context.Context, userID, blockID string) (Progress, error)
	Upsert(ctx context.Context, userID, blockID string, percent float64) error
}

func clampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
