package engage

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Progress(ctx context.Context, userID, blockID string) (Progress, error) {
	p := Progress{UserID: userID, BlockID: blockID}
	err := s.db.QueryRowContext(ctx,
		`SELECT progress, updated_at FROM engagements WHERE user_id=$1 AND block_id=$2`,
		userID, blockID).Scan(&p.Percent, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return p, nil
	}
	if err != nil {
		return Progress{}, err
	}
	return p, nil
}

func (s *SQLStore) Upsert(ctx context.Context, userID, blockID string, percent float64) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO engagements (user_id, block_id, progress, updated_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (user_id, block_id) DO UPDATE SET progress=EXCLUDED.progress, updated_at=EXCLUDED.updated_at`,
		userID, blockID, clampPercent(percent), time.Now().Unix())
	return err
}
