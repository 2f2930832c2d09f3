package recommend

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"time"

	"github.com/edupath/edupath-backend/internal/db"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(dbh *sql.DB) *SQLStore { return &SQLStore{db: dbh} }

func (s *SQLStore) queryer(q db.Queryer) db.Queryer {
	if q != nil {
		return q
	}
	return s.db
}

func (s *SQLStore) CreateBatch(ctx context.Context, q db.Queryer, recs []Recommendation) error {
	qr := s.queryer(q)
	now := time.Now().Unix()
	for _, r := range recs {
		mj, err := json.Marshal(r.Metadata)
		if err != nil {
			return err
		}
		at := r.CreatedAt
		if at == 0 {
			at = now
		}
		if _, err := qr.ExecContext(ctx, `INSERT INTO recommendations
			(id,user_id,entity_type,entity_id,reason,score,metadata_json,created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			r.ID, r.UserID, string(r.EntityType), r.EntityID, r.Reason, r.Score, string(mj), at); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLStore) ListByUser(ctx context.Context, opts ListOpts) ([]Recommendation, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	sqlStr := `SELECT id,user_id,entity_type,entity_id,reason,score,metadata_json,created_at
		  FROM recommendations WHERE user_id=$1`
	args := []any{opts.UserID}
	if opts.EntityType != "" {
		args = append(args, string(opts.EntityType))
		sqlStr += ` AND entity_type=$` + strconv.Itoa(len(args))
	}
	args = append(args, limit)
	sqlStr += ` ORDER BY score DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args))

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Recommendation{}
	for rows.Next() {
		var r Recommendation
		var et, mjson string
		if err := rows.Scan(&r.ID, &r.UserID, &et, &r.EntityID, &r.Reason, &r.Score, &mjson, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.EntityType = EntityType(et)
		_ = json.Unmarshal([]byte(mjson), &r.Metadata)
		out = append(out, r)
	}
	return out, rows.Err()
}
