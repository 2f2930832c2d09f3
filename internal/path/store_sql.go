package path

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/edupath/edupath-backend/internal/db"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(dbh *sql.DB) *SQLStore { return &SQLStore{db: dbh} }

func (s *SQLStore) RunTx(ctx context.Context, fn func(q db.Queryer) error) error {
	return db.WithTx(ctx, s.db, fn)
}

func (s *SQLStore) queryer(q db.Queryer) db.Queryer {
	if q != nil {
		return q
	}
	return s.db
}

func (s *SQLStore) CreatePath(ctx context.Context, q db.Queryer, p Path) error {
	at := p.CreatedAt
	if at == 0 {
		at = time.Now().Unix()
	}
	_, err := s.queryer(q).ExecContext(ctx, `INSERT INTO learning_paths (id,user_id,course_id,title,is_active,created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		p.ID, p.UserID, p.CourseID, p.Title, p.Active, at)
	return err
}

func (s *SQLStore) CreateItems(ctx context.Context, q db.Queryer, items []Item) error {
	qr := s.queryer(q)
	for _, it := range items {
		cj, err := json.Marshal(it.Criteria)
		if err != nil {
			return err
		}
		if _, err := qr.ExecContext(ctx, `INSERT INTO learning_path_items
			(id,path_id,entity_type,entity_id,position,is_required,criteria_json)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			it.ID, it.PathID, it.EntityType, it.EntityID, it.Position, it.Required, string(cj)); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLStore) GetPath(ctx context.Context, id string) (Path, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,user_id,course_id,title,is_active,created_at FROM learning_paths WHERE id=$1`, id)
	var p Path
	if err := row.Scan(&p.ID, &p.UserID, &p.CourseID, &p.Title, &p.Active, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Path{}, ErrNotFound
		}
		return Path{}, err
	}
	items, err := s.listItems(ctx, p.ID)
	if err != nil {
		return Path{}, err
	}
	p.Items = items
	return p, nil
}

func (s *SQLStore) ListActiveByUser(ctx context.Context, userID string) ([]Path, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,user_id,course_id,title,is_active,created_at FROM learning_paths
		  WHERE user_id=$1 AND is_active=TRUE
		  ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Path{}
	for rows.Next() {
		var p Path
		if err := rows.Scan(&p.ID, &p.UserID, &p.CourseID, &p.Title, &p.Active, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		items, err := s.listItems(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (s *SQLStore) listItems(ctx context.Context, pathID string) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,path_id,entity_type,entity_id,position,is_required,criteria_json
		   FROM learning_path_items WHERE path_id=$1 ORDER BY position`, pathID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Item{}
	for rows.Next() {
		var it Item
		var cjson string
		if err := rows.Scan(&it.ID, &it.PathID, &it.EntityType, &it.EntityID, &it.Position, &it.Required, &cjson); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(cjson), &it.Criteria)
		out = append(out, it)
	}
	return out, rows.Err()
}
