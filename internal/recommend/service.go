package recommend

import (
	"context"
	"sort"
	"sync"

	"github.com/edupath/edupath-backend/internal/db"
)

type memoryStore struct {
	mu   sync.RWMutex
	recs []Recommendation // append order
	seq  int64
}

func NewInMemoryStore() Store {
	return &memoryStore{}
}

func (m *memoryStore) CreateBatch(_ context.Context, _ db.Queryer, recs []Recommendation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range recs {
		m.seq++
		if r.CreatedAt == 0 {
			r.CreatedAt = m.seq
		}
		m.recs = append(m.recs, r)
	}
	return nil
}

func (m *memoryStore) ListByUser(_ context.Context, opts ListOpts) ([]Recommendation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	out := []Recommendation{}
	for _, r := range m.recs {
		if r.UserID != opts.UserID {
			continue
		}
		if opts.EntityType != "" && r.EntityType != opts.EntityType {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].CreatedAt > out[j].CreatedAt
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
