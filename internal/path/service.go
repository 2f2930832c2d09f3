package path

import (
	"context"
	"sort"
	"sync"

	"github.com/edupath/edupath-backend/internal/db"
)

// MemoryStore implements Store and TxRunner for tests and offline tooling.
// RunTx snapshots state and restores it when fn fails, mirroring the SQL
// store's rollback.
type MemoryStore struct {
	mu    sync.Mutex
	paths map[string]Path
	items map[string][]Item // pathID -> items
	order []string          // path IDs in creation order
	seq   int64
}

func NewInMemoryStore() *MemoryStore {
	return &MemoryStore{paths: map[string]Path{}, items: map[string][]Item{}}
}

func (m *MemoryStore) RunTx(_ context.Context, fn func(q db.Queryer) error) error {
	m.mu.Lock()
	paths := make(map[string]Path, len(m.paths))
	for k, v := range m.paths {
		paths[k] = v
	}
	items := make(map[string][]Item, len(m.items))
	for k, v := range m.items {
		items[k] = append([]Item(nil), v...)
	}
	order := append([]string(nil), m.order...)
	m.mu.Unlock()

	if err := fn(nil); err != nil {
		m.mu.Lock()
		m.paths = paths
		m.items = items
		m.order = order
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *MemoryStore) CreatePath(_ context.Context, _ db.Queryer, p Path) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	if p.CreatedAt == 0 {
		p.CreatedAt = m.seq
	}
	p.Items = nil
	m.paths[p.ID] = p
	m.order = append(m.order, p.ID)
	return nil
}

func (m *MemoryStore) CreateItems(_ context.Context, _ db.Queryer, items []Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range items {
		m.items[it.PathID] = append(m.items[it.PathID], it)
	}
	return nil
}

func (m *MemoryStore) GetPath(_ context.Context, id string) (Path, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.paths[id]
	if !ok {
		return Path{}, ErrNotFound
	}
	p.Items = m.orderedItems(id)
	return p, nil
}

// ListActiveByUser walks creation order backwards: newest first even when
// several paths share one CreatedAt second.
func (m *MemoryStore) ListActiveByUser(_ context.Context, userID string) ([]Path, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Path{}
	for i := len(m.order) - 1; i >= 0; i-- {
		p, ok := m.paths[m.order[i]]
		if !ok || p.UserID != userID || !p.Active {
			continue
		}
		p.Items = m.orderedItems(p.ID)
		out = append(out, p)
	}
	return out, nil
}

func (m *MemoryStore) orderedItems(pathID string) []Item {
	items := append([]Item(nil), m.items[pathID]...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Position < items[j].Position })
	return items
}
