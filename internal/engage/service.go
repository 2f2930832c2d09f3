package engage

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu       sync.RWMutex
	progress map[string]float64 // userID|blockID
}

func NewInMemoryStore() Store {
	return &memoryStore{progress: map[string]float64{}}
}

func key(userID, blockID string) string { return userID + "|" + blockID }

func (m *memoryStore) Progress(_ context.Context, userID, blockID string) (Progress, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Progress{UserID: userID, BlockID: blockID, Percent: m.progress[key(userID, blockID)]}, nil
}

func (m *memoryStore) Upsert(_ context.Context, userID, blockID string, percent float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.progress[key(userID, blockID)] = clampPercent(percent)
	return nil
}
