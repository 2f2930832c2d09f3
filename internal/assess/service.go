package assess

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu       sync.RWMutex
	quizzes  map[string]Quiz
	attempts []Attempt // ingestion order
}

func NewInMemoryStore() Store {
	return &memoryStore{quizzes: map[string]Quiz{}}
}

func (m *memoryStore) PutQuiz(_ context.Context, q Quiz) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if q.Kind != KindExam {
		q.Kind = KindQuiz
	}
	m.quizzes[q.ID] = q
	return nil
}

func (m *memoryStore) PutAttempt(_ context.Context, a Attempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, prev := range m.attempts {
		if prev.ID == a.ID {
			return nil
		}
	}
	m.attempts = append(m.attempts, a)
	return nil
}

func (m *memoryStore) ListResponses(_ context.Context, opts ResponseListOpts) ([]GradedResponse, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []GradedResponse{}
	for _, a := range m.attempts {
		if a.UserID != opts.UserID {
			continue
		}
		q, ok := m.quizzes[a.QuizID]
		if !ok {
			continue
		}
		if opts.CourseID != "" && q.CourseID != opts.CourseID {
			continue
		}
		out = append(out, joinResponses(a.Responses, q.Questions)...)
	}
	return out, nil
}
