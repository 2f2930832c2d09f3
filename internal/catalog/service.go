package catalog

import (
	"context"
	"sort"
	"sync"
)

type memoryStore struct {
	mu       sync.RWMutex
	courses  map[string]Course
	lessons  map[string][]Lesson       // courseID -> ordered lessons
	blocks   map[string][]ContentBlock // lessonID -> ordered blocks
	enrolled map[string]map[string]bool
	seq      int64
}

// NewInMemoryStore backs tests and offline tooling.
func NewInMemoryStore() Store {
	return &memoryStore{
		courses:  map[string]Course{},
		lessons:  map[string][]Lesson{},
		blocks:   map[string][]ContentBlock{},
		enrolled: map[string]map[string]bool{},
	}
}

func (m *memoryStore) PutCourse(_ context.Context, c Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	if c.CreatedAt == 0 {
		c.CreatedAt = m.seq
	}
	lessons := c.Lessons
	c.Lessons = nil
	m.courses[c.ID] = c
	if len(lessons) == 0 {
		return nil
	}
	ls := make([]Lesson, 0, len(lessons))
	for i, l := range lessons {
		if l.Position == 0 {
			l.Position = i + 1
		}
		l.CourseID = c.ID
		blocks := l.Blocks
		l.Blocks = nil
		bs := make([]ContentBlock, 0, len(blocks))
		for j, b := range blocks {
			if b.Position == 0 {
				b.Position = j + 1
			}
			if b.Type == "" {
				b.Type = BlockText
			}
			b.LessonID = l.ID
			bs = append(bs, b)
		}
		m.blocks[l.ID] = bs
		ls = append(ls, l)
	}
	sort.SliceStable(ls, func(i, j int) bool { return ls[i].Position < ls[j].Position })
	m.lessons[c.ID] = ls
	return nil
}

func (m *memoryStore) GetCourse(_ context.Context, id string) (Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.courses[id]
	if !ok {
		return Course{}, ErrNotFound
	}
	return c, nil
}

func (m *memoryStore) ListCourses(_ context.Context, opts CourseListOpts) ([]Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Course, 0, len(m.courses))
	for _, c := range m.courses {
		if opts.Level != "" && c.Level != opts.Level {
			continue
		}
		if opts.Category != "" && !hasCategory(c.Categories, opts.Category) {
			continue
		}
		out = append(out, c)
	}
	// stable "database order": insertion order via CreatedAt seq
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return []Course{}, nil
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (m *memoryStore) ListLessons(_ context.Context, courseID string) ([]Lesson, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Lesson(nil), m.lessons[courseID]...), nil
}

func (m *memoryStore) ListContentBlocks(_ context.Context, lessonID string) ([]ContentBlock, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]ContentBlock(nil), m.blocks[lessonID]...), nil
}

func (m *memoryStore) ListCourseContentBlocks(_ context.Context, courseID string) ([]ContentBlock, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []ContentBlock{}
	for _, l := range m.lessons[courseID] {
		out = append(out, m.blocks[l.ID]...)
	}
	return out, nil
}

func (m *memoryStore) EnrolledCourseIDs(_ context.Context, studentID string) (map[string]bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := map[string]bool{}
	for id := range m.enrolled[studentID] {
		out[id] = true
	}
	return out, nil
}

func (m *memoryStore) Enroll(_ context.Context, courseID, studentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.enrolled[studentID] == nil {
		m.enrolled[studentID] = map[string]bool{}
	}
	m.enrolled[studentID][courseID] = true
	return nil
}
