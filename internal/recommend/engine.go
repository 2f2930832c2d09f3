package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/edupath/edupath-backend/internal/assess"
	"github.com/edupath/edupath-backend/internal/catalog"

	"github.com/google/uuid"
)

const (
	DefaultCourseLimit  = 5
	DefaultContentLimit = 5
)

// Engine scores candidate courses and content blocks against a student's
// topic profile. Collaborators are injected; the engine holds no connection
// state of its own.
type Engine struct {
	Assess  assess.Store
	Catalog catalog.Store
	Recs    Store
}

func NewEngine(a assess.Store, c catalog.Store, r Store) *Engine {
	return &Engine{Assess: a, Catalog: c, Recs: r}
}

type CourseOpts struct {
	Category string
	Level    string
	Limit    int
}

// RecommendCourses profiles the student across their full attempt history,
// scores every course they are not enrolled in, persists the top N as
// recommendation rows and returns them.
func (e *Engine) RecommendCourses(ctx context.Context, userID string, opts CourseOpts) ([]Recommendation, error) {
	responses, err := e.Assess.ListResponses(ctx, assess.ResponseListOpts{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	if len(responses) == 0 {
		return nil, ErrNoAnalytics
	}
	topics := AggregateTopics(responses)
	weak := Struggling(topics)
	strong := Strengths(topics)

	enrolled, err := e.Catalog.EnrolledCourseIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("enrolled courses: %w", err)
	}
	courses, err := e.Catalog.ListCourses(ctx, catalog.CourseListOpts{Category: opts.Category, Level: opts.Level})
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultCourseLimit
	}

	recs := []Recommendation{}
	for _, c := range courses {
		if enrolled[c.ID] {
			continue
		}
		recs = append(recs, Recommendation{
			ID:         uuid.NewString(),
			UserID:     userID,
			EntityType: EntityCourse,
			EntityID:   c.ID,
			Reason:     ReasonCourse,
			Score:      scoreCourse(c, len(weak), len(strong)),
			Metadata: map[string]any{
				"strengths":         strong,
				"weaknesses":        weak,
				"course_level":      c.Level,
				"course_categories": categoryNames(c.Categories),
			},
		})
	}
	// ties keep catalog return order
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })
	if len(recs) > limit {
		recs = recs[:limit]
	}
	if len(recs) == 0 {
		return recs, nil
	}
	if err := e.Recs.CreateBatch(ctx, nil, recs); err != nil {
		return nil, fmt.Errorf("persist recommendations: %w", err)
	}
	return recs, nil
}

// ContentCandidates computes (without persisting) the top remediation blocks
// for the student's struggling topics within one course. An empty struggling
// list yields an empty result and no error. The path builder persists the
// returned rows inside its own transaction.
func (e *Engine) ContentCandidates(ctx context.Context, userID, courseID string, limit int) ([]Recommendation, error) {
	responses, err := e.Assess.ListResponses(ctx, assess.ResponseListOpts{UserID: userID, CourseID: courseID})
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	if len(responses) == 0 {
		return nil, ErrNoAnalytics
	}
	weak := Struggling(AggregateTopics(responses))
	if len(weak) == 0 {
		return []Recommendation{}, nil
	}

	blocks, err := e.Catalog.ListCourseContentBlocks(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("list content blocks: %w", err)
	}
	if limit <= 0 {
		limit = DefaultContentLimit
	}

	recs := []Recommendation{}
	for _, b := range blocks {
		if !matchesAnyTopic(b, weak) {
			continue
		}
		recs = append(recs, Recommendation{
			ID:         uuid.NewString(),
			UserID:     userID,
			EntityType: EntityContentBlock,
			EntityID:   b.ID,
			Reason:     ReasonContent,
			Score:      scoreBlock(b, weak),
			Metadata: map[string]any{
				"topics":     weak,
				"block_type": b.Type,
			},
		})
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

// RecommendContent is the standalone form of ContentCandidates: it persists
// the rows immediately (outside any path build).
func (e *Engine) RecommendContent(ctx context.Context, userID, courseID string, limit int) ([]Recommendation, error) {
	recs, err := e.ContentCandidates(ctx, userID, courseID, limit)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return recs, nil
	}
	if err := e.Recs.CreateBatch(ctx, nil, recs); err != nil {
		return nil, fmt.Errorf("persist recommendations: %w", err)
	}
	return recs, nil
}
