package path

import (
	"context"
	"fmt"
	"time"

	"github.com/edupath/edupath-backend/internal/assess"
	"github.com/edupath/edupath-backend/internal/catalog"
	"github.com/edupath/edupath-backend/internal/db"
	"github.com/edupath/edupath-backend/internal/engage"
	"github.com/edupath/edupath-backend/internal/recommend"

	"github.com/google/uuid"
)

// Recommender supplies remediation candidates for the augmentation step.
// *recommend.Engine satisfies it.
type Recommender interface {
	ContentCandidates(ctx context.Context, userID, courseID string, limit int) ([]recommend.Recommendation, error)
}

// Builder assembles a personalized learning path for one student/course pair.
// All reads and scoring happen up front; the path header, its items and the
// remediation recommendation rows are then written in a single unit of work.
// Concurrent builds for the same pair are allowed and each produce their own
// path row.
type Builder struct {
	Catalog  catalog.Store
	Engage   engage.Store
	Assess   assess.Store
	Rec      Recommender
	RecStore recommend.Store
	Paths    Store
	Tx       TxRunner

	ContentLimit int // remediation top-N; 0 = recommend.DefaultContentLimit
}

// Build validates, walks the course, augments with remediation content and
// commits the whole path atomically. Returns the hydrated path.
func (b *Builder) Build(ctx context.Context, userID, courseID string) (Path, error) {
	course, err := b.Catalog.GetCourse(ctx, courseID)
	if err != nil {
		return Path{}, err
	}

	// Require assessment history before anything is written.
	responses, err := b.Assess.ListResponses(ctx, assess.ResponseListOpts{UserID: userID, CourseID: courseID})
	if err != nil {
		return Path{}, fmt.Errorf("list responses: %w", err)
	}
	if len(responses) == 0 {
		return Path{}, recommend.ErrNoAnalytics
	}

	p := Path{
		ID:        uuid.NewString(),
		UserID:    userID,
		CourseID:  courseID,
		Title:     "Personalized Path: " + course.Title,
		Active:    true,
		CreatedAt: time.Now().Unix(),
	}

	items, err := b.walkLessons(ctx, userID, courseID, p.ID)
	if err != nil {
		return Path{}, err
	}

	recs, err := b.Rec.ContentCandidates(ctx, userID, courseID, b.ContentLimit)
	if err != nil {
		return Path{}, err
	}
	items = appendRemediation(items, recs, p.ID)

	err = b.Tx.RunTx(ctx, func(q db.Queryer) error {
		if err := b.Paths.CreatePath(ctx, q, p); err != nil {
			return fmt.Errorf("create path: %w", err)
		}
		if err := b.Paths.CreateItems(ctx, q, items); err != nil {
			return fmt.Errorf("create path items: %w", err)
		}
		if len(recs) > 0 {
			if err := b.RecStore.CreateBatch(ctx, q, recs); err != nil {
				return fmt.Errorf("create recommendations: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return Path{}, err
	}

	p.Items = items
	return p, nil
}

// walkLessons visits lessons in course order. A lesson is complete only when
// every one of its blocks has 100% progress; incomplete lessons contribute a
// required lesson item immediately followed by their unfinished blocks, so
// positions interleave across the whole walk.
func (b *Builder) walkLessons(ctx context.Context, userID, courseID, pathID string) ([]Item, error) {
	lessons, err := b.Catalog.ListLessons(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}

	items := []Item{}
	for _, l := range lessons {
		blocks, err := b.Catalog.ListContentBlocks(ctx, l.ID)
		if err != nil {
			return nil, fmt.Errorf("list blocks: %w", err)
		}
		pending := []catalog.ContentBlock{}
		for _, blk := range blocks {
			prog, err := b.Engage.Progress(ctx, userID, blk.ID)
			if err != nil {
				return nil, fmt.Errorf("progress: %w", err)
			}
			if !prog.Complete() {
				pending = append(pending, blk)
			}
		}
		if len(pending) == 0 {
			continue // lesson complete (or empty)
		}
		items = append(items, Item{
			ID:         uuid.NewString(),
			PathID:     pathID,
			EntityType: EntityLesson,
			EntityID:   l.ID,
			Position:   len(items) + 1,
			Required:   true,
			Criteria:   map[string]any{"required_progress": 100},
		})
		for _, blk := range pending {
			items = append(items, Item{
				ID:         uuid.NewString(),
				PathID:     pathID,
				EntityType: EntityContentBlock,
				EntityID:   blk.ID,
				Position:   len(items) + 1,
				Required:   blk.IsRequired,
				Criteria:   map[string]any{"required_progress": 100},
			})
		}
	}
	return items, nil
}

// appendRemediation adds scorer picks as optional items, skipping anything
// the walk already placed (same entity type+id).
func appendRemediation(items []Item, recs []recommend.Recommendation, pathID string) []Item {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		seen[it.EntityType+"|"+it.EntityID] = true
	}
	for _, r := range recs {
		k := EntityContentBlock + "|" + r.EntityID
		if seen[k] {
			continue
		}
		seen[k] = true
		items = append(items, Item{
			ID:         uuid.NewString(),
			PathID:     pathID,
			EntityType: EntityContentBlock,
			EntityID:   r.EntityID,
			Position:   len(items) + 1,
			Required:   false,
			Criteria:   map[string]any{"recommended": true},
		})
	}
	return items
}
