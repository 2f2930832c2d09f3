package path_test

import (
	"context"
	"errors"
	"testing"

	"github.com/edupath/edupath-backend/internal/assess"
	"github.com/edupath/edupath-backend/internal/catalog"
	"github.com/edupath/edupath-backend/internal/db"
	"github.com/edupath/edupath-backend/internal/engage"
	"github.com/edupath/edupath-backend/internal/path"
	"github.com/edupath/edupath-backend/internal/recommend"
)

type fixture struct {
	catalog catalog.Store
	assess  assess.Store
	engage  engage.Store
	recs    recommend.Store
	paths   *path.MemoryStore
	builder *path.Builder
}

// newFixture seeds a course with three lessons:
//
//	l1: b1 (required), b2 (optional)
//	l2: b3 (required)
//	l3: b4 (required, video titled "algebra review")
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{
		catalog: catalog.NewInMemoryStore(),
		assess:  assess.NewInMemoryStore(),
		engage:  engage.NewInMemoryStore(),
		recs:    recommend.NewInMemoryStore(),
		paths:   path.NewInMemoryStore(),
	}
	engine := recommend.NewEngine(f.assess, f.catalog, f.recs)
	f.builder = &path.Builder{
		Catalog:  f.catalog,
		Engage:   f.engage,
		Assess:   f.assess,
		Rec:      engine,
		RecStore: f.recs,
		Paths:    f.paths,
		Tx:       f.paths,
	}

	if err := f.catalog.PutCourse(ctx, catalog.Course{
		ID: "course-1", Title: "Intro Math", Level: catalog.LevelBeginner,
		Lessons: []catalog.Lesson{
			{ID: "l1", Title: "Numbers", Blocks: []catalog.ContentBlock{
				{ID: "b1", Title: "Counting", IsRequired: true},
				{ID: "b2", Title: "Extra practice", IsRequired: false},
			}},
			{ID: "l2", Title: "Operations", Blocks: []catalog.ContentBlock{
				{ID: "b3", Title: "Addition", IsRequired: true},
			}},
			{ID: "l3", Title: "Review", Blocks: []catalog.ContentBlock{
				{ID: "b4", Title: "algebra review", Type: catalog.BlockVideo, IsRequired: true},
			}},
		},
	}); err != nil {
		t.Fatalf("seed course: %v", err)
	}
	return f
}

func seedAttempt(t *testing.T, f *fixture, correct bool) {
	t.Helper()
	ctx := context.Background()
	if err := f.assess.PutQuiz(ctx, assess.Quiz{
		ID: "quiz-1", CourseID: "course-1",
		Questions: []assess.Question{{ID: "q1", Topic: "algebra"}},
	}); err != nil {
		t.Fatalf("seed quiz: %v", err)
	}
	if err := f.assess.PutAttempt(ctx, assess.Attempt{
		ID: "a1", QuizID: "quiz-1", UserID: "stu-1",
		Responses: []assess.Response{{QuestionID: "q1", Correct: correct}},
	}); err != nil {
		t.Fatalf("seed attempt: %v", err)
	}
}

func assertDenseOrder(t *testing.T, items []path.Item) {
	t.Helper()
	for i, it := range items {
		if it.Position != i+1 {
			t.Fatalf("positions must be dense 1..N: item %d has position %d", i, it.Position)
		}
	}
}

func TestBuild_WalkInterleavesLessonsAndBlocks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seedAttempt(t, f, false) // algebra struggling

	// l1 fully complete; l2 and l3 untouched
	_ = f.engage.Upsert(ctx, "stu-1", "b1", 100)
	_ = f.engage.Upsert(ctx, "stu-1", "b2", 100)

	p, err := f.builder.Build(ctx, "stu-1", "course-1")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if p.CreatedAt == 0 {
		t.Fatalf("built path must carry its creation time")
	}

	// walk: l2, b3, l3, b4. Remediation for b4 is deduped and nothing else
	// matches algebra, so 4 items total.
	want := []struct {
		etype, eid string
		required   bool
	}{
		{path.EntityLesson, "l2", true},
		{path.EntityContentBlock, "b3", true},
		{path.EntityLesson, "l3", true},
		{path.EntityContentBlock, "b4", true},
	}
	if len(p.Items) != len(want) {
		t.Fatalf("expected %d items, got %d: %+v", len(want), len(p.Items), p.Items)
	}
	assertDenseOrder(t, p.Items)
	for i, w := range want {
		it := p.Items[i]
		if it.EntityType != w.etype || it.EntityID != w.eid || it.Required != w.required {
			t.Fatalf("item %d: want %+v, got %+v", i, w, it)
		}
	}

	// readable back, hydrated in order
	got, err := f.paths.GetPath(ctx, p.ID)
	if err != nil {
		t.Fatalf("get path: %v", err)
	}
	if len(got.Items) != 4 || got.Items[1].EntityID != "b3" {
		t.Fatalf("hydrated read mismatch: %+v", got.Items)
	}
	if !got.Active {
		t.Fatalf("new path must be active")
	}
}

func TestBuild_OptionalBlockKeepsOwnFlag(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seedAttempt(t, f, true) // no struggling topics

	// l1 half done: required b1 finished, optional b2 not
	_ = f.engage.Upsert(ctx, "stu-1", "b1", 100)
	_ = f.engage.Upsert(ctx, "stu-1", "b3", 100)
	_ = f.engage.Upsert(ctx, "stu-1", "b4", 100)

	p, err := f.builder.Build(ctx, "stu-1", "course-1")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	// l1 incomplete because b2 < 100; b2 item carries its own required=false
	if len(p.Items) != 2 {
		t.Fatalf("expected [l1 b2], got %+v", p.Items)
	}
	if p.Items[0].EntityID != "l1" || !p.Items[0].Required {
		t.Fatalf("lesson item must be required: %+v", p.Items[0])
	}
	if p.Items[1].EntityID != "b2" || p.Items[1].Required {
		t.Fatalf("optional block must stay optional: %+v", p.Items[1])
	}
}

func TestBuild_CompletedStudentGetsRemediationOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seedAttempt(t, f, false) // algebra struggling

	for _, b := range []string{"b1", "b2", "b3", "b4"} {
		_ = f.engage.Upsert(ctx, "stu-1", b, 100)
	}

	p, err := f.builder.Build(ctx, "stu-1", "course-1")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	// every lesson complete: only the algebra remediation block, optional
	if len(p.Items) != 1 {
		t.Fatalf("expected 1 remediation item, got %+v", p.Items)
	}
	it := p.Items[0]
	if it.EntityType != path.EntityContentBlock || it.EntityID != "b4" || it.Required {
		t.Fatalf("remediation must be optional content: %+v", it)
	}
	assertDenseOrder(t, p.Items)

	// remediation recommendations land with the path
	recs, _ := f.recs.ListByUser(ctx, recommend.ListOpts{UserID: "stu-1"})
	if len(recs) != 1 || recs[0].EntityID != "b4" {
		t.Fatalf("expected persisted remediation rec for b4, got %+v", recs)
	}
}

func TestBuild_CompletedStudentNoWeakTopicsZeroItems(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seedAttempt(t, f, true)

	for _, b := range []string{"b1", "b2", "b3", "b4"} {
		_ = f.engage.Upsert(ctx, "stu-1", b, 100)
	}

	p, err := f.builder.Build(ctx, "stu-1", "course-1")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(p.Items) != 0 {
		t.Fatalf("expected empty path, got %+v", p.Items)
	}
}

func TestBuild_NoAttemptsFailsBeforeWriting(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.builder.Build(ctx, "stu-1", "course-1")
	if !errors.Is(err, recommend.ErrNoAnalytics) {
		t.Fatalf("expected ErrNoAnalytics, got %v", err)
	}
	paths, _ := f.paths.ListActiveByUser(ctx, "stu-1")
	if len(paths) != 0 {
		t.Fatalf("validation failure must not write anything, got %+v", paths)
	}
}

func TestBuild_UnknownCourse(t *testing.T) {
	f := newFixture(t)
	seedAttempt(t, f, false)
	_, err := f.builder.Build(context.Background(), "stu-1", "nope")
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected catalog.ErrNotFound, got %v", err)
	}
}

// failingPathStore commits the header but blows up on items, simulating a
// mid-transaction persistence failure.
type failingPathStore struct {
	*path.MemoryStore
}

func (s *failingPathStore) CreateItems(context.Context, db.Queryer, []path.Item) error {
	return errors.New("disk full")
}

func TestBuild_RollbackLeavesNoOrphanHeader(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seedAttempt(t, f, false)

	failing := &failingPathStore{MemoryStore: f.paths}
	f.builder.Paths = failing
	f.builder.Tx = failing

	_, err := f.builder.Build(ctx, "stu-1", "course-1")
	if err == nil {
		t.Fatalf("expected build failure")
	}
	paths, _ := f.paths.ListActiveByUser(ctx, "stu-1")
	if len(paths) != 0 {
		t.Fatalf("rolled-back header must not survive, got %+v", paths)
	}
}

func TestBuild_SuccessiveRunsKeepOldPaths(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seedAttempt(t, f, false)

	p1, err := f.builder.Build(ctx, "stu-1", "course-1")
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	p2, err := f.builder.Build(ctx, "stu-1", "course-1")
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if p1.ID == p2.ID {
		t.Fatalf("each generation must create a new path")
	}
	paths, _ := f.paths.ListActiveByUser(ctx, "stu-1")
	if len(paths) != 2 {
		t.Fatalf("old paths are never auto-deactivated, got %d", len(paths))
	}
	if paths[0].ID != p2.ID {
		t.Fatalf("newest path first, got %+v", paths)
	}
}
