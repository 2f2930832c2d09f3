package assess_test

import (
	"context"
	"testing"

	"github.com/edupath/edupath-backend/internal/assess"
)

func seedQuiz(t *testing.T, store assess.Store, id, courseID string, kind assess.Kind) {
	t.Helper()
	err := store.PutQuiz(context.Background(), assess.Quiz{
		ID: id, CourseID: courseID, Kind: kind,
		Questions: []assess.Question{
			{ID: "q1", Prompt: "1+1?", Topic: "arithmetic"},
			{ID: "q2", Prompt: "x?", Topic: "algebra"},
			{ID: "q3", Prompt: "untagged"},
		},
	})
	if err != nil {
		t.Fatalf("put quiz: %v", err)
	}
}

func TestListResponses_ResolvesTopicsPerQuestion(t *testing.T) {
	ctx := context.Background()
	store := assess.NewInMemoryStore()
	seedQuiz(t, store, "quiz-1", "course-1", assess.KindQuiz)

	err := store.PutAttempt(ctx, assess.Attempt{
		ID: "a1", QuizID: "quiz-1", UserID: "stu-1",
		Responses: []assess.Response{
			{QuestionID: "q1", Correct: true},
			{QuestionID: "q2", Correct: false},
			{QuestionID: "q3", Correct: true},
		},
	})
	if err != nil {
		t.Fatalf("put attempt: %v", err)
	}

	got, err := store.ListResponses(ctx, assess.ResponseListOpts{UserID: "stu-1"})
	if err != nil {
		t.Fatalf("list responses: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 graded responses, got %d", len(got))
	}
	if got[0].Topic != "arithmetic" || !got[0].Correct {
		t.Fatalf("q1 join wrong: %+v", got[0])
	}
	if got[1].Topic != "algebra" || got[1].Correct {
		t.Fatalf("q2 join wrong: %+v", got[1])
	}
	// topic resolution happens downstream; untagged stays empty here
	if got[2].Topic != "" {
		t.Fatalf("q3 should carry no topic: %+v", got[2])
	}
}

func TestListResponses_SkipsUnmatchedQuestions(t *testing.T) {
	ctx := context.Background()
	store := assess.NewInMemoryStore()
	seedQuiz(t, store, "quiz-1", "course-1", assess.KindQuiz)

	// q9 was deleted from the quiz after the attempt was recorded
	err := store.PutAttempt(ctx, assess.Attempt{
		ID: "a1", QuizID: "quiz-1", UserID: "stu-1",
		Responses: []assess.Response{
			{QuestionID: "q9", Correct: true},
			{QuestionID: "q1", Correct: true},
		},
	})
	if err != nil {
		t.Fatalf("put attempt: %v", err)
	}

	got, err := store.ListResponses(ctx, assess.ResponseListOpts{UserID: "stu-1"})
	if err != nil {
		t.Fatalf("list responses: %v", err)
	}
	if len(got) != 1 || got[0].QuestionID != "q1" {
		t.Fatalf("orphan response must be dropped, got %+v", got)
	}
}

func TestListResponses_CourseFilterAndExamPooling(t *testing.T) {
	ctx := context.Background()
	store := assess.NewInMemoryStore()
	seedQuiz(t, store, "quiz-1", "course-1", assess.KindQuiz)
	seedQuiz(t, store, "exam-1", "course-1", assess.KindExam)
	seedQuiz(t, store, "quiz-2", "course-2", assess.KindQuiz)

	for _, a := range []assess.Attempt{
		{ID: "a1", QuizID: "quiz-1", UserID: "stu-1", Responses: []assess.Response{{QuestionID: "q1", Correct: true}}},
		{ID: "a2", QuizID: "exam-1", UserID: "stu-1", Responses: []assess.Response{{QuestionID: "q2", Correct: false}}},
		{ID: "a3", QuizID: "quiz-2", UserID: "stu-1", Responses: []assess.Response{{QuestionID: "q1", Correct: true}}},
		{ID: "a4", QuizID: "quiz-1", UserID: "stu-2", Responses: []assess.Response{{QuestionID: "q1", Correct: false}}},
	} {
		if err := store.PutAttempt(ctx, a); err != nil {
			t.Fatalf("put attempt %s: %v", a.ID, err)
		}
	}

	// course scoped: quiz and exam attempts pool together, other courses and
	// other users excluded
	got, err := store.ListResponses(ctx, assess.ResponseListOpts{UserID: "stu-1", CourseID: "course-1"})
	if err != nil {
		t.Fatalf("list responses: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected quiz+exam responses for course-1, got %+v", got)
	}

	// unscoped: every course for the user
	all, err := store.ListResponses(ctx, assess.ResponseListOpts{UserID: "stu-1"})
	if err != nil {
		t.Fatalf("list responses: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 responses across courses, got %+v", all)
	}
}

func TestPutAttempt_IgnoresDuplicateID(t *testing.T) {
	ctx := context.Background()
	store := assess.NewInMemoryStore()
	seedQuiz(t, store, "quiz-1", "course-1", assess.KindQuiz)

	a := assess.Attempt{
		ID: "a1", QuizID: "quiz-1", UserID: "stu-1",
		Responses: []assess.Response{{QuestionID: "q1", Correct: true}},
	}
	if err := store.PutAttempt(ctx, a); err != nil {
		t.Fatalf("put attempt: %v", err)
	}
	if err := store.PutAttempt(ctx, a); err != nil {
		t.Fatalf("replayed put attempt: %v", err)
	}

	got, _ := store.ListResponses(ctx, assess.ResponseListOpts{UserID: "stu-1"})
	if len(got) != 1 {
		t.Fatalf("replayed attempt must not double-count, got %+v", got)
	}
}
