package assess

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("quiz not found")

type ResponseListOpts struct {
	UserID   string
	CourseID string // empty: across all courses
}

type Store interface {
	PutQuiz(ctx context.Context, q Quiz) error
	PutAttempt(ctx context.Context, a Attempt) error

	// ListResponses returns every graded response from the student's quiz and
	// exam attempts, optionally scoped to one course. Order follows attempt
	// submission order.
	ListResponses(ctx context.Context, opts ResponseListOpts) ([]GradedResponse, error)
}
