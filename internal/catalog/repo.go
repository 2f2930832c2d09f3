package catalog

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("course not found")

type CourseListOpts struct {
	Category string // filter: course carries this category
	Level    string // filter: exact level
	Limit    int
	Offset   int
}

// Store is the catalog read surface the recommendation and path engines
// consume, plus the seeding writes the import API uses.
type Store interface {
	PutCourse(ctx context.Context, c Course) error
	GetCourse(ctx context.Context, id string) (Course, error)
	ListCourses(ctx context.Context, opts CourseListOpts) ([]Course, error)

	ListLessons(ctx context.Context, courseID string) ([]Lesson, error)
	ListContentBlocks(ctx context.Context, lessonID string) ([]ContentBlock, error)
	// ListCourseContentBlocks returns every block in the course, in lesson
	// then block order. Used by the content scorer.
	ListCourseContentBlocks(ctx context.Context, courseID string) ([]ContentBlock, error)

	EnrolledCourseIDs(ctx context.Context, studentID string) (map[string]bool, error)
	Enroll(ctx context.Context, courseID, studentID string) error
}
