package assess

type Kind string

// Assessment kinds pooled together by the topic aggregator.
const (
	KindQuiz Kind = "quiz"
	KindExam Kind = "exam"
)

type Question struct {
	ID     string `json:"id"`
	Prompt string `json:"prompt,omitempty"`
	Topic  string `json:"topic,omitempty"` // free-text label; empty falls into the "general" bucket
}

type Quiz struct {
	ID        string     `json:"id"`
	CourseID  string     `json:"course_id"`
	Title     string     `json:"title"`
	Kind      Kind       `json:"kind"` // quiz|exam
	Questions []Question `json:"questions"`
	CreatedAt int64      `json:"created_at,omitempty"`
}

type Response struct {
	QuestionID     string `json:"question_id"`
	ChosenAnswerID string `json:"chosen_answer_id,omitempty"`
	Correct        bool   `json:"is_correct"`
}

// Attempt is immutable once ingested; this core only reads it.
type Attempt struct {
	ID          string     `json:"id"`
	QuizID      string     `json:"quiz_id"`
	UserID      string     `json:"user_id"`
	Responses   []Response `json:"responses"`
	SubmittedAt int64      `json:"submitted_at"`
}

// GradedResponse is a response joined with its owning question's topic.
// Responses whose question no longer exists are dropped at the join.
type GradedResponse struct {
	QuestionID string
	Topic      string
	Correct    bool
}
