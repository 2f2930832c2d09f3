package assess

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) PutQuiz(ctx context.Context, q Quiz) error {
	qj, err := json.Marshal(q.Questions)
	if err != nil {
		return err
	}
	kind := q.Kind
	if kind != KindExam {
		kind = KindQuiz
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO quizzes (id,course_id,title,kind,questions_json,created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, kind=EXCLUDED.kind, questions_json=EXCLUDED.questions_json`,
		q.ID, q.CourseID, q.Title, string(kind), string(qj), time.Now().Unix())
	return err
}

func (s *SQLStore) PutAttempt(ctx context.Context, a Attempt) error {
	// attempts are append-only; re-ingesting the same id is a no-op
	rj, err := json.Marshal(a.Responses)
	if err != nil {
		return err
	}
	at := a.SubmittedAt
	if at == 0 {
		at = time.Now().Unix()
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO attempts (id,quiz_id,user_id,responses_json,submitted_at)
		VALUES ($1,$2,$3,$4,$5) ON CONFLICT (id) DO NOTHING`,
		a.ID, a.QuizID, a.UserID, string(rj), at)
	return err
}

func (s *SQLStore) ListResponses(ctx context.Context, opts ResponseListOpts) ([]GradedResponse, error) {
	sqlStr := `SELECT a.responses_json, q.questions_json
		  FROM attempts a
		  JOIN quizzes q ON q.id=a.quiz_id
		 WHERE a.user_id=$1`
	args := []any{opts.UserID}
	if opts.CourseID != "" {
		sqlStr += ` AND q.course_id=$2`
		args = append(args, opts.CourseID)
	}
	sqlStr += ` ORDER BY a.submitted_at, a.id`

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []GradedResponse{}
	for rows.Next() {
		var rjson, qjson string
		if err := rows.Scan(&rjson, &qjson); err != nil {
			return nil, err
		}
		var responses []Response
		var questions []Question
		if err := json.Unmarshal([]byte(rjson), &responses); err != nil {
			continue
		}
		if err := json.Unmarshal([]byte(qjson), &questions); err != nil {
			continue
		}
		out = append(out, joinResponses(responses, questions)...)
	}
	return out, rows.Err()
}

// joinResponses resolves each response's topic via its owning question.
// Responses with no matching question are skipped, not counted.
func joinResponses(responses []Response, questions []Question) []GradedResponse {
	topics := make(map[string]string, len(questions))
	for _, q := range questions {
		topics[q.ID] = q.Topic
	}
	out := make([]GradedResponse, 0, len(responses))
	for _, r := range responses {
		topic, ok := topics[r.QuestionID]
		if !ok {
			continue
		}
		out = append(out, GradedResponse{QuestionID: r.QuestionID, Topic: topic, Correct: r.Correct})
	}
	return out
}
