package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/edupath/edupath-backend/internal/assess"
)

// POST /quizzes upserts a quiz/exam definition with its tagged questions.
func PutQuizHandler(store assess.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q assess.Quiz
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil || strings.TrimSpace(q.ID) == "" || strings.TrimSpace(q.CourseID) == "" {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := store.PutQuiz(r.Context(), q); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": q.ID})
	}
}

// POST /attempts ingests a graded attempt from the assessment runtime.
func IngestAttemptHandler(store assess.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var a assess.Attempt
		if err := json.NewDecoder(r.Body).Decode(&a); err != nil || strings.TrimSpace(a.ID) == "" || strings.TrimSpace(a.QuizID) == "" {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := store.PutAttempt(r.Context(), a); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": a.ID})
	}
}
