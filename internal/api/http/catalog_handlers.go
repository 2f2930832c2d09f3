package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	auth "github.com/edupath/edupath-backend/internal/auth/middleware"
	"github.com/edupath/edupath-backend/internal/catalog"
)

// POST /courses imports or replaces a full course document (lessons + blocks).
func ImportCourseHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c catalog.Course
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil || strings.TrimSpace(c.ID) == "" {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if c.Level == "" {
			c.Level = catalog.LevelBeginner
		}
		if err := store.PutCourse(r.Context(), c); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": c.ID})
	}
}

// GET /courses?category=&level=&limit=&offset=
func ListCoursesHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := store.ListCourses(r.Context(), catalog.CourseListOpts{
			Category: r.URL.Query().Get("category"),
			Level:    r.URL.Query().Get("level"),
			Limit:    intQuery(r, "limit"),
			Offset:   intQuery(r, "offset"),
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// POST /courses/{courseID}/enroll self-enrolls the caller.
func EnrollHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := auth.SubjectFromContext(r.Context())
		if sub == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		courseID := chi.URLParam(r, "courseID")
		if _, err := store.GetCourse(r.Context(), courseID); err != nil {
			writeErr(w, err)
			return
		}
		if err := store.Enroll(r.Context(), courseID, sub); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
