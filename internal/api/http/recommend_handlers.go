package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	auth "github.com/edupath/edupath-backend/internal/auth/middleware"
	"github.com/edupath/edupath-backend/internal/recommend"
)

// POST /recommendations/courses?category=&level=&limit=
func RecommendCoursesHandler(e *recommend.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := auth.SubjectFromContext(r.Context())
		if sub == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		opts := recommend.CourseOpts{
			Category: r.URL.Query().Get("category"),
			Level:    r.URL.Query().Get("level"),
			Limit:    intQuery(r, "limit"),
		}
		recs, err := e.RecommendCourses(r.Context(), sub, opts)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, recs)
	}
}

// POST /courses/{courseID}/recommendations/content?limit=
func RecommendContentHandler(e *recommend.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := auth.SubjectFromContext(r.Context())
		if sub == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		recs, err := e.RecommendContent(r.Context(), sub, chi.URLParam(r, "courseID"), intQuery(r, "limit"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, recs)
	}
}

// GET /recommendations?entity_type=&limit=
func ListRecommendationsHandler(store recommend.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := auth.SubjectFromContext(r.Context())
		if sub == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		out, err := store.ListByUser(r.Context(), recommend.ListOpts{
			UserID:     sub,
			EntityType: recommend.EntityType(r.URL.Query().Get("entity_type")),
			Limit:      intQuery(r, "limit"),
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func intQuery(r *http.Request, key string) int {
	if v, err := strconv.Atoi(r.URL.Query().Get(key)); err == nil && v > 0 {
		return v
	}
	return 0
}
