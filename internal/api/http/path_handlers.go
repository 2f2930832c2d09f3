package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	auth "github.com/edupath/edupath-backend/internal/auth/middleware"
	"github.com/edupath/edupath-backend/internal/path"
	"github.com/edupath/edupath-backend/internal/rbac"
)

// POST /courses/{courseID}/learning-path
func BuildPathHandler(b *path.Builder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := auth.SubjectFromContext(r.Context())
		if sub == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		courseID := chi.URLParam(r, "courseID")
		p, err := b.Build(r.Context(), sub, courseID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, p)
	}
}

// GET /learning-paths/{pathID}
func GetPathHandler(store path.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := auth.SubjectFromContext(r.Context())
		if sub == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		p, err := store.GetPath(r.Context(), chi.URLParam(r, "pathID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		// students may only read their own paths
		role := rbac.RoleFromContext(r.Context())
		if p.UserID != sub && role != "teacher" && role != "admin" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// GET /learning-paths returns the caller's active paths, newest first.
func ListMyPathsHandler(store path.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := auth.SubjectFromContext(r.Context())
		if sub == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		out, err := store.ListActiveByUser(r.Context(), sub)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}
