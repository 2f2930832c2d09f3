package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	auth "github.com/edupath/edupath-backend/internal/auth/middleware"
	"github.com/edupath/edupath-backend/internal/engage"
)

// PUT /progress/{blockID}  { "percent": 0..100 }
func SaveProgressHandler(store engage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := auth.SubjectFromContext(r.Context())
		if sub == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		var req struct {
			Percent float64 `json:"percent"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := store.Upsert(r.Context(), sub, chi.URLParam(r, "blockID"), req.Percent); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
