package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/edupath/edupath-backend/internal/assess"
	"github.com/edupath/edupath-backend/internal/catalog"
	"github.com/edupath/edupath-backend/internal/path"
	"github.com/edupath/edupath-backend/internal/recommend"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr maps core error taxonomy to HTTP: missing entities are 404,
// missing analytics linkage is 422, everything else is a 500.
func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, path.ErrNotFound), errors.Is(err, assess.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, recommend.ErrNoAnalytics):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
