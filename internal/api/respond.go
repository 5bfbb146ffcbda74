package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/knowhub/sectiond/internal/section"
	"github.com/knowhub/sectiond/internal/store"
)

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// errorStatus maps domain errors onto HTTP statuses. Not-found propagates as
// 404; parsing and tree invariant violations are the client's input problem.
func errorStatus(err error) int {
	var treeErr *section.MalformedTreeError
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, section.ErrNoHeading), errors.As(err, &treeErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
