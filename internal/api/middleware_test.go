package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/knowhub/sectiond/internal/section"
	"github.com/knowhub/sectiond/internal/store"
)

func authHandler(apiKey string) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return AuthMiddleware(apiKey, log)(next)
}

func TestAuthMiddleware_ValidKey(t *testing.T) {
	h := authHandler("secret-key")
	req := httptest.NewRequest("GET", "/api/pages", nil)
	req.Header.Set("Authorization", "Bearer secret-key")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	h := authHandler("secret-key")
	req := httptest.NewRequest("GET", "/api/pages", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_WrongKey(t *testing.T) {
	h := authHandler("secret-key")
	req := httptest.NewRequest("GET", "/api/pages", nil)
	req.Header.Set("Authorization", "Bearer wrong-key")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{store.ErrNotFound, http.StatusNotFound},
		{section.ErrNoHeading, http.StatusUnprocessableEntity},
		{&section.MalformedTreeError{Reason: "x"}, http.StatusUnprocessableEntity},
		{errors.New("db exploded"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := errorStatus(tt.err); got != tt.want {
			t.Errorf("errorStatus(%v): expected %d, got %d", tt.err, tt.want, got)
		}
	}
}
