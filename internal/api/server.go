package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/knowhub/sectiond/internal/config"
	"github.com/knowhub/sectiond/internal/ingest"
	"github.com/knowhub/sectiond/internal/store"
)

// Server is the HTTP API for sectiond.
type Server struct {
	router       chi.Router
	orchestrator *ingest.Orchestrator
	store        *store.Store
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *ingest.Orchestrator, st *store.Store, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		store:        st,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/imports", s.handleCreateImport)
		r.Get("/api/imports/{jobID}", s.handleImportStatus)

		r.Get("/api/pages", s.handleListPages)
		r.Get("/api/pages/{pageID}/layout", s.handlePageLayout)
		r.Post("/api/pages/{pageID}/preview", s.handlePreviewInsert)
		r.Post("/api/pages/{pageID}/sections", s.handleInsertSection)

		r.Get("/api/sections/{sectionID}", s.handleGetSection)
		r.Get("/api/sections/{sectionID}/children", s.handleGetChildren)
		r.Get("/api/sections/{sectionID}/richtext", s.handleSectionRichText)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
