package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/knowhub/sectiond/internal/ingest"
)

type createImportRequest struct {
	URL         string `json:"url"`
	Scope       string `json:"scope"`
	StartMarker string `json:"start_marker,omitempty"`
	EndMarker   string `json:"end_marker,omitempty"`
}

// handleCreateImport queues an asynchronous page import.
func (s *Server) handleCreateImport(w http.ResponseWriter, r *http.Request) {
	var req createImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Scope == "" {
		jsonError(w, "scope is required", http.StatusBadRequest)
		return
	}
	parsed, err := url.Parse(req.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		jsonError(w, "url must be an absolute http(s) URL", http.StatusBadRequest)
		return
	}

	job := ingest.NewJob(req.URL, req.Scope, strings.TrimSpace(req.StartMarker), strings.TrimSpace(req.EndMarker))
	if err := s.orchestrator.Enqueue(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	s.log.Info("import queued", "job_id", job.ID, "url", job.URL, "scope", job.Scope)
	respondJSON(w, http.StatusAccepted, job.Snapshot())
}

// handleImportStatus reports the state of an import job.
func (s *Server) handleImportStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.Job(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, job.Snapshot())
}
