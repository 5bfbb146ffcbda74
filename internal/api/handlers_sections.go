package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/knowhub/sectiond/internal/richtext"
	"github.com/knowhub/sectiond/internal/store"
)

// handleGetSection fetches one section record.
func (s *Server) handleGetSection(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "sectionID"))
	if err != nil {
		jsonError(w, "invalid section id", http.StatusBadRequest)
		return
	}
	rec, err := s.store.SectionByID(r.Context(), id)
	if err != nil {
		jsonError(w, err.Error(), errorStatus(err))
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

// handleGetChildren lists a section's direct children in document order.
func (s *Server) handleGetChildren(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "sectionID"))
	if err != nil {
		jsonError(w, "invalid section id", http.StatusBadRequest)
		return
	}
	children, err := s.store.ChildSections(r.Context(), id)
	if err != nil {
		jsonError(w, err.Error(), errorStatus(err))
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"sections": children})
}

// handleSectionRichText renders a section body as rich text blocks, the
// shape chat clients edit.
func (s *Server) handleSectionRichText(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "sectionID"))
	if err != nil {
		jsonError(w, "invalid section id", http.StatusBadRequest)
		return
	}
	rec, err := s.store.SectionByID(r.Context(), id)
	if err != nil {
		jsonError(w, err.Error(), errorStatus(err))
		return
	}
	block, err := richtext.FromMarkdown(rec.Text)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	block.BlockID = "section_body"
	respondJSON(w, http.StatusOK, map[string]any{"block": block})
}

type insertSectionRequest struct {
	ParentID string `json:"parent_id"`
	Position int    `json:"position"`
	Heading  string `json:"heading"`

	// Exactly one body representation is accepted. A rich text body is
	// converted to Markdown before persisting.
	BodyMarkdown string          `json:"body_markdown,omitempty"`
	BodyRichText *richtext.Block `json:"body_richtext,omitempty"`
}

// handleInsertSection splices a user-authored section into a stored page.
func (s *Server) handleInsertSection(w http.ResponseWriter, r *http.Request) {
	pageID, err := uuid.Parse(chi.URLParam(r, "pageID"))
	if err != nil {
		jsonError(w, "invalid page id", http.StatusBadRequest)
		return
	}

	var req insertSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	parentID, err := uuid.Parse(req.ParentID)
	if err != nil {
		jsonError(w, "invalid parent id", http.StatusBadRequest)
		return
	}
	if req.Heading == "" {
		jsonError(w, "heading is required", http.StatusBadRequest)
		return
	}
	if req.BodyMarkdown != "" && req.BodyRichText != nil {
		jsonError(w, "body_markdown and body_richtext are mutually exclusive", http.StatusBadRequest)
		return
	}

	body := req.BodyMarkdown
	if req.BodyRichText != nil {
		body, err = richtext.ToMarkdown(*req.BodyRichText)
		if err != nil {
			var vErr *richtext.ValidationError
			if errors.As(err, &vErr) {
				jsonError(w, err.Error(), http.StatusBadRequest)
				return
			}
			jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	rec, err := s.store.InsertSection(r.Context(), pageID, store.InsertRequest{
		ParentID: parentID,
		Position: req.Position,
		Heading:  req.Heading,
		Text:     body,
	})
	if err != nil {
		jsonError(w, err.Error(), errorStatus(err))
		return
	}

	s.log.Info("section inserted", "page_id", pageID, "section_id", rec.ID, "pos", rec.Pos)
	respondJSON(w, http.StatusCreated, rec)
}
