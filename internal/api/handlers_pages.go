package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/knowhub/sectiond/internal/layout"
	"github.com/knowhub/sectiond/internal/store"
)

// handleListPages lists pages (root sections) in a scope.
func (s *Server) handleListPages(w http.ResponseWriter, r *http.Request) {
	scope := r.URL.Query().Get("scope")
	if scope == "" {
		jsonError(w, "scope query parameter is required", http.StatusBadRequest)
		return
	}
	pages, err := s.store.PagesInScope(r.Context(), scope)
	if err != nil {
		jsonError(w, err.Error(), errorStatus(err))
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"pages": pages})
}

// handlePageLayout renders the current outline of a page.
func (s *Server) handlePageLayout(w http.ResponseWriter, r *http.Request) {
	pageID, err := uuid.Parse(chi.URLParam(r, "pageID"))
	if err != nil {
		jsonError(w, "invalid page id", http.StatusBadRequest)
		return
	}

	ordered, err := s.store.OrderedSectionsInPage(r.Context(), pageID)
	if err != nil {
		jsonError(w, err.Error(), errorStatus(err))
		return
	}

	block := layout.Outline("page_layout", store.Entries(ordered), layout.NoHighlight)
	respondJSON(w, http.StatusOK, map[string]any{"layout": block})
}

type previewRequest struct {
	ParentID string `json:"parent_id"`
	Position int    `json:"position"`
	Heading  string `json:"heading"`
}

// handlePreviewInsert shows where a new section would land, with the
// placeholder slot highlighted, without persisting anything.
func (s *Server) handlePreviewInsert(w http.ResponseWriter, r *http.Request) {
	pageID, err := uuid.Parse(chi.URLParam(r, "pageID"))
	if err != nil {
		jsonError(w, "invalid page id", http.StatusBadRequest)
		return
	}

	var req previewRequest
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

	ordered, err := s.store.OrderedSectionsInPage(r.Context(), pageID)
	if err != nil {
		jsonError(w, err.Error(), errorStatus(err))
		return
	}
	children, err := s.store.ChildSections(r.Context(), parentID)
	if err != nil {
		jsonError(w, err.Error(), errorStatus(err))
		return
	}
	childIDs := make([]string, len(children))
	for i, c := range children {
		childIDs[i] = c.ID.String()
	}

	block, idx, err := layout.PreviewInsert("insert_preview", store.Entries(ordered), req.ParentID, childIDs, req.Position, req.Heading)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"layout":          block,
		"insertion_index": idx,
		"positions":       layout.PositionOptions(store.Entries(children)),
	})
}
