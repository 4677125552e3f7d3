package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pad2skills/backend/internal/api/middleware"
	"github.com/pad2skills/backend/internal/application/services"
	"github.com/pad2skills/backend/internal/domain/entities"
)

// SessionHandler serves the stateful session endpoints: reading the
// current view, changing filters, and paging the detail tables.
type SessionHandler struct {
	sessions *services.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *services.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type updateFilterRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type navigatePageRequest struct {
	Direction string `json:"direction"`
}

// GetSession handles GET /api/session
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessions.View(r.Context(), middleware.SessionIDFromContext(r.Context()))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// EndSession handles DELETE /api/session
func (h *SessionHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.EndSession(r.Context(), middleware.SessionIDFromContext(r.Context())); err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateFilter handles POST /api/session/filters
func (h *SessionHandler) UpdateFilter(w http.ResponseWriter, r *http.Request) {
	var req updateFilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Field == "" {
		respondWithError(w, http.StatusBadRequest, "field is required")
		return
	}

	view, err := h.sessions.UpdateFilter(r.Context(), middleware.SessionIDFromContext(r.Context()), req.Field, req.Value)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// NavigatePage handles POST /api/session/tables/{table}/page
func (h *SessionHandler) NavigatePage(w http.ResponseWriter, r *http.Request) {
	table := entities.TableID(r.PathValue("table"))

	var req navigatePageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	page, err := h.sessions.NavigatePage(r.Context(), middleware.SessionIDFromContext(r.Context()), table, req.Direction)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, page)
}
