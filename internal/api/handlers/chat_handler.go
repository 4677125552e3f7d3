package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pad2skills/backend/internal/api/middleware"
	"github.com/pad2skills/backend/internal/application/services"
	"github.com/pad2skills/backend/internal/domain/entities"
)

// ChatHandler serves the scripted assistant: submitting questions and
// listing the preset pills per page context.
type ChatHandler struct {
	sessions *services.SessionService
	chat     *services.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(sessions *services.SessionService, chat *services.ChatService) *ChatHandler {
	return &ChatHandler{
		sessions: sessions,
		chat:     chat,
	}
}

type submitChatRequest struct {
	Text     string `json:"text"`
	Context  string `json:"context"`
	PresetID string `json:"preset_id"`
}

// SubmitChat handles POST /api/chat
func (h *ChatHandler) SubmitChat(w http.ResponseWriter, r *http.Request) {
	var req submitChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.sessions.SubmitChat(
		r.Context(),
		middleware.SessionIDFromContext(r.Context()),
		req.Text,
		req.PresetID,
		entities.PageContext(req.Context),
	)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// ListPresets handles GET /api/chat/presets. Without a context query
// parameter every preset is returned.
func (h *ChatHandler) ListPresets(w http.ResponseWriter, r *http.Request) {
	pageCtx := entities.PageContext(r.URL.Query().Get("context"))
	if pageCtx != "" && !pageCtx.IsValid() {
		respondWithError(w, http.StatusBadRequest, "unknown page context: "+string(pageCtx))
		return
	}

	presets := h.chat.Presets(pageCtx)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"greeting": entities.ChatGreeting,
		"presets":  presets,
		"count":    len(presets),
	})
}
