package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bcare-id/bcare/internal/chat"
	"github.com/bcare-id/bcare/internal/domain"
)

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// Chat handles one conversational turn. A missing session id starts a new
// conversation under a fresh id.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		Error(w, http.StatusBadRequest, "Message is required")
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	JSON(w, http.StatusOK, h.chat.Process(r.Context(), sessionID, message))
}

type chatSessionResponse struct {
	SessionID     string               `json:"session_id"`
	CreatedAt     string               `json:"created_at"`
	CurrentStep   string               `json:"current_step"`
	CollectedInfo domain.CollectedInfo `json:"collected_info"`
	IsComplete    bool                 `json:"is_complete"`
	MessageCount  int                  `json:"message_count"`
	Confidence    float64              `json:"confidence"`
}

// ChatSession returns a read-only snapshot of a conversation.
func (h *Handler) ChatSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Get(chi.URLParam(r, "session_id"))
	if err != nil {
		Error(w, http.StatusNotFound, "Session not found")
		return
	}

	JSON(w, http.StatusOK, chatSessionResponse{
		SessionID:     sess.ID,
		CreatedAt:     sess.CreatedAt.Format("2006-01-02T15:04:05.000Z07:00"),
		CurrentStep:   string(sess.CurrentStep),
		CollectedInfo: sess.Collected,
		IsComplete:    sess.IsComplete,
		MessageCount:  len(sess.Messages),
		Confidence:    chat.Confidence(sess.Collected),
	})
}
