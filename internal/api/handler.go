// Package api provides HTTP handlers for the B-Care API.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bcare-id/bcare/internal/chat"
	"github.com/bcare-id/bcare/internal/domain"
	"github.com/bcare-id/bcare/internal/sla"
	"github.com/bcare-id/bcare/internal/store"
)

// Extractor is the slice of the model client the extraction endpoints need.
type Extractor interface {
	ExtractJSON(ctx context.Context, text string) (domain.CollectedInfo, error)
}

// Handler provides common handler utilities.
type Handler struct {
	chat      *chat.Service
	sessions  store.Store
	states    *store.ClarifyStore
	extractor Extractor
	sla       *sla.Index
	modelName string
}

// NewHandler creates a new Handler with common dependencies.
func NewHandler(chatSvc *chat.Service, sessions store.Store, states *store.ClarifyStore, extractor Extractor, slaIndex *sla.Index, modelName string) *Handler {
	return &Handler{
		chat:      chatSvc,
		sessions:  sessions,
		states:    states,
		extractor: extractor,
		sla:       slaIndex,
		modelName: modelName,
	}
}

// Routes registers all API endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/healthz", h.Health)
	r.Post("/chat", h.Chat)
	r.Get("/chat/{session_id}", h.ChatSession)
	r.Post("/chat/extract", h.ChatExtract)
	r.Post("/extract", h.Extract)
	r.Post("/clarify", h.Clarify)
	r.Get("/faq", h.FAQ)
	r.Get("/sla", h.SLA)
}

// Health reports service liveness and the configured model.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"status": "ok", "model": h.modelName})
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
