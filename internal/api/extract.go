package api

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/bcare-id/bcare/internal/chat"
	"github.com/bcare-id/bcare/internal/classify"
	"github.com/bcare-id/bcare/internal/domain"
)

type extractRequest struct {
	Text string `json:"text"`
}

type extractResponse struct {
	Valid            bool                 `json:"valid"`
	Message          string               `json:"message"`
	Confidence       float64              `json:"confidence"`
	Extracted        domain.CollectedInfo `json:"extracted"`
	Summary          domain.Summary       `json:"summary"`
	ExtractionMethod string               `json:"extraction_method,omitempty"`
	StateID          string               `json:"state_id,omitempty"`
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// ChatExtract runs one-shot extraction over a standalone text, outside any
// conversation.
func (h *Handler) ChatExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		Error(w, http.StatusBadRequest, "Text is required")
		return
	}

	extracted, err := h.extractor.ExtractJSON(r.Context(), text)
	if err != nil {
		slog.Error("one-shot extraction failed", "error", err)
		JSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "internal_error",
			"detail":  "Terjadi kesalahan pada ekstraksi informasi.",
			"message": "Maaf, terjadi kesalahan saat memproses informasi Anda.",
		})
		return
	}
	extracted = classify.SemanticAutocorrect(extracted, text)

	valid, _ := chat.Validate(extracted)
	message := "Data belum lengkap/valid."
	if valid {
		message = "Informasi berhasil diekstrak"
	}

	JSON(w, http.StatusOK, extractResponse{
		Valid:            valid,
		Message:          message,
		Confidence:       round2(chat.Confidence(extracted)),
		Extracted:        extracted,
		Summary:          extracted.Summarize(),
		ExtractionMethod: "one_shot",
	})
}

// Extract is the legacy single-extraction endpoint. When the extracted
// payload does not validate, the payload is parked under a state id so the
// caller can complete it via Clarify.
func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		Error(w, http.StatusBadRequest, "text kosong")
		return
	}

	extracted, err := h.extractor.ExtractJSON(r.Context(), text)
	if err != nil {
		slog.Error("legacy extraction failed", "error", err)
		JSON(w, http.StatusInternalServerError, map[string]string{
			"error":  "internal_error",
			"detail": err.Error(),
		})
		return
	}
	extracted = classify.SemanticAutocorrect(extracted, text)

	valid, _ := chat.Validate(extracted)
	resp := extractResponse{
		Valid:      valid,
		Message:    "ok",
		Confidence: round2(chat.Confidence(extracted)),
		Extracted:  extracted,
		Summary:    extracted.Summarize(),
	}
	if !valid {
		resp.Message = "Data belum lengkap/valid."
		resp.StateID = uuid.NewString()
		h.states.Put(resp.StateID, extracted)
	}

	JSON(w, http.StatusOK, resp)
}

type clarifyRequest struct {
	StateID string          `json:"state_id"`
	Answers json.RawMessage `json:"answers"`
}

// Clarify merges follow-up answers into a parked extraction and re-validates.
// The state id is consumed whether or not the merge validates.
func (h *Handler) Clarify(w http.ResponseWriter, r *http.Request) {
	var req clarifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	merged, ok := domain.CollectedInfo{}, false
	if req.StateID != "" {
		merged, ok = h.states.Take(req.StateID)
	}
	if !ok {
		JSON(w, http.StatusBadRequest, map[string]string{
			"error":  "invalid_state",
			"detail": "state_id tidak ditemukan atau sudah kadaluarsa.",
		})
		return
	}

	var answers domain.CollectedInfo
	if len(req.Answers) > 0 {
		if err := json.Unmarshal(req.Answers, &answers); err != nil {
			Error(w, http.StatusBadRequest, "invalid answers")
			return
		}
	}
	merged.Merge(answers)

	merged.StandbyCallWindow = domain.NullableString(classify.NormalizeTimeWindow(string(merged.StandbyCallWindow)))
	merged.Priority = classify.InferPriority(string(req.Answers), merged.Priority)

	valid, _ := chat.Validate(merged)
	message := "Data belum lengkap/valid."
	if valid {
		message = "ok"
	}

	JSON(w, http.StatusOK, extractResponse{
		Valid:      valid,
		Message:    message,
		Confidence: round2(chat.Confidence(merged)),
		Extracted:  merged,
		Summary:    merged.Summarize(),
	})
}
