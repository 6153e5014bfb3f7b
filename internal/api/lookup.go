package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/bcare-id/bcare/internal/domain"
	"github.com/bcare-id/bcare/internal/faq"
)

type faqResponse struct {
	Answer          domain.NullableString `json:"answer"`
	MatchedKeywords []string              `json:"matched_keywords"`
	Hint            string                `json:"hint,omitempty"`
}

// FAQ answers a free-text question from the static FAQ list.
func (h *Handler) FAQ(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		Error(w, http.StatusBadRequest, "q kosong")
		return
	}

	hit := faq.Search(q)
	resp := faqResponse{
		Answer:          domain.NullableString(hit.Answer),
		MatchedKeywords: hit.Matched,
	}
	if hit.Answer == "" {
		resp.Hint = "Tidak ada jawaban di FAQ. Silakan hubungi agent."
	}
	JSON(w, http.StatusOK, resp)
}

const slaMaxLimit = 10

type slaRecord struct {
	Service     string `json:"service"`
	Channel     string `json:"channel"`
	Category    string `json:"category"`
	SLADays     string `json:"sla_days"`
	UIC         string `json:"uic"`
	Description string `json:"description"`
}

type slaResponse struct {
	Count    int                   `json:"count"`
	Query    string                `json:"query"`
	Category domain.NullableString `json:"category"`
	Results  []slaRecord           `json:"results"`
}

// SLA searches the resolution-time sheet.
func (h *Handler) SLA(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		Error(w, http.StatusBadRequest, "Parameter q (query) diperlukan")
		return
	}
	category := strings.TrimSpace(r.URL.Query().Get("category"))

	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	if limit > slaMaxLimit {
		limit = slaMaxLimit
	}

	results := h.sla.Search(q, category, limit)
	records := make([]slaRecord, len(results))
	for i, rec := range results {
		records[i] = slaRecord{
			Service:     rec.Service,
			Channel:     rec.Channel,
			Category:    rec.Category,
			SLADays:     rec.SLA,
			UIC:         rec.UIC,
			Description: rec.Keterangan,
		}
	}

	JSON(w, http.StatusOK, slaResponse{
		Count:    len(records),
		Query:    q,
		Category: domain.NullableString(category),
		Results:  records,
	})
}
