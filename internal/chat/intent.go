package chat

import "strings"

// Intent detection is substring sniffing by design: it is the contract the
// frontend was built against, fragile as it is. The keyword lists are pinned
// here so tests can hold them in place, and correction intent is always
// checked before confirm intent — "ada yang perlu diperbaiki" contains "ya"
// and must never read as a confirmation.

var correctionKeywords = []string{
	"ada yang perlu diperbaiki",
	"perlu diperbaiki",
	"tidak benar",
	"salah",
	"perbaiki",
}

var confirmKeywords = []string{
	"ya",
	"benar",
	"setuju",
	"data sudah benar",
}

func isCorrectionIntent(message string) bool {
	lower := strings.ToLower(strings.TrimSpace(message))
	for _, kw := range correctionKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func isConfirmIntent(message string) bool {
	lower := strings.ToLower(strings.TrimSpace(message))
	for _, kw := range confirmKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// correctionTarget maps a correction reply to the field the user wants to
// redo. Empty means the user did not name a recognizable field.
func correctionTarget(message string) string {
	lower := strings.ToLower(strings.TrimSpace(message))
	switch {
	case strings.Contains(lower, "channel") || strings.Contains(lower, "saluran"):
		return "channel"
	case strings.Contains(lower, "kategori") || strings.Contains(lower, "category"):
		return "category"
	case strings.Contains(lower, "deskripsi") || strings.Contains(lower, "description"):
		return "description"
	}
	return ""
}
