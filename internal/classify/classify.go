// Package classify implements the keyword heuristics that correct model
// output for banking vocabulary: category buckets, priority escalation and
// standby-window normalization.
package classify

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bcare-id/bcare/internal/domain"
)

// Category buckets are tested in a fixed priority order: credit card first,
// then giro, then savings. The first bucket that matches wins.
var (
	kreditKeys = compileAll(
		`\bkartu\s*kredit\b`, `\bcc\b`, `\blimit\b`,
		`\bcicilan\b`, `\bcharge\s*back\b`, `\bchargeback\b`,
		`\brefund\s*merchant\b`, `\btagihan\b`,
	)
	giroKeys = compileAll(
		`\bgiro\b`, `\bbilyet\s*giro\b`, `\bbg\b`,
		`\bcek\b`, `\binkaso\b`, `\bkliring\b`,
	)
	tabunganKeys = compileAll(
		`\bkartu\s*debit\b`, `\bdebit\b`, `\batm\b`,
		`\btarik\b`, `\bsetor\b`, `\bbuku\s*tabungan\b`, `\bsaldo\b`,
	)

	// "rekening" counts for the savings bucket unless it is "rekening
	// kredit". The original rule used a negative lookahead, which RE2 does
	// not support, so the exclusion is explicit here.
	reRekening       = regexp.MustCompile(`(?i)\brekening\b`)
	reRekeningKredit = regexp.MustCompile(`(?i)\brekening\s*kredit\b`)

	prioHigh = compileAll(
		`\bhilang\b`, `\bdicuri\b`, `\bfraud\b`,
		`\btidak\s*kenal(i)?\b`, `\btidak\s*dikenal(i)?\b`,
		`\bakses\s*(tidak\s*sah|ilegal)\b`,
	)

	tabunganSubrules = []struct {
		re  *regexp.Regexp
		sub string
	}{
		{regexp.MustCompile(`(?i)tertelan`), "Kartu debit tertelan"},
		{regexp.MustCompile(`(?i)hilang`), "Kartu debit hilang"},
		{regexp.MustCompile(`(?i)tarik.*gagal|gagal.*tarik`), "Tarik tunai gagal"},
		{regexp.MustCompile(`(?i)pin.*blok|blok.*pin`), "PIN terblokir"},
	}

	reTimeWindow = regexp.MustCompile(`^(\d{1,2})(?::?(\d{2}))?-(\d{1,2})(?::?(\d{2}))?$`)
)

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(`(?i)` + p)
	}
	return out
}

func matchAny(text string, res []*regexp.Regexp) bool {
	for _, re := range res {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// InferCategory maps free text to one of the three heuristic category
// buckets, plus a savings sub-reason when one applies. No match returns
// empty strings: the heuristics never guess.
func InferCategory(text string) (category, subcategory string) {
	t := strings.ToLower(text)
	if matchAny(t, kreditKeys) {
		return "Kartu Kredit", ""
	}
	if matchAny(t, giroKeys) {
		return "Giro", ""
	}
	if matchAny(t, tabunganKeys) || (reRekening.MatchString(t) && !reRekeningKredit.MatchString(t)) {
		for _, r := range tabunganSubrules {
			if r.re.MatchString(t) {
				return "Tabungan", r.sub
			}
		}
		return "Tabungan", ""
	}
	return "", ""
}

// InferPriority escalates to High on loss/fraud vocabulary, otherwise keeps
// a valid current priority and defaults Medium. It never lowers an existing
// valid priority.
func InferPriority(text, current string) string {
	if matchAny(text, prioHigh) {
		return domain.PriorityHigh
	}
	switch current {
	case domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh:
		return current
	}
	return domain.PriorityMedium
}

// NormalizeTimeWindow cleans a free-text time range like "13-15" or
// "13.30-15.45" into "HH:MM-HH:MM". It is best-effort: input that does not
// match the range pattern, or carries out-of-range components, comes back
// as the cleaned string unchanged. Feeding its own output back in is a
// no-op.
func NormalizeTimeWindow(s string) string {
	if s == "" {
		return ""
	}
	v := strings.TrimSpace(s)
	v = strings.Join(strings.Fields(v), "")
	v = strings.ReplaceAll(v, ".", ":")
	v = strings.ReplaceAll(v, "–", "-") // en dash
	v = strings.ReplaceAll(v, "—", "-") // em dash

	m := reTimeWindow.FindStringSubmatch(v)
	if m == nil {
		return v
	}
	h1, _ := strconv.Atoi(m[1])
	h2, _ := strconv.Atoi(m[3])
	m1, m2 := 0, 0
	if m[2] != "" {
		m1, _ = strconv.Atoi(m[2])
	}
	if m[4] != "" {
		m2, _ = strconv.Atoi(m[4])
	}
	if h1 > 23 || h2 > 23 || m1 > 59 || m2 > 59 {
		return v
	}
	return fmt.Sprintf("%02d:%02d-%02d:%02d", h1, m1, h2, m2)
}

// SemanticAutocorrect overlays the heuristics on a model-produced payload.
// The heuristic category wins over the model's whenever it is confident;
// priority and the standby window are always recomputed. This exists to
// correct systematic model misclassification of banking terms.
func SemanticAutocorrect(payload domain.CollectedInfo, originalText string) domain.CollectedInfo {
	out := payload

	category, subcategory := InferCategory(originalText)
	if category != "" && string(out.Category) != category {
		out.Category = domain.NullableString(category)
	}
	if out.Subcategory == "" && subcategory != "" {
		out.Subcategory = domain.NullableString(subcategory)
	}

	out.Priority = InferPriority(originalText, out.Priority)
	out.StandbyCallWindow = domain.NullableString(NormalizeTimeWindow(string(out.StandbyCallWindow)))

	return out
}
