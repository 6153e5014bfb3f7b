// Package sla loads the complaint-resolution SLA sheet from CSV and answers
// free-text lookups against it.
package sla

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"sort"
	"strings"
)

// Record is one row of the SLA sheet. SLA is kept as the raw cell value; the
// sheet mixes plain day counts with ranges like "3-5".
type Record struct {
	No         string `json:"no"`
	Service    string `json:"service"`
	Channel    string `json:"channel"`
	Category   string `json:"category"`
	SLA        string `json:"sla"`
	UIC        string `json:"uic"`
	Keterangan string `json:"keterangan"`
}

// Index holds the loaded SLA sheet. A nil or empty index answers every search
// with no results.
type Index struct {
	records []Record
}

var reSpaces = regexp.MustCompile(`\s+`)

// Load reads the SLA sheet at path. A missing file is not an error: the
// service runs without SLA lookups and logs a warning.
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("SLA CSV not found, lookups disabled", "path", path)
			return &Index{}, nil
		}
		return nil, fmt.Errorf("open SLA CSV: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse SLA CSV: %w", err)
	}
	if len(rows) == 0 {
		return &Index{}, nil
	}

	col := make(map[string]int)
	for i, name := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	idx := &Index{}
	for _, row := range rows[1:] {
		rec := Record{
			No:         field(row, "no"),
			Service:    field(row, "service"),
			Channel:    field(row, "channel"),
			Category:   field(row, "category"),
			SLA:        field(row, "sla"),
			UIC:        field(row, "uic"),
			Keterangan: reSpaces.ReplaceAllString(field(row, "keterangan"), " "),
		}
		if rec.Service == "" && rec.Category == "" {
			continue
		}
		idx.records = append(idx.records, rec)
	}

	slog.Info("loaded SLA entries", "count", len(idx.records), "path", path)
	return idx, nil
}

// Len reports the number of loaded records.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.records)
}

var reToken = regexp.MustCompile(`[^a-z0-9]+`)

// score counts query-token hits across the searchable columns, with a boost
// when the record's category matches the preferred one.
func score(rec Record, tokens []string, preferredCategory string) int {
	haystack := strings.ToLower(rec.Service + " " + rec.Channel + " " + rec.Category + " " + rec.Keterangan)
	s := 0
	for _, tok := range tokens {
		if strings.Contains(haystack, tok) {
			s += 2
		}
	}
	if preferredCategory != "" &&
		strings.Contains(strings.ToLower(rec.Category), strings.ToLower(preferredCategory)) {
		s += 3
	}
	return s
}

// Search returns up to limit records matching the query, best score first.
// Tokens shorter than three characters are ignored.
func (x *Index) Search(query, preferredCategory string, limit int) []Record {
	if x.Len() == 0 || limit <= 0 {
		return nil
	}

	var tokens []string
	for _, tok := range reToken.Split(strings.ToLower(query), -1) {
		if len(tok) > 2 {
			tokens = append(tokens, tok)
		}
	}

	type scored struct {
		rec   Record
		score int
	}
	var hits []scored
	for _, rec := range x.records {
		if s := score(rec, tokens, preferredCategory); s > 0 {
			hits = append(hits, scored{rec, s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	if len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]Record, len(hits))
	for i, h := range hits {
		out[i] = h.rec
	}
	return out
}

// FormatHints renders search results as the note block appended to chat
// answers. Empty input yields an empty string.
func FormatHints(records []Record) string {
	if len(records) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Informasi SLA terkait:\n")
	for _, r := range records {
		fmt.Fprintf(&b, "- %s (%s) | %s | SLA: %s hari | %s | %s\n", r.Service, r.Channel, r.Category, r.SLA, r.UIC, r.Keterangan)
	}
	b.WriteString("\nCatatan: SLA adalah target waktu penyelesaian complaint dalam hari kerja.")
	return b.String()
}
