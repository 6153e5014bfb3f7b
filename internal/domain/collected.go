package domain

import "encoding/json"

// NullableString marshals the empty string as JSON null, matching the wire
// contract where unset complaint fields are null rather than "".
type NullableString string

// MarshalJSON implements json.Marshaler.
func (s NullableString) MarshalJSON() ([]byte, error) {
	if s == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(s))
}

// UnmarshalJSON implements json.Unmarshaler. JSON null decodes to "".
func (s *NullableString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = NullableString(v)
	return nil
}

// Priority levels for a complaint.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Preferred contact channels.
const (
	ContactCall = "call"
	ContactChat = "chat"
)

// CollectedInfo is the fixed set of complaint attributes gathered during a
// conversation. It doubles as the model extraction payload: the JSON keys
// match the schema the extraction prompt asks the model to emit.
//
// Empty string means "not collected yet". Fields only move from empty to a
// value, or value to value on correction; the correction flow is the only
// place that clears one.
type CollectedInfo struct {
	FullName          NullableString `json:"full_name"`
	AccountNumber     NullableString `json:"account_number"`
	Channel           NullableString `json:"channel"`
	Category          NullableString `json:"category"`
	Subcategory       NullableString `json:"subcategory"`
	Description       NullableString `json:"description"`
	AIDescription     NullableString `json:"ai_generated_description"`
	PreferredContact  NullableString `json:"preferred_contact"`
	StandbyCallWindow NullableString `json:"standby_call_window"`
	Priority          string         `json:"priority"`
	Attachments       []string       `json:"attachments,omitempty"`
}

// NewCollectedInfo returns the default field set for a fresh session:
// chat contact preference and Medium priority, everything else unset.
func NewCollectedInfo() CollectedInfo {
	return CollectedInfo{
		PreferredContact: ContactChat,
		Priority:         PriorityMedium,
	}
}

// Merge overlays non-empty fields of other onto c. This is a sparse overlay:
// empty values in other never clear values already collected.
func (c *CollectedInfo) Merge(other CollectedInfo) {
	merge := func(dst *NullableString, src NullableString) {
		if src != "" {
			*dst = src
		}
	}
	merge(&c.FullName, other.FullName)
	merge(&c.AccountNumber, other.AccountNumber)
	merge(&c.Channel, other.Channel)
	merge(&c.Category, other.Category)
	merge(&c.Subcategory, other.Subcategory)
	merge(&c.Description, other.Description)
	merge(&c.AIDescription, other.AIDescription)
	merge(&c.PreferredContact, other.PreferredContact)
	merge(&c.StandbyCallWindow, other.StandbyCallWindow)
	if other.Priority != "" {
		c.Priority = other.Priority
	}
	if len(other.Attachments) > 0 {
		c.Attachments = other.Attachments
	}
}

// Summary is the condensed Indonesian-keyed view of the collected fields
// returned by the extraction endpoints.
type Summary struct {
	Nama       NullableString `json:"nama"`
	NoRekening NullableString `json:"no_rekening"`
	Channel    NullableString `json:"channel"`
	Kategori   NullableString `json:"kategori"`
	Deskripsi  NullableString `json:"deskripsi"`
}

// Summarize builds the Indonesian-keyed summary of c.
func (c CollectedInfo) Summarize() Summary {
	return Summary{
		Nama:       c.FullName,
		NoRekening: c.AccountNumber,
		Channel:    c.Channel,
		Kategori:   c.Category,
		Deskripsi:  c.Description,
	}
}

// FilledCount reports how many summary fields are set.
func (s Summary) FilledCount() int {
	n := 0
	for _, v := range []NullableString{s.Nama, s.NoRekening, s.Channel, s.Kategori, s.Deskripsi} {
		if v != "" {
			n++
		}
	}
	return n
}
