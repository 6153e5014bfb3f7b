// Package domain defines the core types for the B-Care complaint assistant.
package domain

import "time"

// Role identifies the author of a transcript message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Step is the current position of a conversation in the intake flow.
//
// The flow is recomputed from field completeness on every turn, so a Step is
// a cached view, never an authority: see chat.NextStep.
type Step string

const (
	StepGreeting             Step = "greeting"
	StepAskingChannel        Step = "asking_channel"
	StepAskingCategory       Step = "asking_category"
	StepAskingDescription    Step = "asking_description"
	StepAskingCorrection     Step = "asking_correction"
	StepReadyForConfirmation Step = "ready_for_confirmation"
	StepCompleted            Step = "completed"

	// Legacy steps from the five-field intake variant. Only the simple
	// extractor still understands them.
	StepAskingName    Step = "asking_name"
	StepAskingAccount Step = "asking_account"
)

// Message is a single transcript entry. The transcript is append-only and
// insertion order drives the step computation.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is one ongoing conversation with a customer.
type Session struct {
	ID                string        `json:"id"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
	Messages          []Message     `json:"messages"`
	Collected         CollectedInfo `json:"collected_info"`
	CurrentStep       Step          `json:"current_step"`
	IsComplete        bool          `json:"is_complete"`
	NeedsConfirmation bool          `json:"needs_confirmation"`
}

// NewSession returns an empty session with the default collected fields.
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:          id,
		CreatedAt:   now,
		UpdatedAt:   now,
		Collected:   NewCollectedInfo(),
		CurrentStep: StepGreeting,
	}
}

// Append adds a message to the transcript and bumps the activity timestamp.
func (s *Session) Append(role Role, content string) {
	s.Messages = append(s.Messages, Message{Role: role, Content: content, Timestamp: time.Now()})
	s.UpdatedAt = time.Now()
}
