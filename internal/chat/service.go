// Package chat implements the conversation state machine that walks a
// customer through the complaint intake: channel, category, description,
// then a confirmation/correction loop. The step is recomputed from field
// completeness on every turn rather than tracked in a transition table.
package chat

import (
	"context"
	"log/slog"
	"time"

	"github.com/bcare-id/bcare/internal/classify"
	"github.com/bcare-id/bcare/internal/domain"
	"github.com/bcare-id/bcare/internal/extract"
	"github.com/bcare-id/bcare/internal/lm"
	"github.com/bcare-id/bcare/internal/store"
)

// ModelClient is the slice of the model collaborator the state machine
// needs. internal/lm.Client satisfies it.
type ModelClient interface {
	ExtractJSON(ctx context.Context, text string) (domain.CollectedInfo, error)
	SummarizeDescription(ctx context.Context, messages []domain.Message, collected domain.CollectedInfo) string
}

// Reply is the envelope returned for every chat turn.
type Reply struct {
	SessionID         string               `json:"session_id"`
	Message           string               `json:"message"`
	Action            string               `json:"action"`
	NextQuestion      any                  `json:"next_question"`
	Suggestions       []string             `json:"suggestions"`
	CollectedInfo     domain.CollectedInfo `json:"collected_info"`
	IsComplete        bool                 `json:"is_complete"`
	Confidence        float64              `json:"confidence"`
	NeedsConfirmation *bool                `json:"needs_confirmation,omitempty"`
	ExtractionMethod  string               `json:"extraction_method,omitempty"`
	ExtractedSummary  *domain.Summary      `json:"extracted_summary,omitempty"`
}

// Service orchestrates chat turns over the session store and the model
// collaborator.
type Service struct {
	sessions store.Store
	model    ModelClient
	now      func() time.Time
}

// NewService wires the state machine to its collaborators.
func NewService(sessions store.Store, model ModelClient) *Service {
	return &Service{sessions: sessions, model: model, now: time.Now}
}

func boolPtr(b bool) *bool { return &b }

// Process handles one inbound user message for a session and returns the
// assistant's reply. Anything unexpected inside the turn degrades to a fixed
// apology with confidence zero; the session's collected data is preserved.
func (s *Service) Process(ctx context.Context, sessionID, userMessage string) (reply *Reply) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		sess = domain.NewSession(sessionID)
		if putErr := s.sessions.Put(sess); putErr != nil {
			slog.Error("failed to create session", "session_id", sessionID, "error", putErr)
		}
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("chat turn failed", "session_id", sessionID, "panic", r)
			reply = &Reply{
				SessionID:     sessionID,
				Message:       msgTechnicalDifficulty,
				Action:        "error",
				Suggestions:   []string{},
				CollectedInfo: sess.Collected,
				Confidence:    0,
			}
		}
	}()

	sess.Append(domain.RoleUser, userMessage)

	if len(sess.Messages) == 1 {
		return s.firstTurn(ctx, sess, userMessage)
	}

	if sess.CurrentStep == domain.StepAskingCorrection {
		return s.handleCorrection(sess, userMessage)
	}

	if sess.NeedsConfirmation {
		return s.handleConfirmation(sess, userMessage)
	}

	return s.collectTurn(ctx, sess, userMessage)
}

// firstTurn greets the customer — unless the opening message already reads
// like a complete complaint, in which case a single model pass tries to fill
// the whole form at once.
func (s *Service) firstTurn(ctx context.Context, sess *domain.Session, userMessage string) *Reply {
	if extract.LooksComplete(userMessage) {
		slog.Info("first message looks comprehensive, attempting one-shot extraction", "session_id", sess.ID)
		if reply := s.oneShot(ctx, sess, userMessage); reply != nil {
			return reply
		}
	}

	welcome := welcomeMessage(lm.TimeBasedGreeting(s.now()))
	sess.Append(domain.RoleAssistant, welcome)

	return &Reply{
		SessionID:     sess.ID,
		Message:       welcome,
		Action:        string(domain.StepAskingChannel),
		Suggestions:   Suggestions(domain.StepAskingChannel),
		CollectedInfo: sess.Collected,
		Confidence:    Confidence(sess.Collected),
	}
}

// oneShot runs model extraction on the opening message. It returns nil when
// extraction fails or fills too little, which sends the caller down the
// normal greeting path.
func (s *Service) oneShot(ctx context.Context, sess *domain.Session, userMessage string) *Reply {
	extracted, err := s.model.ExtractJSON(ctx, userMessage)
	if err != nil {
		slog.Warn("one-shot extraction failed", "session_id", sess.ID, "error", err)
		return nil
	}
	extracted = classify.SemanticAutocorrect(extracted, userMessage)

	summary := extracted.Summarize()
	filled := summary.FilledCount()
	if filled < 2 {
		slog.Info("one-shot extraction too sparse", "session_id", sess.ID, "filled", filled)
		return nil
	}

	sess.Collected.Merge(extracted)
	slog.Info("one-shot extraction merged", "session_id", sess.ID, "filled", filled)

	message := oneShotSummaryMessage(summary, filled)
	sess.Append(domain.RoleAssistant, message)

	var missing []string
	if summary.Channel == "" {
		missing = append(missing, "channel")
	}
	if summary.Kategori == "" {
		missing = append(missing, "kategori")
	}
	if summary.Deskripsi == "" {
		missing = append(missing, "deskripsi")
	}

	action := string(domain.StepReadyForConfirmation)
	suggestions := append([]string(nil), confirmationSuggestions...)
	if len(missing) > 0 {
		action = "asking_missing_info"
		for _, field := range missing {
			suggestions = append(suggestions, "Tambahkan "+field)
		}
	} else {
		sess.NeedsConfirmation = true
	}

	return &Reply{
		SessionID:        sess.ID,
		Message:          message,
		Action:           action,
		Suggestions:      suggestions,
		CollectedInfo:    sess.Collected,
		Confidence:       Confidence(sess.Collected),
		ExtractionMethod: "one_shot",
		ExtractedSummary: &summary,
	}
}

// handleCorrection runs before everything else once the user has asked for a
// correction, so the generic extractor can never misread the instruction as
// field data.
func (s *Service) handleCorrection(sess *domain.Session, userMessage string) *Reply {
	switch correctionTarget(userMessage) {
	case "channel":
		sess.Collected.Channel = ""
		return s.reAsk(sess, domain.StepAskingChannel, msgCorrectChannel)
	case "category":
		sess.Collected.Category = ""
		return s.reAsk(sess, domain.StepAskingCategory, msgCorrectCategory)
	case "description":
		sess.Collected.Description = ""
		sess.Collected.AIDescription = ""
		return s.reAsk(sess, domain.StepAskingDescription, msgCorrectDescription)
	}

	sess.Append(domain.RoleAssistant, msgCorrectionWhich)
	return &Reply{
		SessionID:         sess.ID,
		Message:           msgCorrectionWhich,
		Action:            string(domain.StepAskingCorrection),
		Suggestions:       Suggestions(domain.StepAskingCorrection),
		CollectedInfo:     sess.Collected,
		Confidence:        Confidence(sess.Collected),
		NeedsConfirmation: boolPtr(false),
	}
}

func (s *Service) reAsk(sess *domain.Session, step domain.Step, message string) *Reply {
	sess.CurrentStep = step
	sess.NeedsConfirmation = false
	sess.Append(domain.RoleAssistant, message)
	slog.Info("correction reset field, re-asking", "session_id", sess.ID, "step", step)

	return &Reply{
		SessionID:         sess.ID,
		Message:           message,
		Action:            string(step),
		Suggestions:       Suggestions(step),
		CollectedInfo:     sess.Collected,
		Confidence:        Confidence(sess.Collected),
		NeedsConfirmation: boolPtr(false),
	}
}

// handleConfirmation classifies the reply to the summary block. Correction
// intent is checked first: a correction request frequently contains
// confirmation substrings.
func (s *Service) handleConfirmation(sess *domain.Session, userMessage string) *Reply {
	switch {
	case isCorrectionIntent(userMessage):
		sess.NeedsConfirmation = false
		sess.CurrentStep = domain.StepAskingCorrection
		sess.Append(domain.RoleAssistant, msgAskCorrection)
		return &Reply{
			SessionID:         sess.ID,
			Message:           msgAskCorrection,
			Action:            string(domain.StepAskingCorrection),
			Suggestions:       Suggestions(domain.StepAskingCorrection),
			CollectedInfo:     sess.Collected,
			Confidence:        Confidence(sess.Collected),
			NeedsConfirmation: boolPtr(false),
		}

	case isConfirmIntent(userMessage):
		sess.IsComplete = true
		sess.NeedsConfirmation = false
		sess.CurrentStep = domain.StepCompleted
		if sess.Collected.AIDescription != "" {
			sess.Collected.Description = sess.Collected.AIDescription
			sess.Collected.AIDescription = ""
		}
		sess.Append(domain.RoleAssistant, msgCompleted)
		slog.Info("complaint confirmed and recorded", "session_id", sess.ID)
		return &Reply{
			SessionID:         sess.ID,
			Message:           msgCompleted,
			Action:            string(domain.StepCompleted),
			Suggestions:       []string{},
			CollectedInfo:     sess.Collected,
			IsComplete:        true,
			Confidence:        1.0,
			NeedsConfirmation: boolPtr(false),
		}
	}

	// Neither intent recognized: ask again, state unchanged.
	sess.Append(domain.RoleAssistant, msgAskConfirmation)
	return &Reply{
		SessionID:         sess.ID,
		Message:           msgAskConfirmation,
		Action:            string(domain.StepReadyForConfirmation),
		Suggestions:       Suggestions(domain.StepReadyForConfirmation),
		CollectedInfo:     sess.Collected,
		Confidence:        Confidence(sess.Collected),
		NeedsConfirmation: boolPtr(true),
	}
}

// collectTurn is the normal step-by-step path: extract from the message,
// merge, recompute the step and prompt for whatever is still missing.
func (s *Service) collectTurn(ctx context.Context, sess *domain.Session, userMessage string) *Reply {
	currentStep := NextStep(sess.Collected, len(sess.Messages))

	var extracted domain.CollectedInfo
	if currentStep == domain.StepAskingDescription && len(sess.Messages) > 2 {
		extracted = extract.DescriptionFromTranscript(sess.Messages)
	} else {
		extracted = extract.Simple(userMessage, currentStep)
	}
	sess.Collected.Merge(extracted)

	action := NextStep(sess.Collected, len(sess.Messages))
	sess.CurrentStep = action

	if action == domain.StepReadyForConfirmation && !sess.NeedsConfirmation {
		return s.startConfirmation(ctx, sess)
	}

	response := TemplateResponse(action, sess.Collected)
	sess.Append(domain.RoleAssistant, response)

	return &Reply{
		SessionID:     sess.ID,
		Message:       response,
		Action:        string(action),
		Suggestions:   Suggestions(action),
		CollectedInfo: sess.Collected,
		Confidence:    Confidence(sess.Collected),
	}
}

// startConfirmation fires once, on the first entry to
// ready_for_confirmation: the model summarizes the complaint, the summary is
// parked in a transient field until the user confirms, and the fixed
// confirmation block is rendered.
func (s *Service) startConfirmation(ctx context.Context, sess *domain.Session) *Reply {
	sess.NeedsConfirmation = true

	aiDescription := s.model.SummarizeDescription(ctx, sess.Messages, sess.Collected)
	sess.Collected.AIDescription = domain.NullableString(aiDescription)

	message := confirmationMessage(sess.Collected, aiDescription)
	sess.Append(domain.RoleAssistant, message)

	// The reply shows the AI summary in the description slot so the user
	// confirms what will actually be recorded.
	shown := sess.Collected
	shown.Description = domain.NullableString(aiDescription)

	return &Reply{
		SessionID:         sess.ID,
		Message:           message,
		Action:            string(domain.StepReadyForConfirmation),
		Suggestions:       Suggestions(domain.StepReadyForConfirmation),
		CollectedInfo:     shown,
		Confidence:        Confidence(sess.Collected),
		NeedsConfirmation: boolPtr(true),
	}
}
