package chat

import "github.com/bcare-id/bcare/internal/domain"

// RequiredFields is the field set that must be collected before the
// confirmation step. The legacy five-field variant (name and account) is
// superseded and intentionally not supported.
var RequiredFields = []string{"channel", "category", "description"}

// NextStep recomputes the conversation step from field completeness alone.
// It is a pure function: the same collected fields always produce the same
// step, independent of history. That property is what makes corrections
// work — nulling one field loops the flow back to the right question with
// no extra bookkeeping.
func NextStep(collected domain.CollectedInfo, messageCount int) domain.Step {
	if messageCount <= 2 {
		return domain.StepGreeting
	}
	if collected.Channel == "" {
		return domain.StepAskingChannel
	}
	if collected.Category == "" {
		return domain.StepAskingCategory
	}
	if collected.Description == "" {
		return domain.StepAskingDescription
	}
	return domain.StepReadyForConfirmation
}

// Confidence is the linear completeness score over the required fields,
// scaled to [0, 0.9] with a +0.1 bonus when everything is present. It is a
// completeness metric, not a calibrated model confidence.
func Confidence(collected domain.CollectedInfo) float64 {
	filled := 0
	for _, v := range []domain.NullableString{collected.Channel, collected.Category, collected.Description} {
		if v != "" {
			filled++
		}
	}

	base := float64(filled) / float64(len(RequiredFields)) * 0.9
	if filled == len(RequiredFields) {
		base += 0.1
	}
	if base < 0 {
		return 0
	}
	if base > 1 {
		return 1
	}
	return base
}
