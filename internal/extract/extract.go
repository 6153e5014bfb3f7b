// Package extract holds the deterministic, pattern-based field extraction
// used by the conversational flow. Nothing here performs I/O; the model-based
// extraction lives in internal/lm.
package extract

import (
	"regexp"
	"strings"

	"github.com/bcare-id/bcare/internal/domain"
)

var (
	reAccount      = regexp.MustCompile(`(\d{3}-\d{6}-\d{5}|\d{10,16})`)
	reAccountExact = regexp.MustCompile(`^\d{3}-\d{6}-\d{5}$|\d{10,16}$`)
	reBankingTerm  = regexp.MustCompile(`(?i)(mobile|internet|banking|atm|cabang|call center|sms)`)
	reLongDigits   = regexp.MustCompile(`\d{8,}`)
	rePersonalInfo = regexp.MustCompile(`(?i)\b(nama|saya|account|rekening|nomor)\b`)
	reBankingVocab = regexp.MustCompile(`(?i)\b(kartu kredit|mobile banking|internet banking|atm|transfer|gopay|tagihan|biometric|login|saldo|mutasi|tabungan|giro)\b`)

	reChannelLabel  = regexp.MustCompile(`(?i)^(mobile banking|internet banking|atm|kantor cabang|call center|sms banking)$`)
	reCategoryLabel = regexp.MustCompile(`(?i)^(top up gopay|transfer antar bank|pembayaran tagihan|biometric/login error|saldo/mutasi|tabungan|kartu kredit|giro|lainnya)$`)
)

var complaintKeywords = []string{
	"komplain", "keluhan", "masalah", "error", "tidak bisa", "gagal", "salah", "bermasalah", "trouble",
}

// Simple extracts fields from a single user message using pattern rules
// keyed on the step the conversation is at. It never fails; text that does
// not match yields an empty result and the caller re-asks.
func Simple(userText string, step domain.Step) domain.CollectedInfo {
	var info domain.CollectedInfo
	text := strings.ToLower(strings.TrimSpace(userText))

	switch step {
	case domain.StepAskingName:
		// The whole message is the name, as long as it carries no account
		// number or banking vocabulary.
		if !reAccount.MatchString(text) && !reBankingTerm.MatchString(text) &&
			len(text) > 2 && len(text) < 50 {
			info.FullName = domain.NullableString(strings.TrimSpace(userText))
		}

	case domain.StepAskingAccount:
		if m := reAccount.FindString(text); m != "" {
			info.AccountNumber = domain.NullableString(m)
		}

	case domain.StepAskingChannel:
		switch {
		case strings.Contains(text, "mobile banking") || strings.Contains(text, "m-banking"):
			info.Channel = "Mobile Banking"
		case strings.Contains(text, "internet banking") || strings.Contains(text, "i-banking"):
			info.Channel = "Internet Banking"
		case strings.Contains(text, "atm"):
			info.Channel = "ATM"
		case strings.Contains(text, "cabang") || strings.Contains(text, "kantor"):
			info.Channel = "Kantor Cabang"
		case strings.Contains(text, "call center") || strings.Contains(text, "telepon"):
			info.Channel = "Call Center"
		case strings.Contains(text, "sms"):
			info.Channel = "SMS Banking"
		}

	case domain.StepAskingCategory:
		// Compound labels first; bare single-word labels only match short
		// exact text so a long complaint mentioning "giro" is not consumed
		// here.
		switch {
		case strings.Contains(text, "top up gopay"):
			info.Category = "Top Up Gopay"
		case strings.Contains(text, "transfer antar bank"):
			info.Category = "Transfer Antar Bank"
		case strings.Contains(text, "pembayaran tagihan"):
			info.Category = "Pembayaran Tagihan"
		case strings.Contains(text, "biometric") || strings.Contains(text, "login error"):
			info.Category = "Biometric/Login Error"
		case strings.Contains(text, "saldo") || strings.Contains(text, "mutasi"):
			info.Category = "Saldo/Mutasi"
		case text == "tabungan" && len(text) < 20:
			info.Category = "Tabungan"
		case text == "kartu kredit" && len(text) < 20:
			info.Category = "Kartu Kredit"
		case text == "giro" && len(text) < 20:
			info.Category = "Giro"
		case text == "lainnya" && len(text) < 20:
			info.Category = "Lainnya"
		}

	case domain.StepAskingDescription:
		if len(text) > 10 {
			info.Description = domain.NullableString(strings.TrimSpace(userText))
		}
	}

	return info
}

// DescriptionFromTranscript looks for a substantial problem description in
// the recent user messages. It only engages once the conversation has at
// least six messages, and skips messages that are just a channel label, a
// category label or an account number.
func DescriptionFromTranscript(messages []domain.Message) domain.CollectedInfo {
	var info domain.CollectedInfo
	if len(messages) < 6 {
		return info
	}

	var userMessages []string
	for _, m := range messages {
		if m.Role == domain.RoleUser {
			userMessages = append(userMessages, m.Content)
		}
	}
	if len(userMessages) > 3 {
		userMessages = userMessages[len(userMessages)-3:]
	}

	for i := len(userMessages) - 1; i >= 0; i-- {
		content := userMessages[i]
		if len(content) > 20 &&
			!reChannelLabel.MatchString(content) &&
			!reCategoryLabel.MatchString(content) &&
			!reAccountExact.MatchString(content) {
			info.Description = domain.NullableString(strings.TrimSpace(content))
			return info
		}
	}
	return info
}

// LooksComplete scores a first message for one-shot extraction: complaint
// vocabulary, personal-info markers, a long digit run, message length and
// banking vocabulary each count one. Three or more indicators means the
// message is probably a full complaint worth a single model pass.
func LooksComplete(message string) bool {
	lower := strings.ToLower(message)

	hasComplaint := false
	for _, kw := range complaintKeywords {
		if strings.Contains(lower, kw) {
			hasComplaint = true
			break
		}
	}

	indicators := []bool{
		hasComplaint,
		rePersonalInfo.MatchString(message),
		reLongDigits.MatchString(message),
		len(message) > 50,
		reBankingVocab.MatchString(message),
	}

	score := 0
	for _, hit := range indicators {
		if hit {
			score++
		}
	}
	return score >= 3
}
