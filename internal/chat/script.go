package chat

import (
	"fmt"
	"strings"

	"github.com/bcare-id/bcare/internal/domain"
)

// The scripted side of the dialogue: fixed option lists, per-step templates
// and the rendered summary blocks. None of this goes through the model.

// ChannelOptions are the six channels a complaint can come from.
var ChannelOptions = []string{
	"Mobile Banking", "Internet Banking", "ATM", "Kantor Cabang", "Call Center", "SMS Banking",
}

// CategoryOptions are the nine complaint categories.
var CategoryOptions = []string{
	"Top Up Gopay", "Transfer Antar Bank", "Pembayaran Tagihan", "Biometric/Login Error",
	"Saldo/Mutasi", "Tabungan", "Kartu Kredit", "Giro", "Lainnya",
}

var confirmationSuggestions = []string{"Ya, data sudah benar", "Ada yang perlu diperbaiki"}
var correctionSuggestions = []string{"Channel salah", "Kategori salah", "Deskripsi salah"}

// Suggestions returns the quick replies for a step.
func Suggestions(step domain.Step) []string {
	switch step {
	case domain.StepAskingChannel:
		return append([]string(nil), ChannelOptions...)
	case domain.StepAskingCategory:
		return append([]string(nil), CategoryOptions...)
	case domain.StepReadyForConfirmation:
		return append([]string(nil), confirmationSuggestions...)
	case domain.StepAskingCorrection:
		return append([]string(nil), correctionSuggestions...)
	}
	return []string{}
}

// TemplateResponse returns the fixed prompt for a step.
func TemplateResponse(step domain.Step, collected domain.CollectedInfo) string {
	switch step {
	case domain.StepAskingChannel:
		return "Terima kasih sudah menghubungi B-Care! Untuk membantu menyelesaikan masalah Anda, bisa Anda beri tahu saya channel atau platform yang Anda gunakan saat mengalami masalah ini?"
	case domain.StepAskingCategory:
		return "Terima kasih sudah memberikan informasinya. Sekarang, untuk membantu kita mengatasi masalah Anda dengan cepat dan tepat, bisa Anda beri tahu saya jenis keluhan yang Anda alami?"
	case domain.StepAskingDescription:
		return fmt.Sprintf("Terima kasih sudah memberikan informasinya. Kategori keluhan %q telah dipilih. Sekarang, silakan beri saya deskripsi detail masalah yang Anda alami. Jelaskan secara lengkap apa yang terjadi, kapan masalah terjadi, dan langkah apa yang sudah Anda coba.", collected.Category)
	}
	return "Terima kasih atas informasinya. Silakan lanjutkan dengan memberikan detail yang diminta."
}

func welcomeMessage(greeting string) string {
	return greeting + ` Terima kasih sudah menghubungi B-Care.
Saya BNI Assistant akan dengan senang hati membantu Anda hari ini.
Untuk membantu menyelesaikan masalah Anda, bisa Anda beri tahu saya channel atau platform yang Anda gunakan saat mengalami masalah ini?`
}

func orUnknown(v domain.NullableString) string {
	if v == "" {
		return "❓ _Belum diketahui_"
	}
	return string(v)
}

func orUnfilled(v domain.NullableString) string {
	if v == "" {
		return "Belum diisi"
	}
	return string(v)
}

// oneShotSummaryMessage renders the reply for a successful one-shot
// extraction on the first turn.
func oneShotSummaryMessage(summary domain.Summary, filledFields int) string {
	status := "✅ Informasi sudah lengkap!"
	if filledFields < 3 {
		status = "⚠️ Beberapa informasi masih kurang lengkap. Saya akan membantu melengkapinya."
	}
	return strings.TrimSpace(fmt.Sprintf(`🎯 Terima kasih! Saya telah memahami keluhan Anda. Berikut informasi yang berhasil saya catat:

📋 **RINGKASAN KELUHAN ANDA**

 **Channel**: %s
📂 **Kategori**: %s
📝 **Deskripsi**: %s

%s

Apakah data di atas sudah benar? Jika ada yang perlu diperbaiki atau dilengkapi, silakan beritahu saya.`,
		orUnknown(summary.Channel), orUnknown(summary.Kategori), orUnknown(summary.Deskripsi), status))
}

// confirmationMessage renders the summary block shown before final
// confirmation. The description slot carries the AI-generated summary.
func confirmationMessage(collected domain.CollectedInfo, aiDescription string) string {
	desc := domain.NullableString(aiDescription)
	if desc == "" {
		desc = collected.Description
	}
	return strings.TrimSpace(fmt.Sprintf(`📋 RINGKASAN KELUHAN ANDA

 Channel: %s

📂 Kategori: %s

📝 Deskripsi: %s

Apakah data di atas sudah benar? Silakan konfirmasi atau beri tahu jika ada yang perlu diperbaiki.`,
		orUnfilled(collected.Channel), orUnfilled(collected.Category), orUnfilled(desc)))
}

// Fixed replies for the correction and confirmation loops.
const (
	msgAskCorrection       = "Baik, ada yang perlu diperbaiki. Bisa Anda beritahu bagian mana yang perlu dikoreksi? Saya akan membantu memperbaiki data Anda."
	msgCorrectionWhich     = "Mohon sebutkan secara spesifik bagian mana yang perlu diperbaiki. Apakah itu Channel, Kategori, atau Deskripsi?"
	msgCorrectChannel      = "Baik, channel mana yang benar? Silakan pilih channel yang Anda gunakan saat mengalami masalah ini."
	msgCorrectCategory     = "Baik, kategori mana yang benar? Silakan pilih jenis keluhan yang sesuai dengan masalah Anda."
	msgCorrectDescription  = "Baik, silakan berikan deskripsi yang benar. Jelaskan secara detail masalah yang Anda alami, kapan terjadi, dan langkah apa yang sudah Anda coba."
	msgAskConfirmation     = "Mohon konfirmasi apakah data di atas sudah benar atau ada yang perlu diperbaiki?"
	msgCompleted           = "✅ Terima kasih! Keluhan Anda telah berhasil dicatat. Tim kami akan segera menindaklanjuti keluhan Anda sesuai dengan SLA yang berlaku. Anda akan dihubungi melalui channel yang tersedia."
	msgTechnicalDifficulty = "Maaf, saya mengalami kendala teknis. Bisakah Anda ulangi pesan Anda?"
)
