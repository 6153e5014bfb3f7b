package lm

import (
	"fmt"
	"strings"
	"time"
)

// ExtractionSystemPrompt instructs the model to emit the structured
// complaint JSON and nothing else.
const ExtractionSystemPrompt = `You are a bank customer-care assistant for Indonesia. Extract a structured JSON from the user's complaint.

Hard rules:
- Output VALID JSON only (no prose).
- Unknown fields = null.
- category ∈ {Tabungan, Giro, Kartu Kredit, Lainnya}.
- Use bahasa Indonesia for subcategory & description.
- preferred_contact ∈ {call, chat, null}.
- standby_call_window format: HH:mm-HH:mm (Asia/Jakarta).

Classification rules (very important):
- Jika menyebut: kartu debit / debit / ATM / rekening tabungan / tarik-setor tunai → category = Tabungan.
- Jika menyebut: kartu kredit / CC / tagihan/limit/cicilan/chargeback/refund merchant → category = Kartu Kredit.
- Jika menyebut: giro / bilyet giro (BG) / cek / inkaso / kliring → category = Giro.
- Jika tidak yakin dengan kategori → category = null (jangan tebak).

Subcategory hints:
- Tabungan: "Kartu debit tertelan", "Tarik tunai gagal", "Saldo tidak sesuai", "Kartu debit hilang", "PIN terblokir".
- Kartu Kredit: "Transaksi tidak dikenali", "Tagihan tidak sesuai", "Kartu kredit hilang", "Kena biaya tahunan", "Limit tidak cukup".
- Giro: "BG tolak", "Setoran cek pending", "Inkaso terlambat".

Priority rules:
- High jika ada kata kunci: "hilang", "dicuri", "fraud", "transaksi tidak dikenal/tidak dikenali", "akses tidak sah/ilegal".
- Selain itu default Medium (kecuali jelas Low).

Time window:
- Contoh masukan "13-15" → "13:00-15:00"; "13.30-15.45" → "13:30-15:45".`

// ExtractionUserPrompt wraps the complaint text with the output schema and
// few-shot examples.
func ExtractionUserPrompt(text string) string {
	return fmt.Sprintf(`Schema:
{
  "full_name": "string|null",
  "account_number": "string|null",
  "category": "Tabungan|Giro|Kartu Kredit|Lainnya|null",
  "subcategory": "string|null",
  "description": "string",
  "priority": "Low|Medium|High",
  "preferred_contact": "call|chat|null",
  "standby_call_window": "string|null",
  "attachments": []
}

Examples:
Input:
"Halo, kartu debit saya tertelan di ATM BNI Semarang semalam. Rekening 123456789012. Saya standby telepon 13-15."
Output:
{
  "full_name": null,
  "account_number": "123456789012",
  "category": "Tabungan",
  "subcategory": "Kartu debit tertelan",
  "description": "Kartu debit tertelan di ATM BNI Semarang semalam.",
  "priority": "Medium",
  "preferred_contact": "call",
  "standby_call_window": "13:00-15:00",
  "attachments": []
}

Input:
"Saya keberatan tagihan kartu kredit bulan ini, ada transaksi tidak saya kenal."
Output:
{
  "full_name": null,
  "account_number": null,
  "category": "Kartu Kredit",
  "subcategory": "Transaksi tidak dikenali",
  "description": "Keberatan tagihan kartu kredit, ada transaksi tidak dikenali.",
  "priority": "High",
  "preferred_contact": null,
  "standby_call_window": null,
  "attachments": []
}

Input:
"BG saya ditolak, tolong cek statusnya."
Output:
{
  "full_name": null,
  "account_number": null,
  "category": "Giro",
  "subcategory": "BG tolak",
  "description": "Bilyet giro ditolak dan perlu pengecekan status.",
  "priority": "Medium",
  "preferred_contact": null,
  "standby_call_window": null,
  "attachments": []
}

User complaint (free text):
"""%s"""

Output only the JSON object, nothing else.`, text)
}

// SummarySystemPrompt primes the model to write complaint summaries.
const SummarySystemPrompt = "Kamu adalah AI yang membuat ringkasan keluhan nasabah bank. Buatlah ringkasan yang singkat, jelas, dan profesional."

// SummaryUserPrompt asks the model for a one to two sentence summary of the
// customer's complaint.
func SummaryUserPrompt(category, channel, conversationText string) string {
	return fmt.Sprintf(`Berdasarkan percakapan customer service berikut, buatlah ringkasan singkat dan profesional tentang keluhan nasabah:

Kategori: %s
Channel: %s
Percakapan: %s

Buatlah ringkasan dalam 1-2 kalimat yang menjelaskan masalah utama nasabah secara jelas dan profesional.
Format: "Nasabah mengalami [masalah] saat [aktivitas] melalui [channel]."

Contoh: "Nasabah mengalami masalah pembayaran tagihan yang sudah terdebit namun transaksi gagal melalui Mobile Banking."`,
		category, channel, conversationText)
}

var jakarta = mustLoadJakarta()

func mustLoadJakarta() *time.Location {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		return time.FixedZone("WIB", 7*60*60)
	}
	return loc
}

// TimeBasedGreeting returns the Indonesian greeting for the current hour in
// Asia/Jakarta.
func TimeBasedGreeting(now time.Time) string {
	hour := now.In(jakarta).Hour()
	switch {
	case hour >= 5 && hour < 12:
		return "Selamat pagi"
	case hour >= 12 && hour < 15:
		return "Selamat siang"
	case hour >= 15 && hour < 18:
		return "Selamat sore"
	default:
		return "Selamat malam"
	}
}

// FallbackResponse produces a deterministic reply keyed on the last user
// message, used whenever the model is unavailable, times out or returns an
// empty body.
func FallbackResponse(lastUserMessage string, now time.Time) string {
	lower := strings.ToLower(lastUserMessage)
	greeting := TimeBasedGreeting(now)

	switch {
	case strings.Contains(lower, "halo") || strings.Contains(lower, "hai"):
		return greeting + "! Selamat datang di layanan customer service bank. Untuk membantu Anda lebih baik, mohon berikan nama lengkap dan kategori masalah yang dihadapi (Tabungan/Kartu Kredit/Giro/Lainnya)."
	case strings.Contains(lower, "nama"):
		return "Terima kasih atas informasinya. Sekarang mohon jelaskan kategori masalah yang Anda hadapi: Tabungan, Kartu Kredit, Giro, atau Lainnya?"
	case strings.Contains(lower, "tabungan") || strings.Contains(lower, "debit"):
		return "Terima kasih. Untuk masalah tabungan, mohon jelaskan detail masalah yang Anda hadapi dan berikan nomor rekening Anda."
	case strings.Contains(lower, "kredit"):
		return "Terima kasih. Untuk masalah kartu kredit, mohon jelaskan detail masalah yang Anda hadapi."
	default:
		return "Terima kasih atas informasinya. Mohon berikan detail lebih lanjut mengenai masalah yang Anda hadapi agar kami dapat membantu dengan lebih baik."
	}
}
