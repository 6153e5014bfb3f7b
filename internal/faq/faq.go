// Package faq answers common questions from a static keyword list, scored
// by how many of an entry's keywords appear in the query.
package faq

import "strings"

type entry struct {
	keywords []string
	answer   string
}

var entries = []entry{
	{
		keywords: []string{"cara blokir kartu debit", "debit hilang", "kartu debit hilang", "blokir debit"},
		answer:   "Untuk blokir kartu debit: buka aplikasi mobile banking → menu Kartu → Blokir Kartu, atau hubungi call center resmi. Siapkan data verifikasi (nama, tanggal lahir, 4 digit akhir rekening).",
	},
	{
		keywords: []string{"limit kartu kredit", "cek limit kredit", "sisa limit cc"},
		answer:   "Cek limit kartu kredit melalui aplikasi mobile banking/website resmi pada menu Kartu Kredit → Informasi Limit, atau hubungi call center untuk informasi terbaru.",
	},
	{
		keywords: []string{"biaya admin tabungan", "biaya bulanan tabungan"},
		answer:   "Biaya admin tabungan bervariasi per jenis produk. Silakan cek brosur/website resmi produk tabungan atau tanyakan ke cabang terdekat.",
	},
	{
		keywords: []string{"chargeback", "refund transaksi kartu kredit", "transaksi tidak dikenali kartu kredit"},
		answer:   "Untuk dispute/chargeback transaksi kartu kredit: laporkan maksimal 2×24 jam sejak mengetahui transaksi, isi formulir dispute, dan lampirkan bukti pendukung. Proses investigasi mengikuti ketentuan penerbit.",
	},
	{
		keywords: []string{"reset pin", "lupa pin atm", "pin terblokir"},
		answer:   "PIN terblokir/lupa: lakukan reset via ATM (Jika tersedia), aplikasi, atau ke cabang dengan membawa identitas dan buku tabungan/kartu terkait.",
	},
}

// Result is a FAQ lookup outcome. Answer is empty when nothing matched.
type Result struct {
	Answer  string
	Matched []string
}

// Search returns the best-matching FAQ entry for a query.
func Search(query string) Result {
	q := strings.ToLower(query)

	var best *entry
	bestScore := 0
	for i := range entries {
		score := 0
		for _, kw := range entries[i].keywords {
			if strings.Contains(q, kw) {
				score++
			}
		}
		if score > bestScore {
			best = &entries[i]
			bestScore = score
		}
	}

	if best == nil {
		return Result{Matched: []string{}}
	}
	return Result{Answer: best.answer, Matched: best.keywords}
}
