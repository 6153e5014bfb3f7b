package chat

import (
	"regexp"

	"github.com/bcare-id/bcare/internal/domain"
)

var reAccountFormat = regexp.MustCompile(`^(\d{3}-\d{6}-\d{5}|\d{10,16})$`)

// Validate checks the field domains of a collected/extracted payload and
// returns the first failing rule's reason. Unset category and channel are
// allowed; an unset description is not.
func Validate(d domain.CollectedInfo) (bool, string) {
	okCategory := map[domain.NullableString]bool{
		"": true, "Top Up Gopay": true, "Transfer Antar Bank": true, "Pembayaran Tagihan": true,
		"Biometric/Login Error": true, "Saldo/Mutasi": true, "Tabungan": true,
		"Kartu Kredit": true, "Giro": true, "Lainnya": true,
	}
	if !okCategory[d.Category] {
		return false, "Kategori tidak valid. Pilihan: Top Up Gopay/Transfer Antar Bank/Pembayaran Tagihan/Biometric Login Error/Saldo Mutasi/Tabungan/Kartu Kredit/Giro/Lainnya."
	}

	okChannel := map[domain.NullableString]bool{
		"": true, "Mobile Banking": true, "Internet Banking": true, "ATM": true,
		"Kantor Cabang": true, "Call Center": true, "SMS Banking": true,
	}
	if !okChannel[d.Channel] {
		return false, "Channel tidak valid. Pilihan: Mobile Banking/Internet Banking/ATM/Kantor Cabang/Call Center/SMS Banking."
	}

	if d.AccountNumber != "" && !reAccountFormat.MatchString(string(d.AccountNumber)) {
		return false, "Format nomor rekening tidak valid (contoh: 002-000123-77099 atau 10-16 digit)."
	}

	if d.Description == "" {
		return false, "Deskripsi keluhan wajib diisi."
	}

	switch d.Priority {
	case domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh:
	default:
		return false, "Priority harus salah satu: Low/Medium/High."
	}

	switch d.PreferredContact {
	case "", domain.ContactCall, domain.ContactChat:
	default:
		return false, "preferred_contact harus call/chat/null."
	}

	return true, "ok"
}
