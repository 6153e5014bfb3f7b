package extract

import (
	"testing"
	"time"

	"github.com/bcare-id/bcare/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSimpleChannel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Mobile Banking", "Mobile Banking"},
		{"saya pakai m-banking", "Mobile Banking"},
		{"internet banking", "Internet Banking"},
		{"lewat i-banking", "Internet Banking"},
		{"di ATM dekat rumah", "ATM"},
		{"kantor cabang", "Kantor Cabang"},
		{"saya telepon kemarin", "Call Center"},
		{"sms banking", "SMS Banking"},
		{"tidak tahu", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			info := Simple(tt.in, domain.StepAskingChannel)
			assert.Equal(t, domain.NullableString(tt.want), info.Channel)
		})
	}
}

func TestSimpleCategory(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"compound label", "top up gopay", "Top Up Gopay"},
		{"compound inside sentence", "masalah saya soal top up gopay kemarin", "Top Up Gopay"},
		{"transfer", "transfer antar bank", "Transfer Antar Bank"},
		{"billing", "pembayaran tagihan", "Pembayaran Tagihan"},
		{"biometric", "biometric gagal terus", "Biometric/Login Error"},
		{"balance keyword", "saldo saya tidak sesuai", "Saldo/Mutasi"},
		{"exact short label", "tabungan", "Tabungan"},
		{"credit card exact", "kartu kredit", "Kartu Kredit"},
		{"giro exact", "giro", "Giro"},
		{"other exact", "lainnya", "Lainnya"},
		{"long text with bare keyword does not match", "kemarin saya ke bank mengurus giro tapi ditolak", ""},
		{"no match", "bukan itu", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Simple(tt.in, domain.StepAskingCategory)
			assert.Equal(t, domain.NullableString(tt.want), info.Category)
		})
	}
}

func TestSimpleDescription(t *testing.T) {
	long := "transfer saya gagal tapi saldo sudah terpotong"
	info := Simple(long, domain.StepAskingDescription)
	assert.Equal(t, domain.NullableString(long), info.Description)

	info = Simple("gagal", domain.StepAskingDescription)
	assert.Equal(t, domain.NullableString(""), info.Description, "short text is not a description")
}

func TestSimpleLegacyNameAndAccount(t *testing.T) {
	info := Simple("Budi Santoso", domain.StepAskingName)
	assert.Equal(t, domain.NullableString("Budi Santoso"), info.FullName)

	info = Simple("rekening saya 1234567890", domain.StepAskingName)
	assert.Equal(t, domain.NullableString(""), info.FullName, "digits reject a name")

	info = Simple("nomor saya 002-000123-77099", domain.StepAskingAccount)
	assert.Equal(t, domain.NullableString("002-000123-77099"), info.AccountNumber)

	info = Simple("1234567890123456", domain.StepAskingAccount)
	assert.Equal(t, domain.NullableString("1234567890123456"), info.AccountNumber)

	info = Simple("tidak ingat", domain.StepAskingAccount)
	assert.Equal(t, domain.NullableString(""), info.AccountNumber)
}

func transcript(contents ...string) []domain.Message {
	msgs := make([]domain.Message, 0, len(contents))
	role := domain.RoleUser
	for _, c := range contents {
		msgs = append(msgs, domain.Message{Role: role, Content: c, Timestamp: time.Now()})
		if role == domain.RoleUser {
			role = domain.RoleAssistant
		} else {
			role = domain.RoleUser
		}
	}
	return msgs
}

func TestDescriptionFromTranscript(t *testing.T) {
	desc := "transfer saya gagal tapi saldo sudah terpotong dua kali"

	msgs := transcript("halo", "hai", "Mobile Banking", "ok", "Transfer Antar Bank", "ok")
	msgs = append(msgs, domain.Message{Role: domain.RoleUser, Content: desc})

	info := DescriptionFromTranscript(msgs)
	assert.Equal(t, domain.NullableString(desc), info.Description)
}

func TestDescriptionFromTranscriptShortConversation(t *testing.T) {
	msgs := transcript("halo", "hai", "ini deskripsi panjang tentang masalah transfer saya")
	info := DescriptionFromTranscript(msgs)
	assert.Equal(t, domain.NullableString(""), info.Description, "needs at least six messages")
}

func TestDescriptionFromTranscriptSkipsLabels(t *testing.T) {
	msgs := transcript("halo", "hai", "m", "ok", "x", "ok",
		"Internet Banking", "ok", "Pembayaran Tagihan", "ok")
	info := DescriptionFromTranscript(msgs)
	assert.Equal(t, domain.NullableString(""), info.Description, "bare labels are not descriptions")
}

func TestLooksComplete(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{
			"full complaint",
			"Halo, saya mau komplain, transfer lewat mobile banking gagal terus, rekening saya 1234567890",
			true,
		},
		{
			"greeting only",
			"halo selamat pagi",
			false,
		},
		{
			"two indicators only",
			"atm error",
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LooksComplete(tt.in))
		})
	}
}
