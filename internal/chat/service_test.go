package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcare-id/bcare/internal/domain"
	"github.com/bcare-id/bcare/internal/store"
)

type fakeModel struct {
	extracted    domain.CollectedInfo
	extractErr   error
	summary      string
	panicSummary bool
	extractCalls int
	summaryCalls int
}

func (f *fakeModel) ExtractJSON(_ context.Context, _ string) (domain.CollectedInfo, error) {
	f.extractCalls++
	if f.extractErr != nil {
		return domain.CollectedInfo{}, f.extractErr
	}
	return f.extracted, nil
}

func (f *fakeModel) SummarizeDescription(_ context.Context, _ []domain.Message, collected domain.CollectedInfo) string {
	f.summaryCalls++
	if f.panicSummary {
		panic("summary exploded")
	}
	if f.summary != "" {
		return f.summary
	}
	return "Nasabah mengalami masalah terkait " + string(collected.Category) + " melalui " + string(collected.Channel) + "."
}

func newTestService(model ModelClient) (*Service, *store.Memory) {
	mem := store.NewMemory()
	return NewService(mem, model), mem
}

func TestProcessGreeting(t *testing.T) {
	svc, mem := newTestService(&fakeModel{})

	reply := svc.Process(context.Background(), "s1", "halo")

	assert.Equal(t, "asking_channel", reply.Action)
	assert.Contains(t, reply.Message, "B-Care")
	assert.Equal(t, ChannelOptions, reply.Suggestions)
	assert.False(t, reply.IsComplete)
	assert.Equal(t, 0.0, reply.Confidence)

	sess, err := mem.Get("s1")
	require.NoError(t, err)
	assert.Len(t, sess.Messages, 2, "user message plus welcome")
}

func TestProcessStepByStepFlow(t *testing.T) {
	model := &fakeModel{summary: "Nasabah mengalami kartu debit tertelan di ATM."}
	svc, mem := newTestService(model)
	ctx := context.Background()

	svc.Process(ctx, "s1", "halo")

	reply := svc.Process(ctx, "s1", "Mobile Banking")
	assert.Equal(t, "asking_category", reply.Action)
	assert.Equal(t, domain.NullableString("Mobile Banking"), reply.CollectedInfo.Channel)
	assert.Equal(t, CategoryOptions, reply.Suggestions)

	reply = svc.Process(ctx, "s1", "Tabungan")
	assert.Equal(t, "asking_description", reply.Action)
	assert.Equal(t, domain.NullableString("Tabungan"), reply.CollectedInfo.Category)
	assert.Contains(t, reply.Message, `"Tabungan"`)

	reply = svc.Process(ctx, "s1", "kartu debit saya tertelan di atm kemarin sore")
	assert.Equal(t, "ready_for_confirmation", reply.Action)
	require.NotNil(t, reply.NeedsConfirmation)
	assert.True(t, *reply.NeedsConfirmation)
	assert.Contains(t, reply.Message, "RINGKASAN KELUHAN ANDA")
	assert.Contains(t, reply.Message, "Nasabah mengalami kartu debit tertelan di ATM.")
	assert.Equal(t, 1, model.summaryCalls)
	assert.Equal(t, 1.0, reply.Confidence)
	// The reply shows the AI summary as the description.
	assert.Equal(t, domain.NullableString("Nasabah mengalami kartu debit tertelan di ATM."), reply.CollectedInfo.Description)

	reply = svc.Process(ctx, "s1", "Ya, data sudah benar")
	assert.Equal(t, "completed", reply.Action)
	assert.True(t, reply.IsComplete)
	assert.Equal(t, 1.0, reply.Confidence)

	sess, err := mem.Get("s1")
	require.NoError(t, err)
	assert.True(t, sess.IsComplete)
	assert.Equal(t, domain.NullableString("Nasabah mengalami kartu debit tertelan di ATM."), sess.Collected.Description,
		"confirmation swaps in the AI-generated description")
	assert.Equal(t, domain.NullableString(""), sess.Collected.AIDescription, "transient field cleared")
}

func TestProcessRePromptsOnUnrecognizedAnswer(t *testing.T) {
	svc, _ := newTestService(&fakeModel{})
	ctx := context.Background()

	svc.Process(ctx, "s1", "halo")
	reply := svc.Process(ctx, "s1", "tidak tahu")

	assert.Equal(t, "asking_channel", reply.Action, "unmatched answer re-asks the same question")
	assert.Equal(t, domain.NullableString(""), reply.CollectedInfo.Channel)
}

func TestProcessCorrectionLoop(t *testing.T) {
	model := &fakeModel{}
	svc, mem := newTestService(model)
	ctx := context.Background()

	svc.Process(ctx, "s1", "halo")
	svc.Process(ctx, "s1", "Mobile Banking")
	svc.Process(ctx, "s1", "Tabungan")
	svc.Process(ctx, "s1", "kartu debit saya tertelan di atm kemarin sore")

	// Correction intent is recognized even though the reply contains "ya".
	reply := svc.Process(ctx, "s1", "ada yang perlu diperbaiki")
	assert.Equal(t, "asking_correction", reply.Action)
	require.NotNil(t, reply.NeedsConfirmation)
	assert.False(t, *reply.NeedsConfirmation)
	assert.False(t, reply.IsComplete)

	reply = svc.Process(ctx, "s1", "Kategori salah")
	assert.Equal(t, "asking_category", reply.Action)
	assert.Equal(t, domain.NullableString(""), reply.CollectedInfo.Category, "corrected field is cleared")
	assert.Equal(t, domain.NullableString("Mobile Banking"), reply.CollectedInfo.Channel, "other fields survive")

	// Re-answering the corrected field goes straight back to confirmation.
	reply = svc.Process(ctx, "s1", "Kartu Kredit")
	assert.Equal(t, "ready_for_confirmation", reply.Action)
	assert.Equal(t, 2, model.summaryCalls, "summary regenerated after the correction")

	sess, err := mem.Get("s1")
	require.NoError(t, err)
	assert.Equal(t, domain.NullableString("Kartu Kredit"), sess.Collected.Category)
}

func TestProcessCorrectionWithoutTarget(t *testing.T) {
	svc, _ := newTestService(&fakeModel{})
	ctx := context.Background()

	svc.Process(ctx, "s1", "halo")
	svc.Process(ctx, "s1", "Mobile Banking")
	svc.Process(ctx, "s1", "Tabungan")
	svc.Process(ctx, "s1", "kartu debit saya tertelan di atm kemarin sore")
	svc.Process(ctx, "s1", "salah")

	reply := svc.Process(ctx, "s1", "pokoknya salah semua")
	assert.Equal(t, "asking_correction", reply.Action)
	assert.Contains(t, reply.Message, "Channel, Kategori, atau Deskripsi")
	assert.Equal(t, correctionSuggestions, reply.Suggestions)
}

func TestProcessUnclearConfirmationReAsks(t *testing.T) {
	svc, _ := newTestService(&fakeModel{})
	ctx := context.Background()

	svc.Process(ctx, "s1", "halo")
	svc.Process(ctx, "s1", "Mobile Banking")
	svc.Process(ctx, "s1", "Tabungan")
	svc.Process(ctx, "s1", "kartu debit saya tertelan di atm kemarin sore")

	reply := svc.Process(ctx, "s1", "hmm gimana")
	assert.Equal(t, "ready_for_confirmation", reply.Action)
	require.NotNil(t, reply.NeedsConfirmation)
	assert.True(t, *reply.NeedsConfirmation)
	assert.Contains(t, reply.Message, "Mohon konfirmasi")
}

func TestProcessOneShotShortCircuit(t *testing.T) {
	model := &fakeModel{extracted: domain.CollectedInfo{
		Channel:     "Mobile Banking",
		Category:    "Tabungan",
		Description: "Saldo terpotong dua kali saat transfer.",
		Priority:    "Medium",
	}}
	svc, mem := newTestService(model)

	msg := "Saya mau komplain, transfer lewat mobile banking gagal terus, rekening saya 1234567890, saldo terpotong dua kali"
	reply := svc.Process(context.Background(), "s1", msg)

	assert.Equal(t, "ready_for_confirmation", reply.Action, "one-shot skips the step-by-step questions")
	assert.Equal(t, "one_shot", reply.ExtractionMethod)
	require.NotNil(t, reply.ExtractedSummary)
	assert.Equal(t, domain.NullableString("Tabungan"), reply.ExtractedSummary.Kategori)
	assert.Equal(t, 1.0, reply.Confidence)
	assert.Contains(t, reply.Message, "berhasil saya catat")

	sess, err := mem.Get("s1")
	require.NoError(t, err)
	assert.True(t, sess.NeedsConfirmation)
	assert.Equal(t, domain.NullableString("Mobile Banking"), sess.Collected.Channel)
}

func TestProcessOneShotPartialAsksForMissing(t *testing.T) {
	model := &fakeModel{extracted: domain.CollectedInfo{
		Channel:  "Mobile Banking",
		Category: "Tabungan",
		Priority: "Medium",
	}}
	svc, mem := newTestService(model)

	msg := "Saya mau komplain soal mobile banking, rekening saya 1234567890, tolong dibantu secepatnya ya"
	reply := svc.Process(context.Background(), "s1", msg)

	assert.Equal(t, "asking_missing_info", reply.Action)
	assert.Contains(t, reply.Suggestions, "Tambahkan deskripsi")
	assert.Contains(t, reply.Message, "Belum diketahui")

	sess, err := mem.Get("s1")
	require.NoError(t, err)
	assert.False(t, sess.NeedsConfirmation, "confirmation waits until the set is complete")
}

func TestProcessOneShotFailureFallsBackToGreeting(t *testing.T) {
	model := &fakeModel{extractErr: errors.New("parse model JSON: no block")}
	svc, _ := newTestService(model)

	msg := "Saya mau komplain, transfer lewat mobile banking gagal terus, rekening saya 1234567890"
	reply := svc.Process(context.Background(), "s1", msg)

	assert.Equal(t, "asking_channel", reply.Action)
	assert.Contains(t, reply.Message, "B-Care")
	assert.Equal(t, 1, model.extractCalls)
}

func TestProcessPlainGreetingSkipsModel(t *testing.T) {
	model := &fakeModel{}
	svc, _ := newTestService(model)

	svc.Process(context.Background(), "s1", "halo")
	assert.Equal(t, 0, model.extractCalls, "short greeting never triggers one-shot extraction")
}

func TestProcessRecoversToFallbackReply(t *testing.T) {
	model := &fakeModel{panicSummary: true}
	svc, mem := newTestService(model)
	ctx := context.Background()

	svc.Process(ctx, "s1", "halo")
	svc.Process(ctx, "s1", "Mobile Banking")
	svc.Process(ctx, "s1", "Tabungan")

	reply := svc.Process(ctx, "s1", "kartu debit saya tertelan di atm kemarin sore")

	assert.Equal(t, "error", reply.Action)
	assert.Equal(t, 0.0, reply.Confidence)
	assert.Contains(t, reply.Message, "kendala teknis")

	// Collected data survives the failed turn.
	sess, err := mem.Get("s1")
	require.NoError(t, err)
	assert.Equal(t, domain.NullableString("Mobile Banking"), sess.Collected.Channel)
	assert.Equal(t, domain.NullableString("Tabungan"), sess.Collected.Category)
}
