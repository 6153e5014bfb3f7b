package sla

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `No,Service,Channel,Category,SLA,UIC,Keterangan
1,Kartu Debit Tertelan,ATM,Tabungan,3,Divisi Operasional,Penggantian kartu debit yang tertelan di mesin ATM
2,Transfer Gagal,Mobile Banking,Tabungan,2,Divisi Digital,Dana terpotong namun   transfer tidak diterima
3,Bilyet Giro Ditolak,Kantor Cabang,Giro,5,Divisi Giro,Penolakan bilyet giro oleh bank tertarik
4,Tagihan Kartu Kredit,Website,Kartu Kredit,7,Divisi Kartu,Sengketa tagihan kartu kredit
`

func writeSheet(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sla.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	idx, err := Load(writeSheet(t, sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, 4, idx.Len())
}

func TestLoadMissingFileIsNotFatal(t *testing.T) {
	idx, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Len())
	assert.Empty(t, idx.Search("kartu", "", 3))
}

func TestLoadCollapsesWhitespaceInKeterangan(t *testing.T) {
	idx, err := Load(writeSheet(t, sampleCSV))
	require.NoError(t, err)

	hits := idx.Search("transfer gagal", "", 1)
	require.Len(t, hits, 1)
	assert.Equal(t, "Dana terpotong namun transfer tidak diterima", hits[0].Keterangan)
}

func TestSearchRanksCategoryBoost(t *testing.T) {
	idx, err := Load(writeSheet(t, sampleCSV))
	require.NoError(t, err)

	// "kartu" alone matches both the debit and kredit rows; the preferred
	// category boost puts the kredit row first.
	hits := idx.Search("kartu", "Kartu Kredit", 3)
	require.NotEmpty(t, hits)
	assert.Equal(t, "Tagihan Kartu Kredit", hits[0].Service)
}

func TestSearchIgnoresShortTokens(t *testing.T) {
	idx, err := Load(writeSheet(t, sampleCSV))
	require.NoError(t, err)

	assert.Empty(t, idx.Search("di ke o", "", 3), "tokens of length <= 2 never match")
}

func TestSearchLimit(t *testing.T) {
	idx, err := Load(writeSheet(t, sampleCSV))
	require.NoError(t, err)

	hits := idx.Search("kartu tabungan giro kredit", "", 2)
	assert.Len(t, hits, 2)
}

func TestFormatHints(t *testing.T) {
	assert.Empty(t, FormatHints(nil))

	out := FormatHints([]Record{{
		Service: "Transfer Gagal", Channel: "Mobile Banking", Category: "Tabungan",
		SLA: "2", UIC: "Divisi Digital", Keterangan: "Dana terpotong",
	}})
	assert.Contains(t, out, "Informasi SLA terkait:")
	assert.Contains(t, out, "- Transfer Gagal (Mobile Banking) | Tabungan | SLA: 2 hari | Divisi Digital | Dana terpotong")
	assert.Contains(t, out, "hari kerja")
}
