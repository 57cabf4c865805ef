package history_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phalanx-sec/phalanx/internal/adapters/outbound/history"
	"github.com/phalanx-sec/phalanx/internal/domain"
)

func TestFileHistory_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	entries, err := h.Load(dir)
	require.NoError(t, err)
	assert.Nil(t, entries, "no history yet")

	first := domain.ScanEntry{Timestamp: "2026-08-30T10:00:00Z", TotalFindings: 4, Critical: 1, High: 2}
	second := domain.ScanEntry{Timestamp: "2026-08-30T11:00:00Z", TotalFindings: 2, High: 1}

	require.NoError(t, h.Save(dir, first))
	require.NoError(t, h.Save(dir, second))

	entries, err = h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first, entries[0])
	assert.Equal(t, second, entries[1])
}
