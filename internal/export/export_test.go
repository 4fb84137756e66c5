package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/streetgames/internal/simulator"
	"github.com/lox/streetgames/internal/statistics"
)

func sampleResults() []simulator.Result {
	stats := &statistics.Statistics{}
	stats.Add(statistics.RoundResult{Net: 20, Stake: 20})
	stats.Add(statistics.RoundResult{Net: -20, Stake: 20})
	stats.Add(statistics.RoundResult{Net: 0, Stake: 20})
	return []simulator.Result{{Game: simulator.GameDice, Stats: stats, Rebuys: 1, FinalBalance: 90, HighWater: 120}}
}

func TestNewReport(t *testing.T) {
	r := NewReport(7, sampleResults())

	require.Len(t, r.Games, 1)
	g := r.Games[0]
	assert.Equal(t, int64(7), r.Seed)
	assert.Equal(t, "dice", g.Game)
	assert.Equal(t, 3, g.Rounds)
	assert.Equal(t, 1, g.Wins)
	assert.Equal(t, 1, g.Losses)
	assert.Equal(t, 1, g.Pushes)
	assert.Equal(t, 60, g.TotalStaked)
	assert.InDelta(t, 1.0, g.ReturnToPlayer, 1e-9)
	assert.Less(t, g.CI95[0], g.CI95[1])
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	want := NewReport(7, sampleResults())

	require.NoError(t, WriteReport(path, want))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got Report
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, want, got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestWriteReportOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o600))

	require.NoError(t, WriteReport(path, Report{Seed: 1}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"seed": 1`)
}

func TestWriteReportMissingDirectory(t *testing.T) {
	err := WriteReport(filepath.Join(t.TempDir(), "missing", "report.json"), Report{})
	assert.Error(t, err)
}
