package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/streetgames/internal/ledger"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "streetgames.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	lc, err := cfg.LedgerConfig()
	require.NoError(t, err)
	assert.Equal(t, ledger.DefaultConfig().StartingBalance, lc.StartingBalance)
	assert.True(t, lc.MaxBonusRate.Equal(decimal.RequireFromString("0.1")))
}

func TestDefaultTables(t *testing.T) {
	tables, err := Default().TableConfig()
	require.NoError(t, err)
	assert.Equal(t, Tables{
		DicePlayers:      5,
		PurrinhaPlayers:  4,
		PokerNPCStack:    1000,
		PokerFoldChance:  0.25,
		CoinSpin:         2 * time.Second,
		PurrinhaReveal:   600 * time.Millisecond,
		PalitinhoRollGap: time.Second,
	}, tables)
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"

ledger {
  starting_balance = 250
  max_bonus_rate   = "0.2"
}

tables {
  dice_players    = 3
  purrinha_reveal = "150ms"
}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)

	lc, err := cfg.LedgerConfig()
	require.NoError(t, err)
	assert.Equal(t, 250, lc.StartingBalance)
	assert.Equal(t, 10, lc.MoneyUnit)
	assert.True(t, lc.MinBonusRate.Equal(decimal.RequireFromString("0.01")))
	assert.True(t, lc.MaxBonusRate.Equal(decimal.RequireFromString("0.2")))

	tables, err := cfg.TableConfig()
	require.NoError(t, err)
	assert.Equal(t, 3, tables.DicePlayers)
	assert.Equal(t, 4, tables.PurrinhaPlayers)
	assert.Equal(t, 150*time.Millisecond, tables.PurrinhaReveal)
	assert.Equal(t, 2*time.Second, tables.CoinSpin)
}

func TestLoadKeepsExplicitZeroStartingBalance(t *testing.T) {
	cfg, err := Load(writeConfig(t, "ledger {\n  starting_balance = 0\n}"))
	require.NoError(t, err)

	lc, err := cfg.LedgerConfig()
	require.NoError(t, err)
	assert.Zero(t, lc.StartingBalance)
	assert.Equal(t, 10, lc.MoneyUnit)
}

func TestLoadOmittedStartingBalanceUsesDefault(t *testing.T) {
	cfg, err := Load(writeConfig(t, "ledger {\n  money_unit = 5\n}"))
	require.NoError(t, err)

	lc, err := cfg.LedgerConfig()
	require.NoError(t, err)
	assert.Equal(t, 100, lc.StartingBalance)
	assert.Equal(t, 5, lc.MoneyUnit)
}

func TestLoadOmittedBlocks(t *testing.T) {
	cfg, err := Load(writeConfig(t, `log_level = "warn"`))
	require.NoError(t, err)
	assert.Equal(t, Default().Ledger, cfg.Ledger)
	assert.Equal(t, Default().Tables, cfg.Tables)
}

func TestLoadRejectsInvalidFiles(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax error", `ledger {`},
		{"unknown attribute", `colour = "red"`},
		{"bad log level", `log_level = "chatty"`},
		{"bad rate", "ledger {\n  min_bonus_rate = \"lots\"\n}"},
		{"bad duration", "tables {\n  coin_spin = \"soon\"\n}"},
		{"negative duration", "tables {\n  coin_spin = \"-1s\"\n}"},
		{"too many dice players", "tables {\n  dice_players = 9\n}"},
		{"one purrinha player", "tables {\n  purrinha_players = 1\n}"},
		{"fold chance above one", "tables {\n  poker_fold_chance = \"1.5\"\n}"},
		{"inverted base limits", "ledger {\n  base_min = 100\n  base_max = 50\n}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
