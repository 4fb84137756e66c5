// Package config loads the HCL file that tunes the ledger and the tables.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"

	"github.com/lox/streetgames/internal/coinflip"
	"github.com/lox/streetgames/internal/dice"
	"github.com/lox/streetgames/internal/ledger"
	"github.com/lox/streetgames/internal/palitinho"
	"github.com/lox/streetgames/internal/poker"
	"github.com/lox/streetgames/internal/purrinha"
)

// Config represents the complete configuration file
type Config struct {
	LogLevel string          `hcl:"log_level,optional"`
	Ledger   *LedgerSettings `hcl:"ledger,block"`
	Tables   *TableSettings  `hcl:"tables,block"`
}

// LedgerSettings mirrors ledger.Config. Rates are decimal strings.
// StartingBalance is a pointer because zero is a valid setting.
type LedgerSettings struct {
	MoneyUnit       int    `hcl:"money_unit,optional"`
	StartingBalance *int   `hcl:"starting_balance,optional"`
	BaseMin         int    `hcl:"base_min,optional"`
	BaseMax         int    `hcl:"base_max,optional"`
	CapMin          int    `hcl:"cap_min,optional"`
	CapMax          int    `hcl:"cap_max,optional"`
	MinBonusRate    string `hcl:"min_bonus_rate,optional"`
	MaxBonusRate    string `hcl:"max_bonus_rate,optional"`
}

// TableSettings holds per-game seating and timing. Durations use Go syntax ("600ms").
type TableSettings struct {
	DicePlayers      int    `hcl:"dice_players,optional"`
	PurrinhaPlayers  int    `hcl:"purrinha_players,optional"`
	PokerNPCStack    int    `hcl:"poker_npc_stack,optional"`
	PokerFoldChance  string `hcl:"poker_fold_chance,optional"`
	CoinSpin         string `hcl:"coin_spin,optional"`
	PurrinhaReveal   string `hcl:"purrinha_reveal,optional"`
	PalitinhoRollGap string `hcl:"palitinho_roll_pause,optional"`
}

// Tables is TableSettings with every field parsed
type Tables struct {
	DicePlayers      int
	PurrinhaPlayers  int
	PokerNPCStack    int
	PokerFoldChance  float64
	CoinSpin         time.Duration
	PurrinhaReveal   time.Duration
	PalitinhoRollGap time.Duration
}

// Default returns the configuration used when no file is present
func Default() *Config {
	lc := ledger.DefaultConfig()
	startingBalance := lc.StartingBalance
	return &Config{
		LogLevel: "info",
		Ledger: &LedgerSettings{
			MoneyUnit:       lc.MoneyUnit,
			StartingBalance: &startingBalance,
			BaseMin:         lc.BaseMin,
			BaseMax:         lc.BaseMax,
			CapMin:          lc.CapMin,
			CapMax:          lc.CapMax,
			MinBonusRate:    lc.MinBonusRate.String(),
			MaxBonusRate:    lc.MaxBonusRate.String(),
		},
		Tables: &TableSettings{
			DicePlayers:      dice.DefaultPlayers,
			PurrinhaPlayers:  purrinha.DefaultPlayers,
			PokerNPCStack:    poker.DefaultNPCStack,
			PokerFoldChance:  decimal.NewFromFloat(poker.DefaultFoldChance).String(),
			CoinSpin:         coinflip.DefaultSpinDuration.String(),
			PurrinhaReveal:   purrinha.DefaultRevealInterval.String(),
			PalitinhoRollGap: palitinho.DefaultRollPause.String(),
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields Default().
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}

	if c.Ledger == nil {
		c.Ledger = defaults.Ledger
	} else {
		l, d := c.Ledger, defaults.Ledger
		fillInt(&l.MoneyUnit, d.MoneyUnit)
		if l.StartingBalance == nil {
			l.StartingBalance = d.StartingBalance
		}
		fillInt(&l.BaseMin, d.BaseMin)
		fillInt(&l.BaseMax, d.BaseMax)
		fillInt(&l.CapMin, d.CapMin)
		fillInt(&l.CapMax, d.CapMax)
		fillString(&l.MinBonusRate, d.MinBonusRate)
		fillString(&l.MaxBonusRate, d.MaxBonusRate)
	}

	if c.Tables == nil {
		c.Tables = defaults.Tables
	} else {
		t, d := c.Tables, defaults.Tables
		fillInt(&t.DicePlayers, d.DicePlayers)
		fillInt(&t.PurrinhaPlayers, d.PurrinhaPlayers)
		fillInt(&t.PokerNPCStack, d.PokerNPCStack)
		fillString(&t.PokerFoldChance, d.PokerFoldChance)
		fillString(&t.CoinSpin, d.CoinSpin)
		fillString(&t.PurrinhaReveal, d.PurrinhaReveal)
		fillString(&t.PalitinhoRollGap, d.PalitinhoRollGap)
	}
}

func fillInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func fillString(v *string, def string) {
	if *v == "" {
		*v = def
	}
}

// Validate checks the configuration can be turned into a ledger and tables
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	lc, err := c.LedgerConfig()
	if err != nil {
		return err
	}
	if err := lc.Validate(); err != nil {
		return err
	}
	tables, err := c.TableConfig()
	if err != nil {
		return err
	}
	if tables.DicePlayers < dice.MinPlayers || tables.DicePlayers > dice.MaxPlayers {
		return fmt.Errorf("dice players must be between %d and %d", dice.MinPlayers, dice.MaxPlayers)
	}
	if tables.PurrinhaPlayers < purrinha.MinPlayers || tables.PurrinhaPlayers > purrinha.MaxPlayers {
		return fmt.Errorf("purrinha players must be between %d and %d", purrinha.MinPlayers, purrinha.MaxPlayers)
	}
	if tables.PokerNPCStack <= 0 {
		return fmt.Errorf("poker npc stack must be positive")
	}
	if tables.PokerFoldChance < 0 || tables.PokerFoldChance > 1 {
		return fmt.Errorf("poker fold chance must be between 0 and 1")
	}
	return nil
}

// LedgerConfig converts the ledger block
func (c *Config) LedgerConfig() (ledger.Config, error) {
	l := c.Ledger
	if l == nil {
		l = Default().Ledger
	}
	minRate, err := decimal.NewFromString(l.MinBonusRate)
	if err != nil {
		return ledger.Config{}, fmt.Errorf("min_bonus_rate: %w", err)
	}
	maxRate, err := decimal.NewFromString(l.MaxBonusRate)
	if err != nil {
		return ledger.Config{}, fmt.Errorf("max_bonus_rate: %w", err)
	}
	startingBalance := ledger.DefaultConfig().StartingBalance
	if l.StartingBalance != nil {
		startingBalance = *l.StartingBalance
	}
	return ledger.Config{
		MoneyUnit:       l.MoneyUnit,
		StartingBalance: startingBalance,
		BaseMin:         l.BaseMin,
		BaseMax:         l.BaseMax,
		CapMin:          l.CapMin,
		CapMax:          l.CapMax,
		MinBonusRate:    minRate,
		MaxBonusRate:    maxRate,
	}, nil
}

// TableConfig converts the tables block
func (c *Config) TableConfig() (Tables, error) {
	t := c.Tables
	if t == nil {
		t = Default().Tables
	}
	fold, err := decimal.NewFromString(t.PokerFoldChance)
	if err != nil {
		return Tables{}, fmt.Errorf("poker_fold_chance: %w", err)
	}
	out := Tables{
		DicePlayers:     t.DicePlayers,
		PurrinhaPlayers: t.PurrinhaPlayers,
		PokerNPCStack:   t.PokerNPCStack,
		PokerFoldChance: fold.InexactFloat64(),
	}
	for _, d := range []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"coin_spin", t.CoinSpin, &out.CoinSpin},
		{"purrinha_reveal", t.PurrinhaReveal, &out.PurrinhaReveal},
		{"palitinho_roll_pause", t.PalitinhoRollGap, &out.PalitinhoRollGap},
	} {
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return Tables{}, fmt.Errorf("%s: %w", d.name, err)
		}
		if v <= 0 {
			return Tables{}, fmt.Errorf("%s must be positive", d.name)
		}
		*d.dst = v
	}
	return out, nil
}
