package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Config holds the money policy: alignment unit, starting funds and the
// bet-limit scaling formula.
type Config struct {
	MoneyUnit       int
	StartingBalance int
	BaseMin         int
	BaseMax         int
	CapMin          int
	CapMax          int
	MinBonusRate    decimal.Decimal
	MaxBonusRate    decimal.Decimal
}

// DefaultConfig returns the standard street-game economy.
func DefaultConfig() Config {
	return Config{
		MoneyUnit:       10,
		StartingBalance: 100,
		BaseMin:         10,
		BaseMax:         50,
		CapMin:          500,
		CapMax:          5000,
		MinBonusRate:    decimal.RequireFromString("0.01"),
		MaxBonusRate:    decimal.RequireFromString("0.1"),
	}
}

// Validate checks the config is internally consistent
func (c Config) Validate() error {
	if c.MoneyUnit <= 0 {
		return fmt.Errorf("money unit must be positive, got %d", c.MoneyUnit)
	}
	if c.StartingBalance < 0 {
		return fmt.Errorf("starting balance must not be negative, got %d", c.StartingBalance)
	}
	if c.BaseMin <= 0 || c.BaseMin > c.BaseMax {
		return fmt.Errorf("base limits must satisfy 0 < min <= max, got %d/%d", c.BaseMin, c.BaseMax)
	}
	if c.CapMin < c.BaseMin {
		return fmt.Errorf("min cap %d is below base min %d", c.CapMin, c.BaseMin)
	}
	if c.CapMax < c.BaseMax {
		return fmt.Errorf("max cap %d is below base max %d", c.CapMax, c.BaseMax)
	}
	if c.MinBonusRate.IsNegative() || c.MaxBonusRate.IsNegative() {
		return fmt.Errorf("bonus rates must not be negative")
	}
	return nil
}
