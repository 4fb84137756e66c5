package main

import (
	"fmt"

	"github.com/lox/streetgames/internal/ledger"
)

var sampleHighWater = []int{0, 100, 500, 1000, 5000, 10000, 50000, 100000}

// LimitsCmd prints bet limits for one or more high-water marks
type LimitsCmd struct {
	HighWater []int `name:"high-water" short:"w" help:"High-water marks to evaluate (defaults to a sample ladder)"`
}

func (c *LimitsCmd) Run(g *Globals) error {
	lc, err := g.Config.LedgerConfig()
	if err != nil {
		return err
	}
	l := ledger.New(lc, nil)

	marks := c.HighWater
	if len(marks) == 0 {
		marks = sampleHighWater
	}
	fmt.Println(renderLimits(l, marks))
	return nil
}
