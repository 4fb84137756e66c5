package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/lox/streetgames/internal/export"
	"github.com/lox/streetgames/internal/simulator"
)

// SimulateCmd plays rounds headlessly and prints per-game statistics
type SimulateCmd struct {
	Game   []string `short:"g" default:"all" help:"Games to play (all, blackjack, poker, dice, heads_or_tails, purrinha, palitinho)"`
	Rounds int      `short:"n" default:"10000" help:"Rounds to play per game"`
	Seed   int64    `default:"0" help:"RNG seed (0 for random)"`
	Bet    int      `default:"0" help:"Wager per round (0 bets the table minimum)"`
	Out    string   `short:"o" type:"path" help:"Also write the report as JSON to this file"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	lc, err := g.Config.LedgerConfig()
	if err != nil {
		return err
	}
	tables, err := g.Config.TableConfig()
	if err != nil {
		return err
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	games := c.Game
	if len(games) == 0 || (len(games) == 1 && games[0] == "all") {
		games = simulator.Games
	}

	g.Logger.Info("Starting simulation", "games", len(games), "rounds", c.Rounds, "seed", seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results, err := simulator.Run(ctx, simulator.Config{
		Games:  games,
		Rounds: c.Rounds,
		Seed:   seed,
		Bet:    c.Bet,
		Ledger: lc,
		Tables: tables,
		Logger: g.Logger,
	})
	if err != nil {
		return err
	}
	g.Logger.Debug("Simulation complete", "elapsed", time.Since(start))

	fmt.Println(renderReport(results, seed))

	if c.Out != "" {
		if err := export.WriteReport(c.Out, export.NewReport(seed, results)); err != nil {
			return err
		}
		g.Logger.Info("Wrote report", "path", c.Out)
	}
	return nil
}
