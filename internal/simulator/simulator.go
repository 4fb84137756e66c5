// Package simulator plays rounds headlessly with a scripted human so the
// house edge of every game can be measured.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/streetgames/internal/config"
	"github.com/lox/streetgames/internal/events"
	"github.com/lox/streetgames/internal/game"
	"github.com/lox/streetgames/internal/host"
	"github.com/lox/streetgames/internal/ledger"
	"github.com/lox/streetgames/internal/randutil"
	"github.com/lox/streetgames/internal/statistics"
)

const (
	// Step is the simulated time forwarded between decisions
	Step = 100 * time.Millisecond
	// maxSteps bounds a single round so a stuck engine fails the run
	maxSteps = 10_000
)

var ErrStuckRound = errors.New("round did not reach a result")

// Config holds configuration for running simulations
type Config struct {
	Games  []string
	Rounds int
	Seed   int64
	Bet    int // 0 bets the table minimum
	Ledger ledger.Config
	Tables config.Tables
	Logger *log.Logger
}

// Result is the outcome of one game's run
type Result struct {
	Game         string
	Stats        *statistics.Statistics
	Rebuys       int
	FinalBalance int
	HighWater    int
}

// Run plays cfg.Rounds rounds of each game concurrently. Every game gets its
// own ledger, bus and host. Results come back in the order of cfg.Games.
func Run(ctx context.Context, cfg Config) ([]Result, error) {
	if cfg.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", cfg.Rounds)
	}
	if err := cfg.Ledger.Validate(); err != nil {
		return nil, fmt.Errorf("ledger config: %w", err)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	for _, name := range cfg.Games {
		if !slices.Contains(Games, name) {
			return nil, fmt.Errorf("unknown game %q", name)
		}
	}

	results := make([]Result, len(cfg.Games))
	g, ctx := errgroup.WithContext(ctx)
	for i, name := range cfg.Games {
		// Seeds follow the position in Games so a game plays the same
		// sequence whatever else runs alongside it.
		seed := cfg.Seed + int64(slices.Index(Games, name))
		g.Go(func() error {
			res, err := runGame(ctx, cfg, name, seed)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runGame(ctx context.Context, cfg Config, name string, seed int64) (Result, error) {
	logger := cfg.Logger.With("game", name)
	bus := events.NewBus(logger)
	l := ledger.New(cfg.Ledger, bus)

	stats := &statistics.Statistics{}
	bus.On(events.EventTypeRoundSettled, func(e events.Event) {
		s := e.(events.RoundSettled)
		stats.Add(statistics.RoundResult{Net: s.Net, Stake: s.Stake, Seed: seed, Abandoned: s.Abandoned})
	})

	player, err := newAutoPlayer(name, l, randutil.New(seed), cfg.Tables)
	if err != nil {
		return Result{}, err
	}
	h := host.New(l, bus, player.engine, host.WithLogger(logger))

	rebuys := 0
	for round := 0; round < cfg.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		if rebuy(h, l, cfg.Bet) {
			rebuys++
		}
		if err := playRound(h, player); err != nil {
			return Result{}, fmt.Errorf("round %d: %w", round+1, err)
		}
	}

	if err := stats.Validate(); err != nil {
		return Result{}, fmt.Errorf("statistics validation failed: %w", err)
	}
	logger.Info("Simulation finished", "rounds", stats.Rounds, "mean", fmt.Sprintf("%.3f", stats.Mean()), "rebuys", rebuys)
	return Result{
		Game:         name,
		Stats:        stats,
		Rebuys:       rebuys,
		FinalBalance: l.Balance(),
		HighWater:    l.HighWater(),
	}, nil
}

// rebuy sets the wager and restores the starting balance when the player
// can no longer cover it. It reports whether the ledger was reset.
func rebuy(h *host.Host, l *ledger.Ledger, bet int) bool {
	h.SetBet(bet)
	if l.CanAfford(h.Engine().BetAmount()) {
		return false
	}
	l.Reset()
	h.SetBet(bet)
	return true
}

func playRound(h *host.Host, p *autoPlayer) error {
	if err := h.PlaceBet(p.start); err != nil {
		return err
	}
	for steps := 0; p.engine.Stage() != game.StageResult; steps++ {
		if steps >= maxSteps {
			h.Escape()
			return ErrStuckRound
		}
		p.act()
		if p.engine.Stage() != game.StageResult {
			h.Advance(Step)
		}
	}
	_, err := h.Settle()
	return err
}
