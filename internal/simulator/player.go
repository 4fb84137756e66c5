package simulator

import (
	"fmt"
	"math"

	"github.com/lox/streetgames/internal/blackjack"
	"github.com/lox/streetgames/internal/coinflip"
	"github.com/lox/streetgames/internal/config"
	"github.com/lox/streetgames/internal/dice"
	"github.com/lox/streetgames/internal/game"
	"github.com/lox/streetgames/internal/palitinho"
	"github.com/lox/streetgames/internal/poker"
	"github.com/lox/streetgames/internal/purrinha"
	"github.com/lox/streetgames/internal/randutil"
)

// Game names accepted by the simulator
const (
	GameBlackjack = "blackjack"
	GamePoker     = "poker"
	GameDice      = "dice"
	GameCoinflip  = "heads_or_tails"
	GamePurrinha  = "purrinha"
	GamePalitinho = "palitinho"
)

// Games lists every playable game in a stable order
var Games = []string{GameBlackjack, GamePoker, GameDice, GameCoinflip, GamePurrinha, GamePalitinho}

// standOn is the total the scripted blackjack player stops hitting at
const standOn = 17

// autoPlayer is a fixed human policy for one engine. start is the betting
// mutator handed to the host; act makes whatever decision the engine is
// waiting on and is a no-op while the engine only needs time.
type autoPlayer struct {
	engine game.Engine
	start  func()
	act    func()
}

func newAutoPlayer(name string, limits game.LimitSource, rng randutil.Source, tables config.Tables) (*autoPlayer, error) {
	switch name {
	case GameBlackjack:
		bj := blackjack.New(limits, rng)
		return &autoPlayer{
			engine: bj,
			start:  bj.Deal,
			act: func() {
				if bj.Phase() != blackjack.PhasePlaying {
					return
				}
				if bj.PlayerPoints() < standOn {
					bj.Hit()
				} else {
					bj.Stand()
				}
			},
		}, nil

	case GamePoker:
		p := poker.New(limits, rng,
			poker.WithNPCStack(tables.PokerNPCStack),
			poker.WithFoldChance(tables.PokerFoldChance))
		return &autoPlayer{engine: p, start: p.Deal, act: p.Advance}, nil

	case GameDice:
		d := dice.New(limits, rng, dice.WithPlayers(tables.DicePlayers))
		return &autoPlayer{
			engine: d,
			start:  d.StartRound,
			act: func() {
				if d.Phase() == dice.PhaseChoosing {
					d.ChooseNumbers(randutil.Roll(rng), randutil.Roll(rng))
				}
			},
		}, nil

	case GameCoinflip:
		c := coinflip.New(limits, rng, coinflip.WithSpinDuration(tables.CoinSpin))
		return &autoPlayer{
			engine: c,
			start:  func() { c.ChooseSide(coinflip.Heads) },
			act:    func() {},
		}, nil

	case GamePurrinha:
		p := purrinha.New(limits, rng,
			purrinha.WithPlayers(tables.PurrinhaPlayers),
			purrinha.WithRevealInterval(tables.PurrinhaReveal))
		return &autoPlayer{
			engine: p,
			start:  func() { p.ChooseStones(rng.IntN(purrinha.MaxStones + 1)) },
			act: func() {
				if p.Phase() != purrinha.PhaseGuessing {
					return
				}
				own := p.Players()[0].Stones
				others := math.Round(1.5 * float64(p.PlayerCount()-1))
				p.Guess(own + int(others))
			},
		}, nil

	case GamePalitinho:
		p := palitinho.New(limits, rng, palitinho.WithRollPause(tables.PalitinhoRollGap))
		return &autoPlayer{
			engine: p,
			start:  p.ConfirmBet,
			act: func() {
				if p.CurrentTurn() != 0 {
					return
				}
				for i, m := range p.Matchsticks() {
					if m.PickedBy < 0 {
						p.ChooseMatchstick(i)
						return
					}
				}
			},
		}, nil
	}
	return nil, fmt.Errorf("unknown game %q", name)
}
