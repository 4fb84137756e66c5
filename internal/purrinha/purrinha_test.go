package purrinha

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/streetgames/internal/game"
	"github.com/lox/streetgames/internal/ledger"
	"github.com/lox/streetgames/internal/randutil"
)

func newTestPurrinha(t *testing.T, rng randutil.Source, opts ...Option) *Purrinha {
	t.Helper()
	p := New(ledger.New(ledger.DefaultConfig(), nil), rng, opts...)
	p.SetBet(10)
	return p
}

func revealAll(p *Purrinha) {
	for p.Phase() == PhaseRevealing {
		p.Update(DefaultRevealInterval)
	}
}

// Scripted draws for a two-seat table: the NPC's stones, then its jitter index (0 => -1, 1 => 0, 2 => +1).
func TestHeadsUpRounds(t *testing.T) {
	tests := []struct {
		name       string
		npcStones  int
		jitter     int
		stones     int
		guess      int
		wantTotal  int
		wantNPC    int
		wantWinner int
		wantSettle int
	}{
		{name: "exact call wins, npc moves off taken total", npcStones: 3, jitter: 1, stones: 2, guess: 5,
			wantTotal: 5, wantNPC: 6, wantWinner: 0, wantSettle: 10},
		{name: "equal distance goes to first seat", npcStones: 3, jitter: 1, stones: 1, guess: 3,
			wantTotal: 4, wantNPC: 5, wantWinner: 0, wantSettle: 10},
		{name: "npc closer", npcStones: 3, jitter: 0, stones: 0, guess: 0,
			wantTotal: 3, wantNPC: 4, wantWinner: 1, wantSettle: -10},
		{name: "npc backs off at the ceiling", npcStones: 3, jitter: 2, stones: 3, guess: 6,
			wantTotal: 6, wantNPC: 5, wantWinner: 0, wantSettle: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPurrinha(t, &randutil.Scripted{Ints: []int{tt.npcStones, tt.jitter}}, WithPlayers(2))

			p.ChooseStones(tt.stones)
			require.Equal(t, PhaseGuessing, p.Phase())
			p.Guess(tt.guess)
			require.Equal(t, PhaseRevealing, p.Phase())
			revealAll(p)

			assert.Equal(t, tt.wantTotal, p.Total())
			assert.Equal(t, tt.wantNPC, p.Players()[1].Guess)
			assert.Equal(t, tt.wantWinner, p.Winner())
			assert.Equal(t, tt.wantSettle, p.Settle())
		})
	}
}

func TestHandsOpenOnePerInterval(t *testing.T) {
	p := newTestPurrinha(t, randutil.New(3), WithPlayers(3), WithRevealInterval(time.Second))
	p.ChooseStones(1)
	p.Guess(4)

	p.Update(900 * time.Millisecond)
	assert.False(t, p.Players()[0].Revealed)

	p.Update(200 * time.Millisecond)
	players := p.Players()
	assert.True(t, players[0].Revealed)
	assert.False(t, players[1].Revealed)
	assert.Zero(t, p.Settle(), "no settlement while revealing")

	p.Update(2 * time.Second)
	assert.Equal(t, PhaseResult, p.Phase())
	for _, pl := range p.Players() {
		assert.True(t, pl.Revealed)
	}
}

func TestClampsStonesAndGuess(t *testing.T) {
	p := newTestPurrinha(t, randutil.New(9), WithPlayers(2))
	p.ChooseStones(7)
	assert.Equal(t, MaxStones, p.Players()[0].Stones)

	p.Guess(-4)
	assert.Equal(t, 0, p.Players()[0].Guess)

	q := newTestPurrinha(t, randutil.New(9), WithPlayers(2))
	q.ChooseStones(-1)
	assert.Equal(t, 0, q.Players()[0].Stones)
	q.Guess(100)
	assert.Equal(t, q.MaxGuess(), q.Players()[0].Guess)
}

func TestInvariantsOverSeededRounds(t *testing.T) {
	for _, n := range []int{2, 3, 4, 5} {
		p := newTestPurrinha(t, randutil.New(int64(n)), WithPlayers(n))
		for round := range 300 {
			p.ChooseStones(round % 4)
			p.Guess(round % (p.MaxGuess() + 1))
			revealAll(p)

			players := p.Players()
			sum := 0
			seen := map[int]bool{}
			for _, pl := range players {
				sum += pl.Stones
				require.False(t, seen[pl.Guess], "calls are unique")
				seen[pl.Guess] = true
			}
			require.Equal(t, sum, p.Total())

			winDiff := abs(players[p.Winner()].Guess - p.Total())
			for _, pl := range players {
				require.LessOrEqual(t, winDiff, abs(pl.Guess-p.Total()))
			}
			p.Reset()
		}
	}
}

func TestPotAndSettlement(t *testing.T) {
	p := newTestPurrinha(t, &randutil.Scripted{Ints: []int{3, 3, 3, 1, 1, 1}}, WithPlayers(4))
	assert.Equal(t, 40, p.Pot())

	p.ChooseStones(3)
	p.Guess(12)
	revealAll(p)

	assert.Equal(t, 12, p.Total())
	assert.Equal(t, 0, p.Winner())
	assert.Equal(t, 30, p.Settle())
	assert.Equal(t, 30, p.Settle())
}

func TestOutOfPhaseActionsAreNoOps(t *testing.T) {
	p := newTestPurrinha(t, randutil.New(5))

	p.Guess(3)
	p.Update(time.Hour)
	assert.Equal(t, PhaseBetting, p.Phase())

	p.ChooseStones(2)
	p.ChooseStones(0)
	assert.Equal(t, 2, p.Players()[0].Stones)

	p.Guess(5)
	p.Guess(1)
	assert.Equal(t, 5, p.Players()[0].Guess)
}

func TestResetClearsRound(t *testing.T) {
	p := newTestPurrinha(t, randutil.New(5))
	p.ChooseStones(2)
	p.Guess(5)
	revealAll(p)

	p.Reset()

	assert.Equal(t, PhaseBetting, p.Phase())
	assert.Equal(t, game.StageBetting, p.Stage())
	assert.Equal(t, -1, p.Winner())
	assert.Zero(t, p.Total())
	for _, pl := range p.Players() {
		assert.Zero(t, pl.Guess)
		assert.False(t, pl.Revealed)
	}
}
