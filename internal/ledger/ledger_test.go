package ledger

import (
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/streetgames/internal/events"
	"github.com/lox/streetgames/internal/randutil"
)

func newTestLedger(t *testing.T) (*Ledger, *[]events.MoneyChanged) {
	t.Helper()
	bus := events.NewBus(log.New(io.Discard))
	var got []events.MoneyChanged
	bus.On(events.EventTypeMoneyChanged, func(e events.Event) {
		got = append(got, e.(events.MoneyChanged))
	})
	return New(DefaultConfig(), bus), &got
}

func TestNewStartsAtStartingBalance(t *testing.T) {
	l, got := newTestLedger(t)
	assert.Equal(t, 100, l.Balance())
	assert.Equal(t, 100, l.HighWater())
	assert.Empty(t, *got)
}

func TestSetBalanceAligns(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{in: 0, want: 0},
		{in: 9, want: 0},
		{in: 10, want: 10},
		{in: 125, want: 120},
		{in: -1, want: -10},
		{in: -15, want: -20},
		{in: -20, want: -20},
	}
	for _, tt := range tests {
		l, _ := newTestLedger(t)
		l.SetBalance(tt.in)
		assert.Equal(t, tt.want, l.Balance(), "SetBalance(%d)", tt.in)
	}
}

func TestAlignmentHoldsForArbitraryWrites(t *testing.T) {
	l, _ := newTestLedger(t)
	rng := randutil.New(11)
	for range 2000 {
		v := rng.IntN(200000) - 100000
		l.SetBalance(v)
		assert.Zero(t, l.Balance()%10)
		assert.LessOrEqual(t, l.Balance(), v)
	}
}

func TestHighWaterNeverDecreases(t *testing.T) {
	l, _ := newTestLedger(t)
	rng := randutil.New(5)
	prev := l.HighWater()
	for range 2000 {
		l.AddMoney(rng.IntN(400) - 200)
		hw := l.HighWater()
		require.GreaterOrEqual(t, hw, prev)
		require.GreaterOrEqual(t, hw, l.Balance())
		prev = hw
	}
}

func TestAddMoneyPublishesDelta(t *testing.T) {
	l, got := newTestLedger(t)

	l.AddMoney(55)
	l.AddMoney(-30)

	assert.Equal(t, []events.MoneyChanged{
		{Amount: 150, Delta: 50},
		{Amount: 120, Delta: -30},
	}, *got)
}

func TestNoOpWritesDoNotPublish(t *testing.T) {
	l, got := newTestLedger(t)

	l.SetBalance(100)
	l.SetBalance(105)
	l.AddMoney(9)
	l.AddMoney(0)

	assert.Empty(t, *got)
	assert.Equal(t, 100, l.Balance())
}

func TestResetPublishesZeroDelta(t *testing.T) {
	l, got := newTestLedger(t)
	l.AddMoney(900)
	require.Equal(t, 1000, l.HighWater())

	l.Reset()

	assert.Equal(t, 100, l.Balance())
	assert.Equal(t, 100, l.HighWater())
	require.Len(t, *got, 2)
	assert.Equal(t, events.MoneyChanged{Amount: 100, Delta: 0}, (*got)[1])
}

func TestHandlerCanReadLedgerDuringPublish(t *testing.T) {
	bus := events.NewBus(log.New(io.Discard))
	l := New(DefaultConfig(), bus)
	seen := 0
	bus.On(events.EventTypeMoneyChanged, func(events.Event) { seen = l.Balance() })

	l.AddMoney(40)

	assert.Equal(t, 140, seen)
}

func TestConcurrentWritesPublishInWriteOrder(t *testing.T) {
	l, got := newTestLedger(t)
	const writers = 50

	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.AddMoney(10)
		}()
	}
	wg.Wait()

	require.Len(t, *got, writers)
	prev := 100
	for i, ev := range *got {
		assert.Equal(t, prev+10, ev.Amount, "event %d out of order", i)
		assert.Equal(t, 10, ev.Delta)
		prev = ev.Amount
	}
	assert.Equal(t, 100+writers*10, l.Balance())
}

func TestLimitsFor(t *testing.T) {
	l := New(DefaultConfig(), nil)
	tests := []struct {
		name      string
		highWater int
		want      Limits
	}{
		{name: "broke", highWater: 0, want: Limits{Min: 10, Max: 50}},
		{name: "starting", highWater: 100, want: Limits{Min: 10, Max: 60}},
		{name: "comfortable", highWater: 5000, want: Limits{Min: 60, Max: 550}},
		{name: "min capped", highWater: 100000, want: Limits{Min: 500, Max: 5000}},
		{name: "both capped", highWater: 10000000, want: Limits{Min: 500, Max: 5000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.LimitsFor(tt.highWater))
		})
	}
}

func TestLimitsMonotonicAndCapped(t *testing.T) {
	l := New(DefaultConfig(), nil)
	prev := l.LimitsFor(0)
	for hw := 0; hw <= 200000; hw += 37 {
		cur := l.LimitsFor(hw)
		require.GreaterOrEqual(t, cur.Min, prev.Min)
		require.GreaterOrEqual(t, cur.Max, prev.Max)
		require.LessOrEqual(t, cur.Min, 500)
		require.LessOrEqual(t, cur.Max, 5000)
		require.GreaterOrEqual(t, cur.Min, 10)
		require.GreaterOrEqual(t, cur.Max, 50)
		prev = cur
	}
}

func TestBetLimitsFollowHighWater(t *testing.T) {
	l := New(DefaultConfig(), nil)
	l.AddMoney(4900)
	l.SetBalance(0)
	assert.Equal(t, Limits{Min: 60, Max: 550}, l.BetLimits())
}

func TestLimitsClamp(t *testing.T) {
	lim := Limits{Min: 10, Max: 60}
	assert.Equal(t, 10, lim.Clamp(3))
	assert.Equal(t, 60, lim.Clamp(100))
	assert.Equal(t, 30, lim.Clamp(30))
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	bad := DefaultConfig()
	bad.MoneyUnit = 0
	assert.Error(t, bad.Validate())

	bad = DefaultConfig()
	bad.CapMax = 10
	assert.Error(t, bad.Validate())
}
