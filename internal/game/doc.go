// Package game defines the contract every street minigame engine satisfies so
// that a single host can bet, tick and settle any of them uniformly.
//
// # Lifecycle
//
// An engine is built in its betting phase. The host deducts the stake from the
// ledger, then calls the engine's game-specific start mutator (Deal,
// StartRound, ChooseSide, ChooseStones or ConfirmBet). The engine moves forward
// through its phases, never backwards, until it reaches its result phase.
// Settle then reports the net win or loss relative to the stake already taken,
// and Reset returns the engine to betting for the next round.
//
// Engines never touch the ledger. They only read bet limits from a LimitSource
// and report a settlement amount.
//
// # Deterministic Testing
//
// Every engine takes a randutil.Source. Pass randutil.New(seed) for
// reproducible rounds, or a *randutil.Scripted to force exact draws:
//
//	rng := randutil.New(42)
//	bj := blackjack.New(ledger, rng)
package game
