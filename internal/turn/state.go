// Package turn is the turn-processing core: the scheduler that advances
// the world once per game turn, the per-condition status updater, and
// the command interpreter that turns keystrokes into game actions.
package turn

import (
	"math/rand"

	"gloomdelve/internal/item"
	"gloomdelve/internal/player"
	"gloomdelve/internal/termio"
)

// Field names a status-line element whose value changed; the status-bar
// collaborator decides how to render it.
type Field uint8

const (
	FieldHP Field = iota
	FieldMana
	FieldAC
	FieldHunger
	FieldBlind
	FieldConfused
	FieldAfraid
	FieldPoisoned
	FieldSpeed
	FieldState // resting / paralyzed / repeat count
	FieldDepth
	FieldExp
	FieldWinner
)

// State is the simulation aggregate threaded through the scheduler,
// updater, and interpreter. One instance per process, one owner: the
// active call stack. No hidden globals.
type State struct {
	P   *player.Player
	Inv *item.Inventory
	T   *termio.Surface

	// Clock is the game turn counter, incremented exactly once per
	// scheduler iteration.
	Clock int64

	// Count is the pending repeat count; 0 means none.
	Count int
	// LastKey is the raw input rune persisted across loop iterations so
	// a pending count can re-dispatch it without re-reading.
	LastKey rune
	// LastCommand is the last canonical command dispatched; the
	// previous-message command uses it to detect repetition.
	LastCommand rune
	// FreeTurn marks a command that consumed no game time.
	FreeTurn bool
	// NewLevel requests level regeneration from the outer loop.
	NewLevel bool
	// TeleportNow requests a 100-radius teleport after the command.
	TeleportNow bool

	// RunDir is the active auto-run direction, 0 when not running.
	// RunSteps is the remaining counted steps; negative runs until
	// blocked or disturbed.
	RunDir   int
	RunSteps int

	Searching bool

	// panelRow and panelCol index the current map panel; -1 forces the
	// next GetPanel call to recenter.
	panelRow int
	panelCol int

	WizardMode  bool
	TotalWinner bool
	Roguelike   bool
	// BellOn mirrors the terminal bell option so it can be saved back
	// to the options file on exit.
	BellOn bool

	Hooks Hooks

	rng *rand.Rand
}

// New builds a State around the given aggregates and seeds its RNG.
func New(p *player.Player, inv *item.Inventory, t *termio.Surface, seed int64) *State {
	st := &State{
		P:        p,
		Inv:      inv,
		T:        t,
		panelRow: -1,
		panelCol: -1,
		rng:      rand.New(rand.NewSource(seed)),
	}
	st.Hooks.normalize()
	t.ResetCount = func() { st.Count = 0 }
	return st
}

// oneIn rolls the original 1-in-n chance.
func (st *State) oneIn(n int) bool { return st.rng.Intn(n) == 0 }

// randInt returns a uniform roll in 1..n.
func (st *State) randInt(n int) int { return st.rng.Intn(n) + 1 }

// eof reports whether input has started returning end-of-input; the
// loops wind down once it does.
func (st *State) eof() bool { return st.T.EOFReads() > 0 }

// Disturb cancels any multi-turn action in progress: pending count,
// auto-run, and rest all abandon their internal counters. stopSearch
// additionally drops search mode.
func (st *State) Disturb(stopSearch bool) {
	st.Count = 0
	if st.RunDir != 0 {
		st.endRun()
	}
	if st.P.Rest != 0 {
		st.restOff()
	}
	if stopSearch && st.Searching {
		st.searchOff()
	}
	st.T.FlushInput()
}

func (st *State) endRun() {
	st.RunDir = 0
	st.RunSteps = 0
	st.Hooks.CheckView()
}

func (st *State) restOff() {
	st.P.Rest = 0
	st.P.FoodDigested++
	st.Hooks.StatusChanged(FieldState)
}

func (st *State) searchOn() {
	st.Searching = true
	st.Hooks.StatusChanged(FieldState)
}

func (st *State) searchOff() {
	st.Searching = false
	st.Hooks.CheckView()
	st.Hooks.StatusChanged(FieldState)
}
