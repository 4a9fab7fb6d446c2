package dungeon

import (
	"fmt"

	"gloomdelve/internal/player"
	"gloomdelve/internal/turn"
)

// Status layout: the left sidebar holds the slow-moving numbers, the
// bottom row holds the afflictions that flicker turn to turn.
const (
	statRow = 23

	hungerCol = 0
	blindCol  = 7
	confCol   = 13
	afraidCol = 22
	poisonCol = 29
	stateCol  = 38
	speedCol  = 49
	depthCol  = 65
)

// statusChanged repaints the one status element the turn loop says is
// stale.
func (w *World) statusChanged(f turn.Field) {
	switch f {
	case turn.FieldHP:
		w.prtSidebar(4, "HP  :", fmt.Sprintf("%d(%d)", w.st.P.HP, w.st.P.MaxHP))
	case turn.FieldMana:
		w.prtSidebar(5, "MANA:", fmt.Sprintf("%d(%d)", w.st.P.Mana, w.st.P.MaxMana))
	case turn.FieldAC:
		w.prtSidebar(7, "AC  :", fmt.Sprintf("%d", w.st.P.DisplayAC))
	case turn.FieldExp:
		w.prtSidebar(2, "EXP :", fmt.Sprintf("%d", w.st.P.Exp))
	case turn.FieldHunger:
		w.prtFlag(hungerCol, 6, w.hungerWord())
	case turn.FieldBlind:
		w.prtCond(blindCol, 5, player.Blind, "Blind")
	case turn.FieldConfused:
		w.prtCond(confCol, 8, player.Confused, "Confused")
	case turn.FieldAfraid:
		w.prtCond(afraidCol, 6, player.Afraid, "Afraid")
	case turn.FieldPoisoned:
		w.prtCond(poisonCol, 8, player.Poisoned, "Poisoned")
	case turn.FieldSpeed:
		w.prtFlag(speedCol, 10, w.speedWord())
	case turn.FieldState:
		w.prtFlag(stateCol, 10, w.stateWord())
	case turn.FieldDepth:
		w.prtDepth()
	case turn.FieldWinner:
		if w.st.TotalWinner {
			w.prtSidebar(21, "", "*Winner*")
		}
	}
}

// redrawStatus repaints every status element, for level entry and
// overlay teardown.
func (w *World) redrawStatus() {
	w.prtSidebar(1, "LEV :", fmt.Sprintf("%d", w.st.P.Level))
	for _, f := range []turn.Field{
		turn.FieldHP, turn.FieldMana, turn.FieldAC, turn.FieldExp,
		turn.FieldHunger, turn.FieldBlind, turn.FieldConfused,
		turn.FieldAfraid, turn.FieldPoisoned, turn.FieldSpeed,
		turn.FieldState, turn.FieldDepth, turn.FieldWinner,
	} {
		w.statusChanged(f)
	}
}

// prtSidebar writes one left-column stat line, blank-padded to the
// sidebar edge so stale digits never linger.
func (w *World) prtSidebar(row int, label, value string) {
	w.st.T.PutString(fmt.Sprintf("%-5s%-8s", label, value), row, 0)
}

// prtFlag writes a bottom-row word, blank-padded to its field width.
func (w *World) prtFlag(col, width int, word string) {
	w.st.T.PutString(fmt.Sprintf("%-*s", width, word), statRow, col)
}

func (w *World) prtCond(col, width int, cond player.Condition, word string) {
	if !w.st.P.Cond.Active(cond) {
		word = ""
	}
	w.prtFlag(col, width, word)
}

func (w *World) prtDepth() {
	var s string
	if w.st.P.Depth == 0 {
		s = "Town level"
	} else {
		s = fmt.Sprintf("%d feet", w.st.P.Depth*50)
	}
	w.prtFlag(depthCol, 14, s)
}

func (w *World) hungerWord() string {
	switch {
	case w.st.P.Food < player.FoodFaint:
		return "Faint"
	case w.st.P.Food < player.FoodWeak:
		return "Weak"
	case w.st.P.Food < player.FoodAlert:
		return "Hungry"
	default:
		return ""
	}
}

func (w *World) speedWord() string {
	switch {
	case w.st.P.Speed < -1:
		return "Very Fast"
	case w.st.P.Speed == -1:
		return "Fast"
	case w.st.P.Speed == 1:
		return "Slow"
	case w.st.P.Speed > 1:
		return "Very Slow"
	default:
		return ""
	}
}

func (w *World) stateWord() string {
	switch {
	case w.st.P.Paralysis > 0:
		return "Paralysed"
	case w.st.P.Rest != 0:
		return "Rest"
	case w.st.Count > 0:
		return fmt.Sprintf("Repeat %d", w.st.Count)
	case w.st.Searching:
		return "Searching"
	default:
		return ""
	}
}
