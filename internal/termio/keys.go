package termio

import "github.com/gdamore/tcell/v2"

// Commands travel through the interpreter as single runes, with control
// keys folded into the 1..26 range the way a raw terminal delivers them.
const (
	Escape    = rune(27)
	Delete    = rune(127)
	Backspace = rune(8)
)

// Ctrl returns the control-code rune for a letter, e.g. Ctrl('K') == 11.
func Ctrl(r rune) rune { return r & 0x1f }

// eventRune folds a tcell key event into a single command rune.
// Returns 0 for keys with no single-rune representation (arrows,
// function keys), which callers ignore.
func eventRune(ev *tcell.EventKey) rune {
	switch k := ev.Key(); {
	case k == tcell.KeyRune:
		return ev.Rune()
	case k == tcell.KeyEscape:
		return Escape
	case k == tcell.KeyEnter:
		return '\r'
	case k == tcell.KeyTab:
		return '\t'
	case k == tcell.KeyBackspace:
		return Backspace
	case k == tcell.KeyBackspace2:
		return Delete
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return rune(k)
	}
	return 0
}
