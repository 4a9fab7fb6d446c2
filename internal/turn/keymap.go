package turn

import "gloomdelve/internal/termio"

// illegalKey is the canonical "anything illegal" command.
const illegalKey = '~'

// originalKeymap remaps the original (non-roguelike) keyset into the
// canonical roguelike command alphabet before dispatch. Keys absent
// from the table map to themselves when listed in originalPassthrough,
// otherwise to illegalKey. The run ('.') and tunnel ('T') prefixes need
// a directional prompt and are handled separately in remapOriginal.
var originalKeymap = map[rune]rune{
	termio.Ctrl('K'): 'Q', // exit
	termio.Ctrl('J'): '+',
	termio.Ctrl('M'): '+',
	'1':              'b',
	'2':              'j',
	'3':              'n',
	'4':              'h',
	'5':              '.', // rest one turn
	'6':              'l',
	'7':              'y',
	'8':              'k',
	'9':              'u',
	'B':              'f', // force/bash
	'L':              'W', // locate
	'S':              '#', // search toggle
	'a':              'z', // aim a wand
	'b':              'P', // browse a book
	'f':              't', // fire/throw
	'h':              '?',
	'i':              'i',
	'j':              'S', // jam/spike a door
	'l':              'x', // look about
	't':              'T', // take off
	'u':              'Z', // use a staff
	'x':              'X', // exchange weapons

	// wizard keys
	termio.Ctrl('B'): termio.Ctrl('O'), // objects
	termio.Ctrl('H'): '\\',             // wizard help
	termio.Ctrl('L'): '*',              // wizard light
	termio.Ctrl('U'): '&',              // summon
}

// originalPassthrough lists original-keyset keys that already are their
// canonical selves.
var originalPassthrough = map[rune]bool{
	termio.Ctrl('P'): true,
	termio.Ctrl('W'): true,
	termio.Ctrl('X'): true,
	termio.Ctrl('V'): true,
	' ':              true,
	'!':              true,
	'$':              true,
	'/':              true,
	'<':              true,
	'>':              true,
	'-':              true,
	'=':              true,
	'{':              true,
	'?':              true,
	'A':              true,
	'C':              true,
	'D':              true,
	'E':              true,
	'F':              true,
	'G':              true,
	'M':              true,
	'R':              true,
	'V':              true,
	'c':              true,
	'd':              true,
	'e':              true,
	'm':              true,
	'o':              true,
	'p':              true,
	'q':              true,
	'r':              true,
	's':              true,
	'v':              true,
	'w':              true,

	// wizard keys
	termio.Ctrl('A'): true,
	termio.Ctrl('D'): true,
	termio.Ctrl('I'): true,
	termio.Ctrl('T'): true,
	termio.Ctrl('E'): true,
	termio.Ctrl('F'): true,
	termio.Ctrl('G'): true,
	':':              true,
	'@':              true,
	'+':              true,
}

// runKeys maps a direction (numpad 1-9) to the canonical run command.
var runKeys = [10]rune{0, 'B', 'J', 'N', 'H', 0, 'L', 'Y', 'K', 'U'}

// tunnelKeys maps a direction to the canonical tunnel command.
var tunnelKeys = [10]rune{
	0,
	termio.Ctrl('B'), termio.Ctrl('J'), termio.Ctrl('N'),
	termio.Ctrl('H'), 0, termio.Ctrl('L'),
	termio.Ctrl('Y'), termio.Ctrl('K'), termio.Ctrl('U'),
}

// moveKeys maps a direction to the canonical single-step move command.
var moveKeys = [10]rune{0, 'b', 'j', 'n', 'h', 0, 'l', 'y', 'k', 'u'}

// countAllowed is the fixed allow-list of canonical commands that
// accept a repeat-count prefix.
var countAllowed = map[rune]bool{
	termio.Ctrl('P'): true,
	termio.Escape:    true,
	' ':              true,
	'-':              true,
	'b':              true,
	'f':              true,
	'j':              true,
	'n':              true,
	'h':              true,
	'l':              true,
	'y':              true,
	'k':              true,
	'u':              true,
	'.':              true,
	'B':              true,
	'J':              true,
	'N':              true,
	'H':              true,
	'L':              true,
	'Y':              true,
	'K':              true,
	'U':              true,
	'D':              true,
	'R':              true,
	termio.Ctrl('Y'): true,
	termio.Ctrl('K'): true,
	termio.Ctrl('U'): true,
	termio.Ctrl('L'): true,
	termio.Ctrl('N'): true,
	termio.Ctrl('J'): true,
	termio.Ctrl('B'): true,
	termio.Ctrl('H'): true,
	'S':              true,
	'o':              true,
	's':              true,
	termio.Ctrl('D'): true,
	termio.Ctrl('G'): true,
	'+':              true,
}

// validCountCommand reports whether command accepts a repeat count.
func validCountCommand(cmd rune) bool { return countAllowed[cmd] }

// dirFromKey converts a direction key in either keyset to a numpad
// direction 1-9 (5 excluded); 0 means not a direction.
func dirFromKey(r rune) int {
	switch r {
	case 'b', '1':
		return 1
	case 'j', '2':
		return 2
	case 'n', '3':
		return 3
	case 'h', '4':
		return 4
	case 'l', '6':
		return 6
	case 'y', '7':
		return 7
	case 'k', '8':
		return 8
	case 'u', '9':
		return 9
	}
	return 0
}

// remapOriginal converts one original-keyset key to the canonical
// alphabet. The run and tunnel prefixes prompt for a direction; an
// aborted prompt cancels to the no-op command.
func (st *State) remapOriginal(key rune) rune {
	if mapped, ok := originalKeymap[key]; ok {
		return mapped
	}
	if originalPassthrough[key] {
		return key
	}

	switch key {
	case '.': // run prefix
		if dir, ok := st.getDirection(""); ok {
			return runKeys[dir]
		}
		return ' '
	case 'T': // tunnel prefix
		if dir, ok := st.getDirection(""); ok {
			return tunnelKeys[dir]
		}
		return ' '
	}
	return illegalKey
}

// getDirection prompts for one of the eight directions. Returns false
// on escape or an unusable key.
// Direction prompts for a direction key in the active keyset. Hook
// implementations use it for door, bash, and throw targets.
func (st *State) Direction(prompt string) (int, bool) {
	return st.getDirection(prompt)
}

func (st *State) getDirection(prompt string) (int, bool) {
	if prompt == "" {
		prompt = "Which direction?"
	}
	key, ok := st.T.Command(prompt)
	if !ok {
		return 0, false
	}
	dir := dirFromKey(key)
	if dir == 0 {
		return 0, false
	}
	return dir, true
}
