package termio

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Confirm asks a yes/no question on the message line. Space re-asks;
// anything other than y/Y answers no.
func (s *Surface) Confirm(prompt string) bool {
	s.Prt(prompt, MsgLine, 0)

	col := runewidth.StringWidth(prompt)
	if col > moreColumn {
		col = moreColumn
	}
	s.PutString(" [y/n]", MsgLine, col)

	var r rune
	for {
		r = s.ReadKey()
		if r != ' ' {
			break
		}
	}
	s.EraseLine(MsgLine, 0)
	return r == 'y' || r == 'Y'
}

// Command shows an optional prompt and reads a single key. The second
// return is false when the player aborted with escape.
func (s *Surface) Command(prompt string) (rune, bool) {
	if prompt != "" {
		s.Prt(prompt, MsgLine, 0)
	}
	r := s.ReadKey()
	ok := r != Escape
	s.EraseLine(MsgLine, 0)
	return r, ok
}

// ReadString reads a return-terminated string of at most maxLen printable
// characters at (row, col), with backspace editing. Returns false when
// aborted with escape.
func (s *Surface) ReadString(row, col, maxLen int) (string, bool) {
	for i := 0; i < maxLen; i++ {
		s.screen.SetContent(col+i, row, ' ', nil, styleDefault)
	}
	s.MoveCursor(row, col)

	startCol := col
	endCol := col + maxLen - 1
	if endCol > ScreenWidth-1 {
		endCol = ScreenWidth - 1
	}

	var b strings.Builder
	cur := col
	for {
		r := s.ReadKey()
		switch r {
		case Escape:
			return "", false
		case '\n', '\r':
			return strings.TrimRight(b.String(), " "), true
		case Delete, Backspace:
			if cur > startCol {
				cur--
				s.PutString(" ", row, cur)
				s.MoveCursor(row, cur)
				str := b.String()
				b.Reset()
				b.WriteString(str[:len(str)-1])
			}
		default:
			if !unicode.IsPrint(r) || cur > endCol {
				s.Bell()
				continue
			}
			s.screen.SetContent(cur, row, r, nil, styleDefault)
			b.WriteRune(r)
			cur++
			s.MoveCursor(row, cur)
		}
	}
}

// Pause blocks on the given row until any key is pressed.
func (s *Surface) Pause(row int) {
	s.Prt("[Press any key to continue.]", row, 23)
	s.ReadKey()
	s.EraseLine(row, 0)
}
