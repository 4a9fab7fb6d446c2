package termio

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// HistorySize is the capacity of the message recall ring.
const HistorySize = historySize

const (
	// historySize bounds the circular message history.
	historySize = 22
	// moreColumn is the line budget that forces a -more- pause: a new
	// message only joins the previous one when both fit inside it.
	moreColumn = 73
)

type messageState struct {
	history [historySize]string
	last    int
	// fresh marks an unacknowledged message still on the line.
	fresh bool
}

// Message prints text on the message line and records it in the history.
//
// If the previous message has not been acknowledged and both are short,
// the two are shown together and recorded as a single history entry
// joined by two spaces. Otherwise a -more- prompt blocks until the
// player acknowledges with space, return, or escape.
func (s *Surface) Message(text string) {
	oldLen := 0
	combine := false

	if s.msg.fresh {
		oldLen = runewidth.StringWidth(s.msg.history[s.msg.last]) + 1
		newLen := runewidth.StringWidth(text)

		if text == "" || newLen+oldLen+2 >= moreColumn {
			// Keep the complete -more- visible.
			if oldLen > moreColumn {
				oldLen = moreColumn
			}
			s.PutString(" -more-", MsgLine, oldLen)
			s.waitForAck()
		} else {
			combine = true
		}
	}

	if !combine {
		s.clearMsgLine()
	}

	// The empty string only flushes.
	if text == "" {
		s.msg.fresh = false
		return
	}

	s.ResetCount()
	s.msg.fresh = true

	if combine {
		s.PutString(text, MsgLine, oldLen+2)
		s.msg.history[s.msg.last] += "  " + text
	} else {
		s.PutString(text, MsgLine, 0)
		s.msg.last++
		if s.msg.last >= historySize {
			s.msg.last = 0
		}
		s.msg.history[s.msg.last] = text
	}
}

// CountMessage prints like Message but preserves a pending repeat
// count, for prints issued mid-way through a counted command.
func (s *Surface) CountMessage(text string) {
	saved := s.ResetCount
	s.ResetCount = func() {}
	s.Message(text)
	s.ResetCount = saved
}

// FlushMessage forces acknowledgement of any pending message.
func (s *Surface) FlushMessage() { s.Message("") }

// AckMessage marks any pending message as seen without redrawing; the
// command loop uses it so a stale message never forces a -more- pause.
func (s *Surface) AckMessage() { s.msg.fresh = false }

// MessagePending reports whether a message awaits acknowledgement.
func (s *Surface) MessagePending() bool { return s.msg.fresh }

// LastMessage returns the most recent history entry.
func (s *Surface) LastMessage() string { return s.msg.history[s.msg.last] }

// waitForAck blocks until the -more- prompt is dismissed.
func (s *Surface) waitForAck() {
	for {
		switch s.ReadKey() {
		case ' ', Escape, '\n', '\r':
			return
		}
	}
}

// clearMsgLine blanks the message line without the flush-on-erase hook,
// which would recurse back into Message.
func (s *Surface) clearMsgLine() {
	for x := 0; x < ScreenWidth; x++ {
		s.screen.SetContent(x, MsgLine, ' ', nil, tcell.StyleDefault)
	}
}

// Prt erases a line and writes text on it, flushing any pending message
// first when aimed at the message line.
func (s *Surface) Prt(text string, row, col int) {
	s.EraseLine(row, col)
	s.PutString(text, row, col)
}

// RecallMessages re-displays the last n history entries. A single line
// is reprinted in place, marked with '>' to distinguish it from a live
// message; more than one becomes a temporary overlay under a
// save/restore pair.
func (s *Surface) RecallMessages(n int) {
	if n > historySize {
		n = historySize
	}
	id := s.msg.last

	if n > 1 {
		s.SaveScreen()
		line := n
		for n > 0 {
			n--
			s.Prt(s.msg.history[id], n, 0)
			if id == 0 {
				id = historySize - 1
			} else {
				id--
			}
		}
		s.EraseLine(line, 0)
		s.Pause(line)
		s.RestoreScreen()
		return
	}

	s.PutString(">", MsgLine, 0)
	s.EraseLine(MsgLine, 1)
	s.PutString(s.msg.history[id], MsgLine, 1)
}
