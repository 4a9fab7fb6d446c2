package termio

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// After this many consecutive end-of-input reads the session is treated
// as a disconnect: best-effort save, then terminate.
const eofPanicThreshold = 100

// ReadKey blocks for one key and returns its command rune.
//
// Ctrl-R is serviced silently: the physical screen is redrawn and the
// terminal mode re-applied, so a garbled display can always be fixed at
// any input prompt. ReadKey never returns Ctrl-R. Resize events are
// likewise absorbed with a full sync.
//
// On end of input it returns Escape; see endOfInput for the escalation.
func (s *Surface) ReadKey() rune {
	s.Flush()
	s.ResetCount()
	for {
		ev := s.nextEvent()
		if ev == nil {
			return s.endOfInput()
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			s.screen.Sync()
		case *tcell.EventKey:
			r := eventRune(ev)
			if r == Ctrl('R') {
				s.screen.Sync()
				continue
			}
			if r != 0 {
				return r
			}
		}
	}
}

// nextEvent returns the stashed Poll event if one exists, otherwise
// blocks on the pump. nil means the input side is gone.
func (s *Surface) nextEvent() tcell.Event {
	if s.pending != nil {
		ev := s.pending
		s.pending = nil
		return ev
	}
	ev, ok := <-s.events
	if !ok {
		return nil
	}
	return ev
}

// endOfInput records one EOF read. The condition is recoverable up to
// eofPanicThreshold, after which the surface forces an emergency save
// and terminates; the wired EmergencySave callback records a cause of
// death when the save fails, before OnExit tears the process down.
func (s *Surface) endOfInput() rune {
	// Drop any unacknowledged message or a -more- prompt would spin
	// forever asking a dead input stream for a space.
	s.msg.fresh = false
	s.eofReads++
	s.Flush()
	if s.eofReads > eofPanicThreshold {
		s.EmergencySave()
		s.OnExit()
	}
	return Escape
}

// EOFReads returns the count of consecutive end-of-input reads.
func (s *Surface) EOFReads() int { return s.eofReads }

// Poll reports whether a key is available within the given timeout
// without consuming it; the key stays queued for the next ReadKey.
// Used solely to interrupt multi-turn actions, so the timeout is near
// zero while auto-running and a few milliseconds otherwise.
func (s *Surface) Poll(timeout time.Duration) bool {
	if s.pending != nil {
		return true
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case ev, ok := <-s.events:
			if !ok {
				return false
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				s.screen.Sync()
			case *tcell.EventKey:
				s.pending = ev
				return true
			}
		case <-timer.C:
			return false
		}
	}
}

// FlushInput discards all type-ahead. No-op once input has hit EOF.
func (s *Surface) FlushInput() {
	s.pending = nil
	for {
		select {
		case ev, ok := <-s.events:
			if !ok {
				return
			}
			if _, resize := ev.(*tcell.EventResize); resize {
				s.screen.Sync()
			}
		default:
			return
		}
	}
}
