package termio

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Screen geometry shared with the turn loop. Writes are clipped to the
// classic 80-column surface no matter how wide the physical terminal is.
const (
	ScreenWidth  = 80
	ScreenHeight = 24
	MsgLine      = 0
)

var styleDefault = tcell.StyleDefault

// Surface is the process-wide handle to the physical terminal. All game
// output funnels through it; it owns the viewport offset that translates
// world coordinates to screen cells, the snapshot stack used by
// full-screen overlays, and the message line.
type Surface struct {
	screen tcell.Screen
	events <-chan tcell.Event
	// pending holds one key event seen by Poll but not yet consumed.
	pending *tcell.EventKey

	panelRow int
	panelCol int

	saved []snapshot

	msg messageState

	bell bool

	eofReads int
	// ResetCount clears any pending repeat count; set by the turn loop
	// so that fresh input or a new message cancels a counted command.
	ResetCount func()
	// EmergencySave runs when input hits the disconnect threshold; it
	// reports whether the save landed.
	EmergencySave func() bool
	// OnExit terminates the process after teardown.
	OnExit func()
}

type snapshot struct {
	w, h  int
	cells []savedCell
}

type savedCell struct {
	primary rune
	comb    []rune
	style   tcell.Style
}

// New initializes the real terminal and starts the input pump.
func New(bell bool) (*Surface, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	w, h := screen.Size()
	if w < ScreenWidth || h < ScreenHeight {
		screen.Fini()
		return nil, fmt.Errorf("screen too small: need %dx%d, have %dx%d", ScreenWidth, ScreenHeight, w, h)
	}

	ch := make(chan tcell.Event, 8)
	go pumpEvents(screen, ch)
	return newSurface(screen, ch, bell), nil
}

// pumpEvents forwards terminal events until the screen is finalized or
// the input side disconnects, then closes the channel so readers see EOF.
func pumpEvents(screen tcell.Screen, ch chan<- tcell.Event) {
	defer close(ch)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		ch <- ev
	}
}

// NewWithScreen wraps an already initialized screen and event source;
// harnesses running over tcell's simulation screen use it directly.
func NewWithScreen(screen tcell.Screen, events <-chan tcell.Event, bell bool) *Surface {
	return newSurface(screen, events, bell)
}

func newSurface(screen tcell.Screen, events <-chan tcell.Event, bell bool) *Surface {
	return &Surface{
		screen:        screen,
		events:        events,
		bell:          bell,
		ResetCount:    func() {},
		EmergencySave: func() bool { return false },
		OnExit:        func() {},
	}
}

// Fini restores the terminal to its original mode.
func (s *Surface) Fini() { s.screen.Fini() }

// Flush pushes all buffered writes to the physical terminal.
func (s *Surface) Flush() { s.screen.Show() }

// Bell sounds the terminal alert, if enabled, after flushing output.
func (s *Surface) Bell() {
	s.Flush()
	if s.bell {
		s.screen.Beep()
	}
}

// SetBell toggles the audible alert at runtime (options screen).
func (s *Surface) SetBell(on bool) { s.bell = on }

// PutString writes text at (row, col), truncated so nothing lands past
// column 78. An out-of-range position is the crash-preferring error
// path: best-effort diagnostic, bell, and a short delay so it is seen.
func (s *Surface) PutString(text string, row, col int) {
	if col > ScreenWidth-1 {
		col = ScreenWidth - 1
	}
	if row < 0 || col < 0 {
		s.writeError("put", row, col)
		return
	}
	text = runewidth.Truncate(text, ScreenWidth-1-col, "")
	style := tcell.StyleDefault
	x := col
	for _, r := range text {
		s.screen.SetContent(x, row, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

// PutChar writes a single world-space character, translating through the
// current viewport offset.
func (s *Surface) PutChar(ch rune, row, col int) {
	r := row - s.panelRow
	c := col - s.panelCol
	if r < 0 || r >= ScreenHeight || c < 0 || c >= ScreenWidth {
		s.writeError("print", r, c)
		return
	}
	s.screen.SetContent(c, r, ch, nil, tcell.StyleDefault)
}

// writeError reports a failed screen write. A corrupted display is worse
// than stopping, so this is loud: message, bell, forced delay.
func (s *Surface) writeError(op string, row, col int) {
	s.msg.fresh = false
	s.PutString(fmt.Sprintf("error in %s, row = %d col = %d", op, row, col), MsgLine, 0)
	s.Bell()
	time.Sleep(2 * time.Second)
}

// EraseLine clears a row from col to the right edge. Clearing the
// message line first flushes any unacknowledged message.
func (s *Surface) EraseLine(row, col int) {
	if row == MsgLine && s.msg.fresh {
		s.FlushMessage()
	}
	for x := col; x < ScreenWidth; x++ {
		s.screen.SetContent(x, row, ' ', nil, tcell.StyleDefault)
	}
}

// ClearScreen blanks the whole surface, flushing any pending message.
func (s *Surface) ClearScreen() {
	if s.msg.fresh {
		s.FlushMessage()
	}
	s.screen.Clear()
}

// ClearFrom blanks every row from the given one downwards.
func (s *Surface) ClearFrom(row int) {
	w, h := s.screen.Size()
	for y := row; y < h; y++ {
		for x := 0; x < w; x++ {
			s.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
		}
	}
}

// MoveCursor places the hardware cursor at a screen position.
func (s *Surface) MoveCursor(row, col int) { s.screen.ShowCursor(col, row) }

// MoveCursorRelative places the cursor at a world position, translated
// through the viewport offset.
func (s *Surface) MoveCursorRelative(row, col int) {
	r := row - s.panelRow
	c := col - s.panelCol
	if r < 0 || r >= ScreenHeight || c < 0 || c >= ScreenWidth {
		s.writeError("move_cursor_relative", r, c)
		return
	}
	s.screen.ShowCursor(c, r)
}

// SetPanel moves the viewport so world (row, col) maps to the top-left
// visible cell. Panel scrolling is the only way the offset changes.
func (s *Surface) SetPanel(row, col int) {
	s.panelRow = row
	s.panelCol = col
}

// Panel returns the current viewport offset.
func (s *Surface) Panel() (row, col int) { return s.panelRow, s.panelCol }

// SaveScreen pushes a snapshot of the visible surface. Overlays call
// this before drawing and RestoreScreen when dismissed.
func (s *Surface) SaveScreen() {
	w, h := s.screen.Size()
	snap := snapshot{w: w, h: h, cells: make([]savedCell, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			primary, comb, style, _ := s.screen.GetContent(x, y)
			snap.cells[y*w+x] = savedCell{primary: primary, comb: comb, style: style}
		}
	}
	s.saved = append(s.saved, snap)
}

// RestoreScreen pops the most recent snapshot back onto the surface.
func (s *Surface) RestoreScreen() {
	if len(s.saved) == 0 {
		return
	}
	snap := s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
	for y := 0; y < snap.h; y++ {
		for x := 0; x < snap.w; x++ {
			c := snap.cells[y*snap.w+x]
			s.screen.SetContent(x, y, c.primary, c.comb, c.style)
		}
	}
	s.Flush()
}
