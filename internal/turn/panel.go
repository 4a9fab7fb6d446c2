package turn

// The visible map occupies rows 1 through 22 of the 80-column surface;
// the leftmost 13 columns carry the stat sidebar. Panels step in
// half-view increments so the player is never drawn at the very edge.
const (
	viewHeight   = 22
	viewWidth    = 66
	sidebarWidth = 13
)

func (st *State) maxPanels() (rows, cols int) {
	h, w := st.Hooks.DungeonSize()
	rows = (h/viewHeight)*2 - 2
	cols = (w/viewWidth)*2 - 2
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return rows, cols
}

// GetPanel snaps the viewport to the panel containing world (y, x).
// Without force the panel only moves once the position drifts within
// two rows or three columns of the visible edge. Reports whether the
// viewport moved, in which case the map needs redrawing.
func (st *State) GetPanel(y, x int, force bool) bool {
	prow, pcol := st.panelRow, st.panelCol
	rowMin := prow * (viewHeight / 2)
	rowMax := rowMin + viewHeight - 1
	colMin := pcol * (viewWidth / 2)
	colMax := colMin + viewWidth - 1
	maxRows, maxCols := st.maxPanels()

	if force || y < rowMin+2 || y > rowMax-2 {
		prow = (y - viewHeight/4) / (viewHeight / 2)
		if prow > maxRows {
			prow = maxRows
		} else if prow < 0 {
			prow = 0
		}
	}
	if force || x < colMin+3 || x > colMax-3 {
		pcol = (x - viewWidth/4) / (viewWidth / 2)
		if pcol > maxCols {
			pcol = maxCols
		} else if pcol < 0 {
			pcol = 0
		}
	}

	if prow == st.panelRow && pcol == st.panelCol {
		return false
	}
	st.panelRow = prow
	st.panelCol = pcol
	st.T.SetPanel(prow*(viewHeight/2)-1, pcol*(viewWidth/2)-sidebarWidth)
	return true
}

// ResetPanel invalidates the viewport so the next GetPanel recenters;
// called when a fresh level is entered.
func (st *State) ResetPanel() { st.panelRow, st.panelCol = -1, -1 }
