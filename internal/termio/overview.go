package termio

// ratio is the compression factor of the overview map: each map cell
// shows the highest-priority symbol in a ratio×ratio dungeon area.
const ratio = 3

// symbolPriority decides which symbol wins a compressed overview cell.
var symbolPriority = map[rune]int{
	'<':  5,
	'>':  5,
	'@':  10,
	'#':  -5,
	'.':  -10,
	'\'': -3,
	' ':  -15,
}

// OverviewMap renders a compressed whole-dungeon map as a bordered
// full-screen overlay and blocks for a key. symbolAt yields the display
// rune for a dungeon cell in world coordinates.
func (s *Surface) OverviewMap(height, width int, symbolAt func(row, col int) rune) {
	s.SaveScreen()
	s.ClearScreen()

	cols := width / ratio

	s.screen.SetContent(0, 0, '+', nil, styleDefault)
	for x := 1; x <= cols; x++ {
		s.screen.SetContent(x, 0, '-', nil, styleDefault)
	}
	s.screen.SetContent(cols+1, 0, '+', nil, styleDefault)

	line := make([]rune, cols)
	myRow, myCol := 0, 0
	outRow := -1

	flushLine := func() {
		s.screen.SetContent(0, outRow+1, '|', nil, styleDefault)
		for x, r := range line {
			s.screen.SetContent(x+1, outRow+1, r, nil, styleDefault)
		}
		s.screen.SetContent(cols+1, outRow+1, '|', nil, styleDefault)
	}

	for i := 0; i < height; i++ {
		row := i / ratio
		if row != outRow {
			if outRow >= 0 {
				flushLine()
			}
			for j := range line {
				line[j] = ' '
			}
			outRow = row
		}

		for j := 0; j < width; j++ {
			col := j / ratio
			if col >= cols {
				// width not divisible by ratio; fold the remainder
				// into the last cell.
				col = cols - 1
			}
			sym := symbolAt(i, j)
			if symbolPriority[line[col]] < symbolPriority[sym] {
				line[col] = sym
			}
			if line[col] == '@' {
				// account for the border
				myRow = row + 1
				myCol = col + 1
			}
		}
	}
	if outRow >= 0 {
		flushLine()
	}

	s.screen.SetContent(0, outRow+2, '+', nil, styleDefault)
	for x := 1; x <= cols; x++ {
		s.screen.SetContent(x, outRow+2, '-', nil, styleDefault)
	}
	s.screen.SetContent(cols+1, outRow+2, '+', nil, styleDefault)

	s.PutString("Hit any key to continue", 23, 23)
	if myCol > 0 {
		s.MoveCursor(myRow, myCol)
	}
	s.ReadKey()
	s.RestoreScreen()
}
