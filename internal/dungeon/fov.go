package dungeon

// octant transform matrices. For each octant, a (dc, dr) sweep pair
// maps to a world offset via:
//
//	worldCol = origin.Col + dc*cc + dr*cr
//	worldRow = origin.Row + dc*rc + dr*rr
//
// These match the standard RogueBasin recursive shadowcasting
// multipliers.
var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// UpdateFOV resets visibility and runs recursive shadowcasting from
// origin. A radius of zero leaves only the origin lit, which is how a
// blinded or lightless player sees the level.
func (lv *Level) UpdateFOV(origin Point, radius int) {
	for r := 0; r < lv.Height; r++ {
		for c := 0; c < lv.Width; c++ {
			lv.Tiles[r][c].Visible = false
		}
	}

	if lv.InBounds(origin.Row, origin.Col) {
		t := lv.At(origin.Row, origin.Col)
		t.Visible = true
		t.Explored = true
	}
	if radius < 1 {
		return
	}

	for _, m := range octants {
		lv.castLight(origin, 1, 1.0, 0.0, radius, m[0], m[1], m[2], m[3])
	}
}

// castLight casts light for one octant using recursive shadowcasting.
// j is the row distance from the origin along the octant's main axis;
// dc sweeps from -j to 0 within the row. Slopes follow the RogueBasin
// reference: lSlope = (dc-0.5)/(dr+0.5), rSlope = (dc+0.5)/(dr-0.5).
func (lv *Level) castLight(origin Point, row int, start, end float64, radius, cc, cr, rc, rr int) {
	if start < end {
		return
	}
	radiusSq := float64(radius * radius)
	newStart := start

	for j := row; j <= radius; j++ {
		dr := -j
		blocked := false

		for dc := -j; dc <= 0; dc++ {
			wc := origin.Col + dc*cc + dr*cr
			wr := origin.Row + dc*rc + dr*rr

			lSlope := (float64(dc) - 0.5) / (float64(dr) + 0.5)
			rSlope := (float64(dc) + 0.5) / (float64(dr) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			if float64(dc*dc+dr*dr) < radiusSq && lv.InBounds(wr, wc) {
				t := lv.At(wr, wc)
				t.Visible = true
				t.Explored = true
			}

			opaque := !lv.IsTransparent(wr, wc)

			if blocked {
				if opaque {
					newStart = rSlope
				} else {
					blocked = false
					start = newStart
				}
			} else {
				if opaque && j < radius {
					blocked = true
					lv.castLight(origin, j+1, start, lSlope, radius, cc, cr, rc, rr)
					newStart = rSlope
				}
			}
		}
		if blocked {
			break
		}
	}
}
