package dungeon

import "math/rand"

// CorridorStyle selects the shape of connecting tunnels.
type CorridorStyle uint8

const (
	CorridorLShaped CorridorStyle = iota
	CorridorZShaped
	CorridorStraight
)

// Config drives procedural generation for one level.
type Config struct {
	Height, Width int
	MinLeafSize   int
	MaxLeafSize   int
	MinRoomSize   int
	RoomPadding   int
	CorridorStyle CorridorStyle
	// RubbleCount piles block random corridor cells until dug out.
	RubbleCount int
	// SecretDoorChance is the percent chance a room door hides.
	SecretDoorChance int
	// UpStairs places an upward staircase. The surface is depth zero,
	// so its level gets none and climbing out is impossible.
	UpStairs bool
	Rand     *rand.Rand
}

// DefaultConfig returns generation parameters for the given depth.
// Deeper levels favor twistier corridors and more obstructions.
func DefaultConfig(depth int, rng *rand.Rand) *Config {
	cfg := &Config{
		Height:           66,
		Width:            198,
		MinLeafSize:      16,
		MaxLeafSize:      40,
		MinRoomSize:      4,
		RoomPadding:      2,
		CorridorStyle:    CorridorLShaped,
		RubbleCount:      4 + depth/4,
		SecretDoorChance: 5 + depth,
		UpStairs:         depth > 0,
		Rand:             rng,
	}
	if depth > 10 && rng.Intn(3) == 0 {
		cfg.CorridorStyle = CorridorZShaped
	}
	if cfg.SecretDoorChance > 30 {
		cfg.SecretDoorChance = 30
	}
	return cfg
}

// bspLeaf is a node in the BSP tree.
type bspLeaf struct {
	Row, Col, H, W int
	left, right    *bspLeaf
	room           *Rect
}

// split divides the leaf into two children, returning false when the
// leaf is too small.
func (l *bspLeaf) split(cfg *Config) bool {
	if l.left != nil || l.right != nil {
		return false
	}
	// Split across the longer axis when clearly elongated.
	splitH := cfg.Rand.Intn(2) == 0
	if l.W > l.H && float64(l.W)/float64(l.H) >= 1.25 {
		splitH = false
	} else if l.H > l.W && float64(l.H)/float64(l.W) >= 1.25 {
		splitH = true
	}

	maxSize := l.H
	if !splitH {
		maxSize = l.W
	}
	if maxSize <= cfg.MinLeafSize*2 {
		return false
	}

	lo := cfg.MinLeafSize
	hi := maxSize - cfg.MinLeafSize
	if lo >= hi {
		return false
	}
	split := lo + cfg.Rand.Intn(hi-lo+1)

	if splitH {
		l.left = &bspLeaf{Row: l.Row, Col: l.Col, H: split, W: l.W}
		l.right = &bspLeaf{Row: l.Row + split, Col: l.Col, H: l.H - split, W: l.W}
	} else {
		l.left = &bspLeaf{Row: l.Row, Col: l.Col, H: l.H, W: split}
		l.right = &bspLeaf{Row: l.Row, Col: l.Col + split, H: l.H, W: l.W - split}
	}
	return true
}

// createRooms recursively carves rooms inside terminal leaves.
func (l *bspLeaf) createRooms(lv *Level, cfg *Config) {
	if l.left != nil || l.right != nil {
		if l.left != nil {
			l.left.createRooms(lv, cfg)
		}
		if l.right != nil {
			l.right.createRooms(lv, cfg)
		}
		return
	}
	pad := cfg.RoomPadding

	availH := l.H - 2*pad
	availW := l.W - 2*pad
	if availH < cfg.MinRoomSize {
		availH = cfg.MinRoomSize
	}
	if availW < cfg.MinRoomSize {
		availW = cfg.MinRoomSize
	}

	rh := cfg.MinRoomSize + cfg.Rand.Intn(max(1, availH-cfg.MinRoomSize+1))
	rw := cfg.MinRoomSize + cfg.Rand.Intn(max(1, availW-cfg.MinRoomSize+1))

	if rh > l.H-2*pad {
		rh = l.H - 2*pad
	}
	if rw > l.W-2*pad {
		rw = l.W - 2*pad
	}
	if rh < 3 {
		rh = 3
	}
	if rw < 3 {
		rw = 3
	}

	rr := l.Row + pad + cfg.Rand.Intn(max(1, l.H-rh-2*pad+1))
	rc := l.Col + pad + cfg.Rand.Intn(max(1, l.W-rw-2*pad+1))

	// Clamp to level bounds, leaving a one-tile border.
	if rr < 1 {
		rr = 1
	}
	if rc < 1 {
		rc = 1
	}
	if rr+rh >= lv.Height {
		rh = lv.Height - rr - 1
	}
	if rc+rw >= lv.Width {
		rw = lv.Width - rc - 1
	}
	if rh < 3 || rw < 3 {
		return
	}

	room := Rect{Row1: rr, Col1: rc, Row2: rr + rh - 1, Col2: rc + rw - 1}
	l.room = &room

	for r := room.Row1; r <= room.Row2; r++ {
		for c := room.Col1; c <= room.Col2; c++ {
			lv.Set(r, c, MakeFloor())
		}
	}
	lv.Rooms = append(lv.Rooms, room)
}

// getRoom returns a room from this subtree.
func (l *bspLeaf) getRoom() *Rect {
	if l.room != nil {
		return l.room
	}
	var lRoom, rRoom *Rect
	if l.left != nil {
		lRoom = l.left.getRoom()
	}
	if l.right != nil {
		rRoom = l.right.getRoom()
	}
	if lRoom == nil {
		return rRoom
	}
	return lRoom
}

// connectChildren carves corridors between the two children of a split
// leaf.
func (l *bspLeaf) connectChildren(lv *Level, cfg *Config) {
	if l.left == nil || l.right == nil {
		return
	}
	l.left.connectChildren(lv, cfg)
	l.right.connectChildren(lv, cfg)

	lRoom := l.left.getRoom()
	rRoom := l.right.getRoom()
	if lRoom == nil || rRoom == nil {
		return
	}
	carveCorridor(lv, lRoom.Center(), rRoom.Center(), cfg)
}

// Generate runs BSP generation and returns the level plus player start.
// Stairs up land in the first room, stairs down in the last, so the
// levels chain end to end.
func Generate(cfg *Config) (*Level, Point) {
	lv := NewLevel(cfg.Height, cfg.Width)

	root := &bspLeaf{Row: 0, Col: 0, H: cfg.Height, W: cfg.Width}

	leaves := []*bspLeaf{root}
	splitAny := true
	for splitAny {
		splitAny = false
		var next []*bspLeaf
		for _, leaf := range leaves {
			if leaf.left != nil || leaf.right != nil {
				next = append(next, leaf.left, leaf.right)
				continue
			}
			if leaf.H > cfg.MaxLeafSize || leaf.W > cfg.MaxLeafSize ||
				cfg.Rand.Float64() > 0.25 {
				if leaf.split(cfg) {
					next = append(next, leaf.left, leaf.right)
					splitAny = true
					continue
				}
			}
			next = append(next, leaf)
		}
		leaves = next
	}

	root.createRooms(lv, cfg)
	root.connectChildren(lv, cfg)

	if len(lv.Rooms) == 0 {
		// Degenerate split; fall back to one carved room.
		room := Rect{Row1: 1, Col1: 1, Row2: min(cfg.Height-2, 8), Col2: min(cfg.Width-2, 12)}
		for r := room.Row1; r <= room.Row2; r++ {
			for c := room.Col1; c <= room.Col2; c++ {
				lv.Set(r, c, MakeFloor())
			}
		}
		lv.Rooms = append(lv.Rooms, room)
	}

	placeDoors(lv, cfg)
	placeRubble(lv, cfg)

	first := lv.Rooms[0]
	last := lv.Rooms[len(lv.Rooms)-1]
	lv.StairsDown = last.Center()
	lv.Set(lv.StairsDown.Row, lv.StairsDown.Col, MakeStairsDown())
	lv.StairsUp = Point{Row: -1, Col: -1}
	if cfg.UpStairs {
		lv.StairsUp = first.Center()
		lv.Set(lv.StairsUp.Row, lv.StairsUp.Col, MakeStairsUp())
	}

	start := first.Center()
	if start == lv.StairsUp {
		// Stand beside the staircase, not on it.
		if lv.IsWalkable(start.Row, start.Col+1) {
			start.Col++
		} else if lv.IsWalkable(start.Row+1, start.Col) {
			start.Row++
		}
	}
	return lv, start
}

// placeDoors converts corridor cells on a room boundary into doors,
// some of them hidden.
func placeDoors(lv *Level, cfg *Config) {
	for _, room := range lv.Rooms {
		for c := room.Col1; c <= room.Col2; c++ {
			doorAt(lv, cfg, room.Row1-1, c)
			doorAt(lv, cfg, room.Row2+1, c)
		}
		for r := room.Row1; r <= room.Row2; r++ {
			doorAt(lv, cfg, r, room.Col1-1)
			doorAt(lv, cfg, r, room.Col2+1)
		}
	}
}

func doorAt(lv *Level, cfg *Config, row, col int) {
	if !lv.InBounds(row, col) || lv.At(row, col).Kind != TileCorridor {
		return
	}
	switch {
	case cfg.Rand.Intn(100) < cfg.SecretDoorChance:
		lv.Set(row, col, MakeSecretDoor())
	case cfg.Rand.Intn(2) == 0:
		lv.Set(row, col, MakeClosedDoor())
	default:
		lv.Set(row, col, MakeDoor())
	}
}

// placeRubble drops rubble piles on random corridor cells.
func placeRubble(lv *Level, cfg *Config) {
	for i := 0; i < cfg.RubbleCount; i++ {
		for try := 0; try < 50; try++ {
			r := cfg.Rand.Intn(lv.Height)
			c := cfg.Rand.Intn(lv.Width)
			if lv.At(r, c).Kind == TileCorridor {
				lv.Set(r, c, MakeRubble())
				break
			}
		}
	}
}

// carveCorridor digs a tunnel between two points.
func carveCorridor(lv *Level, from, to Point, cfg *Config) {
	switch cfg.CorridorStyle {
	case CorridorZShaped:
		midRow := (from.Row + to.Row) / 2
		carveV(lv, from.Row, midRow, from.Col)
		carveH(lv, from.Col, to.Col, midRow)
		carveV(lv, midRow, to.Row, to.Col)
	case CorridorStraight:
		carveH(lv, from.Col, to.Col, from.Row)
		carveV(lv, from.Row, to.Row, to.Col)
	default: // LShaped
		if cfg.Rand.Intn(2) == 0 {
			carveH(lv, from.Col, to.Col, from.Row)
			carveV(lv, from.Row, to.Row, to.Col)
		} else {
			carveV(lv, from.Row, to.Row, from.Col)
			carveH(lv, from.Col, to.Col, to.Row)
		}
	}
}

func carveH(lv *Level, c1, c2, row int) {
	if c1 > c2 {
		c1, c2 = c2, c1
	}
	for c := c1; c <= c2; c++ {
		if lv.InBounds(row, c) && !lv.At(row, c).Walkable {
			lv.Set(row, c, MakeCorridor())
		}
	}
}

func carveV(lv *Level, r1, r2, col int) {
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	for r := r1; r <= r2; r++ {
		if lv.InBounds(r, col) && !lv.At(r, col).Walkable {
			lv.Set(r, col, MakeCorridor())
		}
	}
}
