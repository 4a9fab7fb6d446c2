package dungeon

// TileKind identifies the type of a map tile.
type TileKind uint8

const (
	TileWall TileKind = iota
	TileFloor
	TileCorridor
	TileDoor
	TileClosedDoor
	TileRubble
	TileStairsUp
	TileStairsDown
)

// Tile holds the kind and visibility state for one map cell. Hidden
// marks a secret door still drawn as wall until a search reveals it.
type Tile struct {
	Kind        TileKind
	Walkable    bool
	Transparent bool
	Explored    bool
	Visible     bool
	Hidden      bool
}

// Glyph returns the display rune for the tile.
func (t Tile) Glyph() rune {
	if t.Hidden {
		return '#'
	}
	switch t.Kind {
	case TileFloor, TileCorridor:
		return '.'
	case TileDoor:
		return '\''
	case TileClosedDoor:
		return '+'
	case TileRubble:
		return ':'
	case TileStairsUp:
		return '<'
	case TileStairsDown:
		return '>'
	default:
		return '#'
	}
}

// MakeWall returns a blocking, opaque wall tile.
func MakeWall() Tile {
	return Tile{Kind: TileWall, Walkable: false, Transparent: false}
}

// MakeFloor returns a passable, transparent floor tile.
func MakeFloor() Tile {
	return Tile{Kind: TileFloor, Walkable: true, Transparent: true}
}

// MakeCorridor returns a passable tunnel tile.
func MakeCorridor() Tile {
	return Tile{Kind: TileCorridor, Walkable: true, Transparent: true}
}

// MakeDoor returns an open door tile.
func MakeDoor() Tile {
	return Tile{Kind: TileDoor, Walkable: true, Transparent: true}
}

// MakeClosedDoor returns a shut door: blocks movement and sight until
// opened.
func MakeClosedDoor() Tile {
	return Tile{Kind: TileClosedDoor, Walkable: false, Transparent: false}
}

// MakeSecretDoor returns a door disguised as wall until searched out.
func MakeSecretDoor() Tile {
	return Tile{Kind: TileClosedDoor, Walkable: false, Transparent: false, Hidden: true}
}

// MakeRubble returns a rubble pile. Rubble blocks until dug through.
func MakeRubble() Tile {
	return Tile{Kind: TileRubble, Walkable: false, Transparent: false}
}

// MakeStairsDown returns a downward staircase tile.
func MakeStairsDown() Tile {
	return Tile{Kind: TileStairsDown, Walkable: true, Transparent: true}
}

// MakeStairsUp returns an upward staircase tile.
func MakeStairsUp() Tile {
	return Tile{Kind: TileStairsUp, Walkable: true, Transparent: true}
}
