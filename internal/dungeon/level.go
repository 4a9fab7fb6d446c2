// Package dungeon holds the world the turn core steers through hooks:
// the level grid and its generator, field of view, the monster
// registry, and the status sidebar. Coordinates are (row, col), row 0
// at the top, matching the screen layer's world space.
package dungeon

// Point is a world position.
type Point struct {
	Row, Col int
}

// Rect is an axis-aligned rectangle used for rooms.
type Rect struct {
	Row1, Col1, Row2, Col2 int
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{Row: (r.Row1 + r.Row2) / 2, Col: (r.Col1 + r.Col2) / 2}
}

// Contains reports whether p lies within the rectangle (inclusive).
func (r Rect) Contains(p Point) bool {
	return p.Row >= r.Row1 && p.Row <= r.Row2 && p.Col >= r.Col1 && p.Col <= r.Col2
}

// Level holds the tile grid and room list for one dungeon level.
type Level struct {
	Height, Width int
	Tiles         [][]Tile
	Rooms         []Rect
	StairsUp      Point
	StairsDown    Point
}

// NewLevel creates a Level filled with walls.
func NewLevel(height, width int) *Level {
	tiles := make([][]Tile, height)
	for r := range tiles {
		tiles[r] = make([]Tile, width)
		for c := range tiles[r] {
			tiles[r][c] = MakeWall()
		}
	}
	return &Level{Height: height, Width: width, Tiles: tiles}
}

// InBounds reports whether (row, col) is within the level boundaries.
func (lv *Level) InBounds(row, col int) bool {
	return row >= 0 && row < lv.Height && col >= 0 && col < lv.Width
}

// At returns a pointer to the tile at (row, col). Panics if out of bounds.
func (lv *Level) At(row, col int) *Tile {
	return &lv.Tiles[row][col]
}

// Set replaces the tile at (row, col).
func (lv *Level) Set(row, col int, t Tile) {
	lv.Tiles[row][col] = t
}

// IsWalkable returns true when (row, col) is in bounds and walkable.
func (lv *Level) IsWalkable(row, col int) bool {
	if !lv.InBounds(row, col) {
		return false
	}
	return lv.Tiles[row][col].Walkable
}

// IsTransparent returns true when (row, col) is in bounds and transparent.
func (lv *Level) IsTransparent(row, col int) bool {
	if !lv.InBounds(row, col) {
		return false
	}
	return lv.Tiles[row][col].Transparent
}
