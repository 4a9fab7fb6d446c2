package dungeon

import (
	"math/rand"
	"testing"
)

// passable treats doors (closed, secret) as traversable, since the
// player can open or find them.
func passable(t Tile) bool {
	return t.Walkable || t.Kind == TileClosedDoor || t.Kind == TileRubble
}

func reachable(lv *Level, from, to Point) bool {
	seen := make(map[Point]bool)
	queue := []Point{from}
	seen[from] = true
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if p == to {
			return true
		}
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				n := Point{Row: p.Row + dr, Col: p.Col + dc}
				if seen[n] || !lv.InBounds(n.Row, n.Col) || !passable(*lv.At(n.Row, n.Col)) {
					continue
				}
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return false
}

func TestGenerateStairsReachable(t *testing.T) {
	for _, seed := range []int64{1, 7, 42, 1234, 99999} {
		cfg := DefaultConfig(5, rand.New(rand.NewSource(seed)))
		lv, start := Generate(cfg)

		if !lv.IsWalkable(start.Row, start.Col) {
			t.Fatalf("seed %d: start %v not walkable", seed, start)
		}
		if got := lv.At(lv.StairsUp.Row, lv.StairsUp.Col).Kind; got != TileStairsUp {
			t.Fatalf("seed %d: stairs up cell is %v", seed, got)
		}
		if got := lv.At(lv.StairsDown.Row, lv.StairsDown.Col).Kind; got != TileStairsDown {
			t.Fatalf("seed %d: stairs down cell is %v", seed, got)
		}
		if !reachable(lv, start, lv.StairsDown) {
			t.Errorf("seed %d: stairs down unreachable from start", seed)
		}
		if !reachable(lv, start, lv.StairsUp) {
			t.Errorf("seed %d: stairs up unreachable from start", seed)
		}
	}
}

func TestSurfaceLevelHasNoUpStairs(t *testing.T) {
	for _, seed := range []int64{2, 13, 777} {
		cfg := DefaultConfig(0, rand.New(rand.NewSource(seed)))
		lv, _ := Generate(cfg)

		if lv.StairsUp != (Point{Row: -1, Col: -1}) {
			t.Fatalf("seed %d: surface level records up stairs at %v", seed, lv.StairsUp)
		}
		for r := 0; r < lv.Height; r++ {
			for c := 0; c < lv.Width; c++ {
				if lv.At(r, c).Kind == TileStairsUp {
					t.Fatalf("seed %d: up staircase carved at (%d,%d) on the surface", seed, r, c)
				}
			}
		}
	}

	// One step down restores the way back up.
	cfg := DefaultConfig(1, rand.New(rand.NewSource(2)))
	lv, _ := Generate(cfg)
	if got := lv.At(lv.StairsUp.Row, lv.StairsUp.Col).Kind; got != TileStairsUp {
		t.Fatalf("depth 1 stairs up cell is %v", got)
	}
}

func TestGenerateKeepsBorderSolid(t *testing.T) {
	cfg := DefaultConfig(1, rand.New(rand.NewSource(3)))
	lv, _ := Generate(cfg)

	for c := 0; c < lv.Width; c++ {
		if lv.At(0, c).Walkable || lv.At(lv.Height-1, c).Walkable {
			t.Fatalf("border breached at col %d", c)
		}
	}
	for r := 0; r < lv.Height; r++ {
		if lv.At(r, 0).Walkable || lv.At(r, lv.Width-1).Walkable {
			t.Fatalf("border breached at row %d", r)
		}
	}
}

func TestSecretDoorsStartHidden(t *testing.T) {
	// Force every door secret so at least one shows up.
	cfg := DefaultConfig(1, rand.New(rand.NewSource(11)))
	cfg.SecretDoorChance = 100
	lv, _ := Generate(cfg)

	found := 0
	for r := 0; r < lv.Height; r++ {
		for c := 0; c < lv.Width; c++ {
			tl := lv.At(r, c)
			if tl.Kind == TileClosedDoor && tl.Hidden {
				found++
				if tl.Walkable || tl.Transparent {
					t.Fatal("hidden door leaks light or passage")
				}
				if tl.Glyph() != '#' {
					t.Fatalf("hidden door drawn as %q", tl.Glyph())
				}
			}
		}
	}
	if found == 0 {
		t.Skip("no doors placed on this seed")
	}
}

func TestRectCenterAndContains(t *testing.T) {
	r := Rect{Row1: 2, Col1: 4, Row2: 6, Col2: 10}
	if got := r.Center(); got != (Point{Row: 4, Col: 7}) {
		t.Fatalf("Center() = %v", got)
	}
	if !r.Contains(Point{Row: 2, Col: 10}) {
		t.Error("corner should be inside")
	}
	if r.Contains(Point{Row: 7, Col: 7}) {
		t.Error("outside point reported inside")
	}
}
