package dungeon

import (
	"math/rand"
	"testing"
)

func TestCompactMonstersDropsFarthestFirst(t *testing.T) {
	player := Point{Row: 10, Col: 10}
	near := &Monster{Name: "near", Pos: Point{Row: 11, Col: 11}}
	mid := &Monster{Name: "mid", Pos: Point{Row: 10, Col: 40}}
	far := &Monster{Name: "far", Pos: Point{Row: 10, Col: 150}}

	got := compactMonsters([]*Monster{near, mid, far}, player)

	if len(got) != 2 {
		t.Fatalf("kept %d monsters, want 2", len(got))
	}
	for _, m := range got {
		if m == far {
			t.Fatal("farthest monster survived compaction")
		}
	}
}

func TestCompactMonstersKeepsAllWhenClose(t *testing.T) {
	player := Point{Row: 5, Col: 5}
	ms := []*Monster{
		{Pos: Point{Row: 5, Col: 6}},
		{Pos: Point{Row: 6, Col: 5}},
	}
	if got := compactMonsters(ms, player); len(got) != 2 {
		t.Fatalf("kept %d, want 2", len(got))
	}
}

func TestPickBreedRespectsDepth(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		b := pickBreed(0, rng)
		if b.MinDepth > 0 {
			t.Fatalf("depth 0 rolled %s (min depth %d)", b.Name, b.MinDepth)
		}
	}
	// Deep levels must be able to roll the late breeds.
	sawDeep := false
	for i := 0; i < 200; i++ {
		if b := pickBreed(25, rng); b.MinDepth >= 14 {
			sawDeep = true
			break
		}
	}
	if !sawDeep {
		t.Error("depth 25 never rolled a deep breed")
	}
}

func TestDistanceIsChessboard(t *testing.T) {
	cases := []struct {
		a, b Point
		want int
	}{
		{Point{0, 0}, Point{0, 0}, 0},
		{Point{1, 1}, Point{4, 2}, 3},
		{Point{5, 5}, Point{2, 9}, 4},
	}
	for _, c := range cases {
		if got := distance(c.a, c.b); got != c.want {
			t.Errorf("distance(%v, %v) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}
