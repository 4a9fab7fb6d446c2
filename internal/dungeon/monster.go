package dungeon

import "math/rand"

// MaxMonsters caps the per-level monster registry. Spawns stop when the
// registry fills; the turn loop asks for compaction when headroom runs
// low.
const MaxMonsters = 125

// Monster is one creature on the current level.
type Monster struct {
	Name   string
	Glyph  rune
	Pos    Point
	HP     int
	MaxHP  int
	Attack int // max melee damage per hit
	Sight  int // chase radius
	// Lit tracks whether the monster was drawn last update, so moves
	// and deaths erase the right cell.
	Lit bool
}

// breed is a spawn-table row; deeper levels unlock meaner breeds.
type breed struct {
	Name     string
	Glyph    rune
	HP       int
	Attack   int
	Sight    int
	MinDepth int
}

var breeds = []breed{
	{"giant rat", 'r', 3, 2, 8, 0},
	{"kobold", 'k', 5, 3, 10, 0},
	{"cave spider", 's', 6, 4, 8, 2},
	{"orc", 'o', 10, 5, 12, 4},
	{"gnoll", 'g', 14, 6, 12, 7},
	{"ogre", 'O', 24, 9, 10, 10},
	{"troll", 'T', 36, 12, 14, 14},
	{"dragon whelp", 'd', 50, 16, 16, 20},
}

// pickBreed rolls a breed legal for the depth, biased toward the
// deepest rows unlocked.
func pickBreed(depth int, rng *rand.Rand) breed {
	hi := 0
	for i, b := range breeds {
		if b.MinDepth <= depth {
			hi = i
		}
	}
	lo := 0
	if hi > 3 {
		lo = hi - 3
	}
	return breeds[lo+rng.Intn(hi-lo+1)]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// distance is the chessboard distance used for chase and compaction.
func distance(a, b Point) int {
	dr := abs(a.Row - b.Row)
	dc := abs(a.Col - b.Col)
	if dr > dc {
		return dr
	}
	return dc
}

// compactMonsters frees registry slots by discarding the monsters
// farthest from the player, sweeping with a shrinking distance
// threshold until something goes.
func compactMonsters(monsters []*Monster, playerPos Point) []*Monster {
	for curDis := 66; curDis > 0; curDis -= 6 {
		kept := monsters[:0]
		for _, m := range monsters {
			if distance(m.Pos, playerPos) > curDis {
				continue
			}
			kept = append(kept, m)
		}
		if len(kept) < len(monsters) {
			for i := len(kept); i < len(monsters); i++ {
				monsters[i] = nil
			}
			return kept
		}
	}
	return monsters
}
