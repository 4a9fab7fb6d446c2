// Package player holds the single owned player-state aggregate: vitals,
// timed conditions, and the fixed-point regeneration arithmetic. It is
// mutated only by the turn loop's call chain.
package player

// Tuning constants carried over from the original game balance; the odd
// values are intentional and must not be re-derived.
const (
	RegenNormal = 197  // base regen percent during normal digestion
	RegenWeak   = 98   // regen while weak from hunger
	RegenFaint  = 33   // regen while fainting
	RegenHPBase = 1442 // flat per-tick HP contribution
	RegenMNBase = 524  // flat per-tick mana contribution

	FoodAlert = 2000 // below this the player is getting hungry
	FoodWeak  = 300  // below this the player is weak
	FoodFaint = 150  // below this the player may faint
	FoodMax   = 15000

	LampMaxFuel = 15000

	maxShort = 32767
)

// Player is the aggregate player state threaded through the scheduler,
// updater, and interpreter by explicit reference.
type Player struct {
	// Vitals. The Frac fields are 16-bit fractional regeneration carry.
	HP       int
	MaxHP    int
	HPFrac   uint16
	Mana     int
	MaxMana  int
	ManaFrac uint16

	Exp   int
	Level int

	// Armor class and to-hit columns, shifted by heroism, blessing and
	// invulnerability while those conditions run.
	AC        int
	DisplayAC int
	ToHit     int
	ToHitBow  int

	Con int // constitution, 3..118 with the over-18 percentile encoding

	// Speed is negative when hasted (lower acts sooner).
	Speed int

	Food         int
	FoodDigested int
	// Hungry and Weak latch so the threshold message fires exactly once
	// per crossing, not once per turn below the threshold.
	Hungry bool
	Weak   bool

	// Paralysis and Rest are countdowns without a paired visible flag.
	// Rest < 0 is the rest-until-recovered sentinel.
	Paralysis int
	Rest      int

	// FastRegen is the innate regeneration trait (×3/2).
	FastRegen bool
	SeeInvis  bool
	// InnateSeeInvis survives the timed boost expiring (magic items).
	InnateSeeInvis bool
	// SeeInfra is the innate infravision radius, bumped while the timed
	// boost runs.
	SeeInfra int
	// RandomTeleport marks the cursed 1-in-100 teleport affliction.
	RandomTeleport bool

	CarryingLight bool
	LightFuel     int

	InvenWeight int
	WeightLimit int

	Dead     bool
	DiedFrom string

	Depth    int
	MaxDepth int

	Cond Conditions
}

// ConAdj returns the constitution adjustment indexing the poison-damage
// table.
func (p *Player) ConAdj() int {
	switch con := p.Con; {
	case con < 7:
		return con - 7
	case con < 17:
		return 0
	case con == 17:
		return 1
	case con < 94:
		return 2
	case con < 117:
		return 3
	default:
		return 4
	}
}

// NoteDepth records the current depth and tracks the deepest level
// visited, which is where word-of-recall drops the player back.
func (p *Player) NoteDepth(depth int) {
	p.Depth = depth
	if depth > p.MaxDepth {
		p.MaxDepth = depth
	}
}
