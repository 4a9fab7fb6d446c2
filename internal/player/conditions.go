package player

// Condition identifies one timed status. Each pairs a visible flag with
// a countdown timer; the invariant (active ⇔ remaining > 0) is enforced
// by the mutators below plus the per-condition updater transition, never
// by scattered flag twiddling.
type Condition uint8

const (
	Hero Condition = iota
	SuperHero
	Blind
	Confused
	Afraid
	Poisoned
	Fast
	Slow
	Hallucinating
	ProtEvil
	Invulnerable
	Blessed
	ResistHeat
	ResistCold
	DetectInvis
	Infravision
	WordRecall
	condCount
)

var condNames = [condCount]string{
	"hero", "super-hero", "blind", "confused", "afraid", "poisoned",
	"fast", "slow", "hallucinating", "protected from evil",
	"invulnerable", "blessed", "resist heat", "resist cold",
	"see invisible", "infravision", "word of recall",
}

func (c Condition) String() string {
	if c >= condCount {
		return "unknown"
	}
	return condNames[c]
}

type ticker struct {
	active    bool
	remaining int
}

// Conditions is the per-condition {active, remaining-ticks} table.
type Conditions struct {
	timers [condCount]ticker
}

// Start is the external trigger: it extends the countdown. The visible
// flag flips on the next updater tick, not here, so activation side
// effects print in the updater's fixed order.
func (c *Conditions) Start(cond Condition, turns int) {
	c.timers[cond].remaining += turns
}

// Set forces the countdown to an exact value; 0 also drops the flag.
func (c *Conditions) Set(cond Condition, turns int) {
	c.timers[cond].remaining = turns
	if turns <= 0 {
		c.timers[cond] = ticker{}
	}
}

// Remaining returns the ticks left on a condition.
func (c *Conditions) Remaining(cond Condition) int { return c.timers[cond].remaining }

// Active reports whether the condition's visible flag is set.
func (c *Conditions) Active(cond Condition) bool { return c.timers[cond].active }

// BeginTick flips the visible flag on the first ticking turn and
// reports whether it flipped, so the one-time activation side effects
// (messages, stat deltas) run exactly once.
func (c *Conditions) BeginTick(cond Condition) bool {
	t := &c.timers[cond]
	if t.remaining > 0 && !t.active {
		t.active = true
		return true
	}
	return false
}

// Snapshot returns the remaining ticks per condition, for persistence.
func (c *Conditions) Snapshot() []int {
	ticks := make([]int, condCount)
	for i := range c.timers {
		ticks[i] = c.timers[i].remaining
	}
	return ticks
}

// Restore reinstates countdowns from a snapshot. Flags come back
// active immediately so reloading does not replay activation effects.
func (c *Conditions) Restore(ticks []int) {
	for i := range c.timers {
		c.timers[i] = ticker{}
		if i < len(ticks) && ticks[i] > 0 {
			c.timers[i] = ticker{active: true, remaining: ticks[i]}
		}
	}
}

// Tick decrements the countdown and reports expiry. On the tick that
// reaches zero the flag clears, exactly once.
func (c *Conditions) Tick(cond Condition) (expired bool) {
	t := &c.timers[cond]
	if t.remaining <= 0 {
		return false
	}
	t.remaining--
	if t.remaining == 0 {
		t.active = false
		return true
	}
	return false
}
