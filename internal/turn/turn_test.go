package turn

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"gloomdelve/internal/item"
	"gloomdelve/internal/player"
	"gloomdelve/internal/termio"
)

func keyEvent(r rune) *tcell.EventKey {
	switch {
	case r == termio.Escape:
		return tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)
	case r == '\r':
		return tcell.NewEventKey(tcell.KeyEnter, '\r', tcell.ModNone)
	case r >= 1 && r <= 26:
		return tcell.NewEventKey(tcell.Key(r), r, tcell.ModNone)
	default:
		return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
	}
}

// newTestState wires a State over a simulation screen fed with the
// given keys; once they are consumed further reads hit end-of-input.
func newTestState(t *testing.T, keys ...rune) *State {
	t.Helper()
	ch := make(chan tcell.Event, len(keys)+4)
	for _, r := range keys {
		ch <- keyEvent(r)
	}
	close(ch)
	return buildTestState(t, ch)
}

// newTestStateDelayed feeds the keys only after a short delay, so
// commands that flush type-ahead before prompting still see them.
func newTestStateDelayed(t *testing.T, keys ...rune) *State {
	t.Helper()
	ch := make(chan tcell.Event)
	go func() {
		time.Sleep(25 * time.Millisecond)
		for _, r := range keys {
			ch <- keyEvent(r)
		}
		close(ch)
	}()
	return buildTestState(t, ch)
}

func buildTestState(t *testing.T, ch chan tcell.Event) *State {
	t.Helper()

	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	screen.SetSize(termio.ScreenWidth, termio.ScreenHeight)
	t.Cleanup(screen.Fini)

	p := &player.Player{
		HP: 20, MaxHP: 30,
		Mana: 5, MaxMana: 10,
		Con:          10,
		Food:         5000,
		FoodDigested: 2,
		Level:        1,
		WeightLimit:  100,
	}
	st := New(p, &item.Inventory{}, termio.NewWithScreen(screen, ch, false), 1)
	st.Hooks.DungeonSize = func() (int, int) { return 66, 198 }
	return st
}

func TestFoodBurnQuadraticInHaste(t *testing.T) {
	st := newTestState(t)
	st.P.Food = 2500
	st.P.FoodDigested = 3
	st.P.Speed = -2

	regen := st.foodConsumption()

	if st.P.Food != 2500-4-3 {
		t.Errorf("food = %d, want %d", st.P.Food, 2500-4-3)
	}
	if regen != player.RegenNormal {
		t.Errorf("regen = %d, want %d", regen, player.RegenNormal)
	}
}

func TestFoodRegenTiers(t *testing.T) {
	tests := []struct {
		food int
		want int
	}{
		{food: 5000, want: player.RegenNormal},
		{food: 1000, want: player.RegenNormal},
		{food: 250, want: player.RegenWeak},
		{food: -5, want: 0},
	}
	for _, tt := range tests {
		st := newTestState(t)
		st.P.Food = tt.food
		st.P.FoodDigested = 0
		st.P.Hungry = true
		st.P.Weak = true

		if got := st.foodConsumption(); got != tt.want {
			t.Errorf("food %d: regen = %d, want %d", tt.food, got, tt.want)
		}
	}
}

func TestStarvationDamage(t *testing.T) {
	st := newTestState(t)
	st.P.Food = -16
	st.P.FoodDigested = 0
	st.P.Weak = true
	st.P.Hungry = true

	var damage int
	var cause string
	st.Hooks.TakeHit = func(d int, c string) { damage, cause = d, c }

	if regen := st.foodConsumption(); regen != 0 {
		t.Errorf("regen while starving = %d, want 0", regen)
	}
	if damage != 1 || cause != "starvation" {
		t.Errorf("TakeHit(%d, %q), want (1, starvation)", damage, cause)
	}
}

func TestHungryMessageOncePerCrossing(t *testing.T) {
	st := newTestState(t)
	st.P.Food = 1900
	st.P.FoodDigested = 1

	hungerUpdates := 0
	st.Hooks.StatusChanged = func(f Field) {
		if f == FieldHunger {
			hungerUpdates++
		}
	}

	st.foodConsumption()
	st.foodConsumption()

	if hungerUpdates != 1 {
		t.Errorf("hunger status updates = %d, want 1", hungerUpdates)
	}
	if got := st.T.LastMessage(); got != "You are getting hungry." {
		t.Errorf("message = %q", got)
	}
	if !st.P.Hungry {
		t.Error("hungry latch not set")
	}
}

func TestRegenComposesMultiplicatively(t *testing.T) {
	st := newTestState(t)
	st.P.HP = 10
	st.P.FastRegen = true
	st.P.Rest = 5

	// Resting with fast regeneration must spend base*2*3/2, i.e.
	// exactly triple the base budget.
	want := *st.P
	want.RegenHP(300)
	want.RegenMana(300)

	st.applyRegen(100)

	if st.P.HP != want.HP || st.P.HPFrac != want.HPFrac {
		t.Errorf("HP %d+%d/65536, want %d+%d/65536", st.P.HP, st.P.HPFrac, want.HP, want.HPFrac)
	}
	if st.P.Mana != want.Mana || st.P.ManaFrac != want.ManaFrac {
		t.Errorf("mana %d+%d/65536, want %d+%d/65536", st.P.Mana, st.P.ManaFrac, want.Mana, want.ManaFrac)
	}
}

func TestPoisonRunsItsCourse(t *testing.T) {
	st := newTestState(t)
	st.P.Con = 6 // adjustment -1: flat 2 damage per tick
	st.P.Cond.Set(player.Poisoned, 4)

	total := 0
	st.Hooks.TakeHit = func(d int, c string) {
		if c == "poison" {
			total += d
		}
	}

	for i := 0; i < 4; i++ {
		st.updatePoison()
	}

	if total != 6 {
		t.Errorf("poison damage = %d, want 6", total)
	}
	if st.P.Cond.Active(player.Poisoned) {
		t.Error("poison still active after running its course")
	}
	if got := st.T.LastMessage(); got != "You feel better." {
		t.Errorf("message = %q", got)
	}

	// The charge is spent; nothing further happens.
	st.updatePoison()
	if total != 6 {
		t.Errorf("damage after expiry = %d, want 6", total)
	}
}

func TestWordRecallTogglesDepth(t *testing.T) {
	st := newTestState(t)
	st.P.NoteDepth(5)
	st.P.Cond.Set(player.WordRecall, 3)

	st.updateWordRecall()
	st.updateWordRecall()
	if st.NewLevel {
		t.Fatal("recall fired early")
	}

	st.updateWordRecall()
	if !st.NewLevel || st.P.Depth != 0 || st.P.Paralysis != 1 {
		t.Errorf("after recall: newLevel=%v depth=%d paralysis=%d", st.NewLevel, st.P.Depth, st.P.Paralysis)
	}
	if got := st.T.LastMessage(); got != "You feel yourself yanked upwards!" {
		t.Errorf("message = %q", got)
	}
	if st.P.Cond.Remaining(player.WordRecall) != 0 {
		t.Error("recall charge not consumed")
	}

	// From the surface it yanks back down to the deepest level seen.
	st.T.AckMessage()
	st.NewLevel = false
	st.P.Cond.Set(player.WordRecall, 1)
	st.updateWordRecall()
	if st.P.Depth != 5 {
		t.Errorf("depth = %d, want 5", st.P.Depth)
	}
	if got := st.T.LastMessage(); got != "You feel yourself yanked downwards!" {
		t.Errorf("message = %q", got)
	}
}

func TestRestDigestionSymmetry(t *testing.T) {
	st := newTestState(t)
	st.P.FoodDigested = 2
	st.Count = 3

	st.rest()
	if st.P.Rest != 3 || st.P.FoodDigested != 1 {
		t.Fatalf("rest=%d digested=%d, want 3 and 1", st.P.Rest, st.P.FoodDigested)
	}

	for i := 0; i < 3; i++ {
		st.updateResting()
	}
	if st.P.Rest != 0 || st.P.FoodDigested != 2 {
		t.Errorf("rest=%d digested=%d, want 0 and 2", st.P.Rest, st.P.FoodDigested)
	}
}

func TestRestUntilRecoveredSentinel(t *testing.T) {
	st := newTestState(t)
	st.P.Rest = -1
	st.P.HP = 10

	st.updateResting()
	if st.P.Rest != -1 {
		t.Fatal("sentinel rest ended before recovery")
	}

	st.P.HP = st.P.MaxHP
	st.P.Mana = st.P.MaxMana
	st.updateResting()
	if st.P.Rest != 0 {
		t.Error("sentinel rest did not end at full recovery")
	}
}
