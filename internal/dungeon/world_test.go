package dungeon

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"gloomdelve/internal/item"
	"gloomdelve/internal/player"
	"gloomdelve/internal/termio"
	"gloomdelve/internal/turn"
)

func keyEvent(r rune) *tcell.EventKey {
	if r >= 1 && r <= 26 {
		return tcell.NewEventKey(tcell.Key(r), r, tcell.ModNone)
	}
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

// newTestWorld builds a world over a simulation screen with a small
// handmade level: one open room with both staircases on the east side.
func newTestWorld(t *testing.T, keys ...rune) *World {
	t.Helper()

	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	screen.SetSize(termio.ScreenWidth, termio.ScreenHeight)
	t.Cleanup(screen.Fini)

	ch := make(chan tcell.Event, len(keys)+4)
	for _, r := range keys {
		ch <- keyEvent(r)
	}
	close(ch)

	p := &player.Player{
		HP: 20, MaxHP: 20,
		Level:         1,
		Food:          5000,
		FoodDigested:  2,
		WeightLimit:   100,
		CarryingLight: true,
	}
	st := turn.New(p, &item.Inventory{}, termio.NewWithScreen(screen, ch, false), 1)
	w := NewWorld(st, 1)

	lv := openLevel(24, 40)
	lv.StairsUp = Point{Row: 5, Col: 30}
	lv.StairsDown = Point{Row: 6, Col: 30}
	lv.Set(5, 30, MakeStairsUp())
	lv.Set(6, 30, MakeStairsDown())
	w.Level = lv
	w.Pos = Point{Row: 10, Col: 10}
	w.items = make(map[Point]item.Item)
	w.checkView()
	return w
}

func TestMoveCharIntoWallIsFree(t *testing.T) {
	w := newTestWorld(t)
	w.Pos = Point{Row: 1, Col: 10}

	w.moveChar(8, true) // north into the border wall

	if w.Pos != (Point{Row: 1, Col: 10}) {
		t.Fatalf("player moved to %v", w.Pos)
	}
	if !w.st.FreeTurn {
		t.Error("bumping a wall should not cost the turn")
	}
	if got := w.st.T.LastMessage(); !strings.Contains(got, "wall in your way") {
		t.Errorf("message = %q", got)
	}
}

func TestMoveCharStepsAndPicksUp(t *testing.T) {
	w := newTestWorld(t)
	w.items[Point{Row: 10, Col: 11}] = item.Item{Name: "ration of food", Kind: item.KindFood, Count: 1, Weight: 3}

	w.moveChar(6, true) // east onto the item

	if w.Pos != (Point{Row: 10, Col: 11}) {
		t.Fatalf("player at %v", w.Pos)
	}
	if len(w.st.Inv.Pack) != 1 {
		t.Fatal("item not picked up")
	}
	if _, still := w.items[w.Pos]; still {
		t.Error("item left on the floor")
	}
}

func TestMoveCharWithoutPickupLeavesItem(t *testing.T) {
	w := newTestWorld(t)
	w.items[Point{Row: 10, Col: 11}] = item.Item{Name: "plain ring", Kind: item.KindRing, Count: 1, Weight: 2}

	w.moveChar(6, false)

	if len(w.st.Inv.Pack) != 0 {
		t.Fatal("item picked up despite move-without-pickup")
	}
	if got := w.st.T.LastMessage(); !strings.Contains(got, "You see plain ring") {
		t.Errorf("message = %q", got)
	}
}

func TestStairsHere(t *testing.T) {
	w := newTestWorld(t)
	w.Pos = Point{Row: 6, Col: 30}
	if !w.stairsHere(true) || w.stairsHere(false) {
		t.Error("standing on > should report down only")
	}
	w.Pos = Point{Row: 5, Col: 30}
	if !w.stairsHere(false) || w.stairsHere(true) {
		t.Error("standing on < should report up only")
	}
}

func TestTakeHitKillsBelowZero(t *testing.T) {
	w := newTestWorld(t)
	w.st.P.HP = 3

	w.takeHit(3, "a kobold")
	if w.st.P.Dead {
		t.Fatal("exactly zero HP should not kill")
	}

	w.takeHit(1, "a kobold")
	if !w.st.P.Dead {
		t.Fatal("negative HP should kill")
	}
	if w.st.P.DiedFrom != "a kobold" {
		t.Errorf("DiedFrom = %q", w.st.P.DiedFrom)
	}
	if !w.st.NewLevel {
		t.Error("death should unwind the level loop")
	}
}

func TestPlayerAttackWhileAfraid(t *testing.T) {
	w := newTestWorld(t)
	m := &Monster{Name: "kobold", Glyph: 'k', Pos: Point{Row: 10, Col: 11}, HP: 5, MaxHP: 5, Attack: 2, Sight: 8}
	w.Monsters = append(w.Monsters, m)
	w.st.P.Cond.Set(player.Afraid, 5)
	w.st.P.Cond.BeginTick(player.Afraid)

	w.moveChar(6, true)

	if m.HP != 5 {
		t.Error("afraid player still landed a hit")
	}
	if w.Pos != (Point{Row: 10, Col: 10}) {
		t.Error("player walked into the monster's cell")
	}
}

func TestMonsterChasesAndStops(t *testing.T) {
	w := newTestWorld(t)
	m := &Monster{Name: "orc", Glyph: 'o', Pos: Point{Row: 10, Col: 14}, HP: 10, MaxHP: 10, Attack: 3, Sight: 10}
	w.Monsters = append(w.Monsters, m)

	w.updateMonsters(true)
	if m.Pos != (Point{Row: 10, Col: 13}) {
		t.Fatalf("monster at %v after one move", m.Pos)
	}

	// Out of sight range: stays put.
	m.Pos = Point{Row: 10, Col: 35}
	m.Sight = 5
	w.updateMonsters(true)
	if m.Pos != (Point{Row: 10, Col: 35}) {
		t.Errorf("out-of-range monster moved to %v", m.Pos)
	}
}

func TestMonsterAdjacentAttacksInstead(t *testing.T) {
	w := newTestWorld(t)
	m := &Monster{Name: "orc", Glyph: 'o', Pos: Point{Row: 10, Col: 11}, HP: 10, MaxHP: 10, Attack: 3, Sight: 10}
	w.Monsters = append(w.Monsters, m)
	before := w.st.P.HP

	// Attacks either land or miss, but the monster never moves.
	for i := 0; i < 10; i++ {
		w.updateMonsters(true)
	}

	if m.Pos != (Point{Row: 10, Col: 11}) {
		t.Fatal("adjacent monster moved instead of attacking")
	}
	if w.st.P.HP == before {
		t.Error("ten attack rounds never landed a hit")
	}
}

func TestSpawnMonsterAvoidsView(t *testing.T) {
	w := newTestWorld(t)
	for i := 0; i < 20; i++ {
		w.spawnMonster()
	}
	if len(w.Monsters) == 0 {
		t.Fatal("nothing spawned")
	}
	for _, m := range w.Monsters {
		if w.Level.At(m.Pos.Row, m.Pos.Col).Visible {
			t.Errorf("monster spawned in view at %v", m.Pos)
		}
		if d := distance(m.Pos, w.Pos); d <= 10 {
			t.Errorf("monster spawned %d cells away", d)
		}
	}
}

func TestSearchRevealsSecretDoor(t *testing.T) {
	w := newTestWorld(t)
	w.Level.Set(10, 11, MakeSecretDoor())
	w.st.P.Level = 50 // search chance saturates

	for i := 0; i < 40 && w.Level.At(10, 11).Hidden; i++ {
		w.searchHere()
	}

	if w.Level.At(10, 11).Hidden {
		t.Fatal("secret door never found at saturated chance")
	}
	if got := w.st.T.LastMessage(); !strings.Contains(got, "secret door") {
		t.Errorf("message = %q", got)
	}
}

func TestCheckWeightWarnsOncePerCrossing(t *testing.T) {
	w := newTestWorld(t)
	w.st.Inv.Weight = 150

	w.checkWeight()
	if got := w.st.T.LastMessage(); !strings.Contains(got, "slows you down") {
		t.Fatalf("message = %q", got)
	}

	w.st.T.Message("marker")
	w.checkWeight()
	if got := w.st.T.LastMessage(); !strings.Contains(got, "marker") {
		t.Error("second check repeated the warning")
	}

	w.st.Inv.Weight = 10
	w.checkWeight()
	if got := w.st.T.LastMessage(); !strings.Contains(got, "no longer slowing") {
		t.Errorf("message = %q", got)
	}
}

func TestTunnelRubbleEventuallyClears(t *testing.T) {
	w := newTestWorld(t)
	w.Level.Set(10, 11, MakeRubble())
	w.st.Inv.Equipment[item.SlotWeapon] = item.Item{Name: "pick", Kind: item.KindWeapon, Weight: 150, Count: 1}

	for i := 0; i < 50 && w.Level.At(10, 11).Kind == TileRubble; i++ {
		w.tunnel(6)
	}

	if w.Level.At(10, 11).Kind == TileRubble {
		t.Fatal("rubble survived 50 digs with a heavy weapon")
	}
	if !w.Level.IsWalkable(10, 11) {
		t.Error("cleared rubble not walkable")
	}
}

func TestTunnelAirIsFree(t *testing.T) {
	w := newTestWorld(t)
	w.tunnel(6)
	if !w.st.FreeTurn {
		t.Error("tunneling air should be free")
	}
}

func TestItemCommandRefusalsAreFree(t *testing.T) {
	w := newTestWorld(t)
	for _, cmd := range []rune{'q', 'r', 'm', 'z', 'Z', 'P', 'S', 'G'} {
		if !w.itemCommand(cmd) {
			t.Errorf("%q refusal should be a free turn", cmd)
		}
	}
}

func TestWearSwapsIntoSlot(t *testing.T) {
	w := newTestWorld(t, 'a')
	w.st.Inv.Add(item.Item{Name: "long sword", Kind: item.KindWeapon, Count: 1, Weight: 30})

	free := w.itemCommand('w')

	if free {
		t.Error("wielding should cost the turn")
	}
	if got := w.st.Inv.Equipment[item.SlotWeapon].Name; got != "long sword" {
		t.Fatalf("wielded %q", got)
	}
	if len(w.st.Inv.Pack) != 0 {
		t.Error("pack entry not consumed")
	}
}

func TestDropAndReclaim(t *testing.T) {
	w := newTestWorld(t, 'a')
	w.st.Inv.Add(item.Item{Name: "plain ring", Kind: item.KindRing, Count: 1, Weight: 2})

	if free := w.itemCommand('d'); free {
		t.Error("dropping should cost the turn")
	}
	it, ok := w.items[w.Pos]
	if !ok || it.Name != "plain ring" {
		t.Fatalf("floor item = %+v", it)
	}
	if len(w.st.Inv.Pack) != 0 {
		t.Error("pack entry not removed")
	}
}

func TestOpenDoor(t *testing.T) {
	w := newTestWorld(t, '6') // direction in the original keyset
	w.Level.Set(10, 11, MakeClosedDoor())

	if free := w.itemCommand('o'); free {
		t.Error("opening a door should cost the turn")
	}
	if w.Level.At(10, 11).Kind == TileClosedDoor {
		t.Skip("door stuck on this roll")
	}
	if !w.Level.IsWalkable(10, 11) {
		t.Error("opened door not walkable")
	}
}

func TestCloseDoorBlockedByMonster(t *testing.T) {
	w := newTestWorld(t, '6')
	w.Level.Set(10, 11, MakeDoor())
	w.Monsters = append(w.Monsters, &Monster{Name: "rat", Glyph: 'r', Pos: Point{Row: 10, Col: 11}, HP: 3, MaxHP: 3, Attack: 1, Sight: 8})

	if free := w.itemCommand('c'); !free {
		t.Error("refused close should be free")
	}
	if w.Level.At(10, 11).Kind != TileDoor {
		t.Error("door closed onto a monster")
	}
}

func TestSymbolAtOverview(t *testing.T) {
	w := newTestWorld(t)
	if got := w.symbolAt(w.Pos.Row, w.Pos.Col); got != '@' {
		t.Errorf("player cell = %q", got)
	}
	if got := w.symbolAt(0, 0); got != ' ' {
		t.Errorf("unexplored wall = %q", got)
	}
	if got := w.symbolAt(-5, -5); got != ' ' {
		t.Errorf("out of bounds = %q", got)
	}
}

func TestCompactErasesAndFrees(t *testing.T) {
	w := newTestWorld(t)
	near := &Monster{Name: "near", Pos: Point{Row: 10, Col: 11}}
	far := &Monster{Name: "far", Pos: Point{Row: 22, Col: 150}}
	w.Monsters = append(w.Monsters, near, far)

	w.compact()

	if len(w.Monsters) != 1 || w.Monsters[0] != near {
		t.Fatalf("kept %d monsters", len(w.Monsters))
	}
}
