package dungeon

import (
	"fmt"
	"math/rand"

	"gloomdelve/internal/item"
	"gloomdelve/internal/player"
	"gloomdelve/internal/termio"
	"gloomdelve/internal/turn"
)

// Map viewport on the 80x24 surface: rows 1..22, columns 13..79. Row 0
// is the message line, row 23 the affliction row, columns 0..12 the
// stat sidebar.
const (
	mapTop    = 1
	mapBottom = 22
	mapLeft   = 13
)

// dirDelta maps numpad directions to (row, col) offsets; rows grow
// downward. Entry 5 is the stay-in-place direction.
var dirDelta = [10]Point{
	{}, {1, -1}, {1, 0}, {1, 1},
	{0, -1}, {0, 0}, {0, 1},
	{-1, -1}, {-1, 0}, {-1, 1},
}

// store is one simulated shop; stock rolls over while the player is
// below ground.
type store struct {
	Name  string
	Stock int
}

// World owns the current level, its monsters and floor items, and the
// player's position on it. It implements every hook the turn core
// calls.
type World struct {
	st  *turn.State
	rng *rand.Rand

	Level    *Level
	Monsters []*Monster
	Pos      Point
	items    map[Point]item.Item

	stores   []store
	overWt   bool
	SaveFunc func() bool
}

// NewWorld wires a world into the turn core's hooks.
func NewWorld(st *turn.State, seed int64) *World {
	w := &World{
		st:  st,
		rng: rand.New(rand.NewSource(seed)),
		stores: []store{
			{"General Store", 12},
			{"Armoury", 8},
			{"Weapon Smith", 8},
			{"Alchemy Shop", 10},
		},
	}
	w.bind()
	return w
}

func (w *World) bind() {
	h := &w.st.Hooks
	h.TakeHit = w.takeHit
	h.UpdateMonsters = w.updateMonsters
	h.SpawnMonster = w.spawnMonster
	h.RestockStores = w.restockStores
	h.MonsterSlotsFree = func() int { return MaxMonsters - len(w.Monsters) }
	h.CompactMonsters = w.compact
	h.Teleport = w.teleport
	h.CheckView = w.checkView
	h.RedrawMap = w.redrawAll
	h.StatusChanged = w.statusChanged
	h.PlayerPos = func() (int, int) { return w.Pos.Row, w.Pos.Col }
	h.MoveChar = w.moveChar
	h.RunStep = w.runStep
	h.Tunnel = w.tunnel
	h.SearchHere = w.searchHere
	h.StairsHere = w.stairsHere
	h.Look = w.look
	h.CheckWeight = w.checkWeight
	h.DungeonSize = w.dungeonSize
	h.SymbolAt = w.symbolAt
	h.ItemCommand = w.itemCommand
	h.SaveGame = w.saveGame
	h.WizardCommand = w.wizardCommand
}

// NewLevel generates the level for the player's current depth and
// populates it. The caller follows with turn.State.RunLevel, which
// recenters the viewport and draws.
func (w *World) NewLevel() {
	depth := w.st.P.Depth
	cfg := DefaultConfig(depth, w.rng)
	lv, start := Generate(cfg)
	w.Level = lv
	w.Pos = start
	w.Monsters = w.Monsters[:0]
	w.items = make(map[Point]item.Item)

	n := 6 + depth/2 + w.rng.Intn(4)
	for i := 0; i < n; i++ {
		w.spawnMonster()
	}
	w.scatterItems(depth)

	w.st.T.ClearScreen()
	w.redrawStatus()
}

// scatterItems drops supplies and the odd enchanted find on room
// floors.
func (w *World) scatterItems(depth int) {
	n := 4 + w.rng.Intn(4)
	for i := 0; i < n; i++ {
		p, ok := w.randomFloor(func(p Point) bool {
			_, taken := w.items[p]
			return !taken && p != w.Pos
		})
		if !ok {
			return
		}
		w.items[p] = w.rollItem(depth)
	}
}

func (w *World) rollItem(depth int) item.Item {
	switch w.rng.Intn(6) {
	case 0, 1:
		return item.Item{Name: "ration of food", Kind: item.KindFood, Count: 1, Weight: 3, Nutrition: 5000}
	case 2:
		return item.Item{Name: "flask of oil", Kind: item.KindFlask, Count: 1, Weight: 10, Fuel: 7500}
	case 3:
		it := item.Item{Name: "dagger", Kind: item.KindWeapon, Count: 1, Weight: 12}
		if w.rng.Intn(4) == 0 {
			it.ToHit = 1 + w.rng.Intn(1+depth/5)
			it.ToDam = w.rng.Intn(2 + depth/5)
		}
		return it
	case 4:
		it := item.Item{Name: "soft leather armor", Kind: item.KindArmor, Count: 1, Weight: 80}
		if w.rng.Intn(4) == 0 {
			it.ToAC = 1 + w.rng.Intn(1+depth/4)
		}
		return it
	default:
		it := item.Item{Name: "plain ring", Kind: item.KindRing, Count: 1, Weight: 2}
		if w.rng.Intn(3) == 0 {
			it.Bonus = 1 + w.rng.Intn(3)
		}
		return it
	}
}

// randomFloor returns a walkable cell satisfying ok, or false after too
// many failed rolls.
func (w *World) randomFloor(ok func(Point) bool) (Point, bool) {
	for try := 0; try < 200; try++ {
		p := Point{Row: w.rng.Intn(w.Level.Height), Col: w.rng.Intn(w.Level.Width)}
		if !w.Level.IsWalkable(p.Row, p.Col) {
			continue
		}
		if ok == nil || ok(p) {
			return p, true
		}
	}
	return Point{}, false
}

// ---- drawing ----

// lightRadius is how far the player currently sees.
func (w *World) lightRadius() int {
	p := w.st.P
	if p.Cond.Active(player.Blind) {
		return 0
	}
	if p.CarryingLight {
		return 3
	}
	if p.SeeInfra > 0 {
		return p.SeeInfra
	}
	return 1
}

// checkView recenters the viewport on the player, recasts field of
// view, and repaints the map area.
func (w *World) checkView() {
	if w.Level == nil {
		return
	}
	w.st.GetPanel(w.Pos.Row, w.Pos.Col, false)
	w.Level.UpdateFOV(w.Pos, w.lightRadius())
	w.redrawMap()
}

func (w *World) redrawAll() {
	w.redrawStatus()
	w.checkView()
}

// redrawMap repaints the visible panel: explored terrain, then lit
// monsters, then the player.
func (w *World) redrawMap() {
	panelRow, panelCol := w.st.T.Panel()
	for sr := mapTop; sr <= mapBottom; sr++ {
		for sc := mapLeft; sc < termio.ScreenWidth; sc++ {
			wr, wc := sr+panelRow, sc+panelCol
			w.st.T.PutChar(w.cellGlyph(wr, wc), wr, wc)
		}
	}
	for _, m := range w.Monsters {
		m.Lit = w.monsterVisible(m)
		if m.Lit {
			w.st.T.PutChar(w.monsterGlyph(m), m.Pos.Row, m.Pos.Col)
		}
	}
	w.st.T.PutChar('@', w.Pos.Row, w.Pos.Col)
	w.st.T.Flush()
}

// cellGlyph is the terrain/item rune for one world cell, blank when
// unexplored.
func (w *World) cellGlyph(row, col int) rune {
	if !w.Level.InBounds(row, col) || !w.Level.At(row, col).Explored {
		return ' '
	}
	t := w.Level.At(row, col)
	if t.Visible && !t.Hidden {
		if it, ok := w.items[Point{row, col}]; ok {
			return itemGlyph(it)
		}
	}
	return t.Glyph()
}

func itemGlyph(it item.Item) rune {
	switch it.Kind {
	case item.KindFood:
		return ','
	case item.KindFlask:
		return '!'
	case item.KindWeapon:
		return '|'
	case item.KindArmor:
		return '('
	case item.KindRing:
		return '='
	default:
		return '?'
	}
}

func (w *World) monsterVisible(m *Monster) bool {
	return w.Level.At(m.Pos.Row, m.Pos.Col).Visible && !w.st.P.Cond.Active(player.Blind)
}

func (w *World) monsterGlyph(m *Monster) rune {
	if w.st.P.Cond.Active(player.Hallucinating) {
		return rune('a' + w.rng.Intn(26))
	}
	return m.Glyph
}

// drawCell repaints one world cell if it lies inside the panel.
func (w *World) drawCell(p Point) {
	panelRow, panelCol := w.st.T.Panel()
	sr, sc := p.Row-panelRow, p.Col-panelCol
	if sr < mapTop || sr > mapBottom || sc < mapLeft || sc >= termio.ScreenWidth {
		return
	}
	switch {
	case p == w.Pos:
		w.st.T.PutChar('@', p.Row, p.Col)
	default:
		if m := w.monsterAt(p); m != nil && m.Lit {
			w.st.T.PutChar(w.monsterGlyph(m), p.Row, p.Col)
			return
		}
		w.st.T.PutChar(w.cellGlyph(p.Row, p.Col), p.Row, p.Col)
	}
}

// ---- movement ----

func (w *World) monsterAt(p Point) *Monster {
	for _, m := range w.Monsters {
		if m.Pos == p {
			return m
		}
	}
	return nil
}

func (w *World) moveChar(dir int, pickup bool) {
	d := dirDelta[dir]
	dest := Point{Row: w.Pos.Row + d.Row, Col: w.Pos.Col + d.Col}

	// Confusion scrambles the step half the time.
	if w.st.P.Cond.Active(player.Confused) && dir != 5 && w.rng.Intn(2) == 0 {
		dest = Point{
			Row: w.Pos.Row + w.rng.Intn(3) - 1,
			Col: w.Pos.Col + w.rng.Intn(3) - 1,
		}
	}

	if m := w.monsterAt(dest); m != nil && dest != w.Pos {
		w.playerAttack(m)
		return
	}

	if !w.Level.IsWalkable(dest.Row, dest.Col) {
		switch t := w.Level.At(dest.Row, dest.Col); {
		case t.Kind == TileRubble:
			w.st.T.Message("There is rubble blocking your way.")
		case t.Kind == TileClosedDoor && !t.Hidden:
			w.st.T.Message("There is a closed door blocking your way.")
		default:
			w.st.T.Message("There is a wall in your way.")
		}
		w.st.FreeTurn = true
		return
	}

	old := w.Pos
	w.Pos = dest
	w.checkView()
	w.drawCell(old)

	if it, ok := w.items[dest]; ok && dest != old {
		if pickup {
			delete(w.items, dest)
			w.st.Inv.Add(it)
			w.st.P.InvenWeight = w.st.Inv.Weight
			w.st.T.Message("You have " + it.Name + ".")
			w.checkWeight()
		} else {
			w.st.T.Message("You see " + it.Name + ".")
		}
	}
	w.st.T.Flush()
}

// runStep advances an auto-run one step; false stops the run.
func (w *World) runStep(dir int) bool {
	d := dirDelta[dir]
	dest := Point{Row: w.Pos.Row + d.Row, Col: w.Pos.Col + d.Col}
	if !w.Level.IsWalkable(dest.Row, dest.Col) || w.monsterAt(dest) != nil {
		return false
	}
	for _, m := range w.Monsters {
		if m.Lit {
			return false
		}
	}
	w.moveChar(dir, true)
	// Stop at anything worth a look: doors, stairs, items.
	t := w.Level.At(w.Pos.Row, w.Pos.Col)
	if t.Kind == TileDoor || t.Kind == TileStairsUp || t.Kind == TileStairsDown {
		return false
	}
	if _, ok := w.items[w.Pos]; ok {
		return false
	}
	return true
}

// tunnel digs one step in the given direction.
func (w *World) tunnel(dir int) {
	d := dirDelta[dir]
	dest := Point{Row: w.Pos.Row + d.Row, Col: w.Pos.Col + d.Col}

	if m := w.monsterAt(dest); m != nil {
		w.st.T.Message("The " + m.Name + " is in your way!")
		w.playerAttack(m)
		return
	}
	if !w.Level.InBounds(dest.Row, dest.Col) {
		w.st.T.CountMessage("You tunnel into the granite wall.")
		return
	}

	wpn := w.st.Inv.Equipment[item.SlotWeapon]
	digPower := wpn.Weight/10 + wpn.ToDam + w.st.P.Level/3

	switch t := w.Level.At(dest.Row, dest.Col); {
	case t.Kind == TileRubble:
		if w.rng.Intn(100) < 40+digPower*5 {
			w.Level.Set(dest.Row, dest.Col, MakeCorridor())
			w.st.T.Message("You have removed the rubble.")
			w.checkView()
		} else {
			w.st.T.CountMessage("You dig away at the rubble.")
		}
	case t.Kind == TileClosedDoor && !t.Hidden:
		w.st.T.Message("You cannot tunnel through a door. Try opening it.")
		w.st.FreeTurn = true
	case !t.Walkable:
		if w.rng.Intn(100) < digPower {
			w.Level.Set(dest.Row, dest.Col, MakeCorridor())
			w.st.T.Message("You have finished the tunnel.")
			w.checkView()
		} else {
			w.st.T.CountMessage("You tunnel into the granite wall.")
		}
	default:
		w.st.T.Message("Tunneling through air?")
		w.st.FreeTurn = true
	}
}

// searchHere probes the adjacent cells for secret doors.
func (w *World) searchHere() {
	chance := 30 + w.st.P.Level
	if w.st.P.Cond.Active(player.Blind) || !w.st.P.CarryingLight {
		chance /= 10
	}
	if w.st.P.Cond.Active(player.Confused) {
		chance /= 10
	}
	found := false
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			p := Point{Row: w.Pos.Row + dr, Col: w.Pos.Col + dc}
			if !w.Level.InBounds(p.Row, p.Col) {
				continue
			}
			t := w.Level.At(p.Row, p.Col)
			if t.Hidden && w.rng.Intn(100) < chance {
				t.Hidden = false
				found = true
				w.drawCell(p)
			}
		}
	}
	if found {
		w.st.T.Message("You have found a secret door.")
		w.st.Disturb(false)
	}
}

func (w *World) stairsHere(down bool) bool {
	k := w.Level.At(w.Pos.Row, w.Pos.Col).Kind
	if down {
		return k == TileStairsDown
	}
	return k == TileStairsUp
}

// look reports what stands out nearby.
func (w *World) look() {
	if w.st.P.Cond.Active(player.Blind) {
		w.st.T.Message("You can't see a damn thing!")
		return
	}
	seen := 0
	var nearest *Monster
	for _, m := range w.Monsters {
		if !w.monsterVisible(m) {
			continue
		}
		seen++
		if nearest == nil || distance(m.Pos, w.Pos) < distance(nearest.Pos, w.Pos) {
			nearest = m
		}
	}
	if it, ok := w.items[w.Pos]; ok {
		w.st.T.Message("You see " + it.Name + ".")
	}
	switch {
	case seen == 0:
		w.st.T.Message("You see nothing of interest.")
	case seen == 1:
		w.st.T.Message("You see the " + nearest.Name + ".")
	default:
		w.st.T.Message(fmt.Sprintf("You see %d creatures, the nearest a %s.", seen, nearest.Name))
	}
}

// teleport lands the player on a random open cell up to maxDist away.
func (w *World) teleport(maxDist int) {
	for try := 0; try < 200; try++ {
		dest := Point{
			Row: w.Pos.Row + w.rng.Intn(2*maxDist+1) - maxDist,
			Col: w.Pos.Col + w.rng.Intn(2*maxDist+1) - maxDist,
		}
		if !w.Level.IsWalkable(dest.Row, dest.Col) || w.monsterAt(dest) != nil {
			continue
		}
		w.Pos = dest
		w.st.GetPanel(dest.Row, dest.Col, true)
		w.Level.UpdateFOV(w.Pos, w.lightRadius())
		w.redrawMap()
		return
	}
}

// ---- combat ----

func (w *World) playerAttack(m *Monster) {
	p := w.st.P
	if p.Cond.Active(player.Afraid) {
		w.st.T.Message("You are too afraid to attack the " + m.Name + "!")
		return
	}
	wpn := w.st.Inv.Equipment[item.SlotWeapon]
	chance := 40 + p.ToHit + wpn.ToHit*3 + p.Level*2
	if p.Cond.Active(player.Blind) {
		chance /= 2
	}
	if w.rng.Intn(100) >= chance {
		w.st.T.CountMessage("You miss the " + m.Name + ".")
		return
	}
	dmg := 1 + w.rng.Intn(3+wpn.Weight/15) + wpn.ToDam
	if p.Cond.Active(player.Hero) {
		dmg++
	}
	if p.Cond.Active(player.SuperHero) {
		dmg += 2
	}
	m.HP -= dmg
	if m.HP <= 0 {
		w.st.T.Message("You have slain the " + m.Name + ".")
		w.killMonster(m)
		p.Exp += m.MaxHP + p.Depth
		w.statusChanged(turn.FieldExp)
	} else {
		w.st.T.CountMessage("You hit the " + m.Name + ".")
	}
}

func (w *World) killMonster(dead *Monster) {
	for i, m := range w.Monsters {
		if m == dead {
			w.Monsters = append(w.Monsters[:i], w.Monsters[i+1:]...)
			break
		}
	}
	w.drawCell(dead.Pos)
}

// takeHit applies damage to the player; crossing zero kills.
func (w *World) takeHit(damage int, cause string) {
	p := w.st.P
	if p.Dead {
		return
	}
	if p.Rest != 0 || w.st.RunDir != 0 || w.st.Count > 0 {
		w.st.Disturb(false)
	}
	p.HP -= damage
	w.statusChanged(turn.FieldHP)
	if p.HP < 0 {
		p.Dead = true
		p.DiedFrom = cause
		w.st.NewLevel = true
		w.st.T.Message("You die.")
	}
}

// ---- monsters ----

func (w *World) spawnMonster() {
	if len(w.Monsters) >= MaxMonsters || w.Level == nil {
		return
	}
	p, ok := w.randomFloor(func(p Point) bool {
		if w.monsterAt(p) != nil || p == w.Pos {
			return false
		}
		return !w.Level.At(p.Row, p.Col).Visible && distance(p, w.Pos) > 10
	})
	if !ok {
		return
	}
	b := pickBreed(w.st.P.Depth, w.rng)
	hp := b.HP + w.rng.Intn(b.HP/2+1)
	w.Monsters = append(w.Monsters, &Monster{
		Name: b.Name, Glyph: b.Glyph, Pos: p,
		HP: hp, MaxHP: hp, Attack: b.Attack, Sight: b.Sight,
	})
}

// updateMonsters refreshes monster lighting; alsoMove lets them chase
// and strike.
func (w *World) updateMonsters(alsoMove bool) {
	if w.Level == nil {
		return
	}
	for _, m := range w.Monsters {
		if alsoMove && !w.st.P.Dead {
			w.monsterAct(m)
		}
	}
	// Relight after moves so erases land on the vacated cells.
	for _, m := range w.Monsters {
		lit := w.monsterVisible(m)
		if lit != m.Lit {
			m.Lit = lit
			w.drawCell(m.Pos)
		}
	}
	w.st.T.Flush()
}

func (w *World) monsterAct(m *Monster) {
	dist := distance(m.Pos, w.Pos)
	if dist > m.Sight {
		return
	}
	if dist == 1 {
		if w.rng.Intn(100) < 25+w.st.P.DisplayAC*3 {
			w.st.T.Message("The " + m.Name + " misses you.")
			return
		}
		w.st.T.Message("The " + m.Name + " hits you.")
		w.takeHit(1+w.rng.Intn(m.Attack), "a "+m.Name)
		return
	}
	dr := sign(w.Pos.Row - m.Pos.Row)
	dc := sign(w.Pos.Col - m.Pos.Col)
	for _, d := range [3]Point{{dr, dc}, {dr, 0}, {0, dc}} {
		if d == (Point{}) {
			continue
		}
		dest := Point{Row: m.Pos.Row + d.Row, Col: m.Pos.Col + d.Col}
		if !w.Level.IsWalkable(dest.Row, dest.Col) || w.monsterAt(dest) != nil || dest == w.Pos {
			continue
		}
		old := m.Pos
		m.Pos = dest
		if m.Lit {
			m.Lit = false
			w.drawCell(old)
		}
		break
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// compact frees registry slots, discarding the farthest monsters first.
func (w *World) compact() {
	before := append([]*Monster(nil), w.Monsters...)
	w.Monsters = compactMonsters(w.Monsters, w.Pos)
	kept := make(map[*Monster]bool, len(w.Monsters))
	for _, m := range w.Monsters {
		kept[m] = true
	}
	for _, m := range before {
		if !kept[m] && m.Lit {
			w.drawCell(m.Pos)
		}
	}
}

// restockStores rolls shop inventories over while the player is away.
func (w *World) restockStores() {
	for i := range w.stores {
		w.stores[i].Stock = 6 + w.rng.Intn(12)
	}
}

// ---- overview ----

func (w *World) dungeonSize() (int, int) {
	if w.Level == nil {
		return 0, 0
	}
	return w.Level.Height, w.Level.Width
}

func (w *World) symbolAt(row, col int) rune {
	if w.Level == nil || !w.Level.InBounds(row, col) {
		return ' '
	}
	if (Point{row, col}) == w.Pos {
		return '@'
	}
	t := w.Level.At(row, col)
	if !t.Explored {
		return ' '
	}
	return t.Glyph()
}

// ---- weight ----

// checkWeight warns when the pack crosses the carry limit, once per
// crossing.
func (w *World) checkWeight() {
	p := w.st.P
	p.InvenWeight = w.st.Inv.Weight
	over := p.InvenWeight > p.WeightLimit
	if over && !w.overWt {
		w.st.T.Message("Your pack is so heavy that it slows you down.")
	} else if !over && w.overWt {
		w.st.T.Message("Your pack is no longer slowing you down.")
	}
	w.overWt = over
}

func (w *World) saveGame() bool {
	if w.SaveFunc == nil {
		return false
	}
	return w.SaveFunc()
}

// wizardCommand covers the debug commands the turn core does not own.
func (w *World) wizardCommand(cmd rune) bool {
	switch cmd {
	case termio.Ctrl('F'):
		for r := 0; r < w.Level.Height; r++ {
			for c := 0; c < w.Level.Width; c++ {
				t := w.Level.At(r, c)
				t.Explored = true
				t.Hidden = false
			}
		}
		w.redrawMap()
		return true
	default:
		return false
	}
}
