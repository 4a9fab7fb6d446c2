package dungeon

import (
	"fmt"

	"gloomdelve/internal/item"
	"gloomdelve/internal/termio"
	"gloomdelve/internal/turn"
)

// itemCommand handles the object command family. The return value is
// whether the command turned out to be free: browsing and refusals
// cost nothing, handling objects costs the turn.
func (w *World) itemCommand(cmd rune) bool {
	switch cmd {
	case 'i':
		w.showInventory()
		return true
	case 'e':
		w.showEquipment()
		return true
	case 'w':
		return w.wear()
	case 'T':
		return w.takeOff()
	case 'X':
		return w.exchangeWeapon()
	case 'd':
		return w.drop()
	case 't':
		return w.throwItem()
	case 'o':
		return w.openDoor()
	case 'c':
		return w.closeDoor()
	case 'f':
		return w.bash()
	case '{':
		return w.inscribe()
	case 'q':
		w.st.T.Message("You have nothing to quaff.")
	case 'r':
		w.st.T.Message("You are not carrying any scrolls you can read.")
	case 'm':
		w.st.T.Message("You can't cast spells!")
	case 'p':
		w.st.T.Message("Pray hard enough and your prayers may be answered.")
	case 'G':
		w.st.T.Message("You cannot learn anything new.")
	case 'z':
		w.st.T.Message("You are not carrying any wands.")
	case 'Z':
		w.st.T.Message("You are not carrying any staffs.")
	case 'P':
		w.st.T.Message("You are not carrying any books.")
	case 'S':
		w.st.T.Message("But you have no spikes.")
	case 'D':
		w.st.T.Message("I see nothing to disarm there.")
	}
	return true
}

// showInventory lists the pack as a full-screen overlay.
func (w *World) showInventory() {
	t := w.st.T
	t.SaveScreen()
	t.ClearScreen()
	t.PutString("You are carrying:", 0, 0)
	if len(w.st.Inv.Pack) == 0 {
		t.PutString("   Nothing.", 2, 0)
	}
	for i, it := range w.st.Inv.Pack {
		t.PutString(fmt.Sprintf("%c) %s", 'a'+i, describeItem(it)), i+2, 0)
	}
	t.Pause(len(w.st.Inv.Pack) + 3)
	t.RestoreScreen()
}

// showEquipment lists worn and held objects.
func (w *World) showEquipment() {
	t := w.st.T
	t.SaveScreen()
	t.ClearScreen()
	t.PutString("You are using:", 0, 0)
	row := 2
	for slot, it := range w.st.Inv.Equipment {
		if it.Kind == item.KindNone {
			continue
		}
		t.PutString(fmt.Sprintf("%c) %-28s (%s)", 'a'+slot, describeItem(it), item.SlotUse(slot)), row, 0)
		row++
	}
	if row == 2 {
		t.PutString("   Nothing.", 2, 0)
	}
	t.Pause(row + 1)
	t.RestoreScreen()
}

func describeItem(it item.Item) string {
	s := it.Name
	if it.Count > 1 {
		s = fmt.Sprintf("%d %ss", it.Count, it.Name)
	}
	if it.Identified {
		switch {
		case it.ToHit != 0 || it.ToDam != 0:
			s += fmt.Sprintf(" (%+d,%+d)", it.ToHit, it.ToDam)
		case it.ToAC != 0:
			s += fmt.Sprintf(" [%+d]", it.ToAC)
		case it.Bonus != 0:
			s += fmt.Sprintf(" (%+d)", it.Bonus)
		}
	} else if it.Sensed {
		s += " {magik}"
	}
	return s
}

// pickPackItem prompts for a pack letter; false means aborted.
func (w *World) pickPackItem(prompt string, want func(item.Item) bool) (int, bool) {
	if len(w.st.Inv.Pack) == 0 {
		w.st.T.Message("You are not carrying anything.")
		return 0, false
	}
	key, ok := w.st.T.Command(prompt)
	if !ok {
		return 0, false
	}
	i := int(key - 'a')
	if i < 0 || i >= len(w.st.Inv.Pack) {
		w.st.T.Message("You do not have that item.")
		return 0, false
	}
	if want != nil && !want(w.st.Inv.Pack[i]) {
		w.st.T.Message("You can't do that with it.")
		return 0, false
	}
	return i, true
}

// wear puts a pack item into its equipment slot, swapping out whatever
// occupied it.
func (w *World) wear() bool {
	i, ok := w.pickPackItem("Wear/Wield which item? ", func(it item.Item) bool {
		return slotFor(it.Kind) >= 0
	})
	if !ok {
		return true
	}
	inv := w.st.Inv
	it := inv.Pack[i]
	slot := slotFor(it.Kind)

	worn := inv.Equipment[slot]
	single := it
	single.Count = 1
	inv.RemoveOne(i)
	inv.Equipment[slot] = single
	if worn.Kind != item.KindNone {
		inv.Add(worn)
	}
	inv.Weight = inv.TotalWeight()

	switch it.Kind {
	case item.KindWeapon:
		w.st.T.Message("You are wielding " + it.Name + ".")
	case item.KindLamp:
		w.st.T.Message("Your light source is " + it.Name + ".")
		w.st.P.LightFuel = single.Fuel
		w.st.P.CarryingLight = single.Fuel > 0
		w.checkView()
	default:
		w.st.T.Message("You are wearing " + it.Name + ".")
	}
	if it.Kind == item.KindArmor {
		w.st.P.AC += single.ToAC
		w.st.P.DisplayAC = w.st.P.AC
		w.statusChangedAC()
	}
	w.checkWeight()
	return false
}

func slotFor(k item.Kind) int {
	switch k {
	case item.KindWeapon:
		return item.SlotWeapon
	case item.KindArmor:
		return item.SlotArmor
	case item.KindLamp:
		return item.SlotLight
	case item.KindRing:
		return item.SlotRing
	default:
		return -1
	}
}

// takeOff removes worn armor or ring back into the pack.
func (w *World) takeOff() bool {
	inv := w.st.Inv
	for _, slot := range [2]int{item.SlotArmor, item.SlotRing} {
		if inv.Equipment[slot].Kind == item.KindNone {
			continue
		}
		it := inv.Equipment[slot]
		inv.Equipment[slot] = item.Item{}
		inv.Add(it)
		inv.Weight = inv.TotalWeight()
		if slot == item.SlotArmor {
			w.st.P.AC -= it.ToAC
			w.st.P.DisplayAC = w.st.P.AC
			w.statusChangedAC()
		}
		w.st.T.Message("You take off " + it.Name + ".")
		return false
	}
	w.st.T.Message("You are not wearing anything you can take off.")
	return true
}

// exchangeWeapon swaps the wielded weapon with the first spare in the
// pack.
func (w *World) exchangeWeapon() bool {
	inv := w.st.Inv
	i, ok := inv.FindKind(item.KindWeapon)
	if !ok {
		w.st.T.Message("But you have nothing to exchange it with.")
		return true
	}
	spare := inv.Pack[i]
	spare.Count = 1
	inv.RemoveOne(i)
	worn := inv.Equipment[item.SlotWeapon]
	inv.Equipment[item.SlotWeapon] = spare
	if worn.Kind != item.KindNone {
		inv.Add(worn)
	}
	inv.Weight = inv.TotalWeight()
	w.st.T.Message("You are wielding " + spare.Name + ".")
	return false
}

// drop puts a pack item on the floor underfoot.
func (w *World) drop() bool {
	if _, taken := w.items[w.Pos]; taken {
		w.st.T.Message("There is something there already.")
		return true
	}
	i, ok := w.pickPackItem("Drop which item? ", nil)
	if !ok {
		return true
	}
	it := w.st.Inv.Pack[i]
	it.Count = 1
	w.st.Inv.RemoveOne(i)
	w.items[w.Pos] = it
	w.st.T.Message("Dropped " + it.Name + ".")
	w.checkWeight()
	return false
}

// throwItem flings a pack item along a direction until it hits
// something.
func (w *World) throwItem() bool {
	i, ok := w.pickPackItem("Throw which item? ", nil)
	if !ok {
		return true
	}
	dir, ok := w.st.Direction("")
	if !ok {
		return true
	}
	it := w.st.Inv.Pack[i]
	it.Count = 1
	w.st.Inv.RemoveOne(i)
	w.checkWeight()

	d := dirDelta[dir]
	p := w.Pos
	for step := 0; step < 10; step++ {
		next := Point{Row: p.Row + d.Row, Col: p.Col + d.Col}
		if !w.Level.IsWalkable(next.Row, next.Col) {
			break
		}
		p = next
		if m := w.monsterAt(p); m != nil {
			dmg := 1 + it.Weight/5 + it.ToDam
			m.HP -= dmg
			if m.HP <= 0 {
				w.st.T.Message("The " + it.Name + " kills the " + m.Name + "!")
				w.killMonster(m)
			} else {
				w.st.T.Message("The " + it.Name + " hits the " + m.Name + ".")
			}
			break
		}
	}
	if _, taken := w.items[p]; !taken && p != w.Pos {
		w.items[p] = it
		w.drawCell(p)
	}
	return false
}

// openDoor opens an adjacent closed door.
func (w *World) openDoor() bool {
	dir, ok := w.st.Direction("")
	if !ok {
		return true
	}
	d := dirDelta[dir]
	p := Point{Row: w.Pos.Row + d.Row, Col: w.Pos.Col + d.Col}
	if !w.Level.InBounds(p.Row, p.Col) {
		w.st.T.Message("I do not see a door there.")
		return true
	}
	t := w.Level.At(p.Row, p.Col)
	if t.Kind != TileClosedDoor || t.Hidden {
		w.st.T.Message("I do not see a door there.")
		return true
	}
	if w.rng.Intn(100) < 5 {
		w.st.T.Message("The door appears to be stuck.")
		return false
	}
	w.Level.Set(p.Row, p.Col, MakeDoor())
	w.checkView()
	return false
}

// closeDoor shuts an adjacent open door.
func (w *World) closeDoor() bool {
	dir, ok := w.st.Direction("")
	if !ok {
		return true
	}
	d := dirDelta[dir]
	p := Point{Row: w.Pos.Row + d.Row, Col: w.Pos.Col + d.Col}
	if !w.Level.InBounds(p.Row, p.Col) || w.Level.At(p.Row, p.Col).Kind != TileDoor {
		w.st.T.Message("I do not see a door there.")
		return true
	}
	if w.monsterAt(p) != nil {
		w.st.T.Message("Something is in the way!")
		return true
	}
	if _, taken := w.items[p]; taken {
		w.st.T.Message("Something is in the way!")
		return true
	}
	w.Level.Set(p.Row, p.Col, MakeClosedDoor())
	w.checkView()
	return false
}

// bash slams into whatever is in the given direction.
func (w *World) bash() bool {
	dir, ok := w.st.Direction("")
	if !ok {
		return true
	}
	d := dirDelta[dir]
	p := Point{Row: w.Pos.Row + d.Row, Col: w.Pos.Col + d.Col}
	if m := w.monsterAt(p); m != nil {
		w.playerAttack(m)
		return false
	}
	if w.Level.InBounds(p.Row, p.Col) {
		t := w.Level.At(p.Row, p.Col)
		if t.Kind == TileClosedDoor && !t.Hidden {
			if w.rng.Intn(100) < 50 {
				w.st.T.Message("The door crashes open!")
				w.Level.Set(p.Row, p.Col, MakeDoor())
				w.checkView()
			} else {
				w.st.T.Message("The door holds firm.")
			}
			return false
		}
	}
	w.st.T.Message("You bash at empty air.")
	return false
}

// inscribe labels a pack item with a note.
func (w *World) inscribe() bool {
	i, ok := w.pickPackItem("Which item do you wish to inscribe? ", nil)
	if !ok {
		return true
	}
	w.st.T.Prt("Inscription: ", termio.MsgLine, 0)
	text, ok := w.st.T.ReadString(termio.MsgLine, 13, 24)
	w.st.T.EraseLine(termio.MsgLine, 0)
	if !ok || text == "" {
		return true
	}
	w.st.Inv.Pack[i].Name += " {" + text + "}"
	return true
}

func (w *World) statusChangedAC() {
	w.statusChanged(turn.FieldAC)
}
