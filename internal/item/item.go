// Package item carries the narrow inventory surface the turn core
// touches: lamp fuel, food, flasks, and the enchantment predicate the
// periodic detection scan uses. Item generation and the full catalog
// live with the excluded collaborators.
package item

// Kind is the coarse item class.
type Kind uint8

const (
	KindNone Kind = iota
	KindFood
	KindFlask
	KindLamp
	KindWeapon
	KindArmor
	KindRing
)

// Item is one inventory entry (possibly a stack).
type Item struct {
	Name   string
	Kind   Kind
	Count  int
	Weight int

	// Fuel is turns of light remaining (lamps) or contained (flasks).
	Fuel int
	// Nutrition is food value granted when eaten.
	Nutrition int

	// Enchantment columns and identification state.
	ToHit      int
	ToDam      int
	ToAC       int
	Bonus      int
	Cursed     bool
	Identified bool
	// Sensed marks an item the periodic detection scan already
	// flagged as "something about it...".
	Sensed bool
}

// Enchanted reports whether the item carries an unknown beneficial
// enchantment worth sensing. Cursed and already-known items never
// qualify.
func (it *Item) Enchanted() bool {
	if it.Kind < KindWeapon || it.Kind > KindRing || it.Cursed {
		return false
	}
	if it.Identified || it.Sensed {
		return false
	}
	return it.ToHit > 0 || it.ToDam > 0 || it.ToAC > 0 || it.Bonus > 0
}

// Equipment slot indices.
const (
	SlotWeapon = iota
	SlotArmor
	SlotLight
	SlotRing
	slotCount
)

// slotUse describes what the player is doing with each equipment slot,
// phrased for the detection scan's message.
var slotUse = [slotCount]string{
	"holding in your hand",
	"wearing on your body",
	"using to light the way",
	"wearing on your finger",
}

// SlotUse returns the wearing/holding phrase for an equipment slot.
func SlotUse(slot int) string {
	if slot < 0 || slot >= slotCount {
		return "carrying"
	}
	return slotUse[slot]
}

// Inventory is the pack plus worn equipment.
type Inventory struct {
	Pack      []Item
	Equipment [slotCount]Item
	Weight    int
}

// Lamp returns the light-source slot.
func (inv *Inventory) Lamp() *Item { return &inv.Equipment[SlotLight] }

// FindKind returns the index of the first pack item of the given kind.
func (inv *Inventory) FindKind(k Kind) (int, bool) {
	for i := range inv.Pack {
		if inv.Pack[i].Kind == k {
			return i, true
		}
	}
	return -1, false
}

// RemoveOne takes a single item off stack i, dropping the entry when
// the stack empties, and keeps the carried weight current.
func (inv *Inventory) RemoveOne(i int) {
	it := &inv.Pack[i]
	inv.Weight -= it.Weight
	if it.Count > 1 {
		it.Count--
		return
	}
	inv.Pack = append(inv.Pack[:i], inv.Pack[i+1:]...)
}

// Add puts an item in the pack, stacking onto a matching entry when
// one exists, and keeps the carried weight current.
func (inv *Inventory) Add(it Item) {
	for i := range inv.Pack {
		p := &inv.Pack[i]
		if p.Name == it.Name && p.Kind == it.Kind && p.Fuel == it.Fuel &&
			p.ToHit == it.ToHit && p.ToDam == it.ToDam && p.ToAC == it.ToAC {
			p.Count += it.Count
			inv.Weight += it.Weight * it.Count
			return
		}
	}
	inv.Pack = append(inv.Pack, it)
	inv.Weight += it.Weight * it.Count
}

// TotalWeight recomputes carried weight from scratch.
func (inv *Inventory) TotalWeight() int {
	w := 0
	for i := range inv.Pack {
		w += inv.Pack[i].Weight * inv.Pack[i].Count
	}
	for i := range inv.Equipment {
		if inv.Equipment[i].Kind != KindNone {
			w += inv.Equipment[i].Weight
		}
	}
	return w
}
