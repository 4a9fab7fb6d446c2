package item

import "testing"

func TestEnchanted(t *testing.T) {
	tests := []struct {
		name string
		it   Item
		want bool
	}{
		{"plus to-hit weapon", Item{Kind: KindWeapon, ToHit: 2}, true},
		{"plus-AC armor", Item{Kind: KindArmor, ToAC: 1}, true},
		{"bonus ring", Item{Kind: KindRing, Bonus: 3}, true},
		{"plain weapon", Item{Kind: KindWeapon}, false},
		{"cursed weapon", Item{Kind: KindWeapon, ToHit: 2, Cursed: true}, false},
		{"identified weapon", Item{Kind: KindWeapon, ToHit: 2, Identified: true}, false},
		{"already sensed", Item{Kind: KindWeapon, ToHit: 2, Sensed: true}, false},
		{"enchanted food is not a thing", Item{Kind: KindFood, Bonus: 5}, false},
		{"lamp", Item{Kind: KindLamp, Bonus: 1}, false},
	}
	for _, tt := range tests {
		if got := tt.it.Enchanted(); got != tt.want {
			t.Errorf("%s: Enchanted() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRemoveOne(t *testing.T) {
	inv := &Inventory{
		Pack: []Item{
			{Name: "ration of food", Kind: KindFood, Count: 3, Weight: 10},
			{Name: "flask of oil", Kind: KindFlask, Count: 1, Weight: 15},
		},
	}
	inv.Weight = inv.TotalWeight()

	inv.RemoveOne(0)
	if inv.Pack[0].Count != 2 {
		t.Errorf("stack count = %d, want 2", inv.Pack[0].Count)
	}
	if inv.Weight != 35 {
		t.Errorf("weight = %d, want 35", inv.Weight)
	}

	inv.RemoveOne(1)
	if len(inv.Pack) != 1 {
		t.Fatalf("pack size = %d, want 1", len(inv.Pack))
	}
	if inv.Pack[0].Kind != KindFood {
		t.Error("wrong stack removed")
	}
}

func TestFindKind(t *testing.T) {
	inv := &Inventory{Pack: []Item{
		{Kind: KindWeapon},
		{Kind: KindFlask},
	}}

	if i, ok := inv.FindKind(KindFlask); !ok || i != 1 {
		t.Errorf("FindKind(flask) = %d, %v", i, ok)
	}
	if _, ok := inv.FindKind(KindFood); ok {
		t.Error("found food in a foodless pack")
	}
}

func TestTotalWeight(t *testing.T) {
	inv := &Inventory{
		Pack: []Item{{Kind: KindFood, Count: 2, Weight: 10}},
	}
	inv.Equipment[SlotWeapon] = Item{Kind: KindWeapon, Weight: 30}

	if got := inv.TotalWeight(); got != 50 {
		t.Errorf("TotalWeight() = %d, want 50", got)
	}
}
