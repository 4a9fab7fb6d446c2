package savegame

import (
	"path/filepath"
	"testing"

	"gloomdelve/internal/item"
	"gloomdelve/internal/player"
)

func TestReadMissingFileStartsFresh(t *testing.T) {
	s, ok, err := Read(filepath.Join(t.TempDir(), "nope.save"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if ok || s != nil {
		t.Fatal("missing file reported a character")
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "char.save")

	p := player.Player{
		HP: 13, MaxHP: 20,
		Level: 4, Exp: 120,
		Food: 4200, FoodDigested: 3,
		Depth: 6, MaxDepth: 9,
		FastRegen: true,
	}
	p.Cond.Set(player.Poisoned, 7)
	p.Cond.BeginTick(player.Poisoned)

	in := &Save{
		Player:         p,
		ConditionTicks: p.Cond.Snapshot(),
		Pack: []item.Item{
			{Name: "ration of food", Kind: item.KindFood, Count: 2, Weight: 3, Nutrition: 5000},
		},
		Equipment: make([]item.Item, 4),
		Clock:     8341,
		Wizard:    true,
	}
	in.Equipment[item.SlotWeapon] = item.Item{Name: "dagger", Kind: item.KindWeapon, Count: 1, Weight: 12, ToHit: 1}

	if err := Write(path, in); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out, ok, err := Read(path)
	if err != nil || !ok {
		t.Fatalf("Read: ok=%v err=%v", ok, err)
	}
	if out.Player.HP != 13 || out.Player.Depth != 6 || out.Player.MaxDepth != 9 {
		t.Errorf("player vitals lost: %+v", out.Player)
	}
	if !out.Player.FastRegen {
		t.Error("trait flag lost")
	}
	if out.Clock != 8341 || !out.Wizard {
		t.Errorf("clock/wizard lost: %d %v", out.Clock, out.Wizard)
	}
	if len(out.Pack) != 1 || out.Pack[0].Nutrition != 5000 {
		t.Errorf("pack lost: %+v", out.Pack)
	}
	if out.Equipment[item.SlotWeapon].ToHit != 1 {
		t.Error("equipment enchantment lost")
	}

	out.Player.Cond.Restore(out.ConditionTicks)
	if !out.Player.Cond.Active(player.Poisoned) || out.Player.Cond.Remaining(player.Poisoned) != 7 {
		t.Error("condition countdown lost")
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "char.save")
	Remove(path) // nothing there yet
	if err := Write(path, &Save{}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	Remove(path)
	if _, ok, _ := Read(path); ok {
		t.Error("save survived Remove")
	}
}
