package main

import (
	"fmt"
	"os"
	"time"

	"gloomdelve/internal/config"
	"gloomdelve/internal/dungeon"
	"gloomdelve/internal/item"
	"gloomdelve/internal/player"
	"gloomdelve/internal/savegame"
	"gloomdelve/internal/termio"
	"gloomdelve/internal/turn"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "gloomdelve:", err)
		os.Exit(1)
	}
}

func run() error {
	optPath := config.DefaultPath()
	opts, err := config.Load(optPath)
	if err != nil {
		return err
	}

	t, err := termio.New(opts.Bell)
	if err != nil {
		return err
	}
	defer t.Fini()

	p, inv, clock, wizard, winner, err := loadOrCreate(opts.SavePath)
	if err != nil {
		return err
	}

	st := turn.New(p, inv, t, time.Now().UnixNano())
	st.Roguelike = opts.RoguelikeKeys
	st.BellOn = opts.Bell
	st.Clock = clock
	st.WizardMode = wizard
	st.TotalWinner = winner

	w := dungeon.NewWorld(st, time.Now().UnixNano()+1)
	w.SaveFunc = func() bool {
		s := &savegame.Save{
			Player:         *p,
			ConditionTicks: p.Cond.Snapshot(),
			Pack:           inv.Pack,
			Equipment:      inv.Equipment[:],
			Clock:          st.Clock,
			Wizard:         st.WizardMode,
			Winner:         st.TotalWinner,
		}
		return savegame.Write(opts.SavePath, s) == nil
	}
	t.EmergencySave = func() bool { return emergencySave(p, w.SaveFunc) }
	t.OnExit = func() {
		opts.RoguelikeKeys = st.Roguelike
		opts.Bell = st.BellOn
		_ = config.Save(optPath, opts)
		t.Fini()
		if p.Dead {
			savegame.Remove(opts.SavePath)
			fmt.Printf("You died from %s at %d feet after %d turns.\n", p.DiedFrom, p.Depth*50, st.Clock)
			os.Exit(1)
		}
		os.Exit(0)
	}

	for !p.Dead && t.EOFReads() == 0 {
		w.NewLevel()
		st.RunLevel()
	}

	opts.RoguelikeKeys = st.Roguelike
	opts.Bell = st.BellOn
	_ = config.Save(optPath, opts)

	if p.Dead {
		savegame.Remove(opts.SavePath)
		t.Message(fmt.Sprintf("You died from %s at %d feet. RIP.", p.DiedFrom, p.Depth*50))
		t.Pause(23)
		t.Fini()
		fmt.Printf("You died from %s at %d feet after %d turns.\n", p.DiedFrom, p.Depth*50, st.Clock)
		return nil
	}

	// End of input without an explicit save command: keep the character.
	w.SaveFunc()
	return nil
}

// emergencySave writes the character out after the input stream dies.
// A failed write forces death with a diagnosable cause so the process
// never disappears without an epitaph.
func emergencySave(p *player.Player, save func() bool) bool {
	if save() {
		return true
	}
	p.Dead = true
	p.DiedFrom = "panic: unexpected eof"
	return false
}

// loadOrCreate resumes a saved character or rolls a fresh one.
func loadOrCreate(savePath string) (*player.Player, *item.Inventory, int64, bool, bool, error) {
	s, ok, err := savegame.Read(savePath)
	if err != nil {
		return nil, nil, 0, false, false, err
	}
	if ok {
		p := s.Player
		p.Cond.Restore(s.ConditionTicks)
		inv := &item.Inventory{Pack: s.Pack}
		copy(inv.Equipment[:], s.Equipment)
		inv.Weight = inv.TotalWeight()
		return &p, inv, s.Clock, s.Wizard, s.Winner, nil
	}

	p, inv := newCharacter()
	return p, inv, 0, false, false, nil
}

// newCharacter rolls the starting adventurer and kit.
func newCharacter() (*player.Player, *item.Inventory) {
	p := &player.Player{
		HP: 18, MaxHP: 18,
		Mana: 4, MaxMana: 4,
		Level: 1,
		Con:   12,
		Food:  7500, FoodDigested: 2,
		WeightLimit:   150,
		CarryingLight: true,
		LightFuel:     7500,
	}

	inv := &item.Inventory{}
	inv.Equipment[item.SlotWeapon] = item.Item{
		Name: "dagger", Kind: item.KindWeapon, Count: 1, Weight: 12,
	}
	inv.Equipment[item.SlotArmor] = item.Item{
		Name: "soft leather armor", Kind: item.KindArmor, Count: 1, Weight: 80, ToAC: 2,
	}
	inv.Equipment[item.SlotLight] = item.Item{
		Name: "brass lantern", Kind: item.KindLamp, Count: 1, Weight: 50, Fuel: 7500,
	}
	inv.Add(item.Item{Name: "ration of food", Kind: item.KindFood, Count: 3, Weight: 3, Nutrition: 5000})
	inv.Add(item.Item{Name: "flask of oil", Kind: item.KindFlask, Count: 1, Weight: 10, Fuel: 7500})
	inv.Weight = inv.TotalWeight()

	p.AC = 2
	p.DisplayAC = 2
	return p, inv
}
