package turn

import (
	"time"

	"gloomdelve/internal/player"
)

const (
	// restockInterval is how often, in game turns, the town stores turn
	// over part of their stock.
	restockInterval = 1000
	// spawnChance is the 1-in-n per-turn chance of a new monster.
	spawnChance = 160
	// compactThreshold triggers monster-registry compaction while this
	// many free slots or fewer remain.
	compactThreshold = 10
)

// RunLevel drives the per-turn pipeline for one dungeon level. It
// returns when a level change is requested (stairs, recall, wizard
// jump, death) or input has hit end-of-file; the caller regenerates the
// level and re-enters.
func (st *State) RunLevel() {
	st.P.CarryingLight = st.Inv.Lamp().Fuel > 0
	st.P.LightFuel = st.Inv.Lamp().Fuel
	st.P.NoteDepth(st.P.Depth)

	st.NewLevel = false
	st.TeleportNow = false
	st.RunDir = 0
	st.RunSteps = 0

	st.ResetPanel()
	row, col := st.Hooks.PlayerPos()
	st.GetPanel(row, col, false)
	st.Hooks.CheckView()

	if st.Searching {
		st.searchOff()
	}

	// Light, but do not move, the creatures.
	st.Hooks.UpdateMonsters(false)
	st.Hooks.StatusChanged(FieldDepth)

	for {
		st.Clock++

		if st.P.Depth != 0 && st.Clock%restockInterval == 0 {
			st.Hooks.RestockStores()
		}
		if st.oneIn(spawnChance) {
			st.Hooks.SpawnMonster()
		}

		st.updateLight()

		// Heroism must precede anything that can damage the player,
		// since it shifts the hit-point ceiling.
		st.updateHeroism()
		st.updateSuperHeroism()

		st.applyRegen(st.foodConsumption())

		st.updateBlindness()
		st.updateConfusion()
		st.updateFear()
		st.updatePoison()
		st.updateFast()
		st.updateSlow()
		st.updateResting()

		// Interrupt check: a keypress aborts any multi-turn action.
		// While auto-running the poll must not stall the run.
		timeout := 10 * time.Millisecond
		if st.RunDir != 0 {
			timeout = 0
		}
		if (st.Count > 0 || st.RunDir != 0 || st.P.Rest != 0) && st.T.Poll(timeout) {
			st.Disturb(false)
		}

		st.updateHallucination()
		st.updateParalysis()
		st.updateEvilProtection()
		st.updateInvulnerability()
		st.updateBlessedness()
		st.updateHeatResistance()
		st.updateColdResistance()
		st.updateDetectInvisible()
		st.updateInfravision()
		st.updateWordRecall()

		if st.P.RandomTeleport && st.oneIn(100) {
			st.Disturb(false)
			st.Hooks.Teleport(40)
		}

		st.Hooks.CheckWeight()

		// A slim chance of sensing enchantment, scaling with level:
		// roughly every 2160 turns at level 1, every 416 at level 40.
		chance := 10 + 750/(5+st.P.Level)
		if st.Clock&0xF == 0 && !st.P.Cond.Active(player.Confused) && st.oneIn(chance) {
			st.detectEnchantment()
		}

		// Compact the monster registry before it fills; multiplication
		// mid-move is far more likely to succeed with slack available.
		if st.Hooks.MonsterSlotsFree() < compactThreshold {
			st.Hooks.CompactMonsters()
		}

		if st.P.Paralysis < 1 && st.P.Rest == 0 && !st.P.Dead {
			st.acceptCommands()
		} else {
			// Nothing to accept; park the cursor on the player and
			// push any buffered output.
			row, col := st.Hooks.PlayerPos()
			st.T.MoveCursorRelative(row, col)
			st.T.Flush()
		}

		if st.TeleportNow {
			st.TeleportNow = false
			st.Hooks.Teleport(100)
		}

		if !st.NewLevel {
			st.Hooks.UpdateMonsters(true)
		}

		if st.NewLevel || st.eof() {
			return
		}
	}
}
