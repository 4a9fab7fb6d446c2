package turn

import (
	"fmt"

	"gloomdelve/internal/item"
	"gloomdelve/internal/player"
)

// The per-condition updaters below run once per turn in a fixed,
// order-dependent sequence (see RunLevel): heroism precedes anything
// that can damage the player, food precedes regeneration because the
// regen budget depends on the satiation tier, and the visible statuses
// tick before poison so their messages land in a stable order.

// updateLight burns one turn of lamp fuel and tracks the carrying-light
// transition in both directions.
func (st *State) updateLight() {
	lamp := st.Inv.Lamp()

	if st.P.CarryingLight {
		if lamp.Fuel > 0 {
			lamp.Fuel--
			if lamp.Fuel == 0 {
				st.P.CarryingLight = false
				st.T.Message("Your light has gone out!")
				st.Disturb(false)
				st.Hooks.UpdateMonsters(false)
			} else if lamp.Fuel < 40 && st.oneIn(5) && st.P.Cond.Remaining(player.Blind) < 1 {
				st.Disturb(false)
				st.T.Message("Your light is growing faint.")
			}
		} else {
			st.P.CarryingLight = false
			st.Disturb(false)
			st.Hooks.UpdateMonsters(false)
		}
	} else if lamp.Fuel > 0 {
		lamp.Fuel--
		st.P.CarryingLight = true
		st.Disturb(false)
		st.Hooks.UpdateMonsters(false)
	}
}

func (st *State) updateHeroism() {
	if st.P.Cond.Remaining(player.Hero) <= 0 {
		return
	}
	if st.P.Cond.BeginTick(player.Hero) {
		st.Disturb(false)
		st.P.MaxHP += 10
		st.P.HP += 10
		st.P.ToHit += 12
		st.P.ToHitBow += 12
		st.T.Message("You feel like a HERO!")
		st.Hooks.StatusChanged(FieldHP)
	}
	if st.P.Cond.Tick(player.Hero) {
		st.Disturb(false)
		st.P.MaxHP -= 10
		if st.P.HP > st.P.MaxHP {
			st.P.HP = st.P.MaxHP
			st.P.HPFrac = 0
		}
		st.P.ToHit -= 12
		st.P.ToHitBow -= 12
		st.T.Message("The heroism wears off.")
		st.Hooks.StatusChanged(FieldHP)
	}
}

func (st *State) updateSuperHeroism() {
	if st.P.Cond.Remaining(player.SuperHero) <= 0 {
		return
	}
	if st.P.Cond.BeginTick(player.SuperHero) {
		st.Disturb(false)
		st.P.MaxHP += 20
		st.P.HP += 20
		st.P.ToHit += 24
		st.P.ToHitBow += 24
		st.T.Message("You feel like a SUPER HERO!")
		st.Hooks.StatusChanged(FieldHP)
	}
	if st.P.Cond.Tick(player.SuperHero) {
		st.Disturb(false)
		st.P.MaxHP -= 20
		if st.P.HP > st.P.MaxHP {
			st.P.HP = st.P.MaxHP
			st.P.HPFrac = 0
		}
		st.P.ToHit -= 24
		st.P.ToHitBow -= 24
		st.T.Message("The super heroism wears off.")
		st.Hooks.StatusChanged(FieldHP)
	}
}

// foodConsumption digests one turn of food and returns the regeneration
// budget for this turn, which shrinks through the hunger tiers.
func (st *State) foodConsumption() int {
	p := st.P
	regen := player.RegenNormal

	if p.Food < player.FoodAlert {
		if p.Food < player.FoodWeak {
			switch {
			case p.Food < 0:
				regen = 0
			case p.Food < player.FoodFaint:
				regen = player.RegenFaint
			default:
				regen = player.RegenWeak
			}

			if !p.Weak {
				p.Weak = true
				st.T.Message("You are getting weak from hunger.")
				st.Disturb(false)
				st.Hooks.StatusChanged(FieldHunger)
			}

			if p.Food < player.FoodFaint && st.oneIn(8) {
				p.Paralysis += st.randInt(5)
				st.T.Message("You faint from the lack of food.")
				st.Disturb(true)
			}
		} else if !p.Hungry {
			p.Hungry = true
			st.T.Message("You are getting hungry.")
			st.Disturb(false)
			st.Hooks.StatusChanged(FieldHunger)
		}
	}

	// Sped-up characters really burn up the food.
	if p.Speed < 0 {
		p.Food -= p.Speed * p.Speed
	}
	p.Food -= p.FoodDigested

	if p.Food < 0 {
		st.Hooks.TakeHit(-p.Food/16, "starvation")
		st.Disturb(true)
	}
	return regen
}

// applyRegen spends this turn's regen budget on HP and mana. The fast
// regeneration trait and resting/searching compose multiplicatively on
// the same base amount.
func (st *State) applyRegen(amount int) {
	if st.P.FastRegen {
		amount = amount * 3 / 2
	}
	if st.Searching || st.P.Rest != 0 {
		amount = amount * 2
	}

	if st.P.Cond.Remaining(player.Poisoned) < 1 && st.P.HP < st.P.MaxHP {
		if st.P.RegenHP(amount) {
			st.Hooks.StatusChanged(FieldHP)
		}
	}
	if st.P.Mana < st.P.MaxMana {
		if st.P.RegenMana(amount) {
			st.Hooks.StatusChanged(FieldMana)
		}
	}
}

func (st *State) updateBlindness() {
	if st.P.Cond.Remaining(player.Blind) <= 0 {
		return
	}
	if st.P.Cond.BeginTick(player.Blind) {
		st.Hooks.RedrawMap()
		st.Hooks.StatusChanged(FieldBlind)
		st.Disturb(false)
		st.Hooks.UpdateMonsters(false)
	}
	if st.P.Cond.Tick(player.Blind) {
		st.Hooks.StatusChanged(FieldBlind)
		st.Hooks.RedrawMap()
		st.Disturb(false)
		st.Hooks.UpdateMonsters(false)
		st.T.Message("The veil of darkness lifts.")
	}
}

func (st *State) updateConfusion() {
	if st.P.Cond.Remaining(player.Confused) <= 0 {
		return
	}
	if st.P.Cond.BeginTick(player.Confused) {
		st.Hooks.StatusChanged(FieldConfused)
	}
	if st.P.Cond.Tick(player.Confused) {
		st.Hooks.StatusChanged(FieldConfused)
		st.T.Message("You feel less confused now.")
		if st.P.Rest != 0 {
			st.restOff()
		}
	}
}

// updateFear lets heroism shrug fear off: an undawned fear is cancelled
// outright, an established one is clamped to expire this turn.
func (st *State) updateFear() {
	p := st.P
	if p.Cond.Remaining(player.Afraid) <= 0 {
		return
	}
	if !p.Cond.Active(player.Afraid) {
		if p.Cond.Remaining(player.Hero)+p.Cond.Remaining(player.SuperHero) > 0 {
			p.Cond.Set(player.Afraid, 0)
			return
		}
		p.Cond.BeginTick(player.Afraid)
		st.Hooks.StatusChanged(FieldAfraid)
	} else if p.Cond.Remaining(player.Hero)+p.Cond.Remaining(player.SuperHero) > 0 {
		p.Cond.Set(player.Afraid, 1)
		p.Cond.BeginTick(player.Afraid)
	}
	if p.Cond.Tick(player.Afraid) {
		st.Hooks.StatusChanged(FieldAfraid)
		st.T.Message("You feel bolder now.")
		st.Disturb(false)
	}
}

// poisonDamage is the per-tick damage keyed by constitution adjustment.
// High-constitution buckets only take damage on matching turn parity so
// expected damage stays continuous; the exact buckets are original
// balance, preserved bit for bit.
func (st *State) poisonDamage() int {
	switch st.P.ConAdj() {
	case -4:
		return 4
	case -3, -2:
		return 3
	case -1:
		return 2
	case 0:
		return 1
	case 1, 2, 3:
		if st.Clock%2 == 0 {
			return 1
		}
		return 0
	case 4, 5:
		if st.Clock%3 == 0 {
			return 1
		}
		return 0
	case 6:
		if st.Clock%4 == 0 {
			return 1
		}
		return 0
	}
	return 0
}

func (st *State) updatePoison() {
	if st.P.Cond.Remaining(player.Poisoned) <= 0 {
		return
	}
	if st.P.Cond.BeginTick(player.Poisoned) {
		st.Hooks.StatusChanged(FieldPoisoned)
	}
	if st.P.Cond.Tick(player.Poisoned) {
		st.Hooks.StatusChanged(FieldPoisoned)
		st.T.Message("You feel better.")
		st.Disturb(false)
		return
	}
	st.Hooks.TakeHit(st.poisonDamage(), "poison")
	st.Disturb(true)
}

func (st *State) updateFast() {
	if st.P.Cond.Remaining(player.Fast) <= 0 {
		return
	}
	if st.P.Cond.BeginTick(player.Fast) {
		st.changeSpeed(-1)
		st.T.Message("You feel yourself moving faster.")
		st.Disturb(false)
	}
	if st.P.Cond.Tick(player.Fast) {
		st.changeSpeed(1)
		st.T.Message("You feel yourself slow down.")
		st.Disturb(false)
	}
}

func (st *State) updateSlow() {
	if st.P.Cond.Remaining(player.Slow) <= 0 {
		return
	}
	if st.P.Cond.BeginTick(player.Slow) {
		st.changeSpeed(1)
		st.T.Message("You feel yourself moving slower.")
		st.Disturb(false)
	}
	if st.P.Cond.Tick(player.Slow) {
		st.changeSpeed(-1)
		st.T.Message("You feel yourself speed up.")
		st.Disturb(false)
	}
}

func (st *State) changeSpeed(delta int) {
	st.P.Speed += delta
	st.Hooks.StatusChanged(FieldSpeed)
}

// updateResting advances the rest counter. A count of -1 is the
// rest-until-recovered sentinel and holds until both pools are full.
func (st *State) updateResting() {
	p := st.P
	if p.Rest > 0 {
		p.Rest--
		if p.Rest == 0 {
			st.restOff()
		}
	} else if p.Rest == -1 {
		if p.HP == p.MaxHP && p.Mana == p.MaxMana {
			st.restOff()
		}
	}
}

// updateHallucination aborts any auto-run every ticking turn; random
// glyphs make running blind. Expiry triggers a full map redraw.
func (st *State) updateHallucination() {
	if st.P.Cond.Remaining(player.Hallucinating) <= 0 {
		return
	}
	if st.RunDir != 0 {
		st.endRun()
	}
	st.P.Cond.BeginTick(player.Hallucinating)
	if st.P.Cond.Tick(player.Hallucinating) {
		st.Hooks.RedrawMap()
	}
}

func (st *State) updateParalysis() {
	if st.P.Paralysis <= 0 {
		return
	}
	// No movement is visible to the player while paralyzed.
	st.P.Paralysis--
	st.Hooks.StatusChanged(FieldState)
	st.Disturb(true)
}

func (st *State) updateEvilProtection() {
	if st.P.Cond.Remaining(player.ProtEvil) <= 0 {
		return
	}
	st.P.Cond.BeginTick(player.ProtEvil)
	if st.P.Cond.Tick(player.ProtEvil) {
		st.T.Message("You no longer feel safe from evil.")
	}
}

func (st *State) updateInvulnerability() {
	if st.P.Cond.Remaining(player.Invulnerable) <= 0 {
		return
	}
	if st.P.Cond.BeginTick(player.Invulnerable) {
		st.Disturb(false)
		st.P.AC += 100
		st.P.DisplayAC += 100
		st.Hooks.StatusChanged(FieldAC)
		st.T.Message("Your skin turns into steel!")
	}
	if st.P.Cond.Tick(player.Invulnerable) {
		st.Disturb(false)
		st.P.AC -= 100
		st.P.DisplayAC -= 100
		st.Hooks.StatusChanged(FieldAC)
		st.T.Message("Your skin returns to normal.")
	}
}

func (st *State) updateBlessedness() {
	if st.P.Cond.Remaining(player.Blessed) <= 0 {
		return
	}
	if st.P.Cond.BeginTick(player.Blessed) {
		st.Disturb(false)
		st.P.ToHit += 5
		st.P.ToHitBow += 5
		st.P.AC += 2
		st.P.DisplayAC += 2
		st.T.Message("You feel righteous!")
		st.Hooks.StatusChanged(FieldAC)
	}
	if st.P.Cond.Tick(player.Blessed) {
		st.Disturb(false)
		st.P.ToHit -= 5
		st.P.ToHitBow -= 5
		st.P.AC -= 2
		st.P.DisplayAC -= 2
		st.T.Message("The prayer has expired.")
		st.Hooks.StatusChanged(FieldAC)
	}
}

func (st *State) updateHeatResistance() {
	if st.P.Cond.Remaining(player.ResistHeat) <= 0 {
		return
	}
	st.P.Cond.BeginTick(player.ResistHeat)
	if st.P.Cond.Tick(player.ResistHeat) {
		st.T.Message("You no longer feel safe from flame.")
	}
}

func (st *State) updateColdResistance() {
	if st.P.Cond.Remaining(player.ResistCold) <= 0 {
		return
	}
	st.P.Cond.BeginTick(player.ResistCold)
	if st.P.Cond.Tick(player.ResistCold) {
		st.T.Message("You no longer feel safe from cold.")
	}
}

func (st *State) updateDetectInvisible() {
	if st.P.Cond.Remaining(player.DetectInvis) <= 0 {
		return
	}
	if st.P.Cond.BeginTick(player.DetectInvis) {
		st.P.SeeInvis = true
		st.Hooks.UpdateMonsters(false)
	}
	if st.P.Cond.Tick(player.DetectInvis) {
		// An equipped item may still grant the sight.
		st.P.SeeInvis = st.P.InnateSeeInvis
		st.Hooks.UpdateMonsters(false)
	}
}

func (st *State) updateInfravision() {
	if st.P.Cond.Remaining(player.Infravision) <= 0 {
		return
	}
	if st.P.Cond.BeginTick(player.Infravision) {
		st.P.SeeInfra++
		st.Hooks.UpdateMonsters(false)
	}
	if st.P.Cond.Tick(player.Infravision) {
		st.P.SeeInfra--
		st.Hooks.UpdateMonsters(false)
	}
}

// updateWordRecall is the delayed depth switch: at exactly 1 the level
// regenerates, a short forced paralysis lands, and the player toggles
// between the surface and the deepest depth visited. Reaching 0
// afterwards is a no-op: the charge was consumed.
func (st *State) updateWordRecall() {
	p := st.P
	if p.Cond.Remaining(player.WordRecall) <= 0 {
		return
	}
	if p.Cond.Remaining(player.WordRecall) == 1 {
		st.NewLevel = true
		p.Paralysis++
		p.Cond.Set(player.WordRecall, 0)
		if p.Depth > 0 {
			p.Depth = 0
			st.T.Message("You feel yourself yanked upwards!")
		} else if p.MaxDepth != 0 {
			p.Depth = p.MaxDepth
			st.T.Message("You feel yourself yanked downwards!")
		}
		return
	}
	p.Cond.Tick(player.WordRecall)
}

// detectEnchantment gives a slim chance of sensing an unidentified
// enchanted item: 1-in-50 per pack item, 1-in-10 per equipped one.
func (st *State) detectEnchantment() {
	for i := range st.Inv.Pack {
		it := &st.Inv.Pack[i]
		if it.Kind != 0 && it.Enchanted() && st.oneIn(50) {
			st.Disturb(false)
			st.T.Message("There's something about what you are carrying in your pack...")
			it.Sensed = true
		}
	}
	for slot := range st.Inv.Equipment {
		it := &st.Inv.Equipment[slot]
		if it.Kind != 0 && it.Enchanted() && st.oneIn(10) {
			st.Disturb(false)
			st.T.Message(fmt.Sprintf("There's something about what you are %s...", item.SlotUse(slot)))
			it.Sensed = true
		}
	}
}
