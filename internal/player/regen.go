package player

// Regeneration is fixed-point: each tick contributes
// max*percent + base as a 32-bit sum whose high 16 bits go to the
// integer resource and low 16 bits accumulate in the carry. Floating
// point would drift from the original clamp behavior, so don't.

// RegenHP applies one tick of hit-point regeneration at the given
// percent. Reports whether the visible HP value changed.
func (p *Player) RegenHP(percent int) bool {
	old := p.HP

	sum := int32(p.MaxHP)*int32(percent) + RegenHPBase
	p.HP += int(sum >> 16)
	if p.HP > maxShort {
		p.HP = maxShort
	}

	frac := int32(sum&0xFFFF) + int32(p.HPFrac)
	if frac >= 0x10000 {
		p.HPFrac = uint16(frac - 0x10000)
		p.HP++
	} else {
		p.HPFrac = uint16(frac)
	}

	// Carry must zero even when exactly at max.
	if p.HP >= p.MaxHP {
		p.HP = p.MaxHP
		p.HPFrac = 0
	}
	return old != p.HP
}

// RegenMana applies one tick of mana regeneration at the given percent.
func (p *Player) RegenMana(percent int) bool {
	old := p.Mana

	sum := int32(p.MaxMana)*int32(percent) + RegenMNBase
	p.Mana += int(sum >> 16)
	if p.Mana > maxShort {
		p.Mana = maxShort
	}

	frac := int32(sum&0xFFFF) + int32(p.ManaFrac)
	if frac >= 0x10000 {
		p.ManaFrac = uint16(frac - 0x10000)
		p.Mana++
	} else {
		p.ManaFrac = uint16(frac)
	}

	if p.Mana >= p.MaxMana {
		p.Mana = p.MaxMana
		p.ManaFrac = 0
	}
	return old != p.Mana
}
