package player

import "testing"

func TestConditionFlagFlipsExactlyOnce(t *testing.T) {
	// For T > 0, ticking T times clears the flag exactly at the Tth
	// tick and never before.
	const T = 7
	var c Conditions
	c.Start(Blind, T)

	if c.Active(Blind) {
		t.Fatal("flag must not be set before the first tick")
	}
	if !c.BeginTick(Blind) {
		t.Fatal("first BeginTick must flip the flag")
	}
	for i := 1; i <= T; i++ {
		if c.BeginTick(Blind) {
			t.Fatalf("BeginTick flipped again on tick %d", i)
		}
		expired := c.Tick(Blind)
		if i < T {
			if expired {
				t.Fatalf("expired early at tick %d", i)
			}
			if !c.Active(Blind) {
				t.Fatalf("flag dropped early at tick %d", i)
			}
		} else {
			if !expired {
				t.Fatal("must expire on the final tick")
			}
			if c.Active(Blind) {
				t.Fatal("flag still set after expiry")
			}
		}
	}
	if c.Tick(Blind) {
		t.Error("ticking an inactive condition must be a no-op")
	}
}

func TestConditionStartExtends(t *testing.T) {
	var c Conditions
	c.Start(Poisoned, 3)
	c.Start(Poisoned, 4)
	if got := c.Remaining(Poisoned); got != 7 {
		t.Errorf("Remaining = %d; want 7 (triggers accumulate)", got)
	}
}

func TestConditionSetZeroClearsFlag(t *testing.T) {
	var c Conditions
	c.Start(Afraid, 5)
	c.BeginTick(Afraid)
	c.Set(Afraid, 0)
	if c.Active(Afraid) || c.Remaining(Afraid) != 0 {
		t.Error("Set(cond, 0) must clear both flag and timer")
	}
}

func TestRegenHPCarryConserved(t *testing.T) {
	// Summed fractional contributions must equal gained*65536 + carry.
	p := &Player{HP: 10, MaxHP: 1000}
	const ticks = 50
	perTick := int64(1000)*RegenNormal + RegenHPBase
	startHP := int64(p.HP)

	for i := 0; i < ticks; i++ {
		p.RegenHP(RegenNormal)
	}

	gained := int64(p.HP) - startHP
	if got, want := gained*65536+int64(p.HPFrac), perTick*ticks; got != want {
		t.Errorf("carry conservation: got %d; want %d", got, want)
	}
}

func TestRegenHPClampZeroesCarry(t *testing.T) {
	p := &Player{HP: 9, MaxHP: 10, HPFrac: 0xFFFF}
	for i := 0; i < 200; i++ {
		p.RegenHP(RegenNormal)
	}
	if p.HP != p.MaxHP {
		t.Errorf("HP = %d; want clamped to max %d", p.HP, p.MaxHP)
	}
	if p.HPFrac != 0 {
		t.Errorf("HPFrac = %d; carry must zero at clamp", p.HPFrac)
	}
}

func TestRegenManaFixedPoint(t *testing.T) {
	p := &Player{Mana: 0, MaxMana: 30}
	p.RegenMana(RegenNormal)
	// 30*197+524 = 6434, below one integer point: all carry.
	if p.Mana != 0 {
		t.Errorf("Mana = %d; want 0 after a sub-point tick", p.Mana)
	}
	if p.ManaFrac != 6434 {
		t.Errorf("ManaFrac = %d; want 6434", p.ManaFrac)
	}
}

func TestConAdj(t *testing.T) {
	tests := []struct {
		con  int
		want int
	}{
		{3, -4}, {6, -1}, {7, 0}, {16, 0}, {17, 1},
		{18, 2}, {93, 2}, {94, 3}, {116, 3}, {117, 4}, {118, 4},
	}
	for _, tt := range tests {
		p := &Player{Con: tt.con}
		if got := p.ConAdj(); got != tt.want {
			t.Errorf("ConAdj(con=%d) = %d; want %d", tt.con, got, tt.want)
		}
	}
}

func TestNoteDepthTracksDeepest(t *testing.T) {
	p := &Player{}
	p.NoteDepth(5)
	p.NoteDepth(2)
	if p.Depth != 2 || p.MaxDepth != 5 {
		t.Errorf("Depth/MaxDepth = %d/%d; want 2/5", p.Depth, p.MaxDepth)
	}
}
