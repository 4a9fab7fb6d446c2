package turn

// Hooks are the narrow contracts to the excluded collaborators: level
// generation, monsters, combat, the status bar, and the map renderer.
// The core calls these as opaque operations and never reaches past
// them. Zero-value hooks are usable; normalize fills no-ops so partial
// wiring (and tests) never nil-panic.
type Hooks struct {
	// TakeHit inflicts damage with a cause string; it may kill, in
	// which case the player aggregate's Dead flag and DiedFrom are set.
	TakeHit func(damage int, cause string)

	// UpdateMonsters relights/unlights monsters; alsoMove lets them act.
	UpdateMonsters func(alsoMove bool)

	// SpawnMonster places one monster near the edge of vision.
	SpawnMonster func()

	// RestockStores rolls over simulated shop inventories.
	RestockStores func()

	// MonsterSlotsFree reports headroom in the monster registry;
	// CompactMonsters reclaims slots when it runs low.
	MonsterSlotsFree func() int
	CompactMonsters  func()

	// Teleport moves the player up to maxDist away.
	Teleport func(maxDist int)

	// CheckView re-centers the viewport on the player and redraws when
	// the panel moved.
	CheckView func()

	// RedrawMap repaints the visible map (blindness lifting,
	// hallucination ending, panel scroll).
	RedrawMap func()

	// StatusChanged tells the status bar one field needs repainting.
	StatusChanged func(Field)

	// PlayerPos reports the player's world position for cursor parking.
	PlayerPos func() (row, col int)

	// MoveChar walks one step in direction dir (numpad 1-9, 5 = stay);
	// pickup controls whether items underfoot are grabbed.
	MoveChar func(dir int, pickup bool)

	// RunStep advances an auto-run one step; false means blocked.
	RunStep func(dir int) bool

	// Tunnel digs one step in direction dir.
	Tunnel func(dir int)

	// SearchHere examines adjacent cells for hidden traps and doors.
	SearchHere func()

	// StairsHere reports whether the player stands on a staircase
	// leading the given way.
	StairsHere func(down bool) bool

	// Look describes the surroundings.
	Look func()

	// CheckWeight warns when the pack or weapon exceeds strength.
	CheckWeight func()

	// DungeonSize and SymbolAt feed the overview map.
	DungeonSize func() (height, width int)
	SymbolAt    func(row, col int) rune

	// ItemCommand handles the inventory/spell command family; it
	// reports whether the command turned out to be free.
	ItemCommand func(cmd rune) (freeTurn bool)

	// SaveGame persists the character; false means the save failed.
	SaveGame func() bool

	// WizardCommand handles debug commands the core does not own;
	// false means unrecognized.
	WizardCommand func(cmd rune) bool
}

func (h *Hooks) normalize() {
	if h.TakeHit == nil {
		h.TakeHit = func(int, string) {}
	}
	if h.UpdateMonsters == nil {
		h.UpdateMonsters = func(bool) {}
	}
	if h.SpawnMonster == nil {
		h.SpawnMonster = func() {}
	}
	if h.RestockStores == nil {
		h.RestockStores = func() {}
	}
	if h.MonsterSlotsFree == nil {
		h.MonsterSlotsFree = func() int { return 1 << 30 }
	}
	if h.CompactMonsters == nil {
		h.CompactMonsters = func() {}
	}
	if h.Teleport == nil {
		h.Teleport = func(int) {}
	}
	if h.CheckView == nil {
		h.CheckView = func() {}
	}
	if h.RedrawMap == nil {
		h.RedrawMap = func() {}
	}
	if h.StatusChanged == nil {
		h.StatusChanged = func(Field) {}
	}
	if h.PlayerPos == nil {
		h.PlayerPos = func() (int, int) { return 0, 0 }
	}
	if h.MoveChar == nil {
		h.MoveChar = func(int, bool) {}
	}
	if h.RunStep == nil {
		h.RunStep = func(int) bool { return false }
	}
	if h.Tunnel == nil {
		h.Tunnel = func(int) {}
	}
	if h.SearchHere == nil {
		h.SearchHere = func() {}
	}
	if h.StairsHere == nil {
		h.StairsHere = func(bool) bool { return false }
	}
	if h.Look == nil {
		h.Look = func() {}
	}
	if h.CheckWeight == nil {
		h.CheckWeight = func() {}
	}
	if h.DungeonSize == nil {
		h.DungeonSize = func() (int, int) { return 0, 0 }
	}
	if h.SymbolAt == nil {
		h.SymbolAt = func(int, int) rune { return ' ' }
	}
	if h.ItemCommand == nil {
		h.ItemCommand = func(rune) bool { return true }
	}
	if h.SaveGame == nil {
		h.SaveGame = func() bool { return false }
	}
	if h.WizardCommand == nil {
		h.WizardCommand = func(rune) bool { return false }
	}
}
