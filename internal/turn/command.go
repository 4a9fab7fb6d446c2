package turn

import (
	"fmt"
	"strconv"

	"gloomdelve/internal/item"
	"gloomdelve/internal/player"
	"gloomdelve/internal/termio"
)

const versionString = "Gloomdelve 1.0.0"

// acceptCommands reads and executes commands until one of them costs a
// game turn, or a level change or end-of-input winds the loop down.
// Free-turn commands (menus, aborted prompts, illegal keys) loop back
// for another key without burning game time.
func (st *State) acceptCommands() {
	key := st.LastKey

	for {
		if st.Count > 0 {
			st.Hooks.StatusChanged(FieldState)
		}
		st.FreeTurn = false

		if st.RunDir != 0 {
			if !st.Hooks.RunStep(st.RunDir) {
				st.endRun()
			} else {
				st.RunSteps--
				if st.RunSteps == 0 {
					st.endRun()
				}
			}
			st.T.Flush()
		} else {
			row, col := st.Hooks.PlayerPos()
			st.T.MoveCursorRelative(row, col)

			if st.Count > 0 {
				// A counted command repeats without another key read.
				st.T.AckMessage()
			} else {
				st.T.AckMessage()
				key = st.T.ReadKey()

				counter := 0
				if (st.Roguelike && key >= '0' && key <= '9') || (!st.Roguelike && key == '#') {
					key, counter = st.readCount(key)
				}

				if key == '^' {
					key = st.readControlEntry()
				}

				// The cursor may have wandered during the prompts.
				st.T.MoveCursorRelative(row, col)

				if !st.Roguelike {
					key = st.remapOriginal(key)
				}

				if counter > 0 {
					if !validCountCommand(key) {
						st.FreeTurn = true
						key = ' '
						st.T.Message("Invalid command with a count.")
					} else {
						st.Count = counter
						st.Hooks.StatusChanged(FieldState)
					}
				}
			}

			st.T.EraseLine(termio.MsgLine, 0)
			st.T.MoveCursorRelative(row, col)
			st.T.Flush()

			st.doCommand(key)

			// A run counts differently: the prefix count becomes the
			// remaining auto-steps, consumed one per scheduler pass.
			if st.RunDir != 0 {
				st.RunSteps = st.Count - 1
				st.Count = 0
			} else if st.FreeTurn {
				st.Count = 0
			} else if st.Count > 0 {
				st.Count--
			}
		}

		if !st.FreeTurn || st.NewLevel || st.eof() {
			break
		}
	}

	st.LastKey = key
}

// readCount runs the repeat-count edit loop: digits build the count,
// backspace erases, anything else terminates and becomes the command.
// An empty count means the maximum of 99; a terminating space prompts
// for the command separately so digits themselves stay usable.
func (st *State) readCount(key rune) (rune, int) {
	st.T.Prt("Repeat count:", 0, 0)

	if key == '#' {
		key = '0'
	}

	counter := 0
	for {
		if key == termio.Delete || key == termio.Ctrl('H') {
			counter /= 10
			st.T.Prt(strconv.Itoa(counter), 0, 14)
		} else if key >= '0' && key <= '9' {
			if counter > 99 {
				st.T.Bell()
			} else {
				counter = counter*10 + int(key-'0')
				st.T.Prt(strconv.Itoa(counter), 0, 14)
			}
		} else {
			break
		}
		key = st.T.ReadKey()
	}

	if counter == 0 {
		counter = 99
		st.T.Prt("99", 0, 14)
	}

	if key == ' ' {
		st.T.Prt("Command:", 0, 20)
		key = st.T.ReadKey()
	}

	return key, counter
}

// readControlEntry handles "^ <letter>" as an alternate way of typing
// control characters on terminals that swallow them.
func (st *State) readControlEntry() rune {
	c, ok := st.T.Command("Control-")
	if !ok {
		return ' '
	}
	switch {
	case c >= 'A' && c <= 'Z':
		return c - 'A' + 1
	case c >= 'a' && c <= 'z':
		return c - 'a' + 1
	}
	st.T.Message("Type ^ <letter> for a control char")
	return ' '
}

// moveWithoutPickup maps the '-' prefix to a movement command that
// walks over objects instead of picking them up. The direction prompt
// may clobber the pending count, so it is saved across the call.
func (st *State) moveWithoutPickup(key rune) (rune, bool) {
	if key != '-' {
		return key, true
	}

	countSave := st.Count
	if dir, ok := st.getDirection(""); ok {
		st.Count = countSave
		return moveKeys[dir], false
	}
	return ' ', false
}

func (st *State) doCommand(key rune) {
	key, pickup := st.moveWithoutPickup(key)

	switch key {
	case 'Q':
		st.quitGame()
		st.FreeTurn = true
	case termio.Ctrl('P'):
		st.previousMessage()
		st.FreeTurn = true
	case termio.Ctrl('V'):
		st.T.Message("This game is free software, distributed under the GNU General Public License.")
		st.FreeTurn = true
	case termio.Ctrl('W'):
		st.flipWizardMode()
		st.FreeTurn = true
	case termio.Ctrl('X'):
		st.saveAndExit()
		st.FreeTurn = true
	case '=':
		st.T.SaveScreen()
		st.setOptions()
		st.T.RestoreScreen()
		st.FreeTurn = true
	case '{':
		st.Hooks.ItemCommand('{')
		st.FreeTurn = true
	case '!', '$':
		// escaping to a shell is long gone
		st.FreeTurn = true
	case termio.Escape, ' ':
		st.FreeTurn = true
	case 'b', 'j', 'n', 'h', 'l', 'y', 'k', 'u':
		st.Hooks.MoveChar(dirFromKey(key), pickup)
	case 'B', 'J', 'N', 'H', 'L', 'Y', 'K', 'U':
		st.startRun(dirFromKey(key + 'a' - 'A'))
	case termio.Ctrl('B'):
		st.Hooks.Tunnel(1)
	case termio.Ctrl('M'), termio.Ctrl('J'):
		st.Hooks.Tunnel(2)
	case termio.Ctrl('N'):
		st.Hooks.Tunnel(3)
	case termio.Ctrl('H'):
		st.Hooks.Tunnel(4)
	case termio.Ctrl('L'):
		st.Hooks.Tunnel(6)
	case termio.Ctrl('Y'):
		st.Hooks.Tunnel(7)
	case termio.Ctrl('K'):
		st.Hooks.Tunnel(8)
	case termio.Ctrl('U'):
		st.Hooks.Tunnel(9)
	case '/':
		st.identifySymbol()
		st.FreeTurn = true
	case '.':
		// stay in place; with a count, the remainder becomes a rest
		st.Hooks.MoveChar(5, pickup)
		if st.Count > 1 {
			st.Count--
			st.rest()
		}
	case '<':
		st.takeStairs(false)
	case '>':
		st.takeStairs(true)
	case '?':
		st.showHelp()
		st.FreeTurn = true
	case 'C':
		st.T.SaveScreen()
		st.showCharacter()
		st.T.RestoreScreen()
		st.FreeTurn = true
	case 'V':
		st.T.Message("No high scores recorded.")
		st.FreeTurn = true
	case 'W':
		st.locateOnMap()
		st.FreeTurn = true
	case 'R':
		st.rest()
	case '#':
		if st.Searching {
			st.searchOff()
		} else {
			st.searchOn()
		}
		st.FreeTurn = true
	case 's':
		st.Hooks.SearchHere()
	case 'x':
		st.Hooks.Look()
		st.FreeTurn = true
	case 'M':
		h, w := st.Hooks.DungeonSize()
		st.T.OverviewMap(h, w, st.Hooks.SymbolAt)
		st.FreeTurn = true
	case 'E':
		st.eat()
	case 'F':
		st.refillLamp()
	case 'v':
		st.T.Message("You are playing " + versionString + ".")
		st.FreeTurn = true
	case 'f', 'D', 'G', 'z', 'P', 'c', 'd', 'e', 't', 'i', 'S', 'm', 'o', 'p', 'q', 'r', 'T', 'Z', 'w', 'X':
		st.FreeTurn = st.Hooks.ItemCommand(key)
	default:
		// Wizard commands are free moves.
		st.FreeTurn = true
		if st.WizardMode {
			st.wizardCommand(key)
		} else {
			st.T.Prt("Type '?' for help.", 0, 0)
		}
	}

	st.LastCommand = key
}

// startRun begins auto-running in the given direction; the first step
// happens immediately, later steps come from the scheduler loop.
func (st *State) startRun(dir int) {
	st.RunDir = dir
	if !st.Hooks.RunStep(dir) {
		st.endRun()
	}
}

func (st *State) quitGame() {
	st.T.FlushInput()
	if st.T.Confirm("Do you really want to quit?") {
		st.P.Dead = true
		st.NewLevel = true
		st.P.DiedFrom = "Quitting"
	}
}

// previousMessage recalls history: a bare invocation shows one line,
// repeating it (or giving a count) shows that many as an overlay.
func (st *State) previousMessage() {
	n := termio.HistorySize
	if st.Count > 0 {
		if st.Count < n {
			n = st.Count
		}
		st.Count = 0
	} else if st.LastCommand != termio.Ctrl('P') {
		n = 1
	}
	st.T.RecallMessages(n)
}

func (st *State) flipWizardMode() {
	if st.WizardMode {
		st.WizardMode = false
		st.T.Message("Wizard mode off.")
	} else if st.T.Confirm("Wizard mode is for debugging and experimenting. The game will not be scored if you enter wizard mode.") {
		st.WizardMode = true
		st.T.Message("Wizard mode on.")
	}
	st.Hooks.StatusChanged(FieldWinner)
}

func (st *State) saveAndExit() {
	if st.TotalWinner {
		st.T.Message("You are a Total Winner, your character must be retired.")
		if st.Roguelike {
			st.T.Message("Use 'Q' when you are ready to quit.")
		} else {
			st.T.Message("Use <Control>-K when you are ready to quit.")
		}
		return
	}

	st.P.DiedFrom = "(saved)"
	st.T.Message("Saving game...")
	if st.Hooks.SaveGame() {
		st.T.OnExit()
	}
	st.P.DiedFrom = "(alive and well)"
}

func (st *State) setOptions() {
	st.T.Prt("Option settings. Answer each prompt.", 1, 0)
	st.Roguelike = st.T.Confirm("Use roguelike (hjkl) movement keys?")
	bell := st.T.Confirm("Sound the terminal bell?")
	st.T.SetBell(bell)
	st.BellOn = bell
}

// rest puts the player to sleep for a number of turns, or until fully
// recovered when given '*'. A pending count doubles as the duration.
func (st *State) rest() {
	restCount := 0
	if st.Count > 0 {
		restCount = st.Count
		st.Count = 0
	} else {
		st.T.Prt("Rest for how long? ", 0, 0)
		if input, ok := st.T.ReadString(0, 19, 5); ok {
			if input == "*" {
				restCount = -1
			} else {
				restCount, _ = strconv.Atoi(input)
			}
		}
	}

	if restCount == 0 {
		st.FreeTurn = true
		st.T.EraseLine(termio.MsgLine, 0)
		return
	}
	if restCount > 30000 {
		restCount = 30000
	}

	st.P.Rest = restCount
	st.P.FoodDigested--
	st.Hooks.StatusChanged(FieldState)
	st.T.Prt("Press any key to stop resting...", 0, 0)
	st.T.Flush()
}

func (st *State) takeStairs(down bool) {
	if !st.Hooks.StairsHere(down) {
		st.FreeTurn = true
		if down {
			st.T.Message("I see no down staircase here.")
		} else {
			st.T.Message("I see no up staircase here.")
		}
		return
	}

	if down {
		st.P.NoteDepth(st.P.Depth + 1)
		st.T.Message("You enter a maze of down staircases.")
	} else {
		st.P.NoteDepth(st.P.Depth - 1)
		st.T.Message("You enter a maze of up staircases.")
	}
	st.NewLevel = true
}

func (st *State) eat() {
	st.FreeTurn = true

	idx, ok := st.Inv.FindKind(item.KindFood)
	if !ok {
		st.T.Message("You are not carrying any food.")
		return
	}
	st.FreeTurn = false

	st.P.Food += st.Inv.Pack[idx].Nutrition
	if st.P.Food > player.FoodMax {
		st.T.Message("You are bloated from overeating.")
		st.P.Food = player.FoodMax
	}
	if st.P.Hungry && st.P.Food > player.FoodAlert {
		st.P.Hungry = false
		st.P.Weak = false
		st.Hooks.StatusChanged(FieldHunger)
	}

	st.Inv.RemoveOne(idx)
	st.Hooks.CheckWeight()
}

func (st *State) refillLamp() {
	st.FreeTurn = true

	lamp := st.Inv.Lamp()
	if lamp.Kind != item.KindLamp {
		st.T.Message("But you are not using a lamp.")
		return
	}
	idx, ok := st.Inv.FindKind(item.KindFlask)
	if !ok {
		st.T.Message("You have no oil.")
		return
	}
	st.FreeTurn = false

	lamp.Fuel += st.Inv.Pack[idx].Fuel
	if lamp.Fuel > player.LampMaxFuel {
		lamp.Fuel = player.LampMaxFuel
		st.T.Message("Your lamp overflows, spilling oil on the ground.")
		st.T.Message("Your lamp is full.")
	} else if lamp.Fuel > player.LampMaxFuel/2 {
		st.T.Message("Your lamp is more than half full.")
	} else {
		st.T.Message("Your lamp is half full.")
	}
	st.P.LightFuel = lamp.Fuel

	st.Inv.RemoveOne(idx)
	st.Hooks.CheckWeight()
}

// locateOnMap scrolls the viewport a panel at a time so the player can
// survey the level without moving.
func (st *State) locateOnMap() {
	if st.P.Cond.Active(player.Blind) || !st.P.CarryingLight {
		st.T.Message("You can't see your map.")
		return
	}

	row, col := st.Hooks.PlayerPos()
	y, x := row, col
	if st.GetPanel(y, x, true) {
		st.Hooks.RedrawMap()
	}

	cy, cx := st.panelRow, st.panelCol

	for {
		py, px := st.panelRow, st.panelCol

		rel := ""
		if py != cy || px != cx {
			ns := ""
			if py < cy {
				ns = " North"
			} else if py > cy {
				ns = " South"
			}
			ew := ""
			if px < cx {
				ew = " West"
			} else if px > cx {
				ew = " East"
			}
			rel = ns + ew + " of"
		}

		prompt := fmt.Sprintf("Map sector [%d,%d], which is%s your sector. Look which direction?", py, px, rel)
		dir, ok := st.getDirection(prompt)
		if !ok {
			break
		}

		// Jump whole half-panels; the offsets invert on the way back
		// out when the edge of the map is reached.
		for {
			x += ((dir-1)%3 - 1) * viewWidth / 2
			y -= ((dir-1)/3 - 1) * viewHeight / 2

			h, w := st.Hooks.DungeonSize()
			if x < 0 || y < 0 || x >= w || y >= h {
				st.T.Message("You've gone past the end of your map.")
				x -= ((dir-1)%3 - 1) * viewWidth / 2
				y += ((dir-1)/3 - 1) * viewHeight / 2
				break
			}

			if st.GetPanel(y, x, true) {
				st.Hooks.RedrawMap()
				break
			}
		}
	}

	// Snap back to the player, but only if really necessary.
	if st.GetPanel(row, col, false) {
		st.Hooks.RedrawMap()
	}
}

var symbolDescriptions = map[rune]string{
	'@':  "You",
	'#':  "A granite wall",
	'%':  "A magma or quartz vein",
	'.':  "Floor",
	'\'': "An open door",
	'+':  "A closed door",
	'<':  "An up staircase",
	'>':  "A down staircase",
	':':  "A pile of rubble",
	'*':  "A mineral vein with treasure",
	'^':  "A trap",
	'$':  "Money",
	'!':  "A potion",
	'?':  "A scroll",
	'-':  "A wand or rod",
	'_':  "A staff",
	'=':  "A ring",
	',':  "Food",
	'~':  "A lamp or chest",
}

func (st *State) identifySymbol() {
	key, ok := st.T.Command("Enter character to be identified :")
	if !ok {
		return
	}
	if desc, found := symbolDescriptions[key]; found {
		st.T.Message(string(key) + " - " + desc + ".")
	} else if key >= 'a' && key <= 'z' || key >= 'A' && key <= 'Z' {
		st.T.Message(string(key) + " - A creature.")
	} else {
		st.T.Message("Unknown Symbol.")
	}
}

var roguelikeHelp = []string{
	"Movement: h j k l y u b n      Run: H J K L Y U B N",
	"Tunnel:   ^h ^j ^k ^l ^y ^u ^b ^n",
	"",
	"  .  stay in place             R  rest a while",
	"  -  move without pickup       s  search for a turn",
	"  #  toggle search mode        x  examine surrounds",
	"  <  go up a staircase         >  go down a staircase",
	"  i  inventory                 e  equipment list",
	"  w  wear or wield             T  take off",
	"  d  drop something            E  eat food",
	"  F  fill lamp                 f  force (bash)",
	"  o  open something            c  close something",
	"  D  disarm a trap             S  spike a door",
	"  m  cast a spell              p  pray",
	"  q  quaff a potion            r  read a scroll",
	"  z  zap a wand                Z  zap a staff",
	"  t  throw something           P  peruse a book",
	"  M  map overview              W  locate on map",
	"  C  character sheet           /  identify a symbol",
	"  =  set options               ^P previous messages",
	"  ^X save and exit             Q  quit",
}

var originalHelp = []string{
	"Movement: numbers 1-9 (5 rests one turn)",
	"Run: . <dir>      Tunnel: T <dir>",
	"",
	"  -  move without pickup       R  rest a while",
	"  s  search for a turn         S  toggle search mode",
	"  l  look about                L  locate on map",
	"  <  go up a staircase         >  go down a staircase",
	"  i  inventory                 e  equipment list",
	"  w  wear or wield             t  take off",
	"  d  drop something            E  eat food",
	"  F  fill lamp                 B  bash (force)",
	"  o  open something            c  close something",
	"  D  disarm a trap             j  jam a door",
	"  m  cast a spell              p  pray",
	"  q  quaff a potion            r  read a scroll",
	"  a  aim a wand                u  use a staff",
	"  f  fire (throw)              b  browse a book",
	"  M  map overview              C  character sheet",
	"  /  identify a symbol         =  set options",
	"  ^P previous messages         # <count> repeat prefix",
	"  ^X save and exit             ^K quit",
}

func (st *State) showHelp() {
	st.T.SaveScreen()
	st.T.ClearScreen()

	lines := originalHelp
	if st.Roguelike {
		lines = roguelikeHelp
	}
	for i, line := range lines {
		st.T.PutString(line, i, 0)
	}

	st.T.Pause(termio.ScreenHeight - 1)
	st.T.RestoreScreen()
}

func (st *State) showCharacter() {
	st.T.ClearScreen()
	p := st.P

	st.T.PutString("Character sheet", 0, 0)
	st.T.PutString(fmt.Sprintf("Level       : %6d", p.Level), 2, 0)
	st.T.PutString(fmt.Sprintf("Experience  : %6d", p.Exp), 3, 0)
	st.T.PutString(fmt.Sprintf("Hit points  : %3d/%3d", p.HP, p.MaxHP), 4, 0)
	st.T.PutString(fmt.Sprintf("Mana        : %3d/%3d", p.Mana, p.MaxMana), 5, 0)
	st.T.PutString(fmt.Sprintf("Armor class : %6d", p.DisplayAC), 6, 0)
	st.T.PutString(fmt.Sprintf("Speed       : %6d", p.Speed), 7, 0)
	st.T.PutString(fmt.Sprintf("Food        : %6d", p.Food), 8, 0)
	st.T.PutString(fmt.Sprintf("Weight      : %d of %d", p.InvenWeight, p.WeightLimit), 9, 0)
	st.T.PutString(fmt.Sprintf("Depth       : %d (deepest %d)", p.Depth*50, p.MaxDepth*50), 10, 0)

	st.T.Pause(12)
}

var wizardHelp = []string{
	"Wizard commands:",
	"",
	"  ^A  cure all maladies        ^D  jump to a level",
	"  ^T  teleport                 +   gain experience",
	"  ^F  map the level            \\   this help",
}

func (st *State) wizardCommand(key rune) {
	switch key {
	case termio.Ctrl('A'):
		st.cureAll()
	case termio.Ctrl('D'):
		st.jumpLevel()
	case termio.Ctrl('T'):
		st.Hooks.Teleport(100)
	case '+':
		if st.Count > 0 {
			st.P.Exp = st.Count
			st.Count = 0
		} else if st.P.Exp == 0 {
			st.P.Exp = 1
		} else {
			st.P.Exp *= 2
		}
		st.Hooks.StatusChanged(FieldExp)
	case '\\':
		st.T.SaveScreen()
		st.T.ClearScreen()
		for i, line := range wizardHelp {
			st.T.PutString(line, i, 0)
		}
		st.T.Pause(len(wizardHelp) + 1)
		st.T.RestoreScreen()
	default:
		if !st.Hooks.WizardCommand(key) {
			st.T.Prt("Type '?' or '\\' for help.", 0, 0)
		}
	}
}

// cureAll shortens every affliction to a single turn so the normal
// expiry paths run their wear-off side effects next update.
func (st *State) cureAll() {
	ailments := []player.Condition{
		player.Blind, player.Confused, player.Afraid,
		player.Poisoned, player.Slow, player.Hallucinating,
	}
	for _, c := range ailments {
		if st.P.Cond.Remaining(c) > 1 {
			st.P.Cond.Set(c, 1)
		}
	}
	st.T.Message("You feel much better.")
}

func (st *State) jumpLevel() {
	depth := -1
	if st.Count > 0 {
		if st.Count > 99 {
			depth = 0
		} else {
			depth = st.Count
		}
		st.Count = 0
	} else {
		st.T.Prt("Go to which level (0-99) ? ", 0, 0)
		if input, ok := st.T.ReadString(0, 27, 10); ok {
			depth, _ = strconv.Atoi(input)
		}
	}

	if depth > -1 {
		if depth > 99 {
			depth = 99
		}
		st.P.NoteDepth(depth)
		st.NewLevel = true
	} else {
		st.T.EraseLine(termio.MsgLine, 0)
	}
}
