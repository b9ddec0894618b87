// Package renderer draws a text preview of the loaded floor for terminals.
package renderer

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"cavedelve/pkg/engine/terminal"
	"cavedelve/pkg/engine/world"
	"cavedelve/pkg/game/floors"
	"cavedelve/pkg/game/gameplay"
	"cavedelve/pkg/game/loot"
)

// Icon constants for the floor preview
const (
	PlayerIcon    = "@"
	IconWall      = "▒"
	IconFloor     = "·"
	IconVoid      = " "
	IconStairDown = ">"
	IconStairUp   = "<"
	IconChest     = "■"
	IconOpened    = "□"
	IconTreasure  = "$"
	IconEnemy     = "e"
)

// Viewport dimensions used when the terminal size is unknown (player will be centered)
const (
	ViewportRows = 21
	ViewportCols = 61
)

// Rows reserved around the map for the status bar, messages, and prompt.
const chromeRows = 14

var (
	ColorWall        color.Style
	ColorFloor       color.Style
	ColorStair       color.Style
	ColorEscape      color.Style
	ColorAction      color.Style
	ColorActionShort color.Style
	ColorDenied      color.Style
	ColorItem        color.Style
	ColorSubtle      color.Style
	ColorPlayer      color.Style
	ColorEnemy       color.Style

	rarityColors map[loot.Rarity]color.Style

	regexpStringFunctions = regexp.MustCompile(`([a-zA-Z_]*){([a-z A-Z0-9_,:.\-]+)}`)
)

// dynamicGet resolves keys that are only known at run time.
var dynamicGet = gotext.Get

func init() {
	InitColors()
}

// InitColors initializes the color styles
func InitColors() {
	ColorWall = color.Style{color.FgWhite}
	ColorFloor = color.Style{color.FgGray}
	ColorStair = color.Style{color.FgCyan, color.OpBold}
	ColorEscape = color.Style{color.FgYellow, color.OpBold}
	ColorAction = color.Style{color.FgMagenta}
	ColorActionShort = color.Style{color.FgMagenta, color.OpBold}
	ColorDenied = color.Style{color.FgRed, color.OpBold}
	ColorItem = color.Style{color.FgGreen, color.OpBold}
	ColorSubtle = color.Style{color.FgGray, color.OpBold}
	ColorPlayer = color.Style{color.FgGreen, color.BgBlack, color.OpBold}
	ColorEnemy = color.Style{color.FgRed}

	rarityColors = map[loot.Rarity]color.Style{
		loot.Common:    {color.FgWhite},
		loot.Uncommon:  {color.FgGreen},
		loot.Rare:      {color.FgBlue, color.OpBold},
		loot.Epic:      {color.FgMagenta, color.OpBold},
		loot.Legendary: {color.FgYellow, color.OpBold},
	}
}

// RarityStyle returns the colour used for chests and items of a rarity.
func RarityStyle(r loot.Rarity) color.Style {
	if s, ok := rarityColors[r]; ok {
		return s
	}
	return ColorSubtle
}

// FormatString formats a string with special markup:
// GT{KEY} translates, ITEM{name} and ACTION{key} highlight.
func FormatString(msg string, a ...any) string {
	ret := fmt.Sprintf(msg, a...)

	for _, match := range regexpStringFunctions.FindAllStringSubmatch(ret, -1) {
		function := match[1]
		operand := match[2]

		var val string
		switch function {
		case "GT":
			val = dynamicGet(operand)
		case "ITEM":
			val = ColorItem.Sprint(operand)
		case "ACTION":
			val = ColorActionShort.Sprint(operand[0:1]) + ColorAction.Sprint(operand[1:])
		default:
			continue
		}

		ret = strings.Replace(ret, match[0], val, -1)
	}

	return ret
}

// PrintString prints a formatted string
func PrintString(msg string, a ...any) {
	fmt.Print(FormatString(msg, a...))
}

// PrintBullet prints a bulleted item
func PrintBullet(txt string) {
	fmt.Println(bulletLine(txt))
}

func bulletLine(txt string) string {
	return "- " + FormatString("%s", txt)
}

// Clear clears the terminal screen. Does nothing when output is not a terminal.
func Clear() {
	if terminal.IsInteractive() {
		fmt.Print("\033[H\033[2J")
	}
}

// RenderCell returns the string representation of cell p on the loaded floor.
// The player is drawn over everything; enemy spawn points only show on bare floor.
func RenderCell(s *gameplay.Session, p, player world.Point) string {
	f := s.Floor()
	if f == nil || !f.Grid.IsValidPosition(p) {
		return IconVoid
	}

	if p == player {
		return ColorPlayer.Sprint(PlayerIcon)
	}
	if f.HasTreasure && f.Treasure == p {
		return ColorEscape.Sprint(IconTreasure)
	}
	if tile, ok := f.Stairs[p]; ok {
		icon := IconStairDown
		if tile.Up {
			icon = IconStairUp
		}
		if tile.Kind == floors.Escape {
			return ColorEscape.Sprint(icon)
		}
		return ColorStair.Sprint(icon)
	}
	if c, ok := f.ChestAt(p); ok {
		if s.IsChestOpened(p) {
			return ColorSubtle.Sprint(IconOpened)
		}
		return RarityStyle(c.Rarity).Sprint(IconChest)
	}
	for _, e := range f.Enemies {
		if e == p {
			return ColorEnemy.Sprint(IconEnemy)
		}
	}
	if f.Grid.IsFloor(p) {
		return ColorFloor.Sprint(IconFloor)
	}
	return ColorWall.Sprint(IconWall)
}

// Viewport returns the top-left corner of a rows x cols window centred on the
// player and kept inside the grid where the grid is large enough.
func Viewport(grid *world.Grid, player world.Point, rows, cols int) world.Point {
	return world.Pt(
		clampStart(player.X-cols/2, cols, grid.Width()),
		clampStart(player.Y-rows/2, rows, grid.Height()),
	)
}

func clampStart(start, span, size int) int {
	if span >= size || start < 0 {
		return 0
	}
	if start+span > size {
		return size - span
	}
	return start
}

// RenderMap returns the viewport around the player, one line per row.
func RenderMap(s *gameplay.Session, player world.Point, rows, cols int) string {
	f := s.Floor()
	if f == nil {
		return ""
	}
	rows = min(rows, f.Grid.Height())
	cols = min(cols, f.Grid.Width())
	origin := Viewport(f.Grid, player, rows, cols)

	var sb strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			sb.WriteString(RenderCell(s, origin.Add(world.Pt(x, y)), player))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// PrintMap renders the floor around the player, sized to the terminal.
func PrintMap(s *gameplay.Session, player world.Point) {
	width, height := terminal.GetSize()
	rows := max(ViewportRows, height-chromeRows)
	cols := max(ViewportCols, width-2)

	f := s.Floor()
	if f == nil {
		return
	}
	ColorAction.Printf("%s\n\n", floors.Name(f.Number))

	indent := strings.Repeat(" ", max(0, (width-min(cols, f.Grid.Width()))/2))
	for _, line := range strings.Split(strings.TrimSuffix(RenderMap(s, player, rows, cols), "\n"), "\n") {
		fmt.Println(indent + line)
	}
	fmt.Println()
}

// StatusLine summarises the run: timer, treasure, and carried items.
func StatusLine(s *gameplay.Session) string {
	run := s.Run()
	parts := []string{
		fmt.Sprintf("%s %s", ColorSubtle.Sprint("Time:"), formatTimer(run.Timer)),
	}
	if run.HasTreasure {
		parts = append(parts, ColorEscape.Sprint(IconTreasure+" treasure"))
	}
	parts = append(parts,
		ColorSubtle.Sprint("Loadout: ")+itemList(s, run.Loadout),
		ColorSubtle.Sprint("Found: ")+itemList(s, run.PendingLoot),
	)
	return strings.Join(parts, ColorSubtle.Sprint("  |  "))
}

func itemList(s *gameplay.Session, ids []string) string {
	if len(ids) == 0 {
		return ColorSubtle.Sprint("(empty)")
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		it, ok := s.Catalog().Find(id)
		if !ok {
			continue
		}
		name := it.Name
		if it.Icon != "" {
			name = it.Icon + " " + name
		}
		names = append(names, RarityStyle(it.Rarity).Sprint(name))
	}
	return strings.Join(names, ColorSubtle.Sprint(", "))
}

func formatTimer(d time.Duration) string {
	d = d.Round(100 * time.Millisecond)
	return fmt.Sprintf("%02d:%04.1f", int(d.Minutes()), (d % time.Minute).Seconds())
}

// PrintStatusBar renders the run status bar
func PrintStatusBar(s *gameplay.Session) {
	fmt.Println(StatusLine(s))
}

// PrintPossibleActions prints the available actions
func PrintPossibleActions() {
	PrintBullet("ACTION{arrows}/ACTION{hjkl}: move  ACTION{.}: wait  ACTION{e}: open chest  ACTION{f9}: dump  ACTION{q}: quit")
}

// PrintMessagesPane renders the messages log pane
func PrintMessagesPane(s *gameplay.Session) {
	width, _ := terminal.GetSize()

	label := " Messages "
	sideLen := max(1, (width-len(label))/2)
	leftDashes := strings.Repeat("─", sideLen)
	rightDashes := strings.Repeat("─", max(1, width-sideLen-len(label)))

	fmt.Println()
	fmt.Println(ColorSubtle.Sprint(leftDashes + label + rightDashes))

	msgs := s.Messages()
	if len(msgs) == 0 {
		fmt.Println(ColorSubtle.Sprint("  (no messages)"))
	}
	for _, msg := range msgs {
		fmt.Printf("  %s\n", msg)
	}

	fmt.Println(ColorSubtle.Sprint(strings.Repeat("─", width)))
}
