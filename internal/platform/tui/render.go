package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-rhythm/internal/engine"
)

// hudHeight is the number of rows reserved above the board.
const hudHeight = 2

// colorStyles maps engine colour tags to lipgloss styles.
var colorStyles = map[string]lipgloss.Style{
	"":                         lipgloss.NewStyle(),
	string(engine.ColorRed):    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	string(engine.ColorYellow): lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	string(engine.ColorGreen):  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	string(engine.ColorBlue):   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	"gray":                     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// laneX returns the column for a lane: 20/40/60/80% of the board width.
func laneX(lane, width int) int {
	return (lane + 1) * width / (engine.NumLanes + 1)
}

// boardRow maps a board position onto a screen row below the HUD.
func boardRow(cy float64, rules engine.Rules, height int) int {
	rows := height - hudHeight - 1
	if rows <= 0 {
		return hudHeight
	}
	return hudHeight + int(cy/rules.ExpireLimit*float64(rows))
}

// DrawState renders a state snapshot into the screen buffer: HUD, target
// row, ambient circles, tails, and circles.
func DrawState(dst *Screen, s engine.State, song string, laneKeys []string) {
	dst.Clear()

	rules := s.Rules
	w, h := dst.Width(), dst.Height()

	hud := fmt.Sprintf(" %s | Score: %d  Combo: %d  x%.1f", song, int(s.Score), s.ConsecutiveHits, s.Multiplier)
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, w, '─')

	// Target row with the lane keys marked on it.
	targetY := boardRow(rules.TargetCY, rules, h)
	dst.DrawHLine(0, targetY, w, '╌')
	for lane := 0; lane < engine.NumLanes; lane++ {
		x := laneX(lane, w)
		key := '?'
		if lane < len(laneKeys) && laneKeys[lane] != "" {
			key = []rune(laneKeys[lane])[0]
		}
		dst.SetColored(x, targetY, key, string(engine.LaneColor(lane)))
	}

	// Ambient circles tick along the board edges.
	for _, bg := range s.BgCircles {
		y := boardRow(bg.CY, rules, h)
		dst.SetColored(0, y, '·', "gray")
		dst.SetColored(w-1, y, '·', "gray")
	}

	for _, t := range s.Tails {
		x := laneX(t.Lane, w)
		top := boardRow(t.Y2, rules, h)
		bottom := boardRow(t.Y1, rules, h)
		if top < hudHeight {
			top = hudHeight
		}
		glyph := '│'
		if t.IsPlayed {
			glyph = '┃'
		}
		dst.DrawVLine(x, top, bottom-top+1, glyph, string(t.Color))
	}

	for _, c := range s.Circles {
		y := boardRow(c.CY, rules, h)
		dst.SetColored(laneX(c.Lane, w), y, '◉', string(c.Color))
	}

	if s.GameEnd {
		dst.DrawTextCentered(h/2-1, "Song complete!")
		dst.DrawTextCentered(h/2+1, fmt.Sprintf("Final score: %d", int(s.Score)))
		dst.DrawTextCentered(h/2+2, "Press R to play again, Q to quit")
	}
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[""]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
