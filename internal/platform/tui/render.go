package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// cellColors maps board contents to terminal colors.
var cellColors = map[core.Color]lipgloss.Color{
	core.ColorEmpty:      lipgloss.Color("0"),
	core.ColorSnakeHead:  lipgloss.Color("10"),
	core.ColorSnakeBody:  lipgloss.Color("2"),
	core.ColorCommonItem: lipgloss.Color("15"),
	core.ColorBonusItem:  lipgloss.Color("9"),
	core.ColorObstacle:   lipgloss.Color("245"),
}

func colorOf(c core.Color) lipgloss.Color {
	if col, ok := cellColors[c]; ok {
		return col
	}
	return cellColors[core.ColorEmpty]
}

// cellPair is two vertically stacked board cells drawn as one terminal cell.
type cellPair struct {
	top, bottom core.Color
}

func (p cellPair) style() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorOf(p.top)).Background(colorOf(p.bottom))
}

// RenderBoard converts a Screen to a styled string using half blocks, so
// every terminal row shows two board rows and cells stay roughly square.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderBoard(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height() + s.Height())

	for y := 0; y < s.Height(); y += 2 {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := cellPair{top: s.GetCell(x, y).Color, bottom: s.GetCell(x, y+1).Color}

			// Collect consecutive cells with the same pair
			n := 0
			for x < s.Width() {
				p := cellPair{top: s.GetCell(x, y).Color, bottom: s.GetCell(x, y+1).Color}
				if p != start {
					break
				}
				n++
				x++
			}

			if start.top == core.ColorEmpty && start.bottom == core.ColorEmpty {
				sb.WriteString(strings.Repeat(" ", n))
				continue
			}
			sb.WriteString(start.style().Render(strings.Repeat("▀", n)))
		}
	}
	return sb.String()
}

// BoardSize returns the terminal size RenderBoard needs for a screen.
func BoardSize(s *core.Screen) (width, height int) {
	return s.Width(), (s.Height() + 1) / 2
}
