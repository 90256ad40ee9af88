package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/session"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	textStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))

	buttonStyle = lipgloss.NewStyle().
			Width(30).
			Align(lipgloss.Center).
			Padding(0, 1).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("240"))
	activeButtonStyle = buttonStyle.
				Background(lipgloss.Color("248")).
				Foreground(lipgloss.Color("0")).
				Bold(true)
)

// centerText horizontally centers a possibly styled line.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// centerBlock places a multi-line block in the middle of the window.
func centerBlock(block string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}

func startView(width, height int) string {
	lines := []string{
		titleStyle.Render("S N A K E"),
		"",
		titleStyle.Render("Press SPACE to start"),
		textStyle.Render("Use the arrow keys to move"),
		"",
		hintStyle.Render("Press ESC to quit"),
	}
	return centerBlock(lipgloss.JoinVertical(lipgloss.Center, lines...), width, height)
}

func difficultyView(v session.View, width, height int) string {
	lines := []string{textStyle.Bold(true).Render("Choose difficulty"), ""}

	for i, p := range config.Presets() {
		label := fmt.Sprintf("%d. %s", i+1, p.Label())
		style := buttonStyle
		if i == v.Cursor {
			style = activeButtonStyle
		}
		lines = append(lines, style.Render(label), "")
	}

	lines = append(lines,
		hintStyle.Render("1/2/3 or ↑/↓ + SPACE to choose"),
		hintStyle.Render("Press ESC to quit"),
	)
	return centerBlock(lipgloss.JoinVertical(lipgloss.Center, lines...), width, height)
}

func gameOverView(v session.View, width, height int) string {
	lines := []string{
		titleStyle.Render("GAME OVER"),
		"",
		titleStyle.Render(fmt.Sprintf("Score: %d", v.Outcome.Score)),
	}
	if v.Ranked {
		lines = append(lines, textStyle.Render(fmt.Sprintf("New leaderboard entry at #%d", v.Rank+1)))
	}
	lines = append(lines,
		"",
		hintStyle.Render("SPACE: leaderboard    ESC: quit"),
	)
	return centerBlock(lipgloss.JoinVertical(lipgloss.Center, lines...), width, height)
}
