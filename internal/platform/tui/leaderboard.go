package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/leaderboard"
	"github.com/vovakirdan/tui-snake/internal/session"
)

var highlightColor = lipgloss.Color("9")

// newBoardTable builds the leaderboard table. The highlighted row, if any,
// is the table cursor and gets a NEW tag.
func newBoardTable(entries []leaderboard.Entry, highlight int, ranked bool) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 8},
		{Title: "Difficulty", Width: 10},
		{Title: "Time", Width: 19},
		{Title: "", Width: 5},
	}

	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		tag := ""
		if ranked && i == highlight {
			tag = "NEW"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d.", i+1),
			fmt.Sprintf("%d", e.Score),
			config.NormalizeDifficulty(e.Difficulty).Label(),
			e.DisplayTime(),
			tag,
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	if ranked {
		s.Selected = s.Selected.Foreground(highlightColor).Bold(true)
		t.SetCursor(highlight)
	} else {
		s.Selected = lipgloss.NewStyle()
	}
	t.SetStyles(s)
	// Header plus its bottom border
	t.SetHeight(len(rows) + 2)

	return t
}

func leaderboardView(v session.View, width, height int) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Render("LEADERBOARD")

	var body string
	if len(v.Board) == 0 {
		body = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 4).
			Render("No scores yet.")
	} else {
		t := newBoardTable(v.Board, v.Rank, v.Ranked)
		body = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Render(t.View())
	}

	hint := "SPACE: back    ESC: quit"
	if n := v.Countdown(); n > 0 {
		hint = fmt.Sprintf("SPACE: back (in %ds)    ESC: quit", n)
	}

	block := lipgloss.JoinVertical(lipgloss.Center, title, "", body, "", hintStyle.Render(hint))
	return centerBlock(block, width, height)
}
