package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/session"
)

// Model is the Bubble Tea model driving one snake session.
type Model struct {
	session       *session.Session
	screen        *core.Screen
	keys          KeyMap
	keyMapper     *KeyMapper
	help          help.Model
	logger        *log.Logger
	screenshotDir string
	width         int
	height        int
	quitting      bool
}

// NewModel creates a model for the session. The screen buffer is sized to
// the playing field, one buffer cell per grid cell.
func NewModel(sess *session.Session, width, height int, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	keys := DefaultKeyMap()
	h := help.New()
	h.ShowAll = false

	dir := ""
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".snake", "screenshots")
	}

	grid := sess.Config().Grid
	return Model{
		session:       sess,
		screen:        core.NewScreen(grid.Width/grid.CellSize, grid.Height/grid.CellSize),
		keys:          keys,
		keyMapper:     NewKeyMapper(keys),
		help:          h,
		logger:        logger,
		screenshotDir: dir,
		width:         width,
		height:        height,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.session.Speed())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	frame := core.NewInputFrame()
	m.keyMapper.MapKeyToFrame(msg, &frame)
	m.session.HandleInput(frame)

	if m.session.Done() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick advances the simulation and re-arms the tick at the current
// page's rate.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.session.Done() {
		m.quitting = true
		return m, tea.Quit
	}
	// Hold the game while its board is hidden; the tick stays armed.
	if m.boardFits() {
		m.session.Tick()
	}
	return m, tickCmd(m.session.Speed())
}

// minSize returns the window size needed to show the board with its border
// and HUD line.
func (m Model) minSize() (width, height int) {
	bw, bh := BoardSize(m.screen)
	return bw + 2, bh + 3
}

func (m Model) boardFits() bool {
	w, h := m.minSize()
	return m.width >= w && m.height >= h
}

// saveScreenshot saves the current board to a text file.
func (m *Model) saveScreenshot() {
	g := m.session.Game()
	if g == nil || m.screenshotDir == "" {
		return
	}
	g.Render(m.screen)

	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(m.screenshotDir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.screenshotDir, fmt.Sprintf("snake_%s.txt", timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current page.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	v := m.session.View()
	switch v.State {
	case session.StateStartMenu:
		return startView(m.width, m.height)
	case session.StateDifficultySelect:
		return difficultyView(v, m.width, m.height)
	case session.StateRunning:
		return m.gameView(v)
	case session.StateGameOver:
		return gameOverView(v, m.width, m.height)
	case session.StateLeaderboard:
		return leaderboardView(v, m.width, m.height)
	}
	return ""
}

func (m Model) gameView(v session.View) string {
	if !m.boardFits() {
		w, h := m.minSize()
		msg := lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render("Window too small"),
			hintStyle.Render(fmt.Sprintf("Resize to at least %dx%d", w, h)),
		)
		return centerBlock(msg, m.width, m.height)
	}

	if g := m.session.Game(); g != nil {
		g.Render(m.screen)
	}

	hud := textStyle.Render(fmt.Sprintf("Score: %d", v.Game.Score)) +
		hintStyle.Render(fmt.Sprintf("    %s", v.Difficulty.Label()))
	board := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(RenderBoard(m.screen))

	block := lipgloss.JoinVertical(lipgloss.Left, hud, board)
	if _, h := m.minSize(); m.height > h {
		block = lipgloss.JoinVertical(lipgloss.Left, block, hintStyle.Render(m.help.View(m.keys)))
	}
	return centerBlock(block, m.width, m.height)
}

// Run starts the Bubble Tea program for a local session.
func Run(sess *session.Session, width, height int, logger *log.Logger) error {
	model := NewModel(sess, width, height, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
