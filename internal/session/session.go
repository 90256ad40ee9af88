// Package session drives the page flow around the simulation: start menu,
// difficulty selection, the running game, the game-over screen and the
// leaderboard view. Flow is a table of named states and events; drivers
// feed input and ticks and render View snapshots.
package session

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/leaderboard"
)

// ErrInvalidTransition is returned when an event is not allowed in the
// current state.
var ErrInvalidTransition = errors.New("session: invalid transition")

// State is a page of the session.
type State int

const (
	StateStartMenu State = iota
	StateDifficultySelect
	StateRunning
	StateGameOver
	StateLeaderboard
	StateExited
)

func (s State) String() string {
	switch s {
	case StateStartMenu:
		return "start_menu"
	case StateDifficultySelect:
		return "difficulty_select"
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game_over"
	case StateLeaderboard:
		return "leaderboard"
	case StateExited:
		return "exited"
	default:
		return "unknown"
	}
}

// Event triggers a state change.
type Event int

const (
	EventStart Event = iota
	EventSelect
	EventCollision
	EventShowLeaderboard
	EventReturn
	EventQuit
)

func (e Event) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventSelect:
		return "select"
	case EventCollision:
		return "collision"
	case EventShowLeaderboard:
		return "show_leaderboard"
	case EventReturn:
		return "return"
	case EventQuit:
		return "quit"
	default:
		return "unknown"
	}
}

var transitions = map[State]map[Event]State{
	StateStartMenu: {
		EventStart: StateDifficultySelect,
		EventQuit:  StateExited,
	},
	StateDifficultySelect: {
		EventSelect: StateRunning,
		EventQuit:   StateExited,
	},
	StateRunning: {
		EventCollision: StateGameOver,
		EventQuit:      StateExited,
	},
	StateGameOver: {
		EventShowLeaderboard: StateLeaderboard,
		EventQuit:            StateExited,
	},
	StateLeaderboard: {
		EventReturn: StateDifficultySelect,
		EventQuit:   StateExited,
	},
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. It is also handed to every game.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithNow replaces the clock used for the leaderboard lock and cool-downs.
func WithNow(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithSeed makes games deterministic: game n is seeded with seed+n.
// Zero keeps time-based seeding.
func WithSeed(seed int64) Option {
	return func(s *Session) { s.seed = seed }
}

// WithGameOptions passes options to every game the session creates.
func WithGameOptions(opts ...snake.Option) Option {
	return func(s *Session) { s.gameOpts = append(s.gameOpts, opts...) }
}

// Session owns one player's journey through the pages.
type Session struct {
	cfg      config.SnakeConfig
	store    *leaderboard.Store
	logger   *log.Logger
	now      func() time.Time
	seed     int64
	gameOpts []snake.Option

	state      State
	difficulty config.DifficultyPreset
	cursor     int
	game       *snake.Game
	pending    core.InputFrame
	played     int64

	outcome snake.Outcome
	rank    int
	ranked  bool
	board   []leaderboard.Entry

	lockUntil     time.Time
	cooldownUntil time.Time
}

// New creates a session on the start menu.
func New(cfg config.SnakeConfig, store *leaderboard.Store, opts ...Option) *Session {
	s := &Session{
		cfg:        cfg,
		store:      store,
		logger:     log.New(io.Discard),
		now:        time.Now,
		state:      StateStartMenu,
		difficulty: config.DifficultyNormal,
		cursor:     1,
		pending:    core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current page.
func (s *Session) State() State {
	return s.state
}

// Done reports whether the session has exited.
func (s *Session) Done() bool {
	return s.state == StateExited
}

// Difficulty returns the selected difficulty.
func (s *Session) Difficulty() config.DifficultyPreset {
	return s.difficulty
}

// Fire applies ev to the current state and runs the entry action of the
// target state.
func (s *Session) Fire(ev Event) error {
	next, ok := transitions[s.state][ev]
	if !ok {
		return fmt.Errorf("%w: %s in %s", ErrInvalidTransition, ev, s.state)
	}

	from := s.state
	s.state = next
	s.logger.Debug("session transition", "from", from, "event", ev, "to", next)

	now := s.now()
	if next != StateRunning && next != StateExited {
		s.cooldownUntil = now.Add(s.cfg.ReturnDelay())
	}

	switch next {
	case StateRunning:
		s.startGame()
	case StateGameOver:
		s.finishGame()
	case StateLeaderboard:
		s.board = s.store.Load()
		s.lockUntil = now.Add(s.cfg.LeaderboardLock())
	case StateExited:
		s.logger.Info("session exited", "games", s.played)
	}
	return nil
}

// Select chooses a difficulty and starts a game.
func (s *Session) Select(p config.DifficultyPreset) error {
	if _, err := config.ParseDifficulty(string(p)); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if s.state != StateDifficultySelect {
		return fmt.Errorf("%w: %s in %s", ErrInvalidTransition, EventSelect, s.state)
	}
	s.difficulty = p
	for i, preset := range config.Presets() {
		if preset == p {
			s.cursor = i
		}
	}
	return s.Fire(EventSelect)
}

// Quit ends the session from any state.
func (s *Session) Quit() {
	if s.state == StateExited {
		return
	}
	s.Fire(EventQuit) //nolint:errcheck
}

func (s *Session) startGame() {
	seed := time.Now().UnixNano()
	if s.seed != 0 {
		seed = s.seed + s.played
	}
	s.played++

	opts := append([]snake.Option{snake.WithLogger(s.logger)}, s.gameOpts...)
	s.game = snake.New(s.cfg, s.difficulty, opts...)
	s.game.Reset(core.RuntimeConfig{Seed: seed})
	s.pending.Clear()

	s.logger.Info("game started", "difficulty", s.difficulty, "seed", seed)
}

func (s *Session) finishGame() {
	out, ok := s.game.Outcome()
	if !ok {
		out = snake.Outcome{Score: s.game.State().Score, Difficulty: s.difficulty}
	}
	s.outcome = out
	s.rank, s.ranked = s.store.RecordScore(out.Score, out.Difficulty)

	s.logger.Info("game over", "score", out.Score, "difficulty", out.Difficulty, "cause", out.Cause, "rank", s.rank, "ranked", s.ranked)
}

// HandleInput interprets one frame of input for the current page.
// Quit and back always end the session. Directions during a game are
// buffered for the next tick.
func (s *Session) HandleInput(in core.InputFrame) {
	if in.Has(core.ActionQuit) || in.Has(core.ActionBack) {
		s.Quit()
		return
	}

	if s.state == StateRunning {
		if a, ok := in.Direction(); ok {
			s.pending.Set(a)
		}
		return
	}

	if s.now().Before(s.cooldownUntil) {
		return
	}

	switch s.state {
	case StateStartMenu:
		if in.Has(core.ActionConfirm) {
			s.Fire(EventStart) //nolint:errcheck
		}
	case StateDifficultySelect:
		s.handleDifficultyInput(in)
	case StateGameOver:
		if in.Has(core.ActionConfirm) {
			s.Fire(EventShowLeaderboard) //nolint:errcheck
		}
	case StateLeaderboard:
		if in.Has(core.ActionConfirm) && !s.now().Before(s.lockUntil) {
			s.Fire(EventReturn) //nolint:errcheck
		}
	}
}

func (s *Session) handleDifficultyInput(in core.InputFrame) {
	presets := config.Presets()
	switch {
	case in.Has(core.ActionSelectEasy):
		s.Select(config.DifficultyEasy) //nolint:errcheck
	case in.Has(core.ActionSelectNormal):
		s.Select(config.DifficultyNormal) //nolint:errcheck
	case in.Has(core.ActionSelectHard):
		s.Select(config.DifficultyHard) //nolint:errcheck
	case in.Has(core.ActionConfirm):
		s.Select(presets[s.cursor]) //nolint:errcheck
	case in.Has(core.ActionUp):
		s.cursor = (s.cursor + len(presets) - 1) % len(presets)
	case in.Has(core.ActionDown):
		s.cursor = (s.cursor + 1) % len(presets)
	}
}

// Tick advances the running game by one step. It returns true when the
// step ended the game. Outside a game it does nothing.
func (s *Session) Tick() bool {
	if s.state != StateRunning {
		return false
	}
	res := s.game.Step(s.pending)
	s.pending.Clear()
	if res.State.GameOver {
		s.Fire(EventCollision) //nolint:errcheck
		return true
	}
	return false
}

// Speed returns the tick rate for the current page in ticks per second.
func (s *Session) Speed() int {
	if s.state == StateRunning && s.game != nil {
		return s.game.Speed()
	}
	return s.cfg.Settings(s.difficulty).Speed
}

// Game returns the current game, or nil before the first selection.
func (s *Session) Game() *snake.Game {
	return s.game
}

// Config returns the game configuration the session plays with.
func (s *Session) Config() config.SnakeConfig {
	return s.cfg
}
