// Package snake implements the snake simulation: the grid model, the item
// and obstacle placement engine, and the per-tick state machine.
// It has no terminal dependencies; drivers feed input frames and read
// snapshots.
package snake

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// State is the simulation state.
type State int

const (
	StateRunning State = iota
	StateGameOver
)

// Cause tells which terminal check ended the game.
type Cause int

const (
	CauseNone Cause = iota
	CauseWall
	CauseObstacle
	CauseSelf
)

func (c Cause) String() string {
	switch c {
	case CauseWall:
		return "wall"
	case CauseObstacle:
		return "obstacle"
	case CauseSelf:
		return "self"
	default:
		return "none"
	}
}

// Outcome is what a finished game hands to the leaderboard.
type Outcome struct {
	Score      int
	Difficulty config.DifficultyPreset
	Cause      Cause
}

// Clock supplies the time used for item lifetimes.
type Clock interface {
	Now() time.Time
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

// Option configures a Game.
type Option func(*Game)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c Clock) Option {
	return func(g *Game) { g.clock = c }
}

// WithLogger sets the logger used by the game and its placement engine.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

const initialLength = 4

// Game owns all state of one snake game.
type Game struct {
	cfg        config.SnakeConfig
	difficulty config.DifficultyPreset
	settings   config.DifficultySettings
	grid       Grid
	clock      Clock
	logger     *log.Logger
	rng        *rand.Rand
	placer     *Placer

	world         World
	direction     Direction
	nextDir       Direction // Latest requested heading, applied on the next tick
	tick          uint64
	moves         int
	score         int
	pendingGrowth int
	state         State
	cause         Cause
}

// New creates a game for the given difficulty. Call Reset before stepping.
func New(cfg config.SnakeConfig, difficulty config.DifficultyPreset, opts ...Option) *Game {
	g := &Game{
		cfg:        cfg,
		difficulty: difficulty,
		settings:   cfg.Settings(difficulty),
		grid:       NewGrid(cfg.Grid),
		clock:      wallClock{},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	return g
}

// Reset discards the previous game and starts a new one: a four-cell snake
// at the center heading right, one common item, and obstacle blocks when
// the difficulty enables them.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.placer = NewPlacer(g.grid, g.rng, g.cfg, g.settings, g.logger)

	g.world = newWorld()
	g.tick = 0
	g.moves = 0
	g.score = 0
	g.pendingGrowth = 0
	g.state = StateRunning
	g.cause = CauseNone
	g.direction = DirRight
	g.nextDir = DirRight

	start := g.grid.SpawnCell()
	g.world.Snake = make([]Cell, 0, initialLength)
	for i := 0; i < initialLength; i++ {
		g.world.Snake = append(g.world.Snake, Cell{X: start.X - i*g.grid.CellSize(), Y: start.Y})
	}

	common := ItemCommon
	g.placer.PlaceSingle(&g.world, &common, g.clock.Now())

	if blocks := g.settings.Obstacles; blocks.Enabled() {
		g.placer.PlaceBlocks(&g.world, blocks.Count, blocks.Width, blocks.Height)
	}

	g.logger.Debug("game reset", "difficulty", g.difficulty, "seed", cfg.Seed, "obstacles", len(g.world.obstacleOrder))
}

// Step advances the game by one tick. Steps on a finished game do nothing.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.state != StateRunning {
		return core.StepResult{State: g.State()}
	}
	g.tick++
	now := g.clock.Now()

	g.expireItems(now)

	// Resolve direction: reversal requests are dropped.
	if a, ok := in.Direction(); ok {
		if d, ok := DirectionFromAction(a); ok {
			g.Turn(d)
		}
	}
	if g.nextDir != g.direction.Opposite() {
		g.direction = g.nextDir
	}

	head := g.grid.Step(g.world.Snake[0], g.direction)

	g.moves++
	if g.moves%g.cfg.Items.SpawnEveryMoves == 0 {
		g.placer.PlaceSingle(&g.world, nil, now)
	}

	g.world.Snake = append(g.world.Snake, Cell{})
	copy(g.world.Snake[1:], g.world.Snake)
	g.world.Snake[0] = head

	ate := g.consume(head, now)
	if !ate {
		if g.pendingGrowth > 0 {
			g.pendingGrowth--
		} else {
			g.world.Snake = g.world.Snake[:len(g.world.Snake)-1]
		}
	}

	if cause := g.collision(head); cause != CauseNone {
		g.state = StateGameOver
		g.cause = cause
		g.logger.Debug("game over", "cause", cause, "score", g.score, "tick", g.tick)
	}

	return core.StepResult{State: g.State(), Ate: ate}
}

// Turn buffers a heading request for the next tick. Later requests
// replace earlier ones.
func (g *Game) Turn(d Direction) {
	g.nextDir = d
}

// expireItems drops items that outlived their lifetime and requests one
// default-kind replacement per removed item.
func (g *Game) expireItems(now time.Time) {
	lifetime := g.cfg.ItemLifetime()
	kept := g.world.Items[:0]
	removed := 0
	for _, it := range g.world.Items {
		if it.Expired(now, lifetime) {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	g.world.Items = kept

	for _i := 0; _i < removed; _i++ {
		g.placer.PlaceSingle(&g.world, nil, now)
	}
}

// consume eats the first item in list order lying on head.
func (g *Game) consume(head Cell, now time.Time) bool {
	for i, it := range g.world.Items {
		if it.Pos != head {
			continue
		}
		score, growth := g.itemValue(it.Kind)
		g.score += score
		g.pendingGrowth += growth
		g.world.Items = append(g.world.Items[:i], g.world.Items[i+1:]...)
		if len(g.world.Items) == 0 {
			g.placer.PlaceSingle(&g.world, nil, now)
		}
		return true
	}
	return false
}

func (g *Game) itemValue(k ItemKind) (score, growth int) {
	if k == ItemBonus {
		return g.cfg.Items.BonusScore, g.cfg.Items.BonusGrowth
	}
	return g.cfg.Items.CommonScore, g.cfg.Items.CommonGrowth
}

// collision runs the terminal checks in wall, obstacle, self order.
func (g *Game) collision(head Cell) Cause {
	if !g.grid.InBounds(head) {
		return CauseWall
	}
	if g.world.Obstacles.Has(head) {
		return CauseObstacle
	}
	for _, c := range g.world.Snake[1:] {
		if c == head {
			return CauseSelf
		}
	}
	return CauseNone
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.state == StateGameOver,
	}
}

// Outcome returns the final result once the game is over.
func (g *Game) Outcome() (Outcome, bool) {
	if g.state != StateGameOver {
		return Outcome{}, false
	}
	return Outcome{Score: g.score, Difficulty: g.difficulty, Cause: g.cause}, true
}

// Difficulty returns the preset the game was created with.
func (g *Game) Difficulty() config.DifficultyPreset {
	return g.difficulty
}

// Speed returns the tick rate of the game's difficulty in moves per second.
func (g *Game) Speed() int {
	return g.settings.Speed
}

// Render draws the board onto dst with one screen cell per grid cell.
// Items are drawn last so they stay visible.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	for _, c := range g.world.ObstacleCells() {
		g.plot(dst, c, '#', core.ColorObstacle)
	}
	for i := len(g.world.Snake) - 1; i >= 0; i-- {
		if i == 0 {
			g.plot(dst, g.world.Snake[i], 'O', core.ColorSnakeHead)
			continue
		}
		g.plot(dst, g.world.Snake[i], 'o', core.ColorSnakeBody)
	}
	for _, it := range g.world.Items {
		if it.Kind == ItemBonus {
			g.plot(dst, it.Pos, '+', core.ColorBonusItem)
		} else {
			g.plot(dst, it.Pos, '*', core.ColorCommonItem)
		}
	}
}

func (g *Game) plot(dst *core.Screen, c Cell, r rune, color core.Color) {
	col, row := g.grid.ColRow(c)
	dst.SetCell(col, row, r, color)
}
