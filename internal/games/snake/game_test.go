package snake

import (
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestGame(preset config.DifficultyPreset, seed int64) (*Game, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	g := New(config.DefaultSnakeConfig(), preset, WithClock(clock))
	g.Reset(core.RuntimeConfig{Seed: seed})
	return g, clock
}

// place replaces the world content for a scripted scenario.
func place(g *Game, dir Direction, snake []Cell, items ...Item) {
	g.world.Snake = snake
	g.world.Items = items
	g.direction = dir
	g.nextDir = dir
}

func TestReset(t *testing.T) {
	g, _ := newTestGame(config.DifficultyNormal, 1)
	snap := g.Snapshot()

	want := []Cell{{360, 240}, {350, 240}, {340, 240}, {330, 240}}
	if !reflect.DeepEqual(snap.Snake, want) {
		t.Fatalf("initial snake = %v, want %v", snap.Snake, want)
	}
	if snap.Dir != DirRight {
		t.Errorf("initial direction = %v, want right", snap.Dir)
	}
	if len(snap.Items) != 1 || snap.Items[0].Kind != ItemCommon {
		t.Fatalf("expected one common item, got %+v", snap.Items)
	}
	if len(snap.Obstacles) != 0 {
		t.Errorf("normal difficulty should have no obstacles, got %d", len(snap.Obstacles))
	}
	if snap.State != StateRunning || snap.Score != 0 || snap.PendingGrowth != 0 {
		t.Errorf("unexpected initial state %+v", snap)
	}
}

func TestResetHardPlacesObstacles(t *testing.T) {
	g, _ := newTestGame(config.DifficultyHard, 5)
	obstacles := g.Snapshot().Obstacles
	if len(obstacles) == 0 || len(obstacles)%9 != 0 {
		t.Fatalf("expected whole 3x3 blocks, got %d cells", len(obstacles))
	}
	for _, c := range obstacles {
		if g.grid.InExclusionZone(c) {
			t.Errorf("obstacle inside exclusion zone at %v", c)
		}
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		g, clock := newTestGame(config.DifficultyHard, 12345)
		input := core.NewInputFrame()
		for i := 0; i < 200; i++ {
			input.Clear()
			switch i % 40 {
			case 5:
				input.Set(core.ActionDown)
			case 15:
				input.Set(core.ActionLeft)
			case 25:
				input.Set(core.ActionUp)
			case 35:
				input.Set(core.ActionRight)
			}
			clock.advance(250 * time.Millisecond)
			g.Step(input)
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed and inputs diverged:\n%+v\n%+v", a, b)
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g, _ := newTestGame(config.DifficultyNormal, 42)

	input := core.NewInputFrame()
	input.Set(core.ActionLeft)
	g.Step(input)

	snap := g.Snapshot()
	if snap.Dir != DirRight {
		t.Fatalf("reversal should be ignored, direction is %v", snap.Dir)
	}
	if snap.Head() != (Cell{370, 240}) {
		t.Errorf("head = %v, want (370,240)", snap.Head())
	}
	if snap.State != StateRunning {
		t.Error("reversal must not cause a self collision")
	}
}

func TestLatestDirectionWins(t *testing.T) {
	g, _ := newTestGame(config.DifficultyNormal, 42)

	input := core.NewInputFrame()
	input.Set(core.ActionUp)
	input.Set(core.ActionDown)
	g.Step(input)

	if got := g.Snapshot().Head(); got != (Cell{360, 250}) {
		t.Errorf("head = %v, want (360,250)", got)
	}
}

func TestEatCommonItem(t *testing.T) {
	g, clock := newTestGame(config.DifficultyNormal, 1)
	place(g, DirRight,
		[]Cell{{350, 230}, {340, 230}, {330, 230}, {320, 230}},
		Item{Pos: Cell{360, 230}, Kind: ItemCommon, SpawnedAt: clock.now},
	)

	res := g.Step(core.NewInputFrame())
	snap := g.Snapshot()

	if !res.Ate {
		t.Error("expected StepResult.Ate")
	}
	if snap.Head() != (Cell{360, 230}) {
		t.Errorf("head = %v, want (360,230)", snap.Head())
	}
	if snap.Score != 10 {
		t.Errorf("score = %d, want 10", snap.Score)
	}
	if snap.PendingGrowth != 1 {
		t.Errorf("pendingGrowth = %d, want 1", snap.PendingGrowth)
	}
	if len(snap.Snake) != 5 {
		t.Errorf("length = %d, want 5", len(snap.Snake))
	}
	// The emptied item list is refilled immediately.
	if len(snap.Items) != 1 {
		t.Errorf("expected a replacement item, got %d items", len(snap.Items))
	}

	// Pending growth is paid out on the next move.
	g.Step(core.NewInputFrame())
	snap = g.Snapshot()
	if len(snap.Snake) != 6 || snap.PendingGrowth != 0 {
		t.Errorf("after growth tick: length %d pending %d", len(snap.Snake), snap.PendingGrowth)
	}

	g.Step(core.NewInputFrame())
	if n := len(g.Snapshot().Snake); n != 6 {
		t.Errorf("steady movement changed length to %d", n)
	}
}

func TestEatBonusItem(t *testing.T) {
	g, clock := newTestGame(config.DifficultyNormal, 1)
	place(g, DirDown,
		[]Cell{{100, 100}, {100, 90}, {100, 80}, {100, 70}},
		Item{Pos: Cell{100, 110}, Kind: ItemBonus, SpawnedAt: clock.now},
	)

	g.Step(core.NewInputFrame())
	snap := g.Snapshot()
	if snap.Score != 20 || snap.PendingGrowth != 2 {
		t.Errorf("score %d pending %d, want 20 and 2", snap.Score, snap.PendingGrowth)
	}
}

func TestFirstMatchingItemWins(t *testing.T) {
	g, clock := newTestGame(config.DifficultyNormal, 1)
	target := Cell{110, 100}
	place(g, DirRight,
		[]Cell{{100, 100}, {90, 100}, {80, 100}, {70, 100}},
		Item{Pos: target, Kind: ItemBonus, SpawnedAt: clock.now},
		Item{Pos: target, Kind: ItemCommon, SpawnedAt: clock.now},
	)

	g.Step(core.NewInputFrame())
	snap := g.Snapshot()
	if snap.Score != 20 {
		t.Errorf("score = %d, want the first item's 20", snap.Score)
	}
	if len(snap.Items) != 1 || snap.Items[0].Kind != ItemCommon || snap.Items[0].Pos != target {
		t.Errorf("expected the second item to survive, got %+v", snap.Items)
	}
}

func TestWallCollision(t *testing.T) {
	g, _ := newTestGame(config.DifficultyNormal, 1)
	place(g, DirLeft, []Cell{{0, 100}, {10, 100}, {20, 100}, {30, 100}})
	g.score = 70

	res := g.Step(core.NewInputFrame())
	if !res.State.GameOver {
		t.Fatal("expected game over after leaving the grid")
	}
	out, ok := g.Outcome()
	if !ok {
		t.Fatal("expected an outcome")
	}
	if out.Cause != CauseWall || out.Score != 70 || out.Difficulty != config.DifficultyNormal {
		t.Errorf("outcome = %+v", out)
	}
	if g.Snapshot().Head() != (Cell{-10, 100}) {
		t.Errorf("head = %v, want (-10,100)", g.Snapshot().Head())
	}
}

func TestObstacleCollision(t *testing.T) {
	g, _ := newTestGame(config.DifficultyNormal, 1)
	place(g, DirRight, []Cell{{100, 100}, {90, 100}, {80, 100}, {70, 100}})
	g.world.addObstacle(Cell{110, 100})

	g.Step(core.NewInputFrame())
	if out, ok := g.Outcome(); !ok || out.Cause != CauseObstacle {
		t.Errorf("expected obstacle collision, got %+v %v", out, ok)
	}
}

func TestSelfCollision(t *testing.T) {
	g, _ := newTestGame(config.DifficultyNormal, 1)
	place(g, DirLeft, []Cell{{100, 100}, {110, 100}, {110, 110}, {100, 110}, {90, 110}})

	input := core.NewInputFrame()
	input.Set(core.ActionDown)
	g.Step(input)

	if out, ok := g.Outcome(); !ok || out.Cause != CauseSelf {
		t.Errorf("expected self collision, got %+v %v", out, ok)
	}
}

func TestStepAfterGameOverIsNoop(t *testing.T) {
	g, _ := newTestGame(config.DifficultyNormal, 1)
	place(g, DirUp, []Cell{{100, 0}, {100, 10}, {100, 20}, {100, 30}})
	g.Step(core.NewInputFrame())

	before := g.Snapshot()
	g.Step(core.NewInputFrame())
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Error("step after game over changed state")
	}
}

func TestItemExpiryBoundary(t *testing.T) {
	g, clock := newTestGame(config.DifficultyNormal, 8)
	spawned := clock.now
	original := g.Snapshot().Items[0]

	present := func() bool {
		for _, it := range g.Snapshot().Items {
			if it.Pos == original.Pos && it.SpawnedAt.Equal(spawned) {
				return true
			}
		}
		return false
	}

	clock.now = spawned.Add(30*time.Second - time.Millisecond)
	g.Step(core.NewInputFrame())
	if !present() {
		t.Fatal("item expired before its lifetime")
	}

	clock.now = spawned.Add(30 * time.Second)
	g.Step(core.NewInputFrame())
	if present() {
		t.Fatal("item survived its full lifetime")
	}
	items := g.Snapshot().Items
	if len(items) != 1 || !items[0].SpawnedAt.Equal(clock.now) {
		t.Errorf("expected one fresh replacement, got %+v", items)
	}
}

func TestSpawnEveryTwentiethMove(t *testing.T) {
	g, clock := newTestGame(config.DifficultyNormal, 3)
	place(g, DirRight,
		[]Cell{{360, 240}, {350, 240}, {340, 240}, {330, 240}},
		Item{Pos: Cell{10, 10}, Kind: ItemCommon, SpawnedAt: clock.now},
	)

	for i := 1; i < 20; i++ {
		g.Step(core.NewInputFrame())
		if n := len(g.Snapshot().Items); n != 1 {
			t.Fatalf("move %d: unexpected spawn, %d items", i, n)
		}
	}
	g.Step(core.NewInputFrame())
	if n := len(g.Snapshot().Items); n != 2 {
		t.Errorf("expected spawn on move 20, got %d items", n)
	}
}

func TestLengthGrowsAtMostOnePerTick(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		g, clock := newTestGame(config.DifficultyEasy, seed)
		actions := []core.Action{core.ActionUp, core.ActionLeft, core.ActionDown, core.ActionRight}
		input := core.NewInputFrame()
		prev := len(g.Snapshot().Snake)
		for i := 0; i < 500 && !g.State().GameOver; i++ {
			input.Clear()
			if i%7 == 0 {
				input.Set(actions[(i/7)%len(actions)])
			}
			clock.advance(50 * time.Millisecond)
			g.Step(input)

			n := len(g.Snapshot().Snake)
			if n < prev || n > prev+1 {
				t.Fatalf("seed %d tick %d: length went from %d to %d", seed, i, prev, n)
			}
			prev = n
		}
	}
}

func TestRender(t *testing.T) {
	g, clock := newTestGame(config.DifficultyNormal, 1)
	place(g, DirRight,
		[]Cell{{20, 10}, {10, 10}},
		Item{Pos: Cell{50, 50}, Kind: ItemBonus, SpawnedAt: clock.now},
	)
	g.world.addObstacle(Cell{0, 0})

	screen := core.NewScreen(g.grid.Cols(), g.grid.Rows())
	g.Render(screen)

	checks := []struct {
		x, y  int
		rune  rune
		color core.Color
	}{
		{2, 1, 'O', core.ColorSnakeHead},
		{1, 1, 'o', core.ColorSnakeBody},
		{5, 5, '+', core.ColorBonusItem},
		{0, 0, '#', core.ColorObstacle},
		{3, 3, ' ', core.ColorEmpty},
	}
	for _, c := range checks {
		got := screen.GetCell(c.x, c.y)
		if got.Rune != c.rune || got.Color != c.color {
			t.Errorf("cell (%d,%d) = %q/%d, want %q/%d", c.x, c.y, got.Rune, got.Color, c.rune, c.color)
		}
	}
}

func TestTurnIsBuffered(t *testing.T) {
	g, _ := newTestGame(config.DifficultyNormal, 42)
	g.Turn(DirUp)
	g.Turn(DirDown)
	g.Step(core.NewInputFrame())
	if got := g.Snapshot().Head(); got != (Cell{360, 250}) {
		t.Errorf("head = %v, want (360,250)", got)
	}
}
