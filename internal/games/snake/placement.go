package snake

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// ItemKind distinguishes ordinary items from bonus ones.
type ItemKind int

const (
	ItemCommon ItemKind = iota
	ItemBonus
)

func (k ItemKind) String() string {
	if k == ItemBonus {
		return "bonus"
	}
	return "common"
}

// Item is a collectible with a bounded lifetime.
type Item struct {
	Pos       Cell
	Kind      ItemKind
	SpawnedAt time.Time
}

// Expired reports whether the item has lived at least lifetime at now.
func (it Item) Expired(now time.Time, lifetime time.Duration) bool {
	return now.Sub(it.SpawnedAt) >= lifetime
}

// World is the mutable content of the field: snake (head first), live items
// in spawn order, and obstacles.
type World struct {
	Snake     []Cell
	Items     []Item
	Obstacles CellSet
	// obstacleOrder keeps stamping order for stable rendering and snapshots.
	obstacleOrder []Cell
}

func newWorld() World {
	return World{Obstacles: make(CellSet)}
}

// addObstacle stamps one obstacle cell.
func (w *World) addObstacle(c Cell) {
	if w.Obstacles.Has(c) {
		return
	}
	w.Obstacles.Add(c)
	w.obstacleOrder = append(w.obstacleOrder, c)
}

// ObstacleCells returns obstacle cells in placement order.
func (w *World) ObstacleCells() []Cell {
	return w.obstacleOrder
}

func (w *World) itemCells() []Cell {
	cells := make([]Cell, len(w.Items))
	for i, it := range w.Items {
		cells[i] = it.Pos
	}
	return cells
}

// Placer finds random free cells for items and obstacle blocks.
// Every search is bounded by an attempt budget, so placement always
// terminates and may simply place nothing on a crowded field.
type Placer struct {
	grid             Grid
	rng              *rand.Rand
	maxItems         int
	attempts         int
	attemptsPerBlock int
	redProbability   float64
	logger           *log.Logger
}

// NewPlacer creates a placement engine over grid drawing from rng.
func NewPlacer(grid Grid, rng *rand.Rand, cfg config.SnakeConfig, settings config.DifficultySettings, logger *log.Logger) *Placer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Placer{
		grid:             grid,
		rng:              rng,
		maxItems:         cfg.Items.MaxItems,
		attempts:         cfg.Items.PlacementAttempts,
		attemptsPerBlock: cfg.Obstacles.AttemptsPerBlock,
		redProbability:   settings.RedProbability,
		logger:           logger,
	}
}

// PlaceSingle adds one item to w at a random free cell outside the
// exclusion zone. A nil kind is resolved randomly: bonus with the
// difficulty's red probability, common otherwise. It reports whether an
// item was placed; a full population or an exhausted budget places nothing.
func (p *Placer) PlaceSingle(w *World, kind *ItemKind, now time.Time) (Item, bool) {
	if len(w.Items) >= p.maxItems {
		return Item{}, false
	}
	cols, rows := p.grid.Cols(), p.grid.Rows()
	if cols < 2 || rows < 2 {
		return Item{}, false
	}

	occupied := CellsOccupiedBy(w.Snake, w.itemCells())

	for _i := 0; _i < p.attempts; _i++ {
		// Column and row 0 are never drawn for items.
		c := p.grid.CellAt(1+p.rng.Intn(cols-1), 1+p.rng.Intn(rows-1))
		if occupied.Has(c) || w.Obstacles.Has(c) || p.grid.InExclusionZone(c) {
			continue
		}

		item := Item{Pos: c, Kind: p.resolveKind(kind), SpawnedAt: now}
		w.Items = append(w.Items, item)
		return item, true
	}

	p.logger.Debug("item placement exhausted", "attempts", p.attempts, "items", len(w.Items))
	return Item{}, false
}

func (p *Placer) resolveKind(kind *ItemKind) ItemKind {
	if kind != nil {
		return *kind
	}
	if p.rng.Float64() < p.redProbability {
		return ItemBonus
	}
	return ItemCommon
}

// PlaceBlocks stamps up to count obstacle blocks of w×h cells into w and
// returns how many were placed. A block is rejected if any of its cells is in
// the exclusion zone or overlaps the snake, an item or an existing obstacle.
func (p *Placer) PlaceBlocks(w *World, count, bw, bh int) int {
	if count <= 0 {
		return 0
	}
	cols, rows := p.grid.Cols(), p.grid.Rows()
	bw = core.Clamp(bw, 1, cols)
	bh = core.Clamp(bh, 1, rows)

	occupied := CellsOccupiedBy(w.Snake, w.itemCells())

	created := 0
	budget := count * p.attemptsPerBlock
	for attempt := 0; created < count && attempt < budget; attempt++ {
		block := core.NewRect(p.rng.Intn(cols-bw+1), p.rng.Intn(rows-bh+1), bw, bh)
		cells := p.grid.BlockCells(block)
		if !p.blockFree(w, occupied, cells) {
			continue
		}
		for _, c := range cells {
			w.addObstacle(c)
		}
		created++
	}

	p.logger.Debug("generated large obstacles", "created", created, "requested", count, "width", bw, "height", bh)
	return created
}

func (p *Placer) blockFree(w *World, occupied CellSet, cells []Cell) bool {
	for _, c := range cells {
		if p.grid.InExclusionZone(c) {
			return false
		}
	}
	for _, c := range cells {
		if occupied.Has(c) || w.Obstacles.Has(c) {
			return false
		}
	}
	return true
}
