package snake

import (
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// Cell is a grid-aligned position in source units (multiples of the cell size).
type Cell struct {
	X, Y int
}

// Direction represents the snake's heading.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// DirectionFromAction maps a directional input action to a heading.
func DirectionFromAction(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionUp:
		return DirUp, true
	case core.ActionDown:
		return DirDown, true
	case core.ActionLeft:
		return DirLeft, true
	case core.ActionRight:
		return DirRight, true
	}
	return DirRight, false
}

// CellSet is a set of occupied cells.
type CellSet map[Cell]struct{}

// Add inserts c into the set.
func (s CellSet) Add(c Cell) {
	s[c] = struct{}{}
}

// Has reports whether c is in the set.
func (s CellSet) Has(c Cell) bool {
	_, ok := s[c]
	return ok
}

// CellsOccupiedBy collects every cell of the given groups into one set.
func CellsOccupiedBy(groups ...[]Cell) CellSet {
	n := 0
	for _, g := range groups {
		n += len(g)
	}
	set := make(CellSet, n)
	for _, g := range groups {
		for _, c := range g {
			set.Add(c)
		}
	}
	return set
}

// Grid is the fixed playing field. It only answers coordinate and
// occupancy questions and never mutates.
type Grid struct {
	width    int
	height   int
	cellSize int
	half     int // Exclusion zone half side
}

// NewGrid builds a grid from configuration.
func NewGrid(cfg config.GridConfig) Grid {
	return Grid{
		width:    cfg.Width,
		height:   cfg.Height,
		cellSize: cfg.CellSize,
		half:     cfg.ExclusionHalf,
	}
}

// Width returns the field width in source units.
func (g Grid) Width() int { return g.width }

// Height returns the field height in source units.
func (g Grid) Height() int { return g.height }

// CellSize returns the side of one cell in source units.
func (g Grid) CellSize() int { return g.cellSize }

// Cols returns the number of cell columns.
func (g Grid) Cols() int { return g.width / g.cellSize }

// Rows returns the number of cell rows.
func (g Grid) Rows() int { return g.height / g.cellSize }

// CellAt converts column/row indices to a cell.
func (g Grid) CellAt(col, row int) Cell {
	return Cell{X: col * g.cellSize, Y: row * g.cellSize}
}

// ColRow converts a cell to column/row indices.
func (g Grid) ColRow(c Cell) (int, int) {
	return floorDiv(c.X, g.cellSize), floorDiv(c.Y, g.cellSize)
}

// SpawnCell returns the grid-aligned center where the snake starts.
func (g Grid) SpawnCell() Cell {
	return Cell{
		X: (g.width / 2 / g.cellSize) * g.cellSize,
		Y: (g.height / 2 / g.cellSize) * g.cellSize,
	}
}

// InBounds reports whether c lies on the field.
func (g Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X <= g.width-g.cellSize && c.Y >= 0 && c.Y <= g.height-g.cellSize
}

// InExclusionZone reports whether c lies in the central no-spawn square.
func (g Grid) InExclusionZone(c Cell) bool {
	return core.Abs(c.X-g.width/2) < g.half && core.Abs(c.Y-g.height/2) < g.half
}

// Step returns the neighbouring cell in direction d.
func (g Grid) Step(c Cell, d Direction) Cell {
	switch d {
	case DirUp:
		c.Y -= g.cellSize
	case DirDown:
		c.Y += g.cellSize
	case DirLeft:
		c.X -= g.cellSize
	case DirRight:
		c.X += g.cellSize
	}
	return c
}

// BlockCells lists the cells covered by a block given in column/row units.
func (g Grid) BlockCells(block core.Rect) []Cell {
	cells := make([]Cell, 0, block.W*block.H)
	for col := block.X; col < block.Right(); col++ {
		for row := block.Y; row < block.Bottom(); row++ {
			cells = append(cells, g.CellAt(col, row))
		}
	}
	return cells
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
