package snake

import (
	"testing"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

func testGrid() Grid {
	return NewGrid(config.DefaultSnakeConfig().Grid)
}

func TestGridDimensions(t *testing.T) {
	g := testGrid()
	if g.Cols() != 72 || g.Rows() != 48 {
		t.Fatalf("expected 72x48 cells, got %dx%d", g.Cols(), g.Rows())
	}
	if got := g.SpawnCell(); got != (Cell{X: 360, Y: 240}) {
		t.Errorf("SpawnCell = %v, want (360,240)", got)
	}
}

func TestInBounds(t *testing.T) {
	g := testGrid()
	tests := []struct {
		c    Cell
		want bool
	}{
		{Cell{0, 0}, true},
		{Cell{710, 470}, true},
		{Cell{720, 0}, false},
		{Cell{0, 480}, false},
		{Cell{-10, 100}, false},
		{Cell{100, -10}, false},
	}
	for _, tt := range tests {
		if got := g.InBounds(tt.c); got != tt.want {
			t.Errorf("InBounds(%v) = %v, want %v", tt.c, got, tt.want)
		}
	}
}

func TestInExclusionZone(t *testing.T) {
	g := testGrid()
	tests := []struct {
		c    Cell
		want bool
	}{
		{Cell{360, 240}, true},
		{Cell{270, 150}, true},
		{Cell{450, 330}, true},
		{Cell{260, 240}, false}, // |dx| == half is outside
		{Cell{360, 340}, false},
		{Cell{0, 0}, false},
	}
	for _, tt := range tests {
		if got := g.InExclusionZone(tt.c); got != tt.want {
			t.Errorf("InExclusionZone(%v) = %v, want %v", tt.c, got, tt.want)
		}
	}
}

func TestStepAndOpposite(t *testing.T) {
	g := testGrid()
	start := Cell{100, 100}
	want := map[Direction]Cell{
		DirUp:    {100, 90},
		DirDown:  {100, 110},
		DirLeft:  {90, 100},
		DirRight: {110, 100},
	}
	for d, c := range want {
		if got := g.Step(start, d); got != c {
			t.Errorf("Step(%v) = %v, want %v", d, got, c)
		}
		if g.Step(g.Step(start, d), d.Opposite()) != start {
			t.Errorf("%v followed by %v should return to start", d, d.Opposite())
		}
	}
}

func TestColRowNegative(t *testing.T) {
	g := testGrid()
	col, row := g.ColRow(Cell{-10, 35})
	if col != -1 || row != 3 {
		t.Errorf("ColRow(-10,35) = (%d,%d), want (-1,3)", col, row)
	}
}

func TestBlockCells(t *testing.T) {
	g := testGrid()
	cells := g.BlockCells(core.NewRect(2, 3, 3, 2))
	if len(cells) != 6 {
		t.Fatalf("expected 6 cells, got %d", len(cells))
	}
	set := CellsOccupiedBy(cells)
	for _, c := range []Cell{{20, 30}, {40, 30}, {20, 40}, {40, 40}} {
		if !set.Has(c) {
			t.Errorf("block missing cell %v", c)
		}
	}
	if set.Has(Cell{50, 30}) {
		t.Error("block leaked past its right edge")
	}
}

func TestDirectionFromAction(t *testing.T) {
	if d, ok := DirectionFromAction(core.ActionUp); !ok || d != DirUp {
		t.Errorf("ActionUp mapped to %v, %v", d, ok)
	}
	if _, ok := DirectionFromAction(core.ActionConfirm); ok {
		t.Error("ActionConfirm should not map to a direction")
	}
}
