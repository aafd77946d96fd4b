package particle

import (
	"fmt"
	"math"
)

const (
	DefaultCellSize          = 1.0
	DefaultMaxParticles      = 20000
	DefaultMaxGrowthAttempts = 50
)

// Layout is the area a field covers.
type Layout struct {
	Width, Height float64
}

func (l Layout) validate() error {
	for _, v := range []float64{l.Width, l.Height} {
		if !finite(v) || v < 0 {
			return fmt.Errorf("%w: %gx%g", ErrInvalidLayout, l.Width, l.Height)
		}
	}
	return nil
}

// GridConfig bounds the grid built for a layout.
type GridConfig struct {
	// CellSize is the starting cell edge, and the amount added per growth step.
	CellSize float64
	// MaxParticles is the ceiling on columns*rows.
	MaxParticles int
	// MaxGrowthAttempts caps how many cell sizes are tried.
	MaxGrowthAttempts int
}

func DefaultGridConfig() GridConfig {
	return GridConfig{
		CellSize:          DefaultCellSize,
		MaxParticles:      DefaultMaxParticles,
		MaxGrowthAttempts: DefaultMaxGrowthAttempts,
	}
}

func (g GridConfig) Validate() error {
	if !(g.CellSize > 0) || math.IsInf(g.CellSize, 0) {
		return fmt.Errorf("%w: cell size must be positive, got %f", ErrInvalidConfig, g.CellSize)
	}
	if g.MaxParticles <= 0 {
		return fmt.Errorf("%w: max particles must be positive, got %d", ErrInvalidConfig, g.MaxParticles)
	}
	if g.MaxGrowthAttempts <= 0 {
		return fmt.Errorf("%w: max growth attempts must be positive, got %d", ErrInvalidConfig, g.MaxGrowthAttempts)
	}
	return nil
}

// Grid is the result of sizing a layout.
type Grid struct {
	Cols, Rows int
	Cell       float64
	Attempts   int
}

func (g Grid) Total() int { return g.Cols * g.Rows }

// GridFor picks the smallest cell size, stepping by cfg.CellSize, whose grid
// over l fits under cfg.MaxParticles. When MaxGrowthAttempts sizes are not
// enough it jumps to a cell sized from the area and widens it until the grid
// fits, so the ceiling always holds. Non-finite layouts get an empty grid.
func GridFor(l Layout, cfg GridConfig) Grid {
	if !finite(l.Width) || !finite(l.Height) {
		return Grid{Cell: cfg.CellSize}
	}
	ceiling := float64(cfg.MaxParticles)

	cell := cfg.CellSize
	for attempt := 1; attempt <= cfg.MaxGrowthAttempts; attempt++ {
		cell = cfg.CellSize * float64(attempt)
		if cellCount(l, cell) <= ceiling {
			return newGrid(l, cell, attempt)
		}
	}

	cell = math.Max(cell, math.Sqrt(l.Width/ceiling)*math.Sqrt(l.Height))
	cell = math.Max(cell, math.Max(l.Width, l.Height)/ceiling)
	for cellCount(l, cell) > ceiling {
		cell *= 1.01
	}
	return newGrid(l, cell, cfg.MaxGrowthAttempts)
}

// cellCount is cols*rows computed in float64 so huge layouts cannot overflow.
func cellCount(l Layout, cell float64) float64 {
	return math.Ceil(l.Width/cell) * math.Ceil(l.Height/cell)
}

// newGrid converts a size already known to fit into a Grid. A layout with no
// area has no cells at all.
func newGrid(l Layout, cell float64, attempts int) Grid {
	g := Grid{Cell: cell, Attempts: attempts}
	if cellCount(l, cell) == 0 {
		return g
	}
	g.Cols = int(math.Ceil(l.Width / cell))
	g.Rows = int(math.Ceil(l.Height / cell))
	return g
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// CellCenter is the rest position of the particle at (col, row).
func (g Grid) CellCenter(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * g.Cell, (float64(row) + 0.5) * g.Cell
}
