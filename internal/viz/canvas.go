package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const blank = rune(0x2800)

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells. Each cell also keeps the highest heat
// plotted into it, which picks its color when rendered.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Heat          [][]float64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Heat:   make([][]float64, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Heat[i] = make([]float64, w)
	}
	c.Clear()
	return c
}

// cell maps sub-pixel coordinates to a cell and the dot bit inside it.
func (c *Canvas) cell(x, y int) (row, col int, bit rune, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, 0, false
	}
	return row, col, pixelMap[y%4][x%2], true
}

// Set lights the dot at sub-pixel (x, y). The canvas is Width*2 x Height*4
// sub-pixels; anything outside is ignored.
func (c *Canvas) Set(x, y int) {
	if row, col, bit, ok := c.cell(x, y); ok {
		c.Grid[row][col] |= bit
	}
}

// Plot lights a dot and raises the cell's heat to at least heat.
func (c *Canvas) Plot(x, y int, heat float64) {
	row, col, bit, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] |= bit
	if heat > c.Heat[row][col] {
		c.Heat[row][col] = heat
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Heat[i][j] = 0
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render draws the canvas with one style per heat band. Runs of cells in the
// same band share a single styled segment; empty cells are written bare.
func (c *Canvas) Render(bands []lipgloss.Style) string {
	var b, run strings.Builder
	lines := make([]string, len(c.Grid))
	for i, row := range c.Grid {
		b.Reset()
		run.Reset()
		current := -1
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if current < 0 {
				b.WriteString(run.String())
			} else {
				b.WriteString(bands[current].Render(run.String()))
			}
			run.Reset()
		}
		for j, r := range row {
			band := -1
			if r != blank && len(bands) > 0 {
				band = heatBand(c.Heat[i][j], len(bands))
			}
			if band != current {
				flush()
				current = band
			}
			run.WriteRune(r)
		}
		flush()
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}

// heatBand clamps heat to [0,1] and picks the nearest of n bands.
func heatBand(heat float64, n int) int {
	switch {
	case !(heat > 0):
		return 0
	case heat >= 1:
		return n - 1
	}
	return int(heat*float64(n-1) + 0.5)
}
