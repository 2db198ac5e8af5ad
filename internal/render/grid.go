// Package render implements the diff-based compositor of spec.md §4.5:
// it walks the active layout tree into a virtual cell grid, diffs that
// grid against the previous frame, and writes only the changed runs to
// the terminal.
package render

import "github.com/boxmux/boxmux/internal/stream"

// Grid is a full virtual terminal frame: rows of styled cells.
type Grid struct {
	Width, Height int
	Cells         []stream.Cell
}

// NewGrid allocates a blank grid of the given size, filled with spaces
// in the default style.
func NewGrid(width, height int) *Grid {
	g := &Grid{Width: width, Height: height, Cells: make([]stream.Cell, width*height)}
	blank := stream.Cell{Glyph: ' ', Style: stream.Style{Fg: stream.ColorDefault, Bg: stream.ColorDefault}}
	for i := range g.Cells {
		g.Cells[i] = blank
	}
	return g
}

func (g *Grid) idx(x, y int) int { return y*g.Width + x }

// Set writes one cell, silently ignoring out-of-bounds coordinates (a
// box whose bounds partially fall off a shrunk terminal clips rather
// than panics).
func (g *Grid) Set(x, y int, c stream.Cell) {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return
	}
	g.Cells[g.idx(x, y)] = c
}

// Get reads one cell.
func (g *Grid) Get(x, y int) stream.Cell {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return stream.Cell{Glyph: ' '}
	}
	return g.Cells[g.idx(x, y)]
}

// FillRect sets every cell in [x0,x1)x[y0,y1) to fill, clipped to the grid.
func (g *Grid) FillRect(x0, y0, x1, y1 int, fill stream.Cell) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			g.Set(x, y, fill)
		}
	}
}
