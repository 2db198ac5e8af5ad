package render

import "github.com/boxmux/boxmux/internal/stream"

// Run is a contiguous span of changed cells on one row sharing a style,
// the unit the terminal writer emits as a single escape sequence plus
// glyphs (spec.md §4.5 "grouping runs with identical attributes into
// single escape sequences").
type Run struct {
	Y, X0, X1 int
	Style     stream.Style
	Glyphs    []rune
}

// Diff compares two grids of identical dimensions and returns the runs
// that changed. A nil prev diffs against an all-blank grid (full redraw).
func Diff(prev, next *Grid) []Run {
	var runs []Run
	for y := 0; y < next.Height; y++ {
		var cur *Run
		for x := 0; x < next.Width; x++ {
			n := next.Get(x, y)
			same := prev != nil && prev.Get(x, y) == n
			if same {
				cur = nil
				continue
			}
			if cur != nil && cur.Style == n.Style && cur.X1 == x {
				cur.Glyphs = append(cur.Glyphs, n.Glyph)
				cur.X1 = x + 1
				continue
			}
			runs = append(runs, Run{Y: y, X0: x, X1: x + 1, Style: n.Style, Glyphs: []rune{n.Glyph}})
			cur = &runs[len(runs)-1]
		}
	}
	return runs
}
