package render

import (
	"github.com/boxmux/boxmux/internal/bounds"
	"github.com/boxmux/boxmux/internal/stream"
)

// drawScrollbars paints a vertical thumb on the inner rectangle's right
// edge whose size and position are proportional to the visible/total
// ratio and scroll position (spec.md §4.5).
func drawScrollbars(g *Grid, inner bounds.Rect, total, visible, scrollY int) {
	if total <= visible || visible <= 0 {
		return
	}
	track := inner.Y1 - inner.Y0
	thumbSize := track * visible / total
	if thumbSize < 1 {
		thumbSize = 1
	}
	maxScroll := total - visible
	thumbStart := 0
	if maxScroll > 0 {
		thumbStart = (track - thumbSize) * scrollY / maxScroll
	}

	x := inner.X1 - 1
	style := stream.Style{Fg: stream.ColorDefault, Bg: stream.ColorDefault}
	for y := 0; y < track; y++ {
		glyph := rune('░')
		if y >= thumbStart && y < thumbStart+thumbSize {
			glyph = '█'
		}
		g.Set(x, inner.Y0+y, stream.Cell{Glyph: glyph, Style: style})
	}
}
