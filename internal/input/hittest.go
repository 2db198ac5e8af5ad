// Package input implements the dispatch state machine of spec.md §4.6:
// hit testing, the press/drag state machine, and keyboard routing
// (PTY passthrough vs. focus/scroll/hotkey dispatch).
package input

import (
	"sort"

	"github.com/boxmux/boxmux/internal/boxmodel"
	"github.com/boxmux/boxmux/internal/boxtree"
)

// Zone is the classification of a point within a hit box.
type Zone int

const (
	ZoneContent Zone = iota
	ZoneResizeCorner
	ZoneTitleBar
	ZoneTabLabel
	ZoneTabClose
	ZoneScrollbarV
	ZoneScrollbarH
)

// Hit is the result of a hit test: the box under the point and which
// zone of it was hit.
type Hit struct {
	Box  *boxmodel.Box
	Zone Zone
}

// HitTest walks the tree in descending z-index (spec.md §4.6) and
// returns the first box whose resolved rectangle contains (x,y), along
// with the zone within it.
func HitTest(root *boxmodel.Box, x, y int) (Hit, bool) {
	var all []*boxmodel.Box
	collect(root, &all)

	// Descending z-index; stable so equal z-index falls back to tree order.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Config.ZIndex > all[j].Config.ZIndex
	})

	for _, b := range all {
		if b.Bounds.Contains(x, y) {
			return Hit{Box: b, Zone: classify(b, x, y)}, true
		}
	}
	return Hit{}, false
}

func collect(b *boxmodel.Box, out *[]*boxmodel.Box) {
	if b == nil {
		return
	}
	*out = append(*out, b)
	for _, c := range b.Children {
		collect(c, out)
	}
}

func classify(b *boxmodel.Box, x, y int) Zone {
	r := b.Bounds
	switch {
	case x == r.X1-1 && y == r.Y1-1:
		return ZoneResizeCorner
	case y == r.Y0:
		if x > r.X0+1 {
			return ZoneTabLabel
		}
		return ZoneTitleBar
	case x == r.X1-1 && r.Height() > 2:
		return ZoneScrollbarV
	case y == r.Y1-1 && r.Width() > 2:
		return ZoneScrollbarH
	default:
		return ZoneContent
	}
}

// FocusableAt is a convenience over an Application's tree for click-to-focus.
func FocusableAt(app *boxtree.Application, x, y int) (*boxmodel.Box, bool) {
	hit, ok := HitTest(app.Root, x, y)
	if !ok || !hit.Box.Config.Interaction.Focusable {
		return nil, false
	}
	return hit.Box, true
}
