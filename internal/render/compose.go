package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/boxmux/boxmux/internal/bounds"
	"github.com/boxmux/boxmux/internal/boxmodel"
	"github.com/boxmux/boxmux/internal/boxtree"
	"github.com/boxmux/boxmux/internal/configio"
	"github.com/boxmux/boxmux/internal/stream"
	"github.com/mattn/go-runewidth"
)

// Compose builds a full frame for the application's active layout
// (spec.md §4.5): ascending z-index traversal so higher z-index boxes
// overdraw their ancestors' siblings.
func Compose(app *boxtree.Application, width, height int) *Grid {
	g := NewGrid(width, height)

	screen := bounds.Rect{X0: 0, Y0: 0, X1: width, Y1: height}
	resolveBounds(app.Root, screen)

	var all []*boxmodel.Box
	collect(app.Root, &all)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Config.ZIndex < all[j].Config.ZIndex
	})

	for _, b := range all {
		drawBox(g, b)
	}
	return g
}

// resolveBounds walks the tree top-down, resolving each box's rectangle
// against its already-resolved parent (spec.md §4.1 "percentages are
// always relative to the immediate parent's resolved rectangle"). A box
// with no coordinates at all (the usual layout root) fills its parent.
func resolveBounds(b *boxmodel.Box, parent bounds.Rect) {
	if b == nil {
		return
	}
	if b.Config.Position == (configio.Position{}) {
		b.Bounds = parent
	} else {
		b.Bounds = bounds.Resolve(b.Config.Position, parent)
	}
	for _, c := range b.Children {
		resolveBounds(c, b.Bounds)
	}
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

func drawBox(g *Grid, b *boxmodel.Box) {
	r := b.Bounds
	if r.Empty() {
		return
	}

	style := stream.Style{Fg: stream.ColorFromName(string(b.Config.Style.FgColor)), Bg: stream.ColorFromName(string(b.Config.Style.BgColor))}
	fill := b.Config.Style.FillChar
	if fill == 0 {
		fill = ' '
	}
	g.FillRect(r.X0, r.Y0, r.X1, r.Y1, stream.Cell{Glyph: fill, Style: style})

	bordered := r.Width() > 2 && r.Height() > 2
	if bordered {
		drawBorder(g, b, style)
	}

	inner := innerRect(r, bordered)
	drawActiveStream(g, b, inner, style)
}

func innerRect(r bounds.Rect, bordered bool) bounds.Rect {
	if !bordered {
		return r
	}
	return bounds.Rect{X0: r.X0 + 1, Y0: r.Y0 + 1, X1: r.X1 - 1, Y1: r.Y1 - 1}
}

func drawBorder(g *Grid, b *boxmodel.Box, style stream.Style) {
	r := b.Bounds
	borderColor := stream.ColorFromName(string(b.Config.Style.BorderColor))
	bs := stream.Style{Fg: borderColor, Bg: style.Bg}

	for x := r.X0; x < r.X1; x++ {
		g.Set(x, r.Y0, stream.Cell{Glyph: '─', Style: bs})
		g.Set(x, r.Y1-1, stream.Cell{Glyph: '─', Style: bs})
	}
	for y := r.Y0; y < r.Y1; y++ {
		g.Set(r.X0, y, stream.Cell{Glyph: '│', Style: bs})
		g.Set(r.X1-1, y, stream.Cell{Glyph: '│', Style: bs})
	}
	g.Set(r.X0, r.Y0, stream.Cell{Glyph: '┌', Style: bs})
	g.Set(r.X1-1, r.Y0, stream.Cell{Glyph: '┐', Style: bs})
	g.Set(r.X0, r.Y1-1, stream.Cell{Glyph: '└', Style: bs})
	g.Set(r.X1-1, r.Y1-1, stream.Cell{Glyph: '┘', Style: bs})

	label := titleAndTabs(b)
	titleStyle := stream.Style{Fg: stream.ColorFromName(string(b.Config.Style.TitleColor)), Bg: style.Bg}
	x := r.X0 + 1
	for _, ch := range label {
		if x >= r.X1-1 {
			break
		}
		g.Set(x, r.Y0, stream.Cell{Glyph: ch, Style: titleStyle})
		x += runewidth.RuneWidth(ch)
	}
}

// titleAndTabs builds the "[Content] [Deploy]*[x]" label of spec.md
// §4.5: the box title, then one bracketed entry per stream, the active
// one starred, closeable ones followed directly by an "[x]" close mark.
func titleAndTabs(b *boxmodel.Box) string {
	var sb strings.Builder
	if b.Config.Title != "" {
		sb.WriteString(b.Config.Title + " ")
	}
	for i, e := range b.Streams {
		marker := ""
		if i == b.ActiveIndex {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("[%s]%s", e.Label, marker))
		if e.Closeable {
			sb.WriteString("[x]")
		}
		sb.WriteString(" ")
	}
	return strings.TrimRight(sb.String(), " ")
}

func drawActiveStream(g *Grid, b *boxmodel.Box, inner bounds.Rect, boxStyle stream.Style) {
	if inner.X1 <= inner.X0 || inner.Y1 <= inner.Y0 {
		return
	}
	active := b.Active()
	if active.Kind == boxmodel.KindChoices {
		drawChoices(g, b, inner, boxStyle)
		return
	}
	lines := active.Buffer.Snapshot().Lines

	width := inner.X1 - inner.X0
	height := inner.Y1 - inner.Y0

	visible := applyOverflow(lines, b.Config.Overflow, width, height, active.ScrollY, active.ScrollX)

	for row := 0; row < height && row < len(visible); row++ {
		line := visible[row]
		for col := 0; col < width && col < len(line); col++ {
			g.Set(inner.X0+col, inner.Y0+row, line[col])
		}
	}

	if b.Config.Overflow == configio.OverflowScroll {
		drawScrollbars(g, inner, len(lines), height, active.ScrollY)
	}
}

// drawChoices renders a box's choice menu directly from its
// configuration rather than a stream buffer: one row per choice, the
// selected row marked with the configured selected-fill character and
// drawn in reverse video (spec.md §3 "selected choice index").
func drawChoices(g *Grid, b *boxmodel.Box, inner bounds.Rect, boxStyle stream.Style) {
	width := inner.X1 - inner.X0
	height := inner.Y1 - inner.Y0

	marker := b.Config.Style.SelectedFillChar
	if marker == 0 {
		marker = '>'
	}

	for row := 0; row < height && row < len(b.Config.Choices); row++ {
		choice := b.Config.Choices[row]
		label := choice.Content
		if label == "" {
			label = choice.ID
		}

		rowStyle := boxStyle
		prefix := "  "
		if row == b.SelectedChoice {
			rowStyle.Attrs |= stream.AttrReverse
			prefix = string(marker) + " "
		}

		col := 0
		for _, ch := range prefix + label {
			if col >= width {
				break
			}
			g.Set(inner.X0+col, inner.Y0+row, stream.Cell{Glyph: ch, Style: rowStyle})
			col += runewidth.RuneWidth(ch)
		}
	}
}
