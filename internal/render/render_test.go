package render

import (
	"testing"

	"github.com/boxmux/boxmux/internal/bounds"
	"github.com/boxmux/boxmux/internal/boxmodel"
	"github.com/boxmux/boxmux/internal/boxtree"
	"github.com/boxmux/boxmux/internal/configio"
	"github.com/boxmux/boxmux/internal/input"
	"github.com/boxmux/boxmux/internal/stream"
	"github.com/stretchr/testify/require"
)

func TestCompose_DrawsContentWithinBorder(t *testing.T) {
	cfg := &configio.Root{
		Layouts: []*configio.Layout{{ID: "main", Root: &configio.Box{
			ID: "root", Content: "hi",
		}}},
		ActiveLayoutID: "main",
	}
	app, err := boxtree.NewApplication(cfg)
	require.NoError(t, err)
	app.Root.Bounds = bounds.Rect{X0: 0, Y0: 0, X1: 10, Y1: 5}

	g := Compose(app, 10, 5)
	require.Equal(t, '┌', g.Get(0, 0).Glyph)
	require.Equal(t, 'h', g.Get(1, 1).Glyph)
}

func TestDiff_OnlyReportsChangedCells(t *testing.T) {
	a := NewGrid(3, 1)
	b := NewGrid(3, 1)
	b.Set(1, 0, stream.Cell{Glyph: 'x'})

	runs := Diff(a, b)
	require.Len(t, runs, 1)
	require.Equal(t, 1, runs[0].X0)
	require.Equal(t, []rune{'x'}, runs[0].Glyphs)
}

func TestApplyOverflow_ScrollClipsToWindow(t *testing.T) {
	lines := []stream.Line{
		{{Glyph: 'a'}}, {{Glyph: 'b'}}, {{Glyph: 'c'}},
	}
	out := applyOverflow(lines, configio.OverflowScroll, 5, 2, 1, 0)
	require.Len(t, out, 2)
	require.Equal(t, 'b', out[0][0].Glyph)
}

func TestDrawScrollbars_ThumbAtTopWhenScrolledToTop(t *testing.T) {
	g := NewGrid(5, 5)
	drawScrollbars(g, bounds.Rect{X0: 0, Y0: 0, X1: 5, Y1: 5}, 10, 5, 0)
	require.Equal(t, '█', g.Get(4, 0).Glyph)
}

func TestCursorStyleFor(t *testing.T) {
	b := boxmodel.NewBox(&configio.Box{ID: "b"})
	hit := input.Hit{Box: b, Zone: input.ZoneResizeCorner}
	require.Equal(t, CursorBlock, CursorStyleFor(hit, false))
}
