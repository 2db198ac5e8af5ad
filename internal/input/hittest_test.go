package input

import (
	"testing"

	"github.com/boxmux/boxmux/internal/bounds"
	"github.com/boxmux/boxmux/internal/boxmodel"
	"github.com/boxmux/boxmux/internal/configio"
	"github.com/stretchr/testify/require"
)

func TestHitTest_FindsTopmostByZIndex(t *testing.T) {
	back := boxmodel.NewBox(&configio.Box{ID: "back", ZIndex: 0})
	back.Bounds = bounds.Rect{X0: 0, Y0: 0, X1: 10, Y1: 10}

	front := boxmodel.NewBox(&configio.Box{ID: "front", ZIndex: 1})
	front.Bounds = bounds.Rect{X0: 2, Y0: 2, X1: 8, Y1: 8}

	root := boxmodel.NewBox(&configio.Box{ID: "root"})
	root.Bounds = bounds.Rect{X0: 0, Y0: 0, X1: 10, Y1: 10}
	root.Children = []*boxmodel.Box{back, front}

	hit, ok := HitTest(root, 4, 4)
	require.True(t, ok)
	require.Equal(t, "front", hit.Box.Config.ID)
}

func TestDragState_PromotesAfterThreshold(t *testing.T) {
	b := boxmodel.NewBox(&configio.Box{ID: "b"})
	b.Bounds = bounds.Rect{X0: 0, Y0: 0, X1: 10, Y1: 10}

	var d DragState
	d.Press(Hit{Box: b, Zone: ZoneTitleBar}, 5, 0)
	require.Equal(t, PressedOn, d.Phase)

	_, _, changed := d.Move(5, 0)
	require.False(t, changed)

	dx, dy, changed := d.Move(8, 0)
	require.True(t, changed)
	require.Equal(t, 3, dx)
	require.Equal(t, 0, dy)
	require.Equal(t, DraggingMove, d.Phase)

	require.True(t, d.Release())
	require.Equal(t, Idle, d.Phase)
}
