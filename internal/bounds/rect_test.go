package bounds

import (
	"testing"

	"github.com/boxmux/boxmux/internal/configio"
	"github.com/stretchr/testify/require"
)

func pct(v int) configio.Coord { return configio.Coord{Percent: true, Value: v} }

func TestResolve_EdgesExact(t *testing.T) {
	parent := Rect{X0: 0, Y0: 0, X1: 80, Y1: 24}
	pos := configio.Position{X1: pct(0), Y1: pct(0), X2: pct(100), Y2: pct(100)}

	r := Resolve(pos, parent)
	require.Equal(t, parent, r)
}

func TestResolve_SiblingsTileWithoutGaps(t *testing.T) {
	parent := Rect{X0: 0, Y0: 0, X1: 100, Y1: 40}

	left := Resolve(configio.Position{X1: pct(0), Y1: pct(0), X2: pct(50), Y2: pct(100)}, parent)
	right := Resolve(configio.Position{X1: pct(50), Y1: pct(0), X2: pct(100), Y2: pct(100)}, parent)

	require.Equal(t, left.X1, right.X0)
}

func TestResolve_MinimumSizeEnforced(t *testing.T) {
	parent := Rect{X0: 0, Y0: 0, X1: 100, Y1: 40}
	pos := configio.Position{X1: pct(10), Y1: pct(10), X2: pct(10), Y2: pct(10)}

	r := Resolve(pos, parent)
	require.False(t, r.Empty())
	require.GreaterOrEqual(t, r.Width(), minInnerSize)
	require.GreaterOrEqual(t, r.Height(), minInnerSize)
}

func TestResolve_ParentTooSmallYieldsZeroArea(t *testing.T) {
	parent := Rect{X0: 0, Y0: 0, X1: 1, Y1: 1}
	pos := configio.Position{X1: pct(0), Y1: pct(0), X2: pct(100), Y2: pct(100)}

	r := Resolve(pos, parent)
	require.True(t, r.Empty())
}

func TestResolve_CenterAnchor(t *testing.T) {
	parent := Rect{X0: 0, Y0: 0, X1: 100, Y1: 40}
	pos := configio.Position{
		X1: configio.Coord{Value: 0}, Y1: configio.Coord{Value: 0},
		X2: configio.Coord{Value: 20}, Y2: configio.Coord{Value: 10},
		Anchor: configio.Center,
	}
	r := Resolve(pos, parent)
	require.Equal(t, 40, r.X0)
	require.Equal(t, 15, r.Y0)
}
