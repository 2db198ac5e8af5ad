package input

import (
	"testing"

	"github.com/boxmux/boxmux/internal/boxtree"
	"github.com/boxmux/boxmux/internal/configio"
	"github.com/stretchr/testify/require"
)

func TestEncodeKey_ArrowsAndCtrl(t *testing.T) {
	require.Equal(t, []byte("\x1b[A"), EncodeKey(KeyEvent{Key: "Up"}))
	require.Equal(t, []byte{3}, EncodeKey(KeyEvent{Key: "c", Mods: ModCtrl}))
}

func TestRoute_GlobalHotKeyTakesPriority(t *testing.T) {
	cfg := &configio.Root{
		HotKeys: []configio.HotKey{{Key: "Ctrl+q", Action: "quit"}},
		Layouts: []*configio.Layout{{ID: "main", Root: &configio.Box{ID: "root"}}},
		ActiveLayoutID: "main",
	}
	app, err := boxtree.NewApplication(cfg)
	require.NoError(t, err)

	a := Route(cfg, app, KeyEvent{Key: "q", Mods: ModCtrl})
	require.Equal(t, ActionRunHotKey, a.Kind)
	require.Equal(t, "quit", a.HotKey)
}

func TestRoute_TabMovesFocus(t *testing.T) {
	cfg := &configio.Root{
		Layouts: []*configio.Layout{{ID: "main", Root: &configio.Box{ID: "root",
			Children: []*configio.Box{
				{ID: "a", Interaction: configio.Interaction{Focusable: true, TabOrder: 1}},
				{ID: "b", Interaction: configio.Interaction{Focusable: true, TabOrder: 2}},
			},
		}}},
		ActiveLayoutID: "main",
	}
	app, err := boxtree.NewApplication(cfg)
	require.NoError(t, err)

	a := Route(cfg, app, KeyEvent{Key: "Tab"})
	require.Equal(t, ActionFocusNext, a.Kind)
}

func TestRoute_EscDropsFocus(t *testing.T) {
	cfg := &configio.Root{
		Layouts:        []*configio.Layout{{ID: "main", Root: &configio.Box{ID: "root"}}},
		ActiveLayoutID: "main",
	}
	app, err := boxtree.NewApplication(cfg)
	require.NoError(t, err)

	a := Route(cfg, app, KeyEvent{Key: "Esc"})
	require.Equal(t, ActionDropFocus, a.Kind)
}
