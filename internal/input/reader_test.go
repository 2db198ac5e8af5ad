package input

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReader_RegularAndNamedKeys(t *testing.T) {
	r := NewReader(strings.NewReader("a\t\x1b[A\x1b[5~"))

	k, err := r.ReadKey()
	require.NoError(t, err)
	require.Equal(t, KeyEvent{Key: "a"}, k)

	k, err = r.ReadKey()
	require.NoError(t, err)
	require.Equal(t, KeyEvent{Key: "Tab"}, k)

	k, err = r.ReadKey()
	require.NoError(t, err)
	require.Equal(t, KeyEvent{Key: "Up"}, k)

	k, err = r.ReadKey()
	require.NoError(t, err)
	require.Equal(t, KeyEvent{Key: "PageUp"}, k)
}

func TestReader_CtrlLetter(t *testing.T) {
	r := NewReader(strings.NewReader(string(rune(17)))) // Ctrl+Q
	k, err := r.ReadKey()
	require.NoError(t, err)
	require.Equal(t, "q", k.Key)
	require.Equal(t, ModCtrl, k.Mods)
}

func TestReader_AltPrefix(t *testing.T) {
	r := NewReader(strings.NewReader("\x1bx"))
	k, err := r.ReadKey()
	require.NoError(t, err)
	require.Equal(t, "x", k.Key)
	require.Equal(t, ModAlt, k.Mods)
}

func TestReader_CSIWithModifier(t *testing.T) {
	r := NewReader(strings.NewReader("\x1b[1;5A")) // Ctrl+Up
	k, err := r.ReadKey()
	require.NoError(t, err)
	require.Equal(t, "Up", k.Key)
	require.Equal(t, ModCtrl, k.Mods)
}

func TestReader_SGRMousePress(t *testing.T) {
	r := NewReader(strings.NewReader("\x1b[<0;10;5M"))
	ev, err := r.ReadEvent()
	require.NoError(t, err)
	require.Equal(t, EventPointer, ev.Kind)
	require.Equal(t, "press", ev.PointerPhase)
	require.Equal(t, 9, ev.PointerX)
	require.Equal(t, 4, ev.PointerY)
}

func TestReader_SGRMouseRelease(t *testing.T) {
	r := NewReader(strings.NewReader("\x1b[<0;10;5m"))
	ev, err := r.ReadEvent()
	require.NoError(t, err)
	require.Equal(t, "release", ev.PointerPhase)
}

func TestReader_SGRMouseDrag(t *testing.T) {
	r := NewReader(strings.NewReader("\x1b[<32;11;5M"))
	ev, err := r.ReadEvent()
	require.NoError(t, err)
	require.Equal(t, "move", ev.PointerPhase)
}

func TestReader_ReadEventPassesThroughKeys(t *testing.T) {
	r := NewReader(strings.NewReader("q"))
	ev, err := r.ReadEvent()
	require.NoError(t, err)
	require.Equal(t, EventKey, ev.Kind)
	require.Equal(t, "q", ev.Key.Key)
}

func TestReader_BareEscape(t *testing.T) {
	r := NewReader(strings.NewReader("\x1b"))
	k, err := r.ReadKey()
	require.NoError(t, err)
	require.Equal(t, KeyEvent{Key: "Esc"}, k)
}
