package boxmodel

import (
	"testing"

	"github.com/boxmux/boxmux/internal/configio"
	"github.com/stretchr/testify/require"
)

func sampleBox() *configio.Box {
	return &configio.Box{
		ID:      "main",
		Content: "hello",
		Choices: []configio.Choice{
			{ID: "a", Content: "Option A"},
			{ID: "b", Content: "Option B", RedirectOutput: "main"},
		},
	}
}

func TestNewBox_ContentAndChoicesStreamsPresent(t *testing.T) {
	b := NewBox(sampleBox())

	require.NotNil(t, b.ContentStream())
	require.Equal(t, KindContent, b.ContentStream().Kind)
	require.NotNil(t, b.ChoicesStream())
	require.Equal(t, KindChoices, b.ChoicesStream().Kind)
	require.Equal(t, "hello", b.ContentStream().Buffer.Snapshot().Lines[0].PlainText())
}

func TestEnsureRedirectedStream_CreatesOnceAndActivates(t *testing.T) {
	b := NewBox(sampleBox())

	e1 := b.EnsureRedirectedStream("b", "Option B")
	require.Equal(t, b.Active(), e1)

	b.SwitchActive(StreamID{Kind: KindContent})
	e2 := b.EnsureRedirectedStream("b", "Option B")
	require.Same(t, e1, e2)
}

func TestCloseStream_ContentAndChoicesAreNotCloseable(t *testing.T) {
	b := NewBox(sampleBox())

	require.False(t, b.CloseStream(StreamID{Kind: KindContent}))
	require.False(t, b.CloseStream(StreamID{Kind: KindChoices}))
}

func TestCloseStream_ActiveFallsBackToLeftNeighbor(t *testing.T) {
	b := NewBox(sampleBox())
	b.EnsureRedirectedStream("a", "Option A")
	e2 := b.EnsureRedirectedStream("b", "Option B")
	require.Same(t, e2, b.Active())

	ok := b.CloseStream(StreamID{Kind: KindRedirected, ID: "b"})
	require.True(t, ok)
	require.Equal(t, StreamID{Kind: KindRedirected, ID: "a"}, b.Active().StreamID)
}

func TestSelectNextPrev_Wraps(t *testing.T) {
	b := NewBox(sampleBox())
	require.Equal(t, 0, b.SelectedChoice)

	b.SelectNext()
	require.Equal(t, 1, b.SelectedChoice)
	b.SelectNext()
	require.Equal(t, 0, b.SelectedChoice)

	b.SelectPrev()
	require.Equal(t, 1, b.SelectedChoice)
}

func TestClampScroll_DisablesAutoScrollUntilTail(t *testing.T) {
	e := &StreamEntry{AutoScroll: true}

	e.ClampScroll(-5, 100, 20)
	require.False(t, e.AutoScroll)
	require.Equal(t, 0, e.ScrollY)

	e.ClampScroll(1000, 100, 20)
	require.True(t, e.AutoScroll)
	require.Equal(t, 80, e.ScrollY)
}
