package stream

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuffer_TruncatesAtCapacity(t *testing.T) {
	b := NewBuffer(5)
	for i := 0; i < 20; i++ {
		b.AppendLine(fmt.Sprintf("line-%d", i))
	}

	snap := b.Snapshot()
	require.Len(t, snap.Lines, 5)
	last := snap.Lines[len(snap.Lines)-1]
	require.Equal(t, "line-19", last.PlainText())
}

func TestBuffer_SGRPreserved(t *testing.T) {
	b := NewBuffer(0)
	b.Append([]byte("\x1b[31mred\x1b[0m plain\n"))

	snap := b.Snapshot()
	line := snap.Lines[0]
	require.Equal(t, ColorRed, line[0].Style.Fg)
	require.Equal(t, ColorDefault, line[4].Style.Fg)
	require.Equal(t, "red plain", line.PlainText())
}

func TestBuffer_CarriageReturnOverwrites(t *testing.T) {
	b := NewBuffer(0)
	b.Append([]byte("progress: 10%\rprogress: 99%"))

	snap := b.Snapshot()
	require.Equal(t, "progress: 99%", snap.Lines[0].PlainText())
}

func TestBuffer_CursorUpOverwritesPriorLine(t *testing.T) {
	b := NewBuffer(0)
	b.Append([]byte("first\nsecond\n\x1b[2Aoverwritten"))

	snap := b.Snapshot()
	require.Equal(t, "overwritten", snap.Lines[0].PlainText())
}

func TestBuffer_UnrecognizedSequenceDiscarded(t *testing.T) {
	b := NewBuffer(0)
	b.Append([]byte("\x1b[2Jcleared\n"))

	snap := b.Snapshot()
	require.Equal(t, "cleared", snap.Lines[0].PlainText())
}

func TestBuffer_GenerationIncrementsOnAppend(t *testing.T) {
	b := NewBuffer(0)
	g0 := b.Generation()
	b.AppendLine("x")
	require.Greater(t, b.Generation(), g0)
}
