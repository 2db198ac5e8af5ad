// Package boxmodel implements the per-box runtime state of spec.md §3/§4.4:
// the ordered stream table, active-stream selector, scroll state, focus
// bit, drag hint, and choice selection — everything that exists only
// while a layout is active, as distinct from the immutable configio tree.
package boxmodel

import (
	"github.com/boxmux/boxmux/internal/bounds"
	"github.com/boxmux/boxmux/internal/configio"
	"github.com/boxmux/boxmux/internal/stream"
	"github.com/google/uuid"
)

// StreamKind distinguishes the five stream flavors of spec.md §3.
type StreamKind int

const (
	KindContent StreamKind = iota
	KindChoices
	KindRedirected
	KindPty
	KindExternalSocket
)

// StreamID identifies a stream within a box: its kind plus an opaque id
// (empty for Content/Choices, a choice id for Redirected, a uuid that
// NewExternalSocketStream generates for ExternalSocket).
type StreamID struct {
	Kind StreamKind
	ID   string
}

// StreamEntry is one row of a box's stream table.
type StreamEntry struct {
	StreamID
	Label      string
	Closeable  bool
	Buffer     *stream.Buffer
	ScrollX    int
	ScrollY    int
	AutoScroll bool
	Failed     bool
	FailReason string
}

// DragZone names the part of a box under the pointer, used by the input
// dispatcher's hit test (spec.md §4.6).
type DragZone int

const (
	ZoneNone DragZone = iota
	ZoneResize
	ZoneMove
	ZoneTabLabel
	ZoneTabClose
	ZoneScrollbarV
	ZoneScrollbarH
	ZoneContent
)

// Box is the runtime state for one node of the tree: its immutable
// configuration, its resolved bounds, and everything spec.md §3's "Box
// runtime state" paragraph names.
type Box struct {
	Config *configio.Box
	Bounds bounds.Rect

	Streams     []*StreamEntry
	ActiveIndex int

	Focused        bool
	DragHint       DragZone
	SelectedChoice int
	Dirty          bool
	PtyDisabled    bool
	PtyFailures    int

	Children []*Box
}

// NewBox wraps a loaded configio.Box in fresh runtime state. Streams are
// created lazily (spec.md §3 "Lifecycle") except Content, which always
// exists since it carries the box's static content even before any
// script has run, and Choices, which is created here for every box that
// has choices.
func NewBox(cfg *configio.Box) *Box {
	b := &Box{Config: cfg}
	b.Streams = append(b.Streams, &StreamEntry{
		StreamID: StreamID{Kind: KindContent},
		Label:    "Content",
		Buffer:   stream.NewBuffer(0),
	})
	if cfg.Content != "" {
		b.Streams[0].Buffer.AppendLine(cfg.Content)
	}
	if len(cfg.Choices) > 0 {
		b.Streams = append(b.Streams, &StreamEntry{
			StreamID: StreamID{Kind: KindChoices},
			Label:    "Choices",
			Buffer:   stream.NewBuffer(0),
		})
	}
	for _, child := range cfg.Children {
		b.Children = append(b.Children, NewBox(child))
	}
	return b
}

// ContentStream returns the box's always-present Content stream.
func (b *Box) ContentStream() *StreamEntry {
	return b.Streams[0]
}

// ChoicesStream returns the box's Choices stream, if it has one.
func (b *Box) ChoicesStream() *StreamEntry {
	return b.find(StreamID{Kind: KindChoices})
}

// Active returns the currently visible stream.
func (b *Box) Active() *StreamEntry {
	if b.ActiveIndex < 0 || b.ActiveIndex >= len(b.Streams) {
		return b.Streams[0]
	}
	return b.Streams[b.ActiveIndex]
}

// SwitchActive moves the active selector to the named stream, marking
// the box dirty. Returns false if no such stream exists.
func (b *Box) SwitchActive(id StreamID) bool {
	idx := b.indexOf(id)
	if idx < 0 {
		return false
	}
	b.ActiveIndex = idx
	b.Dirty = true
	return true
}

// EnsureRedirectedStream returns the RedirectedOutput stream for
// choiceID, creating it (spec.md §3 "created lazily... first redirect
// delivery") if it doesn't exist yet. The new stream becomes active,
// matching the end-to-end scenario in spec.md §8 #3.
func (b *Box) EnsureRedirectedStream(choiceID, label string) *StreamEntry {
	id := StreamID{Kind: KindRedirected, ID: choiceID}
	if e := b.find(id); e != nil {
		return e
	}
	e := &StreamEntry{
		StreamID:  id,
		Label:     label,
		Closeable: true,
		Buffer:    stream.NewBuffer(0),
	}
	b.Streams = append(b.Streams, e)
	b.ActiveIndex = len(b.Streams) - 1
	b.Dirty = true
	return e
}

// EnsurePtyStream returns the box's Pty stream, creating it if absent.
func (b *Box) EnsurePtyStream(capacity int) *StreamEntry {
	id := StreamID{Kind: KindPty}
	if e := b.find(id); e != nil {
		return e
	}
	e := &StreamEntry{
		StreamID:  id,
		Label:     "pty",
		Closeable: true,
		Buffer:    stream.NewBuffer(capacity),
	}
	b.Streams = append(b.Streams, e)
	b.ActiveIndex = len(b.Streams) - 1
	b.Dirty = true
	return e
}

// NewExternalSocketStream always creates a fresh stream (socket clients
// may open as many as they like) and returns its generated id.
func (b *Box) NewExternalSocketStream(label string) *StreamEntry {
	id := StreamID{Kind: KindExternalSocket, ID: uuid.NewString()}
	e := &StreamEntry{
		StreamID:  id,
		Label:     label,
		Closeable: true,
		Buffer:    stream.NewBuffer(0),
	}
	b.Streams = append(b.Streams, e)
	b.Dirty = true
	return e
}

// CloseStream removes a closeable stream from the table. Content and
// Choices can never be closed (spec.md §4.4). On success, the new active
// stream is the prior left neighbor.
func (b *Box) CloseStream(id StreamID) bool {
	if id.Kind == KindContent || id.Kind == KindChoices {
		return false
	}
	idx := b.indexOf(id)
	if idx < 0 {
		return false
	}

	wasActive := b.ActiveIndex == idx
	b.Streams = append(b.Streams[:idx], b.Streams[idx+1:]...)

	switch {
	case wasActive:
		newActive := idx - 1
		if newActive < 0 {
			newActive = 0
		}
		b.ActiveIndex = newActive
	case b.ActiveIndex > idx:
		b.ActiveIndex--
	}
	b.Dirty = true
	return true
}

// Find looks up a stream by id, or nil if absent.
func (b *Box) Find(id StreamID) *StreamEntry { return b.find(id) }

func (b *Box) find(id StreamID) *StreamEntry {
	for _, e := range b.Streams {
		if e.StreamID == id {
			return e
		}
	}
	return nil
}

func (b *Box) indexOf(id StreamID) int {
	for i, e := range b.Streams {
		if e.StreamID == id {
			return i
		}
	}
	return -1
}

// ClampScroll keeps a scroll position within [0, maxLine] and updates
// AutoScroll: false when the view ends above the tail, true when it is at
// the tail (spec.md §4.4: "any manual scroll disables auto_scroll...
// until the view returns to the tail").
func (e *StreamEntry) ClampScroll(deltaY int, totalLines, visibleLines int) {
	maxScroll := totalLines - visibleLines
	if maxScroll < 0 {
		maxScroll = 0
	}
	e.ScrollY += deltaY
	if e.ScrollY < 0 {
		e.ScrollY = 0
	}
	if e.ScrollY > maxScroll {
		e.ScrollY = maxScroll
	}
	if e.ScrollY < maxScroll {
		e.AutoScroll = false
	} else {
		e.AutoScroll = true
	}
}
