// Package configio loads a BoxMux configuration document into the typed
// tree the rest of the engine operates on, and writes live mutations
// back to that same document with minimal, span-preserving edits.
//
// The YAML surface syntax itself — and validating it against a schema —
// is treated as an external collaborator's job (spec.md §1); this package
// is the boundary: it produces the typed Root below and nothing else
// downstream ever touches raw YAML again.
package configio

import "time"

// Anchor is the corner or edge a position's coordinate is expressed relative to.
type Anchor int

const (
	TopLeft Anchor = iota
	Top
	TopRight
	Left
	Center
	Right
	BottomLeft
	Bottom
	BottomRight
)

// Coord is a single coordinate: either a percentage of the parent's
// corresponding dimension, or an absolute cell count.
type Coord struct {
	Percent bool
	Value   int // percentage 0..=100, or absolute cell count
}

// Position is a box's (x1,y1,x2,y2) as written in the configuration,
// plus the anchor it's expressed relative to.
type Position struct {
	X1, Y1, X2, Y2 Coord
	Anchor         Anchor
}

// Render selects which pure-function kernel, if any, formats a box's
// content before it reaches the stream buffer.
type Render string

const (
	RenderPlain Render = ""
	RenderTable Render = "table"
	RenderChart Render = "chart"
)

// Overflow is a box's content-overflow policy.
type Overflow string

const (
	OverflowScroll   Overflow = "scroll"
	OverflowWrap     Overflow = "wrap"
	OverflowFill     Overflow = "fill"
	OverflowCrossOut Overflow = "cross_out"
)

// Color is one of the 16 ANSI color names, or "None".
type Color string

// Style carries a box's visual styling fields.
type Style struct {
	BorderColor      Color
	FgColor          Color
	BgColor          Color
	FillChar         rune
	SelectedFillChar rune
	TitleColor       Color
}

// Interaction carries a box's focus/resize related fields.
type Interaction struct {
	Focusable   bool
	TabOrder    int
	Resizable   bool
	MinWidthPct int
	MinHeightPct int
}

// Scroll carries a stream's initial scroll position.
type Scroll struct {
	X, Y int
}

// Flags carries a box's execution/output flags.
type Flags struct {
	Thread       bool
	Streaming    bool
	Pty          bool
	AutoScroll   bool
	AppendOutput bool
}

// Choice is one entry of a box's choice menu.
type Choice struct {
	ID             string
	Content        string
	Script         []string
	Pty            bool
	Streaming      bool
	RedirectOutput string // target box id, "" if none
}

// Box is a node in the layout tree, as loaded from the configuration.
type Box struct {
	ID             string
	Title          string
	Position       Position
	Content        string
	Children       []*Box
	Style          Style
	Interaction    Interaction
	Overflow       Overflow
	Scroll         Scroll
	RefreshInterval time.Duration
	Script         []string
	Flags          Flags
	RedirectOutput string // target box id, "" if none
	Choices        []Choice
	Variables      map[string]string
	ZIndex         int
	Render         Render

	// childListKey records which of "children"/"boxes" the source document
	// used for this box. The persistence writer does not read it: it edits
	// values in place, so the file keeps whichever key it already used.
	childListKey string
}

// Layout is a named root box belonging to an application.
type Layout struct {
	ID   string
	Root *Box
}

// HotKey binds a key combination to an action at application scope.
type HotKey struct {
	Key    string
	Action string
}

// Root is the whole, immutable-after-load configuration document.
type Root struct {
	Title           string
	DefaultRefresh  time.Duration
	Variables       map[string]string
	Layouts         []*Layout
	ActiveLayoutID  string
	HotKeys         []HotKey
	OnKeypress      []HotKey

	// sourcePath is the file this document was loaded from, used by the
	// persistence writer to know where to write mutations back to.
	sourcePath string
}

func (r *Root) SourcePath() string { return r.sourcePath }
