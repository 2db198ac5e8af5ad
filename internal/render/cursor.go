package render

import "github.com/boxmux/boxmux/internal/input"

// CursorStyle is the terminal cursor shape shown for a hover zone
// (spec.md §4.5: "resize-corner -> block, title-bar -> underscore,
// interactive choice -> bar, otherwise default").
type CursorStyle int

const (
	CursorDefault CursorStyle = iota
	CursorBlock
	CursorUnderscore
	CursorBar
)

var cursorEscapes = map[CursorStyle]string{
	CursorDefault:    "\x1b[0 q",
	CursorBlock:      "\x1b[2 q",
	CursorUnderscore: "\x1b[4 q",
	CursorBar:        "\x1b[6 q",
}

// CursorStyleFor maps a hit-test zone (and whether the hit box has
// choices, for the "interactive choice" case) to a cursor style.
func CursorStyleFor(hit input.Hit, hasChoices bool) CursorStyle {
	switch hit.Zone {
	case input.ZoneResizeCorner:
		return CursorBlock
	case input.ZoneTitleBar:
		return CursorUnderscore
	case input.ZoneContent:
		if hasChoices {
			return CursorBar
		}
	}
	return CursorDefault
}
