package render

import (
	"github.com/boxmux/boxmux/internal/configio"
	"github.com/boxmux/boxmux/internal/stream"
)

// applyOverflow produces the window of lines actually drawn into a box's
// inner rectangle, per spec.md §4.5's four overflow policies.
func applyOverflow(lines []stream.Line, policy configio.Overflow, width, height, scrollY, scrollX int) []stream.Line {
	switch policy {
	case configio.OverflowWrap:
		return wrapLines(lines, width, height)
	case configio.OverflowCrossOut:
		return crossOut(windowLines(lines, height, scrollY), width)
	case configio.OverflowFill:
		return sliceCols(windowLines(lines, height, scrollY), scrollX, width)
	default: // scroll
		return sliceCols(windowLines(lines, height, scrollY), scrollX, width)
	}
}

func windowLines(lines []stream.Line, height, scrollY int) []stream.Line {
	if scrollY < 0 {
		scrollY = 0
	}
	if scrollY >= len(lines) {
		return nil
	}
	end := scrollY + height
	if end > len(lines) {
		end = len(lines)
	}
	return lines[scrollY:end]
}

func sliceCols(lines []stream.Line, scrollX, width int) []stream.Line {
	out := make([]stream.Line, len(lines))
	for i, l := range lines {
		if scrollX >= len(l) {
			out[i] = stream.Line{}
			continue
		}
		end := scrollX + width
		if end > len(l) {
			end = len(l)
		}
		out[i] = l[scrollX:end]
	}
	return out
}

// wrapLines breaks at word boundaries where possible, matching spec.md
// §4.5 ("wrap breaks at word boundaries where possible, else at cell
// boundary"), then takes the first `height` wrapped rows.
func wrapLines(lines []stream.Line, width, height int) []stream.Line {
	var out []stream.Line
	for _, l := range lines {
		for len(l) > width {
			cut := width
			for c := width; c > 0; c-- {
				if l[c-1].Glyph == ' ' {
					cut = c
					break
				}
			}
			out = append(out, l[:cut])
			l = l[cut:]
		}
		out = append(out, l)
		if len(out) >= height {
			break
		}
	}
	return out
}

// crossOut truncates to the box width and overlays a diagonal marker on
// rows that were cut, matching spec.md §4.5's cross_out policy.
func crossOut(lines []stream.Line, width int) []stream.Line {
	out := make([]stream.Line, len(lines))
	for i, l := range lines {
		if len(l) <= width {
			out[i] = l
			continue
		}
		cut := make(stream.Line, width)
		copy(cut, l[:width])
		if width > 0 {
			cut[width-1] = stream.Cell{Glyph: '\\', Style: cut[width-1].Style}
		}
		out[i] = cut
	}
	return out
}
