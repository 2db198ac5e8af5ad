package boxtree

import (
	"github.com/boxmux/boxmux/internal/configio"
)

// Capability is the tag of spec.md §7's "closed sum of capabilities":
// a box dispatches on exactly one of these, determined by its static
// configuration rather than inferred at runtime.
type Capability int

const (
	CapStatic Capability = iota
	CapScript
	CapPty
	CapChoices
	CapTable
	CapChart
)

// DetectCapability classifies a box by its configuration. Choices takes
// priority over script/pty (a box with both a script and choices is a
// menu whose choices each carry their own script), and render-kernel
// boxes (table/chart) are orthogonal to how their content is produced
// and checked first since they govern only how output is formatted, not
// whether it runs.
func DetectCapability(cfg *configio.Box) Capability {
	switch cfg.Render {
	case configio.RenderTable:
		return CapTable
	case configio.RenderChart:
		return CapChart
	}
	switch {
	case len(cfg.Choices) > 0:
		return CapChoices
	case cfg.Flags.Pty:
		return CapPty
	case len(cfg.Script) > 0:
		return CapScript
	default:
		return CapStatic
	}
}
