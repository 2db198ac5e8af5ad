// Package boxtree assembles the per-layout runtime tree from a loaded
// configuration, maintains the focus chain across it, and hosts the two
// capability kernels spec.md treats as pure functions at the boundary:
// chart and table rendering.
package boxtree

import (
	"sort"

	"github.com/boxmux/boxmux/internal/boxmodel"
	"github.com/boxmux/boxmux/internal/configio"
	"github.com/samber/lo"
)

// Application is the live runtime view of a loaded configuration: the
// currently active layout's tree plus the focus chain computed over it.
type Application struct {
	Config *configio.Root

	ActiveLayoutID string
	Root           *boxmodel.Box

	focusChain []*boxmodel.Box
	focusIndex int
}

// NewApplication builds the runtime tree for the configuration's active
// layout.
func NewApplication(cfg *configio.Root) (*Application, error) {
	app := &Application{Config: cfg}
	if err := app.SwitchLayout(cfg.ActiveLayoutID); err != nil {
		return nil, err
	}
	return app, nil
}

// SwitchLayout tears down the current tree and builds a fresh one for
// layoutID (spec.md §3 "Runtime state is... destroyed when it is torn
// down"). Script/PTY worker teardown for the outgoing tree is the
// coordinator's responsibility, not this package's.
func (a *Application) SwitchLayout(layoutID string) error {
	layout := findLayout(a.Config.Layouts, layoutID)
	if layout == nil {
		return unknownLayoutError(layoutID)
	}
	a.ActiveLayoutID = layoutID
	a.Root = boxmodel.NewBox(layout.Root)
	a.rebuildFocusChain()
	return nil
}

func findLayout(layouts []*configio.Layout, id string) *configio.Layout {
	for _, l := range layouts {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// FindByID walks the tree for a box with the given configuration id.
func (a *Application) FindByID(id string) *boxmodel.Box {
	return findByID(a.Root, id)
}

func findByID(b *boxmodel.Box, id string) *boxmodel.Box {
	if b == nil {
		return nil
	}
	if b.Config.ID == id {
		return b
	}
	for _, c := range b.Children {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// RebuildFocusChain recomputes the focus chain after a mutation changes
// the tree's shape (AddBox/RemoveBox/ReplaceBox).
func (a *Application) RebuildFocusChain() { a.rebuildFocusChain() }

// rebuildFocusChain orders focusable boxes by (tab_order ascending, then
// layout pre-order) per spec.md §4.6, and is re-run whenever the tree's
// shape changes (a mutation adds/removes a box).
func (a *Application) rebuildFocusChain() {
	var all []*boxmodel.Box
	preOrder(a.Root, &all)

	focusable := lo.Filter(all, func(b *boxmodel.Box, _ int) bool {
		return b.Config.Interaction.Focusable
	})

	sort.SliceStable(focusable, func(i, j int) bool {
		return focusable[i].Config.Interaction.TabOrder < focusable[j].Config.Interaction.TabOrder
	})

	a.focusChain = focusable
	if a.focusIndex >= len(a.focusChain) {
		a.focusIndex = 0
	}
	for i, b := range a.focusChain {
		b.Focused = i == a.focusIndex
	}
}

func preOrder(b *boxmodel.Box, out *[]*boxmodel.Box) {
	if b == nil {
		return
	}
	*out = append(*out, b)
	for _, c := range b.Children {
		preOrder(c, out)
	}
}

// FocusChain returns the current ordered list of focusable boxes.
func (a *Application) FocusChain() []*boxmodel.Box {
	return a.focusChain
}

// Focused returns the currently focused box, or nil if none is focusable.
func (a *Application) Focused() *boxmodel.Box {
	if a.focusIndex < 0 || a.focusIndex >= len(a.focusChain) {
		return nil
	}
	return a.focusChain[a.focusIndex]
}

// FocusNext/FocusPrev move focus along the chain, wrapping at either end.
func (a *Application) FocusNext() { a.moveFocus(1) }
func (a *Application) FocusPrev() { a.moveFocus(-1) }

func (a *Application) moveFocus(delta int) {
	n := len(a.focusChain)
	if n == 0 {
		return
	}
	if cur := a.Focused(); cur != nil {
		cur.Focused = false
	}
	a.focusIndex = ((a.focusIndex+delta)%n + n) % n
	a.focusChain[a.focusIndex].Focused = true
}

// DropFocus clears focus entirely (Esc per spec.md §4.6).
func (a *Application) DropFocus() {
	if cur := a.Focused(); cur != nil {
		cur.Focused = false
	}
	a.focusIndex = -1
}

// SetFocus moves focus directly to the given box, if it's in the chain
// (used when a mouse click lands on a focusable box).
func (a *Application) SetFocus(b *boxmodel.Box) bool {
	for i, candidate := range a.focusChain {
		if candidate == b {
			if cur := a.Focused(); cur != nil {
				cur.Focused = false
			}
			a.focusIndex = i
			b.Focused = true
			return true
		}
	}
	return false
}
