package boxmodel

import "github.com/boxmux/boxmux/internal/configio"

// SelectNext/SelectPrev move the highlighted choice in a Choices stream,
// wrapping at either end (spec.md §4.6 "per-stream nav"). They're no-ops
// on a box with no choices.
func (b *Box) SelectNext() {
	n := len(b.Config.Choices)
	if n == 0 {
		return
	}
	b.SelectedChoice = (b.SelectedChoice + 1) % n
	b.Dirty = true
}

func (b *Box) SelectPrev() {
	n := len(b.Config.Choices)
	if n == 0 {
		return
	}
	b.SelectedChoice = (b.SelectedChoice - 1 + n) % n
	b.Dirty = true
}

// CurrentChoice returns the highlighted choice, or nil if the box has none.
func (b *Box) CurrentChoice() *configio.Choice {
	if b.SelectedChoice < 0 || b.SelectedChoice >= len(b.Config.Choices) {
		return nil
	}
	c := b.Config.Choices[b.SelectedChoice]
	return &c
}
