package input

import "github.com/boxmux/boxmux/internal/boxmodel"

// DragPhase is one state of spec.md §4.6's drag state machine.
type DragPhase int

const (
	Idle DragPhase = iota
	PressedOn
	DraggingResize
	DraggingMove
	DraggingScroll
)

// Axis names which axis a DraggingScroll state tracks.
type Axis int

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

// DragState tracks the in-progress press/drag gesture. Zero value is Idle.
type DragState struct {
	Phase  DragPhase
	Box    *boxmodel.Box
	Zone   Zone
	AnchorX, AnchorY int
	Axis   Axis
}

const dragThreshold = 1 // cells

// Press begins a gesture: Idle -> PressedOn.
func (d *DragState) Press(hit Hit, x, y int) {
	d.Phase = PressedOn
	d.Box = hit.Box
	d.Zone = hit.Zone
	d.AnchorX, d.AnchorY = x, y
	if hit.Zone == ZoneScrollbarH {
		d.Axis = AxisHorizontal
	} else {
		d.Axis = AxisVertical
	}
}

// Move advances the gesture given the pointer's new position, returning
// the delta to apply (dx,dy) and whether a redraw-worthy state change
// happened. PressedOn promotes to the matching Dragging* state once the
// pointer has moved past dragThreshold cells from the anchor.
func (d *DragState) Move(x, y int) (dx, dy int, changed bool) {
	if d.Phase == Idle {
		return 0, 0, false
	}
	dx, dy = x-d.AnchorX, y-d.AnchorY

	if d.Phase == PressedOn {
		if abs(dx) <= dragThreshold && abs(dy) <= dragThreshold {
			return 0, 0, false
		}
		switch d.Zone {
		case ZoneResizeCorner:
			d.Phase = DraggingResize
		case ZoneTitleBar:
			d.Phase = DraggingMove
		case ZoneScrollbarV, ZoneScrollbarH:
			d.Phase = DraggingScroll
		default:
			d.Phase = Idle
			return 0, 0, false
		}
	}

	d.AnchorX, d.AnchorY = x, y
	return dx, dy, true
}

// Release ends the gesture (Dragging* --release--> Idle), returning
// whether a drag was actually in progress (and so persistence should
// be triggered).
func (d *DragState) Release() bool {
	wasDragging := d.Phase == DraggingResize || d.Phase == DraggingMove || d.Phase == DraggingScroll
	*d = DragState{}
	return wasDragging
}

// Cancel aborts the gesture without triggering persistence (terminal
// resize or layout switch, per spec.md §4.6).
func (d *DragState) Cancel() {
	*d = DragState{}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
