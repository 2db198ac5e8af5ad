// Package exec runs the scripts and PTY sessions that back a box's
// non-static streams: one worker goroutine per running process, emitting
// lifecycle events onto a shared channel the coordinator drains.
package exec

import "github.com/boxmux/boxmux/internal/boxmodel"

// EventKind is the lifecycle stage an Event reports.
type EventKind int

const (
	Spawned EventKind = iota
	Output
	Exited
	Failed
)

// Event is a single lifecycle notification from a worker, posted to the
// coordinator's event channel, which its loop drains alongside the
// mutation channel (spec.md §5 "single-writer discipline").
type Event struct {
	Kind     EventKind
	BoxID    string
	Stream   boxmodel.StreamID
	Data     []byte
	ExitCode int
	Err      error
}
