package exec

import (
	"bufio"
	"context"
	"io"
	"os/exec"
	"time"

	"github.com/boxmux/boxmux/internal/boxmodel"
	"github.com/sirupsen/logrus"
)

// gracePeriod is the delay between SIGTERM and SIGKILL (spec.md §5).
const gracePeriod = 500 * time.Millisecond

// ScriptSpec describes one script-backed stream.
type ScriptSpec struct {
	BoxID           string
	Stream          boxmodel.StreamID
	Script          []string
	Streaming       bool
	Thread          bool
	RefreshInterval time.Duration
}

// ScriptWorker runs a box's script, optionally respawning it on a
// refresh interval, and reports Spawned/Output/Exited/Failed events.
type ScriptWorker struct {
	spec   ScriptSpec
	events chan<- Event
	log    *logrus.Entry

	cancel context.CancelFunc
	done   chan struct{}
}

// Spec returns the specification this worker was started with, so the
// pool can identify which stream it belongs to without tracking a
// separate index.
func (w *ScriptWorker) Spec() ScriptSpec { return w.spec }

// StartScript launches a script worker. The returned worker owns its own
// goroutine; call Stop to cancel it (and any running child process).
func StartScript(spec ScriptSpec, events chan<- Event, log *logrus.Entry) *ScriptWorker {
	ctx, cancel := context.WithCancel(context.Background())
	w := &ScriptWorker{
		spec:   spec,
		events: events,
		log:    log,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go w.run(ctx)
	return w
}

// Stop cancels the worker and blocks until its process (if any) has
// exited, via the SIGTERM-then-SIGKILL escalation.
func (w *ScriptWorker) Stop() {
	w.cancel()
	<-w.done
}

func (w *ScriptWorker) run(ctx context.Context) {
	defer close(w.done)
	for {
		w.runOnce(ctx)
		if ctx.Err() != nil {
			return
		}
		if w.spec.RefreshInterval <= 0 {
			return
		}
		timer := time.NewTimer(w.spec.RefreshInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

func (w *ScriptWorker) runOnce(ctx context.Context) {
	w.emit(Event{Kind: Spawned, BoxID: w.spec.BoxID, Stream: w.spec.Stream})

	for _, line := range w.spec.Script {
		if ctx.Err() != nil {
			return
		}
		if err := w.runCommand(ctx, line); err != nil {
			w.emit(Event{Kind: Failed, BoxID: w.spec.BoxID, Stream: w.spec.Stream, Err: err})
			return
		}
	}
	w.emit(Event{Kind: Exited, BoxID: w.spec.BoxID, Stream: w.spec.Stream})
}

func (w *ScriptWorker) runCommand(ctx context.Context, line string) error {
	cmd := commandFromString(ctx, line)

	if w.spec.Streaming {
		return w.runStreaming(ctx, cmd)
	}
	return w.runAtomic(ctx, cmd)
}

// runStreaming wires the process's combined output through a pipe and
// posts one Output event per read, the way the teacher's Streamer pumps
// bytes with io.Copy rather than waiting for EOF.
func (w *ScriptWorker) runStreaming(ctx context.Context, cmd *exec.Cmd) error {
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return err
	}

	buf := make([]byte, 4096)
	reader := bufio.NewReader(stdout)
	for {
		n, readErr := reader.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			w.emit(Event{Kind: Output, BoxID: w.spec.BoxID, Stream: w.spec.Stream, Data: chunk})
		}
		if readErr != nil {
			break
		}
	}

	return w.waitWithEscalation(ctx, cmd)
}

// runAtomic waits for the whole command to finish and publishes its
// output in a single event (non-streaming boxes redraw once per run).
func (w *ScriptWorker) runAtomic(ctx context.Context, cmd *exec.Cmd) error {
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return err
	}

	output, readErr := io.ReadAll(stdout)
	waitErr := w.waitWithEscalation(ctx, cmd)

	if len(output) > 0 {
		w.emit(Event{Kind: Output, BoxID: w.spec.BoxID, Stream: w.spec.Stream, Data: output})
	}
	if readErr != nil {
		return readErr
	}
	return waitErr
}

// waitWithEscalation waits for cmd to exit, or — if ctx is cancelled
// first — sends SIGTERM and escalates to SIGKILL after gracePeriod.
func (w *ScriptWorker) waitWithEscalation(ctx context.Context, cmd *exec.Cmd) error {
	waitErr := make(chan error, 1)
	go func() { waitErr <- cmd.Wait() }()

	select {
	case err := <-waitErr:
		return err
	case <-ctx.Done():
	}

	if err := killTree(cmd); err != nil {
		w.log.WithError(err).Warn("sigterm failed")
	}

	select {
	case err := <-waitErr:
		return err
	case <-time.After(gracePeriod):
	}

	_ = killTree(cmd)
	<-waitErr
	return ctx.Err()
}

func (w *ScriptWorker) emit(e Event) {
	w.events <- e
}
