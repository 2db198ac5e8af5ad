package exec

import (
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/boxmux/boxmux/internal/boxmodel"
	"github.com/creack/pty"
	"github.com/sirupsen/logrus"
)

// maxConsecutiveFailures is the threshold of 3 consecutive PTY failures.
// Nothing in this package reads it: the coordinator counts Failed events
// on a box's Pty stream and sets boxmodel.Box.PtyDisabled at 3. That flag
// is only reported by QueryPtyStatus; later spawn requests are not
// refused, and the box does not switch to running its script without a
// PTY.
const maxConsecutiveFailures = 3

// PtySpec describes one PTY-backed stream.
type PtySpec struct {
	BoxID  string
	Stream boxmodel.StreamID
	Script []string
}

// PtyWorker allocates a real pseudo-terminal for a box's interactive
// session and pumps its output into Events, the way the rest of the pack
// (amux, wingthing, tuios) uses creack/pty rather than the teacher's own
// tmux-swap-pane approach — spec.md §4.3 calls for a genuine PTY.
type PtyWorker struct {
	spec   PtySpec
	events chan<- Event
	log    *logrus.Entry

	cmd *exec.Cmd
	pty *os.File

	cancel context.CancelFunc
	done   chan struct{}
}

// StartPty spawns the PTY session. It keeps no failure tally: the
// coordinator counts consecutive Failed events per box and disables the
// capability itself.
func StartPty(spec PtySpec, events chan<- Event, log *logrus.Entry) (*PtyWorker, error) {
	ctx, cancel := context.WithCancel(context.Background())
	argv := spec.Script
	if len(argv) == 0 {
		argv = []string{defaultShell()}
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	ptyFile, err := pty.Start(cmd)
	if err != nil {
		cancel()
		return nil, err
	}

	w := &PtyWorker{
		spec:   spec,
		events: events,
		log:    log,
		cmd:    cmd,
		pty:    ptyFile,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	w.emit(Event{Kind: Spawned, BoxID: spec.BoxID, Stream: spec.Stream})
	go w.pump(ctx)
	return w, nil
}

func defaultShell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}

func (w *PtyWorker) pump(ctx context.Context) {
	defer close(w.done)
	buf := make([]byte, 4096)
	for {
		n, err := w.pty.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			w.emit(Event{Kind: Output, BoxID: w.spec.BoxID, Stream: w.spec.Stream, Data: chunk})
		}
		if err != nil {
			break
		}
	}

	waitErr := w.cmd.Wait()
	if ctx.Err() != nil {
		w.emit(Event{Kind: Exited, BoxID: w.spec.BoxID, Stream: w.spec.Stream})
		return
	}
	if waitErr != nil {
		w.emit(Event{Kind: Failed, BoxID: w.spec.BoxID, Stream: w.spec.Stream, Err: waitErr})
		return
	}
	w.emit(Event{Kind: Exited, BoxID: w.spec.BoxID, Stream: w.spec.Stream})
}

// Write sends keyboard input to the PTY (spec.md §4.6's encoded key
// bytes land here).
func (w *PtyWorker) Write(data []byte) error {
	_, err := w.pty.Write(data)
	return err
}

// Resize notifies the PTY of a new cell geometry.
func (w *PtyWorker) Resize(rows, cols int) error {
	return pty.Setsize(w.pty, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
}

// Stop terminates the session: SIGTERM, then SIGKILL after gracePeriod.
func (w *PtyWorker) Stop() {
	w.cancel()
	if err := killTree(w.cmd); err != nil {
		w.log.WithError(err).Warn("pty sigterm failed")
	}

	select {
	case <-w.done:
		w.pty.Close()
		return
	case <-time.After(gracePeriod):
	}

	_ = killTree(w.cmd)
	<-w.done
	w.pty.Close()
}

func (w *PtyWorker) emit(e Event) {
	w.events <- e
}
