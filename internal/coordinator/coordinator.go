package coordinator

import (
	"sync/atomic"

	"github.com/boxmux/boxmux/internal/boxmodel"
	"github.com/boxmux/boxmux/internal/boxtree"
	"github.com/boxmux/boxmux/internal/configio"
	"github.com/boxmux/boxmux/internal/exec"
	"github.com/boxmux/boxmux/internal/input"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// mutationBacklog bounds the coordinator's inbox (spec.md §5 "the
// mutation channel to the coordinator is bounded; workers block briefly
// under load").
const mutationBacklog = 256

// Coordinator is the single mutable owner of the tree (spec.md §4.9):
// every other task talks to it only through Submit. Its own internal
// state (go-deadlock.Mutex rather than sync.Mutex, matching the
// teacher's own choice of mutex type) is never held across a worker
// call — workers are spawned and left to report back asynchronously.
type Coordinator struct {
	mu deadlock.Mutex

	cfg *configio.Root
	app *boxtree.Application
	pool *exec.Pool
	writer *configio.Writer
	log  *logrus.Entry

	mutations chan Mutation
	events    chan exec.Event
	dirty     chan struct{}

	version uint64
	drag    input.DragState
}

// New builds a Coordinator for a loaded configuration. The persistence
// writer is optional (nil disables persistence, e.g. read-only mode per
// spec.md §7 when the config file is unwritable).
func New(cfg *configio.Root, writer *configio.Writer, log *logrus.Entry) (*Coordinator, error) {
	app, err := boxtree.NewApplication(cfg)
	if err != nil {
		return nil, err
	}
	events := make(chan exec.Event, mutationBacklog)
	c := &Coordinator{
		cfg:       cfg,
		app:       app,
		pool:      exec.NewPool(events, log),
		writer:    writer,
		log:       log,
		mutations: make(chan Mutation, mutationBacklog),
		events:    events,
		dirty:     make(chan struct{}, 1),
	}
	return c, nil
}

// Submit posts a mutation and blocks for its Result (spec.md §4.7
// "the server waits for an acknowledgement before responding").
func (c *Coordinator) Submit(m Mutation) Result {
	reply := make(chan Result, 1)
	m.Reply = reply
	c.mutations <- m
	return <-reply
}

// Dirty signals the renderer that new state is available to redraw.
func (c *Coordinator) Dirty() <-chan struct{} { return c.dirty }

// Version returns the current tree-version counter.
func (c *Coordinator) Version() uint64 { return atomic.LoadUint64(&c.version) }

// App exposes the read side of the tree for the renderer (a Coordinator
// is the only writer; readers see a consistent view because the
// coordinator finishes a whole batch before signalling dirty).
func (c *Coordinator) App() *boxtree.Application {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.app
}

// Bootstrap starts every configured box's content script (or PTY) once
// at application launch, the way the teacher's containers panel kicks
// off its background pollers as soon as a panel becomes visible
// (pkg/gui/containers_panel.go's GetOnRenderToOptions -> startup refresh).
func (c *Coordinator) Bootstrap() {
	c.mu.Lock()
	var boxes []*boxmodel.Box
	var walk func(b *boxmodel.Box)
	walk = func(b *boxmodel.Box) {
		boxes = append(boxes, b)
		for _, child := range b.Children {
			walk(child)
		}
	}
	walk(c.app.Root)
	c.mu.Unlock()

	for _, b := range boxes {
		if len(b.Config.Script) == 0 {
			continue
		}
		switch boxtree.DetectCapability(b.Config) {
		case boxtree.CapPty:
			c.Submit(Mutation{Kind: MutSpawnPty, BoxID: b.Config.ID})
		case boxtree.CapScript, boxtree.CapTable, boxtree.CapChart:
			c.Submit(Mutation{Kind: MutRefreshBox, BoxID: b.Config.ID})
		}
	}
}

// Run is the coordinator's event loop: it never performs blocking I/O
// itself (spec.md §5), only dispatching to the pool and persistence
// writer, both of which run their own goroutines. Per-box refresh
// scheduling lives inside each ScriptWorker's own cancellable sleep
// (spec.md §4.3); the coordinator only ever reacts to the Spawned/
// Output/Exited/Failed events that respawn produces.
func (c *Coordinator) Run(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			c.shutdown()
			return
		case m := <-c.mutations:
			shutdown := m.Kind == MutShutdown
			c.apply(m)
			c.drainPending()
			c.signalDirty()
			if shutdown {
				c.shutdown()
				return
			}
		case e := <-c.events:
			c.applyEvent(e)
			c.signalDirty()
		}
	}
}

// drainPending applies any further mutations already queued, so a batch
// of simultaneously-arrived mutations is fully applied before the
// renderer is woken once (spec.md §5 "a redraw never observes a
// half-applied mutation").
func (c *Coordinator) drainPending() {
	for {
		select {
		case m := <-c.mutations:
			c.apply(m)
		default:
			return
		}
	}
}

func (c *Coordinator) signalDirty() {
	atomic.AddUint64(&c.version, 1)
	select {
	case c.dirty <- struct{}{}:
	default:
	}
}

func (c *Coordinator) shutdown() {
	c.pool.Shutdown()
	if c.writer != nil {
		c.writer.Close()
	}
}

