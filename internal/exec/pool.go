package exec

import (
	"sync"

	"github.com/boxmux/boxmux/internal/boxmodel"
	"github.com/sirupsen/logrus"
)

// Pool owns every running worker and enforces spec.md §5's concurrency
// rules: a box with Thread=false serializes its scripts (starting a new
// run stops whatever the box was already running — the teacher's
// TaskManager "single outstanding task per owner" pattern), while
// Thread=true boxes may have several independent workers at once, one
// per distinct stream fingerprint (§5 "at most one live worker per
// (box, stream kind, command fingerprint)").
type Pool struct {
	mu sync.Mutex

	serialized map[string]*ScriptWorker // keyed by BoxID
	threaded   map[Key]*ScriptWorker
	ptys       map[string]*PtyWorker // keyed by BoxID

	events chan Event
	log    *logrus.Entry
}

// NewPool creates an empty worker pool publishing events to the given
// channel.
func NewPool(events chan Event, log *logrus.Entry) *Pool {
	return &Pool{
		serialized: map[string]*ScriptWorker{},
		threaded:   map[Key]*ScriptWorker{},
		ptys:       map[string]*PtyWorker{},
		events:     events,
		log:        log,
	}
}

// RunScript starts a script worker per spec, stopping whatever previously
// occupied its slot.
func (p *Pool) RunScript(spec ScriptSpec) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if spec.Thread {
		key := Key{BoxID: spec.BoxID, StreamKind: spec.Stream.Kind, StreamID: spec.Stream.ID, Fingerprint: Fingerprint(spec.Script)}
		if old, ok := p.threaded[key]; ok {
			go old.Stop()
		}
		p.threaded[key] = StartScript(spec, p.events, p.log)
		return
	}

	if old, ok := p.serialized[spec.BoxID]; ok {
		old.Stop()
	}
	p.serialized[spec.BoxID] = StartScript(spec, p.events, p.log)
}

// StartPtyFor spawns a PTY worker for a box, replacing any existing one.
func (p *Pool) StartPtyFor(spec PtySpec) (*PtyWorker, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if old, ok := p.ptys[spec.BoxID]; ok {
		old.Stop()
		delete(p.ptys, spec.BoxID)
	}

	w, err := StartPty(spec, p.events, p.log)
	if err != nil {
		return nil, err
	}
	p.ptys[spec.BoxID] = w
	return w, nil
}

// PtyFor returns the running PTY worker for a box, if any.
func (p *Pool) PtyFor(boxID string) (*PtyWorker, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	w, ok := p.ptys[boxID]
	return w, ok
}

// StopBox stops every worker belonging to a box (script, threaded
// variants, and pty), used when the whole box is removed or replaced.
// Closing a single stream uses StopStream instead.
func (p *Pool) StopBox(boxID string) {
	p.mu.Lock()
	var toStop []interface{ Stop() }
	if w, ok := p.serialized[boxID]; ok {
		toStop = append(toStop, w)
		delete(p.serialized, boxID)
	}
	for key, w := range p.threaded {
		if key.BoxID == boxID {
			toStop = append(toStop, w)
			delete(p.threaded, key)
		}
	}
	if w, ok := p.ptys[boxID]; ok {
		toStop = append(toStop, w)
		delete(p.ptys, boxID)
	}
	p.mu.Unlock()

	for _, w := range toStop {
		w.Stop()
	}
}

// StopStream stops only the worker backing one stream of a box, leaving
// its other streams (and the box's other threaded workers) running
// (spec.md §4.4 "closing a stream kills its backing worker" — not the
// whole box). The serialized and pty slots are each keyed by BoxID alone
// since a box has at most one of either running at a time, so matching
// on stream identity there is still scoped to the one stream closed.
func (p *Pool) StopStream(boxID string, stream boxmodel.StreamID) {
	p.mu.Lock()
	var toStop []interface{ Stop() }
	if w, ok := p.serialized[boxID]; ok && w.Spec().Stream == stream {
		toStop = append(toStop, w)
		delete(p.serialized, boxID)
	}
	for k, w := range p.threaded {
		if k.BoxID == boxID && k.StreamKind == stream.Kind && k.StreamID == stream.ID {
			toStop = append(toStop, w)
			delete(p.threaded, k)
		}
	}
	if stream.Kind == boxmodel.KindPty {
		if w, ok := p.ptys[boxID]; ok {
			toStop = append(toStop, w)
			delete(p.ptys, boxID)
		}
	}
	p.mu.Unlock()

	for _, w := range toStop {
		w.Stop()
	}
}

// Shutdown stops every worker in the pool, used on application exit.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	var toStop []interface{ Stop() }
	for _, w := range p.serialized {
		toStop = append(toStop, w)
	}
	for _, w := range p.threaded {
		toStop = append(toStop, w)
	}
	for _, w := range p.ptys {
		toStop = append(toStop, w)
	}
	p.serialized = map[string]*ScriptWorker{}
	p.threaded = map[Key]*ScriptWorker{}
	p.ptys = map[string]*PtyWorker{}
	p.mu.Unlock()

	for _, w := range toStop {
		w.Stop()
	}
}
