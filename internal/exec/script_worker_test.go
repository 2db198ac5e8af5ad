package exec

import (
	"io"
	"testing"
	"time"

	"github.com/boxmux/boxmux/internal/boxmodel"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func drain(t *testing.T, ch <-chan Event, want EventKind, timeout time.Duration) Event {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case e := <-ch:
			if e.Kind == want {
				return e
			}
		case <-deadline:
			t.Fatalf("timed out waiting for event kind %v", want)
		}
	}
}

func TestScriptWorker_AtomicRunPublishesOutputOnce(t *testing.T) {
	events := make(chan Event, 16)
	spec := ScriptSpec{
		BoxID:  "b1",
		Stream: boxmodel.StreamID{Kind: boxmodel.KindContent},
		Script: []string{"echo hello"},
	}
	w := StartScript(spec, events, testLogger())
	defer w.Stop()

	out := drain(t, events, Output, 2*time.Second)
	require.Contains(t, string(out.Data), "hello")
	drain(t, events, Exited, 2*time.Second)
}

func TestScriptWorker_StreamingEmitsIncrementalOutput(t *testing.T) {
	events := make(chan Event, 16)
	spec := ScriptSpec{
		BoxID:     "b2",
		Stream:    boxmodel.StreamID{Kind: boxmodel.KindContent},
		Script:    []string{"printf 'a\\nb\\n'"},
		Streaming: true,
	}
	w := StartScript(spec, events, testLogger())
	defer w.Stop()

	drain(t, events, Spawned, 2*time.Second)
	drain(t, events, Output, 2*time.Second)
	drain(t, events, Exited, 2*time.Second)
}

func TestScriptWorker_FailingCommandEmitsFailed(t *testing.T) {
	events := make(chan Event, 16)
	spec := ScriptSpec{
		BoxID:  "b3",
		Stream: boxmodel.StreamID{Kind: boxmodel.KindContent},
		Script: []string{"false"},
	}
	w := StartScript(spec, events, testLogger())
	defer w.Stop()

	e := drain(t, events, Failed, 2*time.Second)
	require.Error(t, e.Err)
}

func TestFingerprint_StableForIdenticalScript(t *testing.T) {
	a := Fingerprint([]string{"echo", "hi"})
	b := Fingerprint([]string{"echo", "hi"})
	c := Fingerprint([]string{"echo", "bye"})
	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
}
