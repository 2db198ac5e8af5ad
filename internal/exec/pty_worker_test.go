package exec

import (
	"testing"
	"time"

	"github.com/boxmux/boxmux/internal/boxmodel"
	"github.com/stretchr/testify/require"
)

func TestPtyWorker_SpawnsAndEmitsOutput(t *testing.T) {
	events := make(chan Event, 16)
	spec := PtySpec{
		BoxID:  "p1",
		Stream: boxmodel.StreamID{Kind: boxmodel.KindPty},
		Script: []string{"/bin/sh", "-c", "echo ready; exit 0"},
	}

	w, err := StartPty(spec, events, testLogger())
	require.NoError(t, err)
	defer w.Stop()

	drain(t, events, Spawned, 2*time.Second)
	drain(t, events, Output, 2*time.Second)
}

func TestPool_SerializedScriptReplacesPrior(t *testing.T) {
	events := make(chan Event, 64)
	pool := NewPool(events, testLogger())

	pool.RunScript(ScriptSpec{BoxID: "b1", Stream: boxmodel.StreamID{Kind: boxmodel.KindContent}, Script: []string{"sleep 5"}})
	pool.RunScript(ScriptSpec{BoxID: "b1", Stream: boxmodel.StreamID{Kind: boxmodel.KindContent}, Script: []string{"echo replaced"}})

	out := drain(t, events, Output, 3*time.Second)
	require.Contains(t, string(out.Data), "replaced")

	pool.Shutdown()
}
