package boxtree

import (
	"testing"

	"github.com/boxmux/boxmux/internal/configio"
	"github.com/stretchr/testify/require"
)

func sampleConfig() *configio.Root {
	child1 := &configio.Box{ID: "left", Interaction: configio.Interaction{Focusable: true, TabOrder: 2}}
	child2 := &configio.Box{ID: "right", Interaction: configio.Interaction{Focusable: true, TabOrder: 1}}
	root := &configio.Box{ID: "root", Children: []*configio.Box{child1, child2}}
	layout := &configio.Layout{ID: "main", Root: root}
	return &configio.Root{Layouts: []*configio.Layout{layout}, ActiveLayoutID: "main"}
}

func TestNewApplication_BuildsFocusChainInTabOrder(t *testing.T) {
	app, err := NewApplication(sampleConfig())
	require.NoError(t, err)

	chain := app.FocusChain()
	require.Len(t, chain, 2)
	require.Equal(t, "right", chain[0].Config.ID)
	require.Equal(t, "left", chain[1].Config.ID)
}

func TestFocusNext_Wraps(t *testing.T) {
	app, err := NewApplication(sampleConfig())
	require.NoError(t, err)

	require.Equal(t, "right", app.Focused().Config.ID)
	app.FocusNext()
	require.Equal(t, "left", app.Focused().Config.ID)
	app.FocusNext()
	require.Equal(t, "right", app.Focused().Config.ID)
}

func TestFindByID_LocatesNestedBox(t *testing.T) {
	app, err := NewApplication(sampleConfig())
	require.NoError(t, err)

	require.NotNil(t, app.FindByID("left"))
	require.Nil(t, app.FindByID("missing"))
}

func TestSwitchLayout_UnknownIDErrors(t *testing.T) {
	app, err := NewApplication(sampleConfig())
	require.NoError(t, err)

	err = app.SwitchLayout("nope")
	require.Error(t, err)
}

func TestDetectCapability(t *testing.T) {
	require.Equal(t, CapStatic, DetectCapability(&configio.Box{}))
	require.Equal(t, CapScript, DetectCapability(&configio.Box{Script: []string{"echo hi"}}))
	require.Equal(t, CapPty, DetectCapability(&configio.Box{Flags: configio.Flags{Pty: true}}))
	require.Equal(t, CapChoices, DetectCapability(&configio.Box{Choices: []configio.Choice{{ID: "a"}}}))
	require.Equal(t, CapTable, DetectCapability(&configio.Box{Render: configio.RenderTable}))
	require.Equal(t, CapChart, DetectCapability(&configio.Box{Render: configio.RenderChart}))
}

func TestFormatTable_AlignsColumns(t *testing.T) {
	out := FormatTable([][]string{{"a", "bb"}, {"ccc", "d"}})
	require.Contains(t, out, "a")
	require.Contains(t, out, "ccc")
}

func TestParseSeries_SkipsNonNumeric(t *testing.T) {
	series := ParseSeries([]string{"1.0", "oops", "2.5"})
	require.Equal(t, []float64{1.0, 2.5}, series)
}
