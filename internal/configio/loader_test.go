package configio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleConfig = `
app:
  title: "Sample"
  variables:
    GREETING: hi
  layouts:
    - id: main
      root: true
      children:
        - id: greet
          x1: "25%"
          y1: "40%"
          x2: "75%"
          y2: "60%"
          content: "${GREETING}"
        - id: sibling
          x1: "0%"
          y1: "0%"
          x2: "100%"
          y2: "10%"
          focusable: true
          tab_order: 1
`

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "boxmux.yml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_BasicTree(t *testing.T) {
	path := writeTemp(t, sampleConfig)

	root, err := Load(path)
	require.NoError(t, err)
	require.Len(t, root.Layouts, 1)

	layout := root.Layouts[0]
	require.Equal(t, "main", layout.ID)
	require.Len(t, layout.Root.Children, 2)

	greet := layout.Root.Children[0]
	require.Equal(t, "greet", greet.ID)
	require.Equal(t, Coord{Percent: true, Value: 25}, greet.Position.X1)
	require.Equal(t, Coord{Percent: true, Value: 75}, greet.Position.X2)
}

func TestValidate_DuplicateIDs(t *testing.T) {
	root, err := Load(writeTemp(t, sampleConfig))
	require.NoError(t, err)

	root.Layouts[0].Root.Children = append(root.Layouts[0].Root.Children, root.Layouts[0].Root.Children[0])
	err = Validate(root)
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate box id")
}

func TestValidate_DanglingRedirect(t *testing.T) {
	root, err := Load(writeTemp(t, sampleConfig))
	require.NoError(t, err)

	root.Layouts[0].Root.Children[0].RedirectOutput = "nope"
	err = Validate(root)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown box")
}

func TestResolver_Chain(t *testing.T) {
	boxVars := map[string]string{"NAME": "box"}
	ancestorVars := map[string]string{"NAME": "ancestor", "OTHER": "ancestor-other"}
	appVars := map[string]string{"NAME": "app", "FALLBACK": "app-fallback"}

	r := NewResolver(appVars, boxVars, ancestorVars)

	require.Equal(t, "box", r.Substitute("${NAME}"))
	require.Equal(t, "ancestor-other", r.Substitute("${OTHER}"))
	require.Equal(t, "app-fallback", r.Substitute("${FALLBACK}"))
	require.Equal(t, "x", r.Substitute("${MISSING:x}"))
	require.Equal(t, "", r.Substitute("${MISSING}"))
}
