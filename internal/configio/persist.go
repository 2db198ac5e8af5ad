package configio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	throttle "github.com/boz/go-throttle"
	"github.com/go-errors/errors"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/sirupsen/logrus"
)

// Writer serializes live geometry/active-layout mutations back to the
// configuration file they were loaded from, preserving the original
// file's formatting (spec.md §4.8): only the changed literal spans are
// substituted, byte-for-byte, everything else (including comments) is
// left untouched.
//
// Writes are coalesced over a 100ms window using the same debounce
// primitive the teacher uses for GUI refresh coalescing
// (github.com/boz/go-throttle, pkg/gui/gui.go's throttledRefresh) so a
// drag-resize gesture doesn't cause per-mouse-move file churn.
type Writer struct {
	path string
	log  *logrus.Entry

	mu      sync.Mutex
	pending map[string]map[string]string // boxID -> field -> new literal
	activeLayout *string

	throttled throttle.Throttle
	writeErr  error
}

const persistenceDebounce = 100 * time.Millisecond

// NewWriter builds a Writer for the configuration loaded from path.
func NewWriter(path string, log *logrus.Entry) *Writer {
	w := &Writer{
		path:    path,
		log:     log,
		pending: map[string]map[string]string{},
	}
	w.throttled = throttle.ThrottleFunc(persistenceDebounce, true, w.flush)
	return w
}

// SetBoxGeometry queues a geometry update for boxID, expressed as the
// literal text each coordinate should read in the file (e.g. `"75%"` or
// `42`, matching whichever the source used).
func (w *Writer) SetBoxGeometry(boxID string, fields map[string]string) {
	w.mu.Lock()
	if w.pending[boxID] == nil {
		w.pending[boxID] = map[string]string{}
	}
	for k, v := range fields {
		w.pending[boxID][k] = v
	}
	w.mu.Unlock()
	w.throttled.Trigger()
}

// SetActiveLayout queues an active-layout change.
func (w *Writer) SetActiveLayout(layoutID string) {
	w.mu.Lock()
	id := layoutID
	w.activeLayout = &id
	w.mu.Unlock()
	w.throttled.Trigger()
}

// Close flushes any pending writes and stops the debounce timer.
func (w *Writer) Close() error {
	w.throttled.Stop()
	w.flush()
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writeErr
}

func (w *Writer) flush() {
	w.mu.Lock()
	pending := w.pending
	w.pending = map[string]map[string]string{}
	activeLayout := w.activeLayout
	w.activeLayout = nil
	w.mu.Unlock()

	if len(pending) == 0 && activeLayout == nil {
		return
	}

	src, err := os.ReadFile(w.path)
	if err != nil {
		w.recordErr(errors.Wrap(err, 0))
		return
	}

	edited, err := applyEdits(src, pending, activeLayout)
	if err != nil {
		w.recordErr(err)
		return
	}

	if err := validateEditedBytes(edited); err != nil {
		w.log.WithError(err).Warn("persistence writer: edited config fails validation, rolling back")
		return
	}

	if err := atomicWrite(w.path, edited); err != nil {
		w.recordErr(err)
	}
}

func (w *Writer) recordErr(err error) {
	w.mu.Lock()
	w.writeErr = err
	w.mu.Unlock()
	w.log.WithError(err).Error("persistence writer: write failed")
}

// validateEditedBytes writes the candidate bytes to a scratch file in
// os.TempDir and runs Load+Validate on it: both operate on a path, so the
// temp file lets the check reuse the loader's YAML-walking logic instead
// of duplicating it.
func validateEditedBytes(edited []byte) error {
	tmp, err := os.CreateTemp("", "boxmux-validate-*.yml")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(edited); err != nil {
		tmp.Close()
		return err
	}
	tmp.Close()

	root, err := Load(tmp.Name())
	if err != nil {
		return err
	}
	return Validate(root)
}

func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".boxmux-tmp-*")
	if err != nil {
		return errors.Wrap(err, 0)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Wrap(err, 0)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Wrap(err, 0)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, 0)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, 0)
	}
	return nil
}

// --- span-level editing over the goccy/go-yaml AST ---

type edit struct {
	line, col int // 1-based, as reported by the token position
	oldLen    int
	newText   string
}

func applyEdits(src []byte, pending map[string]map[string]string, activeLayout *string) ([]byte, error) {
	file, err := parser.ParseBytes(src, 0)
	if err != nil {
		return nil, errors.Errorf("re-parsing config for edit: %w", err)
	}
	if len(file.Docs) == 0 {
		return nil, errors.Errorf("config has no document")
	}
	root := file.Docs[0].Body

	var edits []edit

	for boxID, fields := range pending {
		m := findBoxMapping(root, boxID)
		if m == nil {
			continue // box no longer present; nothing to persist
		}
		for field, newLiteral := range fields {
			val := fieldValue(m, field)
			if val == nil {
				continue
			}
			tok := val.GetToken()
			if tok == nil || tok.Position == nil {
				continue
			}
			edits = append(edits, edit{
				line:    tok.Position.Line,
				col:     tok.Position.Column,
				oldLen:  len([]rune(tok.Origin)),
				newText: newLiteral,
			})
		}
	}

	if activeLayout != nil {
		if val := findAppField(root, "active_layout"); val != nil {
			tok := val.GetToken()
			if tok != nil && tok.Position != nil {
				edits = append(edits, edit{
					line:    tok.Position.Line,
					col:     tok.Position.Column,
					oldLen:  len([]rune(tok.Origin)),
					newText: fmt.Sprintf("%q", *activeLayout),
				})
			}
		}
	}

	return applyLineEdits(src, edits), nil
}

// applyLineEdits rewrites only the spans named by edits, leaving every
// other byte (including comments and whitespace) untouched.
func applyLineEdits(src []byte, edits []edit) []byte {
	if len(edits) == 0 {
		return src
	}

	lines := strings.SplitAfter(string(src), "\n")
	byLine := map[int][]edit{}
	for _, e := range edits {
		byLine[e.line] = append(byLine[e.line], e)
	}

	for lineNo, es := range byLine {
		idx := lineNo - 1
		if idx < 0 || idx >= len(lines) {
			continue
		}
		line := []rune(lines[idx])
		// Apply right-to-left so earlier column offsets on the same line
		// stay valid as later edits shrink/grow the line.
		sort.Slice(es, func(i, j int) bool { return es[i].col < es[j].col })
		for i := len(es) - 1; i >= 0; i-- {
			e := es[i]
			start := e.col - 1
			if start < 0 || start > len(line) {
				continue
			}
			end := start + e.oldLen
			if end > len(line) {
				end = len(line)
			}
			newRunes := []rune(e.newText)
			line = append(line[:start], append(newRunes, line[end:]...)...)
		}
		lines[idx] = string(line)
	}

	return []byte(strings.Join(lines, ""))
}

func findBoxMapping(node ast.Node, boxID string) *ast.MappingNode {
	switch n := node.(type) {
	case *ast.MappingNode:
		for _, mv := range n.Values {
			if keyName(mv.Key) == "id" && scalarString(mv.Value) == boxID {
				return n
			}
		}
		for _, mv := range n.Values {
			if found := findBoxMapping(mv.Value, boxID); found != nil {
				return found
			}
		}
	case *ast.MappingValueNode:
		return findBoxMapping(n.Value, boxID)
	case *ast.SequenceNode:
		for _, v := range n.Values {
			if found := findBoxMapping(v, boxID); found != nil {
				return found
			}
		}
	}
	return nil
}

func findAppField(node ast.Node, field string) ast.Node {
	m, ok := node.(*ast.MappingNode)
	if !ok {
		return nil
	}
	for _, mv := range m.Values {
		if keyName(mv.Key) == "app" {
			if appMap, ok := mv.Value.(*ast.MappingNode); ok {
				return fieldValue(appMap, field)
			}
		}
	}
	return nil
}

func fieldValue(m *ast.MappingNode, key string) ast.Node {
	for _, mv := range m.Values {
		if keyName(mv.Key) == key {
			return mv.Value
		}
	}
	return nil
}

func keyName(n ast.Node) string {
	return scalarString(n)
}

func scalarString(n ast.Node) string {
	switch v := n.(type) {
	case *ast.StringNode:
		return v.Value
	default:
		return strings.Trim(n.String(), `"'`)
	}
}
