package coordinator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/boxmux/boxmux/internal/bounds"
	"github.com/boxmux/boxmux/internal/boxmodel"
	"github.com/boxmux/boxmux/internal/boxtree"
	"github.com/boxmux/boxmux/internal/configio"
	"github.com/boxmux/boxmux/internal/exec"
	"github.com/boxmux/boxmux/internal/input"
	"github.com/boxmux/boxmux/internal/stream"
)

func (c *Coordinator) apply(m Mutation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var res Result
	switch m.Kind {
	case MutUpdateBox:
		res = c.handleUpdateBox(m, false)
	case MutAppendBox:
		res = c.handleUpdateBox(m, true)
	case MutRefreshBox:
		res = c.handleRefreshBox(m)
	case MutSetBoxProperty:
		res = c.handleSetBoxProperty(m)
	case MutExecuteScript:
		res = c.handleExecuteScript(m)
	case MutAddBox:
		res = c.handleAddBox(m)
	case MutRemoveBox:
		res = c.handleRemoveBox(m)
	case MutReplaceBox:
		res = c.handleReplaceBox(m)
	case MutReloadConfig:
		res = c.handleReloadConfig(m)
	case MutRestartPty:
		res = c.handleRestartPty(m)
	case MutQueryPtyStatus:
		res = c.handleQueryPtyStatus(m)
	case MutListStreams:
		res = c.handleListStreams(m)
	case MutSendKey:
		res = c.handleSendKey(m)
	case MutPointerEvent:
		res = c.handlePointerEvent(m)
	case MutFocusBox:
		res = c.handleFocusBox(m)
	case MutSwitchLayout:
		res = c.handleSwitchLayout(m)
	case MutGetCurrentLayout:
		res = Result{Success: true, Data: c.app.ActiveLayoutID}
	case MutSpawnPty:
		res = c.handleSpawnPty(m)
	case MutKillPty:
		res = c.handleKillPty(m)
	case MutSendPtyInput:
		res = c.handleSendPtyInput(m)
	case MutCloseStream:
		res = c.handleCloseStream(m)
	case MutSwitchStream:
		res = c.handleSwitchStream(m)
	case MutStartBoxRefresh:
		res = c.handleStartBoxRefresh(m)
	case MutStopBoxRefresh:
		res = c.handleStopBoxRefresh(m)
	case MutListBoxes:
		res = Result{Success: true, Data: c.listBoxIDs()}
	case MutGetStatus:
		res = Result{Success: true, Data: map[string]any{"active_layout": c.app.ActiveLayoutID, "version": c.version}}
	case MutShutdown:
		res = Result{Success: true}
	default:
		res = Result{Success: false, Err: notFound(ErrInvalidCommand, "command")}
	}

	if m.Reply != nil {
		m.Reply <- res
	}
}

func (c *Coordinator) findBox(id string) (*boxmodel.Box, error) {
	b := c.app.FindByID(id)
	if b == nil {
		return nil, notFound(ErrBoxNotFound, "box "+id)
	}
	return b, nil
}

func (c *Coordinator) handleUpdateBox(m Mutation, appendMode bool) Result {
	b, err := c.findBox(m.BoxID)
	if err != nil {
		return Result{Err: err}
	}
	if appendMode {
		b.ContentStream().Buffer.AppendLine(m.Content)
	} else {
		buf := stream.NewBuffer(0)
		buf.Append([]byte(m.Content))
		b.ContentStream().Buffer = buf
	}
	b.Dirty = true
	return Result{Success: true}
}

func (c *Coordinator) handleRefreshBox(m Mutation) Result {
	b, err := c.findBox(m.BoxID)
	if err != nil {
		return Result{Err: err}
	}
	c.pool.RunScript(exec.ScriptSpec{
		BoxID:           b.Config.ID,
		Stream:          boxmodel.StreamID{Kind: boxmodel.KindContent},
		Script:          b.Config.Script,
		Streaming:       b.Config.Flags.Streaming,
		Thread:          b.Config.Flags.Thread,
		RefreshInterval: b.Config.RefreshInterval,
	})
	return Result{Success: true}
}

func (c *Coordinator) handleSetBoxProperty(m Mutation) Result {
	b, err := c.findBox(m.BoxID)
	if err != nil {
		return Result{Err: err}
	}
	switch m.Property {
	case "title":
		b.Config.Title = m.Value
	case "overflow":
		b.Config.Overflow = configio.Overflow(m.Value)
	}
	b.Dirty = true
	return Result{Success: true}
}

func (c *Coordinator) handleExecuteScript(m Mutation) Result {
	b, err := c.findBox(m.BoxID)
	if err != nil {
		return Result{Err: err}
	}
	c.pool.RunScript(exec.ScriptSpec{
		BoxID:     b.Config.ID,
		Stream:    boxmodel.StreamID{Kind: boxmodel.KindContent},
		Script:    m.Script,
		Streaming: b.Config.Flags.Streaming,
		Thread:    b.Config.Flags.Thread,
	})
	return Result{Success: true}
}

func (c *Coordinator) handleRemoveBox(m Mutation) Result {
	_, err := c.findBox(m.BoxID)
	if err != nil {
		return Result{Err: err}
	}
	c.pool.StopBox(m.BoxID)
	removeFromParent(c.app.Root, m.BoxID)
	return Result{Success: true}
}

func (c *Coordinator) handleAddBox(m Mutation) Result {
	parent, err := c.findBox(m.ParentID)
	if err != nil {
		return Result{Err: err}
	}
	raw, ok := m.Definition.(json.RawMessage)
	if !ok {
		return Result{Err: &CodedError{Code: ErrInvalidCommand, Message: "missing box definition"}}
	}
	cfg, err2 := configio.LoadBoxJSON(raw)
	if err2 != nil {
		return Result{Err: &CodedError{Code: ErrInvalidCommand, Message: err2.Error()}}
	}
	parent.Config.Children = append(parent.Config.Children, cfg)
	parent.Children = append(parent.Children, boxmodel.NewBox(cfg))
	c.app.RebuildFocusChain()
	return Result{Success: true}
}

func (c *Coordinator) handleReplaceBox(m Mutation) Result {
	_, err := c.findBox(m.BoxID)
	if err != nil {
		return Result{Err: err}
	}
	raw, ok := m.Definition.(json.RawMessage)
	if !ok {
		return Result{Err: &CodedError{Code: ErrInvalidCommand, Message: "missing box definition"}}
	}
	cfg, err2 := configio.LoadBoxJSON(raw)
	if err2 != nil {
		return Result{Err: &CodedError{Code: ErrInvalidCommand, Message: err2.Error()}}
	}
	if cfg.ID == "" {
		cfg.ID = m.BoxID
	}
	if !replaceInParent(c.app.Root, m.BoxID, cfg) {
		return Result{Err: notFound(ErrBoxNotFound, "box "+m.BoxID)}
	}
	c.pool.StopBox(m.BoxID)
	c.app.RebuildFocusChain()
	return Result{Success: true}
}

func replaceInParent(b *boxmodel.Box, id string, cfg *configio.Box) bool {
	for i, child := range b.Children {
		if child.Config.ID == id {
			b.Config.Children[i] = cfg
			b.Children[i] = boxmodel.NewBox(cfg)
			return true
		}
		if replaceInParent(child, id, cfg) {
			return true
		}
	}
	return false
}

func (c *Coordinator) handleReloadConfig(m Mutation) Result {
	path := m.ConfigPath
	if path == "" && c.cfg != nil {
		path = c.cfg.SourcePath()
	}
	cfg, err := configio.Load(path)
	if err != nil {
		return Result{Err: &CodedError{Code: ErrExecutionError, Message: err.Error()}}
	}
	app, err := boxtree.NewApplication(cfg)
	if err != nil {
		return Result{Err: &CodedError{Code: ErrExecutionError, Message: err.Error()}}
	}
	c.pool.Shutdown()
	c.pool = exec.NewPool(c.events, c.log)
	c.cfg = cfg
	c.app = app
	return Result{Success: true}
}

func (c *Coordinator) handleRestartPty(m Mutation) Result {
	b, err := c.findBox(m.BoxID)
	if err != nil {
		return Result{Err: err}
	}
	c.pool.StopBox(m.BoxID)
	entry := b.EnsurePtyStream(0)
	if _, err := c.pool.StartPtyFor(exec.PtySpec{BoxID: b.Config.ID, Stream: entry.StreamID, Script: b.Config.Script}); err != nil {
		return Result{Err: &CodedError{Code: ErrExecutionError, Message: err.Error()}}
	}
	return Result{Success: true}
}

func (c *Coordinator) handleQueryPtyStatus(m Mutation) Result {
	b, err := c.findBox(m.BoxID)
	if err != nil {
		return Result{Err: err}
	}
	_, running := c.pool.PtyFor(m.BoxID)
	return Result{Success: true, Data: map[string]any{
		"running":  running,
		"disabled": b.PtyDisabled,
		"failures": b.PtyFailures,
	}}
}

func (c *Coordinator) handleListStreams(m Mutation) Result {
	b, err := c.findBox(m.BoxID)
	if err != nil {
		return Result{Err: err}
	}
	type streamInfo struct {
		Kind   int    `json:"kind"`
		ID     string `json:"id"`
		Label  string `json:"label"`
		Active bool   `json:"active"`
	}
	out := make([]streamInfo, 0, len(b.Streams))
	for i, e := range b.Streams {
		out = append(out, streamInfo{
			Kind:   int(e.Kind),
			ID:     e.ID,
			Label:  e.Label,
			Active: i == b.ActiveIndex,
		})
	}
	return Result{Success: true, Data: out}
}

func removeFromParent(b *boxmodel.Box, id string) bool {
	for i, child := range b.Children {
		if child.Config.ID == id {
			b.Children = append(b.Children[:i], b.Children[i+1:]...)
			return true
		}
		if removeFromParent(child, id) {
			return true
		}
	}
	return false
}

func (c *Coordinator) handleSendKey(m Mutation) Result {
	key := input.KeyEvent{Key: m.Key, Mods: input.Modifiers(m.KeyMods)}

	focused := c.app.Focused()
	if focused != nil {
		if pty, ok := c.pool.PtyFor(focused.Config.ID); ok && focused.Active().Kind == boxmodel.KindPty {
			pty.Write(input.EncodeKey(key))
			return Result{Success: true}
		}
	}

	action := input.Route(c.cfg, c.app, key)
	c.applyAction(action)
	return Result{Success: true}
}

// handlePointerEvent drives the press/move/release drag state machine
// (spec.md §4.6): press hit-tests and focuses, move resizes/moves/
// scrolls depending on which zone was pressed and queues the new
// geometry with the (debounced) config writer, release ends the gesture.
func (c *Coordinator) handlePointerEvent(m Mutation) Result {
	switch m.PointerPhase {
	case "press":
		hit, ok := input.HitTest(c.app.Root, m.PointerX, m.PointerY)
		if !ok {
			return Result{Success: true}
		}
		if hit.Box.Config.Interaction.Focusable {
			c.app.SetFocus(hit.Box)
		}
		c.drag.Press(hit, m.PointerX, m.PointerY)
		return Result{Success: true}
	case "move":
		dx, dy, changed := c.drag.Move(m.PointerX, m.PointerY)
		if changed {
			c.applyDrag(dx, dy)
		}
		return Result{Success: true}
	case "release":
		c.drag.Release()
		return Result{Success: true}
	default:
		return Result{Err: &CodedError{Code: ErrInvalidCommand, Message: "unknown pointer phase"}}
	}
}

func (c *Coordinator) applyDrag(dx, dy int) {
	b := c.drag.Box
	if b == nil {
		return
	}
	switch c.drag.Phase {
	case input.DraggingResize:
		parent := c.parentRect(b)
		pos := b.Config.Position
		pos.X2 = shiftCoord(pos.X2, dx, parent.Width())
		pos.Y2 = shiftCoord(pos.Y2, dy, parent.Height())
		b.Config.Position = pos
		b.Bounds = bounds.Resolve(pos, parent)
		c.persistGeometry(b)
	case input.DraggingMove:
		parent := c.parentRect(b)
		pos := b.Config.Position
		pos.X1 = shiftCoord(pos.X1, dx, parent.Width())
		pos.X2 = shiftCoord(pos.X2, dx, parent.Width())
		pos.Y1 = shiftCoord(pos.Y1, dy, parent.Height())
		pos.Y2 = shiftCoord(pos.Y2, dy, parent.Height())
		b.Config.Position = pos
		b.Bounds = bounds.Resolve(pos, parent)
		c.persistGeometry(b)
	case input.DraggingScroll:
		e := b.Active()
		if c.drag.Axis == input.AxisHorizontal {
			e.ScrollX += dx
			if e.ScrollX < 0 {
				e.ScrollX = 0
			}
		} else {
			e.ClampScroll(dy, len(e.Buffer.Snapshot().Lines), 1)
		}
	}
	b.Dirty = true
}

// parentRect returns the resolved rectangle b's percentages are
// expressed against: its parent's last-resolved Bounds, or b's own
// Bounds if b is the tree root (the root has no parent to fall back on).
func (c *Coordinator) parentRect(b *boxmodel.Box) bounds.Rect {
	if p := findParentBox(c.app.Root, b); p != nil {
		return p.Bounds
	}
	return b.Bounds
}

func findParentBox(root, target *boxmodel.Box) *boxmodel.Box {
	for _, child := range root.Children {
		if child == target {
			return root
		}
		if p := findParentBox(child, target); p != nil {
			return p
		}
	}
	return nil
}

// shiftCoord nudges a coordinate by a cell delta, preserving whether it
// was expressed as a percentage or an absolute count (spec.md §4.8
// "drag-resize rewrites the coordinate in the unit it was already
// expressed in").
func shiftCoord(c configio.Coord, deltaCells, parentDim int) configio.Coord {
	if !c.Percent {
		return configio.Coord{Percent: false, Value: c.Value + deltaCells}
	}
	if parentDim <= 0 {
		return c
	}
	deltaPercent := deltaCells * 100 / parentDim
	if deltaPercent == 0 && deltaCells != 0 {
		if deltaCells > 0 {
			deltaPercent = 1
		} else {
			deltaPercent = -1
		}
	}
	v := c.Value + deltaPercent
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return configio.Coord{Percent: true, Value: v}
}

func (c *Coordinator) persistGeometry(b *boxmodel.Box) {
	if c.writer == nil {
		return
	}
	pos := b.Config.Position
	c.writer.SetBoxGeometry(b.Config.ID, map[string]string{
		"x1": formatCoordLiteral(pos.X1),
		"y1": formatCoordLiteral(pos.Y1),
		"x2": formatCoordLiteral(pos.X2),
		"y2": formatCoordLiteral(pos.Y2),
	})
}

func formatCoordLiteral(c configio.Coord) string {
	if c.Percent {
		return fmt.Sprintf("%q", fmt.Sprintf("%d%%", c.Value))
	}
	return fmt.Sprintf("%d", c.Value)
}

func (c *Coordinator) applyAction(a input.Action) {
	switch a.Kind {
	case input.ActionFocusNext:
		c.app.FocusNext()
	case input.ActionFocusPrev:
		c.app.FocusPrev()
	case input.ActionDropFocus:
		c.app.DropFocus()
	case input.ActionScroll:
		if f := c.app.Focused(); f != nil {
			e := f.Active()
			e.ClampScroll(a.DeltaY, len(e.Buffer.Snapshot().Lines), 1)
		}
	case input.ActionExecuteChoice:
		if f := c.app.Focused(); f != nil {
			c.executeChoice(f)
		}
	case input.ActionSelectNext:
		if f := c.app.Focused(); f != nil {
			f.SelectNext()
		}
	case input.ActionSelectPrev:
		if f := c.app.Focused(); f != nil {
			f.SelectPrev()
		}
	case input.ActionSwitchLayout:
		if err := c.app.SwitchLayout(a.LayoutID); err == nil && c.writer != nil {
			c.writer.SetActiveLayout(a.LayoutID)
		}
	case input.ActionRunHotKey:
		if b := c.app.FindByID(a.HotKey); b != nil {
			c.pool.RunScript(exec.ScriptSpec{
				BoxID:           b.Config.ID,
				Stream:          boxmodel.StreamID{Kind: boxmodel.KindContent},
				Script:          b.Config.Script,
				Streaming:       b.Config.Flags.Streaming,
				Thread:          b.Config.Flags.Thread,
				RefreshInterval: b.Config.RefreshInterval,
			})
		}
	case input.ActionPageScroll:
		if f := c.app.Focused(); f != nil {
			e := f.Active()
			e.ClampScroll(a.DeltaY*pageScrollLines, len(e.Buffer.Snapshot().Lines), pageScrollLines)
		}
	case input.ActionScrollHome:
		if f := c.app.Focused(); f != nil {
			e := f.Active()
			e.ScrollY = 0
			e.AutoScroll = false
		}
	case input.ActionScrollEnd:
		if f := c.app.Focused(); f != nil {
			e := f.Active()
			e.AutoScroll = true
			e.ClampScroll(0, len(e.Buffer.Snapshot().Lines), 1)
		}
	}
}

// pageScrollLines approximates a page as a fixed number of lines; the
// renderer's actual viewport height isn't visible from here.
const pageScrollLines = 10

func (c *Coordinator) executeChoice(b *boxmodel.Box) {
	choice := b.CurrentChoice()
	if choice == nil {
		return
	}
	target := b
	if choice.RedirectOutput != "" {
		if t := c.app.FindByID(choice.RedirectOutput); t != nil {
			target = t
		}
	}
	var streamID boxmodel.StreamID
	if choice.RedirectOutput != "" {
		entry := target.EnsureRedirectedStream(choice.ID, choice.ID)
		streamID = entry.StreamID
	} else {
		streamID = boxmodel.StreamID{Kind: boxmodel.KindContent}
	}
	c.pool.RunScript(exec.ScriptSpec{
		BoxID:     target.Config.ID,
		Stream:    streamID,
		Script:    choice.Script,
		Streaming: choice.Streaming,
		Thread:    true,
	})
}

func (c *Coordinator) handleFocusBox(m Mutation) Result {
	b, err := c.findBox(m.BoxID)
	if err != nil {
		return Result{Err: err}
	}
	c.app.SetFocus(b)
	return Result{Success: true}
}

func (c *Coordinator) handleSwitchLayout(m Mutation) Result {
	if err := c.app.SwitchLayout(m.LayoutID); err != nil {
		return Result{Err: notFound(ErrLayoutNotFound, "layout "+m.LayoutID)}
	}
	if c.writer != nil {
		c.writer.SetActiveLayout(m.LayoutID)
	}
	return Result{Success: true}
}

func (c *Coordinator) handleSpawnPty(m Mutation) Result {
	b, err := c.findBox(m.BoxID)
	if err != nil {
		return Result{Err: err}
	}
	entry := b.EnsurePtyStream(0)
	script := m.Script
	if len(script) == 0 {
		script = b.Config.Script
	}
	if _, err := c.pool.StartPtyFor(exec.PtySpec{BoxID: b.Config.ID, Stream: entry.StreamID, Script: script}); err != nil {
		return Result{Err: &CodedError{Code: ErrExecutionError, Message: err.Error()}}
	}
	return Result{Success: true}
}

func (c *Coordinator) handleKillPty(m Mutation) Result {
	c.pool.StopBox(m.BoxID)
	return Result{Success: true}
}

func (c *Coordinator) handleSendPtyInput(m Mutation) Result {
	pty, ok := c.pool.PtyFor(m.BoxID)
	if !ok {
		return Result{Err: notFound(ErrBoxNotFound, "pty for "+m.BoxID)}
	}
	pty.Write(m.Input)
	return Result{Success: true}
}

func (c *Coordinator) handleCloseStream(m Mutation) Result {
	b, err := c.findBox(m.BoxID)
	if err != nil {
		return Result{Err: err}
	}
	id := decodeStreamID(m.StreamID)
	if id.Kind == boxmodel.KindContent || id.Kind == boxmodel.KindChoices {
		return Result{Err: &CodedError{Code: ErrInvalidCommand, Message: "stream not closeable"}}
	}
	if b.Find(id) == nil {
		return Result{Err: notFound(ErrStreamNotFound, "stream "+m.StreamID)}
	}
	b.CloseStream(id)
	c.pool.StopStream(m.BoxID, id)
	return Result{Success: true}
}

func (c *Coordinator) handleSwitchStream(m Mutation) Result {
	b, err := c.findBox(m.BoxID)
	if err != nil {
		return Result{Err: err}
	}
	if !b.SwitchActive(decodeStreamID(m.StreamID)) {
		return Result{Err: notFound(ErrExecutionError, "stream "+m.StreamID)}
	}
	return Result{Success: true}
}

func (c *Coordinator) handleStartBoxRefresh(m Mutation) Result {
	return c.handleRefreshBox(m)
}

func (c *Coordinator) handleStopBoxRefresh(m Mutation) Result {
	c.pool.StopBox(m.BoxID)
	return Result{Success: true}
}

func (c *Coordinator) listBoxIDs() []string {
	var out []string
	var walk func(b *boxmodel.Box)
	walk = func(b *boxmodel.Box) {
		out = append(out, b.Config.ID)
		for _, child := range b.Children {
			walk(child)
		}
	}
	walk(c.app.Root)
	return out
}

func (c *Coordinator) applyEvent(e exec.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	b := c.app.FindByID(e.BoxID)
	if b == nil {
		return
	}
	entry := b.Find(e.Stream)
	if entry == nil {
		switch e.Stream.Kind {
		case boxmodel.KindPty:
			entry = b.EnsurePtyStream(0)
		default:
			entry = b.EnsureRedirectedStream(e.Stream.ID, e.Stream.ID)
		}
	}

	switch e.Kind {
	case exec.Output:
		data := e.Data
		if e.Stream.Kind == boxmodel.KindContent && !b.Config.Flags.Streaming {
			if formatted, ok := formatKernelOutput(b.Config.Render, string(data)); ok {
				data = []byte(formatted)
			}
		}
		entry.Buffer.Append(data)
		entry.Failed = false
	case exec.Failed:
		entry.Failed = true
		if e.Err != nil {
			entry.FailReason = e.Err.Error()
		}
		if e.Stream.Kind == boxmodel.KindPty {
			b.PtyFailures++
			if b.PtyFailures >= 3 {
				b.PtyDisabled = true
			}
		}
	case exec.Exited:
		if e.Stream.Kind == boxmodel.KindPty {
			b.PtyFailures = 0
		}
	}
	b.Dirty = true
}

// formatKernelOutput runs a completed script capture through the
// render-kernel a box's "render: table/chart" configuration names
// (spec.md §4.9 capability list; SPEC_FULL's table/chart supplement),
// turning raw line-oriented output into the formatted glyph text the
// content stream displays. ok is false for RenderPlain, meaning the
// caller should append the raw data unchanged.
func formatKernelOutput(render configio.Render, raw string) (string, bool) {
	switch render {
	case configio.RenderTable:
		return boxtree.FormatTable(parseTableRows(raw)), true
	case configio.RenderChart:
		lines := strings.Split(raw, "\n")
		return boxtree.FormatChart(boxtree.ParseSeries(lines), boxtree.ChartOptions{}), true
	default:
		return "", false
	}
}

// parseTableRows splits a script's line-oriented capture into cells,
// tab-delimited if present, comma-delimited otherwise.
func parseTableRows(raw string) [][]string {
	lines := strings.Split(strings.TrimRight(raw, "\n"), "\n")
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		sep := ","
		if strings.Contains(line, "\t") {
			sep = "\t"
		}
		rows = append(rows, strings.Split(line, sep))
	}
	return rows
}

// decodeStreamID parses the wire form a socket client names a stream by
// (spec.md §6 "stream_id"): "content", "choices", "pty", or a
// "redirected:<id>" / "external:<id>" pair for the tagged kinds.
func decodeStreamID(s string) boxmodel.StreamID {
	switch {
	case s == "content" || s == "":
		return boxmodel.StreamID{Kind: boxmodel.KindContent}
	case s == "choices":
		return boxmodel.StreamID{Kind: boxmodel.KindChoices}
	case s == "pty":
		return boxmodel.StreamID{Kind: boxmodel.KindPty}
	case strings.HasPrefix(s, "redirected:"):
		return boxmodel.StreamID{Kind: boxmodel.KindRedirected, ID: strings.TrimPrefix(s, "redirected:")}
	case strings.HasPrefix(s, "external:"):
		return boxmodel.StreamID{Kind: boxmodel.KindExternalSocket, ID: strings.TrimPrefix(s, "external:")}
	default:
		return boxmodel.StreamID{Kind: boxmodel.KindRedirected, ID: s}
	}
}
