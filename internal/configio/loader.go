package configio

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-errors/errors"
	"github.com/goccy/go-yaml"
)

// Load reads and parses a configuration file into a typed Root.
//
// Parsing itself goes through goccy/go-yaml's generic Unmarshal (the same
// package the teacher uses directly for its colorized-config feature in
// pkg/utils/utils.go) into map[string]any/[]any, which we then walk into
// the typed tree below. Span-aware parsing (parser/ast) is reserved for
// the persistence writer (persist.go), which is the only place that needs
// to know where in the source bytes a value came from.
func Load(path string) (*Root, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, 0)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Errorf("parsing %s: %w", path, err)
	}

	appRaw, ok := doc["app"].(map[string]any)
	if !ok {
		return nil, errors.Errorf("%s: missing root \"app\" mapping", path)
	}

	root := &Root{
		Variables:  map[string]string{},
		sourcePath: path,
	}

	root.Title, _ = appRaw["title"].(string)
	if s, ok := appRaw["refresh_interval"].(string); ok {
		root.DefaultRefresh = parseDuration(s)
	}
	if v, ok := appRaw["variables"].(map[string]any); ok {
		for k, val := range v {
			root.Variables[k] = fmt.Sprintf("%v", val)
		}
	}

	if layoutsRaw, ok := appRaw["layouts"].([]any); ok {
		for _, lr := range layoutsRaw {
			lm, ok := lr.(map[string]any)
			if !ok {
				continue
			}
			layout, err := loadLayout(lm)
			if err != nil {
				return nil, err
			}
			root.Layouts = append(root.Layouts, layout)
			if isRoot, _ := lm["root"].(bool); isRoot || root.ActiveLayoutID == "" {
				root.ActiveLayoutID = layout.ID
			}
		}
	}
	// An explicit active_layout (the key the persistence writer rewrites)
	// takes precedence over the layouts' root flags.
	if s, ok := appRaw["active_layout"].(string); ok && s != "" {
		root.ActiveLayoutID = s
	}

	if hk, ok := appRaw["hot_keys"].([]any); ok {
		root.HotKeys = loadHotKeys(hk)
	}
	if ok := appRaw["on_keypress"]; ok != nil {
		if list, ok := appRaw["on_keypress"].([]any); ok {
			root.OnKeypress = loadHotKeys(list)
		}
	}

	return root, nil
}

// LoadBoxJSON parses a single box definition from the JSON payload a
// socket client sends for AddBox/ReplaceBox (spec.md §6), using the same
// field names as the YAML configuration's box mapping.
func LoadBoxJSON(data []byte) (*Box, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, 0)
	}
	return loadBox(m)
}

func loadHotKeys(list []any) []HotKey {
	out := make([]HotKey, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		key, _ := m["key"].(string)
		action, _ := m["action"].(string)
		out = append(out, HotKey{Key: key, Action: action})
	}
	return out
}

func loadLayout(lm map[string]any) (*Layout, error) {
	id, _ := lm["id"].(string)
	if id == "" {
		return nil, errors.Errorf("layout missing \"id\"")
	}

	// A layout's root box may be declared inline via children/boxes directly
	// on the layout mapping, or as an explicit "root" box mapping. We accept
	// the layout mapping itself as the root box's definition, title included.
	root, err := loadBox(lm)
	if err != nil {
		return nil, errors.Errorf("layout %q: %w", id, err)
	}
	if root.ID == "" {
		root.ID = id
	}

	return &Layout{ID: id, Root: root}, nil
}

// childListKeys are the two synonymous keys a box's child list may use
// (spec.md §9 Open Questions).
var childListKeys = []string{"children", "boxes"}

func loadBox(m map[string]any) (*Box, error) {
	box := &Box{
		Variables: map[string]string{},
	}

	box.ID, _ = m["id"].(string)
	box.Title, _ = m["title"].(string)
	box.Content, _ = m["content"].(string)
	box.ZIndex = intOf(m["z_index"])
	box.RedirectOutput, _ = m["redirect_output"].(string)
	box.Overflow = Overflow(stringOr(m["overflow"], string(OverflowFill)))
	box.Render = Render(stringOr(m["render"], string(RenderPlain)))

	if s, ok := m["refresh_interval"].(string); ok {
		box.RefreshInterval = parseDuration(s)
	}

	box.Position = loadPosition(m)
	box.Style = loadStyle(m)
	box.Interaction = loadInteraction(m)
	box.Flags = loadFlags(m)
	box.Scroll = loadScroll(m)

	if scriptRaw, ok := m["script"].([]any); ok {
		box.Script = toStringSlice(scriptRaw)
	}

	if varsRaw, ok := m["variables"].(map[string]any); ok {
		for k, v := range varsRaw {
			box.Variables[k] = fmt.Sprintf("%v", v)
		}
	}

	if choicesRaw, ok := m["choices"].([]any); ok {
		for _, cr := range choicesRaw {
			cm, ok := cr.(map[string]any)
			if !ok {
				continue
			}
			c := Choice{
				ID:             stringOr(cm["id"], ""),
				Content:        stringOr(cm["content"], ""),
				Pty:            boolOf(cm["pty"]),
				Streaming:      boolOf(cm["streaming"]),
				RedirectOutput: stringOr(cm["redirect_output"], ""),
			}
			if sr, ok := cm["script"].([]any); ok {
				c.Script = toStringSlice(sr)
			}
			box.Choices = append(box.Choices, c)
		}
	}

	for _, key := range childListKeys {
		childrenRaw, ok := m[key].([]any)
		if !ok {
			continue
		}
		box.childListKey = key
		for _, cr := range childrenRaw {
			cm, ok := cr.(map[string]any)
			if !ok {
				continue
			}
			child, err := loadBox(cm)
			if err != nil {
				return nil, err
			}
			box.Children = append(box.Children, child)
		}
		break
	}

	return box, nil
}

func loadPosition(m map[string]any) Position {
	anchor := anchorFromString(stringOr(m["anchor"], "top_left"))
	return Position{
		X1:     parseCoord(m["x1"]),
		Y1:     parseCoord(m["y1"]),
		X2:     parseCoord(m["x2"]),
		Y2:     parseCoord(m["y2"]),
		Anchor: anchor,
	}
}

func loadStyle(m map[string]any) Style {
	return Style{
		BorderColor:      Color(stringOr(m["border_color"], "None")),
		FgColor:          Color(stringOr(m["fg_color"], "None")),
		BgColor:          Color(stringOr(m["bg_color"], "None")),
		FillChar:         runeOr(m["fill_char"], ' '),
		SelectedFillChar: runeOr(m["selected_fill_char"], ' '),
		TitleColor:       Color(stringOr(m["title_fg_color"], "None")),
	}
}

func loadInteraction(m map[string]any) Interaction {
	return Interaction{
		Focusable:    boolOf(m["focusable"]),
		TabOrder:     intOf(m["tab_order"]),
		Resizable:    boolOf(m["resizable"]),
		MinWidthPct:  intOf(m["min_width"]),
		MinHeightPct: intOf(m["min_height"]),
	}
}

func loadFlags(m map[string]any) Flags {
	return Flags{
		Thread:       boolOf(m["thread"]),
		Streaming:    boolOf(m["streaming"]),
		Pty:          boolOf(m["pty"]),
		AutoScroll:   boolOf(m["auto_scroll"]),
		AppendOutput: boolOf(m["append_output"]),
	}
}

func loadScroll(m map[string]any) Scroll {
	sm, ok := m["scroll"].(map[string]any)
	if !ok {
		return Scroll{}
	}
	return Scroll{X: intOf(sm["x"]), Y: intOf(sm["y"])}
}

func anchorFromString(s string) Anchor {
	switch s {
	case "top":
		return Top
	case "top_right":
		return TopRight
	case "left":
		return Left
	case "center":
		return Center
	case "right":
		return Right
	case "bottom_left":
		return BottomLeft
	case "bottom":
		return Bottom
	case "bottom_right":
		return BottomRight
	default:
		return TopLeft
	}
}

func parseDuration(s string) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return 0
}

func toStringSlice(raw []any) []string {
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		out = append(out, fmt.Sprintf("%v", v))
	}
	return out
}

func stringOr(v any, def string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return def
}

func boolOf(v any) bool {
	b, _ := v.(bool)
	return b
}

func intOf(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case uint64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func runeOr(v any, def rune) rune {
	if s, ok := v.(string); ok {
		for _, r := range s {
			return r
		}
	}
	return def
}
