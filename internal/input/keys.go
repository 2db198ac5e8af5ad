package input

import (
	"strings"

	"github.com/boxmux/boxmux/internal/boxmodel"
	"github.com/boxmux/boxmux/internal/boxtree"
	"github.com/boxmux/boxmux/internal/configio"
)

// Modifiers is a bitset of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModCtrl
)

// KeyEvent is a single keypress as delivered by the terminal reader.
type KeyEvent struct {
	Key  string // "a", "Enter", "Up", "F5", "Tab", ...
	Mods Modifiers
}

// namedXtermSequences covers the named keys with fixed xterm encodings
// (spec.md §4.6: "xterm F1-F24, arrow, Home/End, PageUp/Down").
var namedXtermSequences = map[string]string{
	"Up": "\x1b[A", "Down": "\x1b[B", "Right": "\x1b[C", "Left": "\x1b[D",
	"Home": "\x1b[H", "End": "\x1b[F",
	"PageUp": "\x1b[5~", "PageDown": "\x1b[6~",
	"Insert": "\x1b[2~", "Delete": "\x1b[3~",
	"F1": "\x1bOP", "F2": "\x1bOQ", "F3": "\x1bOR", "F4": "\x1bOS",
	"F5": "\x1b[15~", "F6": "\x1b[17~", "F7": "\x1b[18~", "F8": "\x1b[19~",
	"F9": "\x1b[20~", "F10": "\x1b[21~", "F11": "\x1b[23~", "F12": "\x1b[24~",
	"Enter": "\r", "Tab": "\t", "Backspace": "\x7f", "Esc": "\x1b",
}

// EncodeKey turns a KeyEvent into the byte sequence posted to a PTY's
// master (spec.md §4.6). Ctrl+letter maps to the standard control-code
// range; Alt prefixes ESC. Shift is not encoded: named keys send their
// unmodified sequence, and plain letters are sent as the terminal reader
// delivered them.
func EncodeKey(k KeyEvent) []byte {
	var seq string
	if base, ok := namedXtermSequences[k.Key]; ok {
		seq = base
	} else if len(k.Key) == 1 {
		r := k.Key[0]
		if k.Mods&ModCtrl != 0 && r >= 'a' && r <= 'z' {
			seq = string(rune(r - 'a' + 1))
		} else if k.Mods&ModCtrl != 0 && r >= 'A' && r <= 'Z' {
			seq = string(rune(r - 'A' + 1))
		} else {
			seq = k.Key
		}
	} else {
		seq = k.Key
	}

	if k.Mods&ModAlt != 0 {
		seq = "\x1b" + seq
	}
	return []byte(seq)
}

// Action is the outcome of routing a key through the non-PTY dispatch
// chain of spec.md §4.6.
type Action struct {
	Kind ActionKind
	// LayoutID is set for SwitchLayout; HotKey for RunHotKey.
	LayoutID  string
	HotKey    string
	DeltaX    int
	DeltaY    int
}

type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionRunHotKey
	ActionScroll
	ActionPageScroll
	ActionScrollHome
	ActionScrollEnd
	ActionFocusNext
	ActionFocusPrev
	ActionExecuteChoice
	ActionSelectNext
	ActionSelectPrev
	ActionDropFocus
	ActionSwitchLayout
)

// Route implements spec.md §4.6's non-PTY dispatch chain: global
// hot-keys, then per-stream navigation, then Tab/Shift-Tab, then
// Enter-on-Choices, then Esc, then layout-switch keys.
func Route(cfg *configio.Root, app *boxtree.Application, k KeyEvent) Action {
	label := keyLabel(k)

	// "switch_layout:<id>" bindings are left for layoutSwitchKeys below.
	if hk := matchHotKey(cfg.HotKeys, label); hk != "" && !strings.HasPrefix(hk, "switch_layout:") {
		return Action{Kind: ActionRunHotKey, HotKey: hk}
	}
	if hk := matchHotKey(cfg.OnKeypress, label); hk != "" {
		return Action{Kind: ActionRunHotKey, HotKey: hk}
	}

	focused := app.Focused()
	onChoices := focused != nil && focused.Active().Kind == boxmodel.KindChoices
	if focused != nil {
		switch k.Key {
		case "Up":
			if onChoices {
				return Action{Kind: ActionSelectPrev}
			}
			return Action{Kind: ActionScroll, DeltaY: -1}
		case "Down":
			if onChoices {
				return Action{Kind: ActionSelectNext}
			}
			return Action{Kind: ActionScroll, DeltaY: 1}
		case "Left":
			return Action{Kind: ActionScroll, DeltaX: -1}
		case "Right":
			return Action{Kind: ActionScroll, DeltaX: 1}
		case "PageUp":
			return Action{Kind: ActionPageScroll, DeltaY: -1}
		case "PageDown":
			return Action{Kind: ActionPageScroll, DeltaY: 1}
		case "Home":
			return Action{Kind: ActionScrollHome}
		case "End":
			return Action{Kind: ActionScrollEnd}
		}
	}

	switch k.Key {
	case "Tab":
		if k.Mods&ModShift != 0 {
			return Action{Kind: ActionFocusPrev}
		}
		return Action{Kind: ActionFocusNext}
	case "Enter":
		if onChoices {
			return Action{Kind: ActionExecuteChoice}
		}
	case "Esc":
		return Action{Kind: ActionDropFocus}
	}

	if hk := matchHotKey(layoutSwitchKeys(cfg), label); hk != "" {
		return Action{Kind: ActionSwitchLayout, LayoutID: hk}
	}

	return Action{Kind: ActionNone}
}

func keyLabel(k KeyEvent) string {
	prefix := ""
	if k.Mods&ModCtrl != 0 {
		prefix += "Ctrl+"
	}
	if k.Mods&ModAlt != 0 {
		prefix += "Alt+"
	}
	if k.Mods&ModShift != 0 {
		prefix += "Shift+"
	}
	return prefix + k.Key
}

func matchHotKey(keys []configio.HotKey, label string) string {
	for _, hk := range keys {
		if hk.Key == label {
			return hk.Action
		}
	}
	return ""
}

// layoutSwitchKeys derives layout-switch bindings from hot_keys whose
// action names a layout id directly ("switch_layout:<id>" convention).
func layoutSwitchKeys(cfg *configio.Root) []configio.HotKey {
	var out []configio.HotKey
	for _, hk := range cfg.HotKeys {
		const prefix = "switch_layout:"
		if len(hk.Action) > len(prefix) && hk.Action[:len(prefix)] == prefix {
			out = append(out, configio.HotKey{Key: hk.Key, Action: hk.Action[len(prefix):]})
		}
	}
	return out
}
