package input

import (
	"bufio"
	"io"
	"strconv"
)

// Reader turns raw terminal bytes into KeyEvents, the way garaekz-tfx's
// runfx.KeyReader decodes a raw stdin stream: a plain byte for a
// regular key, ESC [ for a CSI sequence, ESC O for an SS3 function
// key, bare ESC for Alt/Escape.
type Reader struct {
	r *bufio.Reader
}

// NewReader wraps in (os.Stdin once the terminal is in raw mode).
func NewReader(in io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(in)}
}

// ReadKey blocks for the next key. io.EOF (or any read error) means the
// input stream closed out from under it.
func (kr *Reader) ReadKey() (KeyEvent, error) {
	b, err := kr.r.ReadByte()
	if err != nil {
		return KeyEvent{}, err
	}

	if b != 0x1b {
		return decodeByte(b), nil
	}

	next, err := kr.r.Peek(1)
	if err != nil || len(next) == 0 {
		return KeyEvent{Key: "Esc"}, nil
	}
	switch next[0] {
	case '[':
		kr.r.ReadByte()
		return kr.decodeCSI()
	case 'O':
		kr.r.ReadByte()
		return kr.decodeSS3()
	default:
		// Alt+<key>: consume the following regular key and tag it.
		kr.r.ReadByte()
		inner := decodeByte(next[0])
		inner.Mods |= ModAlt
		return inner, nil
	}
}

// EventKind distinguishes a keyboard event from a mouse one on the
// combined stream ReadEvent decodes.
type EventKind int

const (
	EventKey EventKind = iota
	EventPointer
)

// TermEvent is one decoded unit off the terminal's raw input stream:
// either a KeyEvent or a mouse press/move/release at a cell position.
type TermEvent struct {
	Kind EventKind
	Key  KeyEvent

	PointerX, PointerY int
	PointerPhase       string // "press", "move", "release"
}

// ReadEvent is ReadKey's superset: it also recognizes SGR mouse
// reporting sequences (ESC [ < b ; x ; y M/m, enabled by Terminal.Open
// via "\x1b[?1000h\x1b[?1006h") and returns them as EventPointer.
func (kr *Reader) ReadEvent() (TermEvent, error) {
	b, err := kr.r.ReadByte()
	if err != nil {
		return TermEvent{}, err
	}
	if b != 0x1b {
		return TermEvent{Kind: EventKey, Key: decodeByte(b)}, nil
	}

	next, err := kr.r.Peek(1)
	if err != nil || len(next) == 0 {
		return TermEvent{Kind: EventKey, Key: KeyEvent{Key: "Esc"}}, nil
	}
	switch next[0] {
	case '[':
		kr.r.ReadByte()
		if n2, err := kr.r.Peek(1); err == nil && len(n2) > 0 && n2[0] == '<' {
			kr.r.ReadByte()
			return kr.decodeMouse()
		}
		k, err := kr.decodeCSI()
		return TermEvent{Kind: EventKey, Key: k}, err
	case 'O':
		kr.r.ReadByte()
		k, err := kr.decodeSS3()
		return TermEvent{Kind: EventKey, Key: k}, err
	default:
		kr.r.ReadByte()
		inner := decodeByte(next[0])
		inner.Mods |= ModAlt
		return TermEvent{Kind: EventKey, Key: inner}, nil
	}
}

// mouseMotionBit marks a drag-motion report (as opposed to a plain
// press) in an SGR mouse sequence's button parameter.
const mouseMotionBit = 32

// decodeMouse reads the body of an SGR mouse sequence (button;x;y,
// terminated by 'M' for press/motion or 'm' for release) already past
// the "ESC [ <" prefix.
func (kr *Reader) decodeMouse() (TermEvent, error) {
	var seq []byte
	for {
		b, err := kr.r.ReadByte()
		if err != nil {
			return TermEvent{}, err
		}
		if b == 'M' || b == 'm' {
			params := splitSemicolon(string(seq))
			btn, _ := strconv.Atoi(get(params, 0))
			x, _ := strconv.Atoi(get(params, 1))
			y, _ := strconv.Atoi(get(params, 2))

			phase := "press"
			switch {
			case b == 'm':
				phase = "release"
			case btn&mouseMotionBit != 0:
				phase = "move"
			}
			return TermEvent{Kind: EventPointer, PointerX: x - 1, PointerY: y - 1, PointerPhase: phase}, nil
		}
		seq = append(seq, b)
	}
}

func get(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}

var ss3Keys = map[byte]string{
	'P': "F1", 'Q': "F2", 'R': "F3", 'S': "F4",
}

func (kr *Reader) decodeSS3() (KeyEvent, error) {
	b, err := kr.r.ReadByte()
	if err != nil {
		return KeyEvent{}, err
	}
	if name, ok := ss3Keys[b]; ok {
		return KeyEvent{Key: name}, nil
	}
	return KeyEvent{Key: "Esc"}, nil
}

var csiFinal = map[byte]string{
	'A': "Up", 'B': "Down", 'C': "Right", 'D': "Left",
	'H': "Home", 'F': "End",
}

var csiTilde = map[string]string{
	"1": "Home", "2": "Insert", "3": "Delete", "4": "End",
	"5": "PageUp", "6": "PageDown",
	"15": "F5", "17": "F6", "18": "F7", "19": "F8",
	"20": "F9", "21": "F10", "23": "F11", "24": "F12",
}

// decodeCSI reads bytes up to (and including) the final letter or '~'
// of a CSI escape sequence and maps it to a named key, the same
// class-of-final-byte loop garaekz-tfx's parseCSISequence uses.
func (kr *Reader) decodeCSI() (KeyEvent, error) {
	var seq []byte
	for {
		b, err := kr.r.ReadByte()
		if err != nil {
			return KeyEvent{}, err
		}
		seq = append(seq, b)
		if (b >= 'A' && b <= 'Z') || b == '~' {
			break
		}
	}
	s := string(seq)
	final := seq[len(seq)-1]

	if final == '~' {
		body := s[:len(s)-1]
		params := splitSemicolon(body)
		if name, ok := csiTilde[params[0]]; ok {
			return KeyEvent{Key: name, Mods: modFromParam(params)}, nil
		}
		return KeyEvent{}, nil
	}

	if name, ok := csiFinal[final]; ok {
		params := splitSemicolon(s[:len(s)-1])
		return KeyEvent{Key: name, Mods: modFromParam(params)}, nil
	}
	return KeyEvent{}, nil
}

func splitSemicolon(s string) []string {
	if s == "" {
		return []string{""}
	}
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ';' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

// modFromParam decodes the xterm modifyOtherKeys modifier parameter
// (param 2 of a "<n>;<mod><final>" CSI sequence): 1=none, 2=Shift,
// 3=Alt, 4=Shift+Alt, 5=Ctrl, and so on, encoded as (mod-1) bitfield.
func modFromParam(params []string) Modifiers {
	if len(params) < 2 || len(params[1]) == 0 {
		return 0
	}
	n := int(params[1][0] - '0')
	if n < 1 {
		return 0
	}
	bits := n - 1
	var m Modifiers
	if bits&1 != 0 {
		m |= ModShift
	}
	if bits&2 != 0 {
		m |= ModAlt
	}
	if bits&4 != 0 {
		m |= ModCtrl
	}
	return m
}

func decodeByte(b byte) KeyEvent {
	switch b {
	case '\r', '\n':
		return KeyEvent{Key: "Enter"}
	case '\t':
		return KeyEvent{Key: "Tab"}
	case 127, 8:
		return KeyEvent{Key: "Backspace"}
	case 0x1b:
		return KeyEvent{Key: "Esc"}
	}
	if b >= 1 && b <= 26 && b != '\t' && b != '\r' {
		return KeyEvent{Key: string(rune(b - 1 + 'a')), Mods: ModCtrl}
	}
	return KeyEvent{Key: string(rune(b))}
}
