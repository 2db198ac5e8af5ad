package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/boxmux/boxmux/internal/stream"
	"github.com/boz/go-throttle"
	"golang.org/x/term"
)

// dragFrameInterval is the renderer's 60-FPS cap during interactive drag
// (spec.md §5 "Drag-render cap: 16 ms").
const dragFrameInterval = 16 * time.Millisecond

// Terminal owns the output handle exclusively (spec.md §5 "Shared
// resources") and performs raw-mode setup/teardown and diffed writes.
type Terminal struct {
	out      io.Writer
	fd       int
	oldState *term.State
	prev     *Grid

	wake    throttle.Throttle
	wakeCh  chan struct{}
}

// Open enters raw mode on fd, the way the teacher's streamer package
// wraps os.Stdin/os.Stdout for its hijacked session, except here the
// renderer itself owns the handle rather than proxying a child's.
func Open(out io.Writer, fd int) (*Terminal, error) {
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	t := &Terminal{out: out, fd: fd, oldState: oldState, wakeCh: make(chan struct{}, 1)}
	t.wake = throttle.ThrottleFunc(dragFrameInterval, true, t.signalWake)
	fmt.Fprint(out, "\x1b[?1049h\x1b[?25l\x1b[?1000h\x1b[?1006h") // alt screen, hide cursor, SGR mouse reporting
	return t, nil
}

// Close restores the terminal: alt-screen exited, cursor shown, modes
// reset (spec.md §7 "On fatal shutdown...").
func (t *Terminal) Close() error {
	t.wake.Stop()
	fmt.Fprint(t.out, "\x1b[?1006l\x1b[?1000l\x1b[?25h\x1b[?1049l")
	return term.Restore(t.fd, t.oldState)
}

// Size reports the current terminal size in cells.
func (t *Terminal) Size() (width, height int, err error) {
	return term.GetSize(t.fd)
}

// RequestFrame coalesces redundant wake-ups behind the drag-frame
// throttle; WakeCh delivers at most one pending signal per interval.
func (t *Terminal) RequestFrame() { t.wake.Trigger() }

func (t *Terminal) signalWake() {
	select {
	case t.wakeCh <- struct{}{}:
	default:
	}
}

// WakeCh is the channel the render loop selects on.
func (t *Terminal) WakeCh() <-chan struct{} { return t.wakeCh }

// Draw diffs next against the last-drawn grid and writes only the
// changed runs, each run as one SGR sequence plus its glyphs.
func (t *Terminal) Draw(next *Grid) {
	runs := Diff(t.prev, next)
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(fmt.Sprintf("\x1b[%d;%dH", r.Y+1, r.X0+1))
		sb.WriteString(sgr(r.Style))
		sb.WriteString(string(r.Glyphs))
	}
	if sb.Len() > 0 {
		fmt.Fprint(t.out, sb.String())
	}
	t.prev = next
}

// SetCursorStyle switches the terminal cursor shape to match the
// current hover zone (spec.md §4.5).
func (t *Terminal) SetCursorStyle(style CursorStyle) {
	fmt.Fprint(t.out, cursorEscapes[style])
}

func sgr(s stream.Style) string {
	var codes []string
	codes = append(codes, "0")
	if s.Attrs&stream.AttrBold != 0 {
		codes = append(codes, "1")
	}
	if s.Attrs&stream.AttrDim != 0 {
		codes = append(codes, "2")
	}
	if s.Attrs&stream.AttrItalic != 0 {
		codes = append(codes, "3")
	}
	if s.Attrs&stream.AttrUnderline != 0 {
		codes = append(codes, "4")
	}
	if s.Attrs&stream.AttrReverse != 0 {
		codes = append(codes, "7")
	}
	if s.Attrs&stream.AttrStrike != 0 {
		codes = append(codes, "9")
	}
	if s.Fg != stream.ColorDefault {
		codes = append(codes, fmt.Sprintf("%d", fgCode(s.Fg)))
	}
	if s.Bg != stream.ColorDefault {
		codes = append(codes, fmt.Sprintf("%d", bgCode(s.Bg)))
	}
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

func fgCode(c stream.Color) int {
	if c >= stream.ColorBrightBlack {
		return 90 + int(c-stream.ColorBrightBlack)
	}
	return 30 + int(c)
}

func bgCode(c stream.Color) int {
	if c >= stream.ColorBrightBlack {
		return 100 + int(c-stream.ColorBrightBlack)
	}
	return 40 + int(c)
}
