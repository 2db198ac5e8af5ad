// Command boxmux loads a declarative terminal-UI configuration and runs
// it: renders the active layout to the terminal, routes keyboard and
// mouse input, runs each box's configured script or PTY, and accepts
// remote mutations over a Unix control socket.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"

	"github.com/OpenPeeDeeP/xdg"
	"github.com/boxmux/boxmux/internal/configio"
	"github.com/boxmux/boxmux/internal/coordinator"
	"github.com/boxmux/boxmux/internal/input"
	"github.com/boxmux/boxmux/internal/render"
	"github.com/boxmux/boxmux/internal/socket"
	"github.com/fatih/color"
	"github.com/go-errors/errors"
	"github.com/integrii/flaggy"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

const defaultVersion = "unversioned"

var (
	commit  string
	version = defaultVersion
	date    string
)

// Exit codes per spec.md §7's CLI surface.
const (
	exitOK            = 0
	exitConfigError   = 1
	exitTerminalError = 2
	exitRuntimeFatal  = 3
)

func main() {
	updateBuildInfo()

	var (
		configPath string
		socketPath string
		debugFlag  bool
		readOnly   bool
	)

	flaggy.SetName("boxmux")
	flaggy.SetDescription("A declarative terminal UI engine driven by a YAML layout")
	flaggy.SetVersion(fmt.Sprintf("%s (commit %s, built %s)", version, commit, date))
	flaggy.String(&socketPath, "s", "socket-path", "Unix control-socket path (default /tmp/boxmux.sock)")
	flaggy.Bool(&debugFlag, "d", "debug", "enable debug logging")
	flaggy.Bool(&readOnly, "r", "read-only", "never write geometry/layout changes back to the config file")
	flaggy.AddPositionalValue(&configPath, "config", 1, true, "path to the layout configuration file")
	flaggy.Parse()

	log := newLogger(debugFlag)

	cfg, err := configio.Load(configPath)
	if err != nil {
		fatal(exitConfigError, "failed to load %s: %s", configPath, err)
	}
	if err := configio.Validate(cfg); err != nil {
		fatal(exitConfigError, "%s", err)
	}

	if socketPath == "" {
		socketPath = defaultSocketPath()
	}

	var writer *configio.Writer
	if !readOnly && isWritable(configPath) {
		writer = configio.NewWriter(configPath, log)
	} else if !readOnly {
		log.Warn("config file is not writable, falling back to read-only mode")
	}

	coord, err := coordinator.New(cfg, writer, log)
	if err != nil {
		fatal(exitConfigError, "failed to build runtime tree: %s", err)
	}

	srv, err := socket.New(socketPath, coord, log)
	if err != nil {
		fatal(exitRuntimeFatal, "failed to bind control socket %s: %s", socketPath, err)
	}
	go srv.Serve()
	defer srv.Close()

	term, err := render.Open(os.Stdout, int(os.Stdout.Fd()))
	if err != nil {
		fatal(exitTerminalError, "failed to enter raw mode: %s", err)
	}
	defer term.Close()

	stop := make(chan struct{})
	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		defer func() {
			if r := recover(); r != nil {
				term.Close()
				wrapFatal(fmt.Errorf("coordinator panic: %v", r))
			}
		}()
		coord.Run(stop)
	}()

	coord.Bootstrap()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGWINCH)

	go inputLoop(coord, log)

	renderLoop(coord, term, sigCh, stop, runDone)

	<-runDone
}

// renderLoop is the single task that owns the terminal output handle
// (spec.md §5 "Shared resources"): it wakes on either a coordinator
// mutation (Dirty) or a drag-render tick (WakeCh), composes a fresh
// frame, and diffs it against the last one drawn. SIGWINCH just forces
// a redraw at the new size; SIGINT/SIGTERM submit a Shutdown mutation
// through the same path the socket command uses, so both exit routes
// restore the terminal identically. A Shutdown that arrives over the
// socket ends the coordinator's loop, which closes runDone and ends
// this loop too.
func renderLoop(coord *coordinator.Coordinator, term *render.Terminal, sigCh chan os.Signal, stop chan struct{}, runDone chan struct{}) {
	draw := func() {
		w, h, err := term.Size()
		if err != nil {
			return
		}
		grid := render.Compose(coord.App(), w, h)
		term.Draw(grid)
	}

	draw()
	for {
		select {
		case sig := <-sigCh:
			switch sig {
			case syscall.SIGWINCH:
				term.RequestFrame()
			default:
				coord.Submit(coordinator.Mutation{Kind: coordinator.MutShutdown})
				close(stop)
				return
			}
		case <-coord.Dirty():
			draw()
		case <-term.WakeCh():
			draw()
		case <-runDone:
			return
		}
	}
}

// inputLoop is the input reader's own task (spec.md §5 "The input
// reader is its own task"): it never touches the tree directly, only
// submitting mutations the coordinator applies under its own lock.
func inputLoop(coord *coordinator.Coordinator, log *logrus.Entry) {
	r := input.NewReader(os.Stdin)
	for {
		ev, err := r.ReadEvent()
		if err != nil {
			log.WithError(err).Debug("input reader: stdin closed")
			return
		}
		switch ev.Kind {
		case input.EventKey:
			coord.Submit(coordinator.Mutation{Kind: coordinator.MutSendKey, Key: ev.Key.Key, KeyMods: uint8(ev.Key.Mods)})
		case input.EventPointer:
			coord.Submit(coordinator.Mutation{
				Kind:         coordinator.MutPointerEvent,
				PointerX:     ev.PointerX,
				PointerY:     ev.PointerY,
				PointerPhase: ev.PointerPhase,
			})
		}
	}
}

func newLogger(debugFlag bool) *logrus.Entry {
	log := logrus.New()
	log.Formatter = &logrus.JSONFormatter{}

	if debugFlag || os.Getenv("DEBUG") == "TRUE" {
		dir := xdg.New("", "boxmux").CacheHome()
		os.MkdirAll(dir, 0o755)
		file, err := os.OpenFile(filepath.Join(dir, "boxmux.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			log.SetOutput(file)
		}
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetOutput(os.Stderr)
		log.SetLevel(logrus.ErrorLevel)
	}

	return log.WithFields(logrus.Fields{"version": version, "commit": commit})
}

// defaultSocketPath matches spec.md §6's literal default; xdg's cache
// directory is only consulted if /tmp turns out not to be writable
// (multi-tenant containers that lock down /tmp down to a per-user
// subtree).
func defaultSocketPath() string {
	const fallback = "/tmp/boxmux.sock"
	if isWritable(filepath.Dir(fallback)) {
		return fallback
	}
	dir := xdg.New("", "boxmux").CacheHome()
	os.MkdirAll(dir, 0o755)
	return filepath.Join(dir, "boxmux.sock")
}

// isWritable reports whether path (a file or directory) grants write
// access to the running user, used to decide whether persistence and
// the default socket directory are usable (spec.md §7 "read-only
// persistence mode when the file is unwritable").
func isWritable(path string) bool {
	return unix.Access(path, unix.W_OK) == nil
}

func fatal(code int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, msg)
	os.Exit(code)
}

func updateBuildInfo() {
	if version != defaultVersion {
		return
	}
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if rev, ok := lo.Find(buildInfo.Settings, func(s debug.BuildSetting) bool { return s.Key == "vcs.revision" }); ok {
		commit = rev.Value
		if len(commit) > 7 {
			version = commit[:7]
		} else {
			version = commit
		}
	}
	if t, ok := lo.Find(buildInfo.Settings, func(s debug.BuildSetting) bool { return s.Key == "vcs.time" }); ok {
		date = t.Value
	}
}

// wrapFatal is kept for parity with the teacher's go-errors-wrapped
// fatal diagnostics (pkg/main.go); boxmux only reaches it for a runtime
// panic recovered at the top of the coordinator's event loop, since
// every other failure path already returns a structured error.
func wrapFatal(err error) {
	newErr := errors.Wrap(err, 0)
	fatal(exitRuntimeFatal, "%s", newErr.ErrorStack())
}
