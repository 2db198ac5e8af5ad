package exec

import (
	"context"
	"os"
	"os/exec"
	"runtime"

	"github.com/jesseduffield/kill"
)

// shellFor returns the system shell and its "run this string" flag, the
// same split the teacher keeps between os_default_platform.go ("bash",
// "-c") and os_windows.go ("cmd", "/c").
func shellFor() (string, string) {
	if runtime.GOOS == "windows" {
		return "cmd", "/c"
	}
	return "bash", "-c"
}

// commandFromString hands a box's script line to a system shell child
// (spec.md §1 Non-goals "scripts are handed to a system shell"; §4.3
// "spawns a system shell child"), the way the teacher's
// OSCommand.NewCommandStringWithShell composes `bash -c '<command>'` for
// user-supplied command strings. ExecutableFromString's direct argv
// split (the one this package used to follow) is the teacher's path for
// its own hardcoded `docker ...` invocations, not arbitrary user scripts
// — it can't run a pipe, redirect, glob, or `$VAR`.
func commandFromString(ctx context.Context, commandStr string) *exec.Cmd {
	shell, flag := shellFor()
	cmd := exec.CommandContext(ctx, shell, flag, commandStr)
	cmd.Env = os.Environ()
	kill.PrepareForChildren(cmd)
	return cmd
}

// killTree makes one kill.Kill call against a command's whole process
// group. It does not escalate by itself: the workers' stop paths call it,
// wait up to gracePeriod for the process to exit, and call it a second
// time if it has not.
func killTree(cmd *exec.Cmd) error {
	return kill.Kill(cmd)
}
