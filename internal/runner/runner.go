// Package runner executes the external commands a benchmark run is built
// from. Every command is printed before it runs so a transcript of a run can
// be replayed by hand, and preview mode stops at exactly that point.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// execCommand allows mocking process creation in tests.
var execCommand = exec.CommandContext

// ProcessError reports a mandatory external command that exited non-zero.
type ProcessError struct {
	Command string
	Err     error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("command %q failed: %v", e.Command, e.Err)
}

func (e *ProcessError) Unwrap() error { return e.Err }

// Runner runs one external command to completion.
type Runner interface {
	// Run executes argv synchronously. When mustSucceed is true a non-zero
	// exit is returned as a *ProcessError; otherwise the failure is logged
	// and swallowed (best-effort cleanup commands).
	Run(ctx context.Context, mustSucceed bool, argv ...string) error

	// Preview reports whether the runner is in preview (dry-run) mode.
	Preview() bool
}

// ExecRunner is the live implementation backed by os/exec. In preview mode
// it prints the command line and returns without spawning anything.
type ExecRunner struct {
	Dir    string    // working directory for every command
	DryRun bool      // print commands only
	Stdout io.Writer // defaults to os.Stdout
	Stderr io.Writer // defaults to os.Stderr
	Log    *slog.Logger
}

func New(dir string, dryRun bool) *ExecRunner {
	return &ExecRunner{
		Dir:    dir,
		DryRun: dryRun,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Log:    slog.Default(),
	}
}

func (r *ExecRunner) Preview() bool { return r.DryRun }

func (r *ExecRunner) Run(ctx context.Context, mustSucceed bool, argv ...string) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty command")
	}

	printable := strings.Join(argv, " ")
	fmt.Fprintf(r.stdout(), "[cmd] %s\n", printable)
	if r.DryRun {
		return nil
	}

	cmd := execCommand(ctx, argv[0], argv[1:]...)
	cmd.Dir = r.Dir
	cmd.Stdout = r.stdout()
	cmd.Stderr = r.stderr()

	if err := cmd.Run(); err != nil {
		if mustSucceed {
			return &ProcessError{Command: printable, Err: err}
		}
		r.log().Warn("ignoring failure of best-effort command", "cmd", printable, "error", err)
	}
	return nil
}

func (r *ExecRunner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *ExecRunner) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}

func (r *ExecRunner) log() *slog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return slog.Default()
}
