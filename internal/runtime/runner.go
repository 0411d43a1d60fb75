// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/invowk/runpick/internal/issue"
	"github.com/invowk/runpick/pkg/types"
)

// ErrEmptyCommand is returned when a runner has no command configured.
var ErrEmptyCommand = errors.New("runner command is empty")

// PackageRunner runs "<Command...> run <script>" in a package directory with
// the standard streams passed straight through.
type PackageRunner struct {
	// Command is the package manager argv prefix, e.g. ["npm"] or ["pnpm"].
	Command []string
	// Stdin, Stdout and Stderr default to the process's own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Args returns the argv used to run script.
func (r *PackageRunner) Args(script string) []string {
	args := make([]string, 0, len(r.Command)+2)
	args = append(args, r.Command...)
	return append(args, "run", script)
}

// Run starts the script in dir and blocks until it exits. The child is not
// killed when ctx is cancelled: an interrupt from the terminal reaches it
// directly and its own exit code is reported. ctx only prevents starting.
func (r *PackageRunner) Run(ctx context.Context, dir, script string) *Result {
	if len(r.Command) == 0 {
		return NewErrorResult(types.ExitFailure, issue.NewToolError("runner", ErrEmptyCommand))
	}
	if err := ctx.Err(); err != nil {
		return NewErrorResult(types.ExitFailure, err)
	}

	args := r.Args(script)
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = dir
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if r.Stdin != nil {
		cmd.Stdin = r.Stdin
	}
	if r.Stdout != nil {
		cmd.Stdout = r.Stdout
	}
	if r.Stderr != nil {
		cmd.Stderr = r.Stderr
	}

	slog.Debug("running script", "argv", args, "dir", dir)
	err := cmd.Run()
	result := extractExitCode(err)
	if result.Error != nil {
		result.Error = issue.NewToolError(args[0], result.Error)
	}
	slog.Debug("script finished", "exit_code", result.ExitCode)
	return result
}

// extractExitCode converts the error from exec.Cmd.Run into a Result.
func extractExitCode(err error) *Result {
	if err == nil {
		return NewExitCodeResult(types.ExitSuccess)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if sig, ok := terminatingSignal(exitErr.ProcessState); ok {
			return NewExitCodeResult(types.ExitCodeFromSignal(sig))
		}
		code := types.ExitCode(exitErr.ExitCode())
		if validateErr := code.Validate(); validateErr != nil {
			return NewErrorResult(types.ExitFailure, validateErr)
		}
		return NewExitCodeResult(code)
	}

	// The child never started (not found, not executable, bad directory).
	return NewErrorResult(types.ExitFailure, err)
}
