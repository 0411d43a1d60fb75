// SPDX-License-Identifier: MPL-2.0

package selector

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/invowk/runpick/internal/issue"
)

// fzf exits 1 when nothing matched and 130 when interrupted with esc or ctrl-c.
const (
	fzfExitNoMatch   = 1
	fzfExitInterrupt = 130
)

// ErrEmptyCommand is returned when a selector has no command configured.
var ErrEmptyCommand = errors.New("selector command is empty")

// FzfSelector pipes the lines into an fzf-compatible process. The process
// draws its interface on the terminal itself; only the chosen line is read
// back from its standard output.
type FzfSelector struct {
	// Command is the argv, e.g. ["fzf"] or ["fzf", "--height", "40%"].
	Command []string
	// Stderr receives the process's stderr. Nil means os.Stderr.
	Stderr io.Writer
}

// Select implements Selector.
func (s *FzfSelector) Select(ctx context.Context, lines []string) (string, error) {
	if len(s.Command) == 0 {
		return "", issue.NewToolError("selector", ErrEmptyCommand)
	}

	tool := s.Command[0]
	stderr := s.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, tool, s.Command[1:]...)
	cmd.Stdin = strings.NewReader(strings.Join(lines, "\n"))
	cmd.Stdout = &stdout
	cmd.Stderr = stderr

	slog.Debug("running selector", "argv", s.Command, "options", len(lines))
	err := cmd.Run()
	chosen := strings.TrimSpace(stdout.String())
	if err == nil {
		return chosen, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if chosen == "" && (code == fzfExitNoMatch || code == fzfExitInterrupt) {
			slog.Debug("selector exited without a choice", "exit_code", code)
			return "", nil
		}
		return "", issue.NewToolError(tool, &issue.ToolExitError{ExitCode: code})
	}
	return "", issue.NewToolError(tool, err)
}
