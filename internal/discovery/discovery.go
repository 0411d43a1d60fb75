// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/invowk/runpick/internal/issue"
)

// ErrEmptyCommand is returned when a Finder has no command configured.
var ErrEmptyCommand = errors.New("finder command is empty")

// Finder lists manifest files below a directory with an external search
// tool that accepts fd's flags.
type Finder struct {
	// Command is the tool argv prefix, e.g. ["fd"] or ["fdfind", "--hidden"].
	Command []string
	// Manifest is the exact file name to match.
	Manifest string
	// Exclude lists directory names the tool must skip.
	Exclude []string
	// Dir is the directory the tool runs in. Empty means the current directory.
	Dir string
}

// Args returns the full argv the finder is invoked with.
func (f *Finder) Args() []string {
	args := make([]string, 0, len(f.Command)+4+2*len(f.Exclude))
	args = append(args, f.Command...)
	args = append(args, "--glob", f.Manifest, "--type", "f")
	for _, dir := range f.Exclude {
		args = append(args, "--exclude", dir)
	}
	return args
}

// Find runs the tool and returns the printed paths in output order.
// Any failure to start the tool or a nonzero exit is returned as an
// *issue.Error of kind KindToolInvocation.
func (f *Finder) Find(ctx context.Context) ([]string, error) {
	if len(f.Command) == 0 {
		return nil, issue.NewToolError("finder", ErrEmptyCommand)
	}

	tool := f.Command[0]
	args := f.Args()
	slog.Debug("running finder", "argv", args, "dir", f.Dir)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, tool, args[1:]...)
	cmd.Dir = f.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			err = &issue.ToolExitError{ExitCode: exitErr.ExitCode(), Stderr: strings.TrimSpace(stderr.String())}
		}
		return nil, issue.NewToolError(tool, err)
	}

	paths := ParseOutput(&stdout)
	slog.Debug("finder completed", "manifests", len(paths))
	return paths, nil
}

// ParseOutput splits newline-separated tool output into paths, dropping
// blank lines and carriage returns.
func ParseOutput(r io.Reader) []string {
	data, _ := io.ReadAll(r)
	var paths []string
	for line := range strings.SplitSeq(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		paths = append(paths, line)
	}
	return paths
}
