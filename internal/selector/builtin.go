// SPDX-License-Identifier: MPL-2.0

package selector

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/invowk/runpick/internal/issue"
	"github.com/invowk/runpick/internal/tui"
)

// ErrNotTerminal is returned when the built-in picker has no terminal to draw on.
var ErrNotTerminal = errors.New("standard input is not a terminal")

// BuiltinSelector presents the lines with the in-process picker.
type BuiltinSelector struct {
	// Title is shown above the list.
	Title string
	// TitleColor is a lipgloss color for the title.
	TitleColor string
	// Input defaults to os.Stdin, which must then be a terminal.
	Input *os.File
	// Output defaults to os.Stderr.
	Output io.Writer

	// pick is replaced in tests.
	pick func(context.Context, tui.PickerOptions) (string, error)
}

// Select implements Selector.
func (s *BuiltinSelector) Select(ctx context.Context, lines []string) (string, error) {
	in := s.Input
	if in == nil {
		in = os.Stdin
	}
	pick := s.pick
	if pick == nil {
		if !tui.IsInputTerminal(in) {
			return "", issue.NewToolError("builtin picker", ErrNotTerminal)
		}
		pick = tui.Pick
	}

	chosen, err := pick(ctx, tui.PickerOptions{
		Title:      s.Title,
		TitleColor: s.TitleColor,
		Options:    lines,
		Input:      in,
		Output:     s.Output,
	})
	if err != nil {
		return "", issue.NewToolError("builtin picker", err)
	}
	return chosen, nil
}
