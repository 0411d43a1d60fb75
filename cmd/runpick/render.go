// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/invowk/runpick/internal/config"
	"github.com/invowk/runpick/internal/issue"
	"github.com/invowk/runpick/internal/selector"

	"golang.org/x/term"
)

// classifyError maps a pipeline failure to its issue catalog ID. Zero means
// the error has no catalog entry.
func classifyError(err error) issue.Id {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		switch ae.Operation {
		case opDiscover:
			return issue.FinderFailedId
		case opSelect:
			if errors.Is(err, selector.ErrNotTerminal) {
				return issue.PickerNeedsTerminalId
			}
			return issue.SelectorFailedId
		case opRun:
			return issue.RunnerNotFoundId
		}
	}

	switch issue.KindOf(err) {
	case issue.KindEmptyResult:
		return issue.NoScriptsFoundId
	case issue.KindUserCancelled:
		return issue.NoSelectionMadeId
	case issue.KindSelectionIntegrity:
		return issue.OptionNotRecognizedId
	}

	if errors.Is(err, config.ErrInvalidCommand) {
		return issue.ConfigLoadFailedId
	}
	return 0
}

// renderPipelineError prints the error line followed by its help card.
func renderPipelineError(w io.Writer, err error, verbose bool, style string) {
	fmt.Fprintf(w, "\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))
	if id := classifyError(err); id != 0 {
		renderIssue(w, id, style)
	}
}

// renderIssue prints a catalog entry rendered with glamour.
func renderIssue(w io.Writer, id issue.Id, style string) {
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	rendered, err := entry.Render(style)
	if err != nil {
		slog.Warn("failed to render issue catalog entry", "issueID", id, "error", err)
		return
	}
	fmt.Fprint(w, rendered)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// issueStyle picks the glamour style for help cards: the configured scheme
// on a terminal, plain text otherwise.
func (a *App) issueStyle(cfg *config.Config) string {
	f, ok := a.stderr.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return "notty"
	}
	return cfg.UI.ColorScheme.GlamourStyle()
}
