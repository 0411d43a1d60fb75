// SPDX-License-Identifier: MPL-2.0

package selector

import (
	"context"
	"log/slog"
	"strings"

	"github.com/invowk/runpick/internal/issue"
)

// Selector presents lines to the operator and returns the chosen one.
// An empty string with a nil error means the operator made no choice.
type Selector interface {
	Select(ctx context.Context, lines []string) (string, error)
}

// Choose runs sel over the set and resolves the result. It fails with
// KindEmptyResult before invoking sel when the set is empty, KindUserCancelled
// when nothing was chosen and KindSelectionIntegrity when the chosen line is
// not in the set.
func Choose(ctx context.Context, sel Selector, set *OptionSet) (Option, error) {
	if set.Len() == 0 {
		return Option{}, issue.NewEmptyResultError()
	}

	chosen, err := sel.Select(ctx, set.Displays())
	if err != nil {
		return Option{}, err
	}

	chosen = strings.TrimSpace(chosen)
	if chosen == "" {
		return Option{}, issue.NewCancelledError()
	}

	opt, ok := set.Resolve(chosen)
	if !ok {
		return Option{}, issue.NewIntegrityError(chosen)
	}
	slog.Debug("option selected", "display", opt.Display, "dir", opt.Dir, "script", opt.Script)
	return opt, nil
}
