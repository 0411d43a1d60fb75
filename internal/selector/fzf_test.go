// SPDX-License-Identifier: MPL-2.0

package selector

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/invowk/runpick/internal/issue"
	"github.com/invowk/runpick/internal/testutil"
)

func TestFzfSelector_Select(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "input.txt")
	// Record stdin and choose the last line.
	fzf := testutil.WriteFakeTool(t, dir, "fzf", `cat > `+input+`
tail -n 1 `+input+`
echo`)

	sel := &FzfSelector{Command: []string{fzf}}
	got, err := sel.Select(context.Background(), []string{"svc-a: build", "b: start"})
	if err != nil {
		t.Fatalf("Select() returned error: %v", err)
	}
	if got != "b: start" {
		t.Errorf("Select() = %q, want %q", got, "b: start")
	}

	data, err := os.ReadFile(input)
	if err != nil {
		t.Fatalf("fake selector did not record stdin: %v", err)
	}
	if string(data) != "svc-a: build\nb: start" {
		t.Errorf("selector stdin = %q", data)
	}
}

func TestFzfSelector_Cancel(t *testing.T) {
	t.Parallel()

	for _, code := range []string{"0", "1", "130"} {
		t.Run("exit "+code, func(t *testing.T) {
			t.Parallel()

			fzf := testutil.WriteFakeTool(t, t.TempDir(), "fzf", "cat > /dev/null\nexit "+code)
			got, err := (&FzfSelector{Command: []string{fzf}}).Select(context.Background(), []string{"a: x"})
			if err != nil {
				t.Fatalf("Select() returned error: %v", err)
			}
			if got != "" {
				t.Errorf("Select() = %q, want empty", got)
			}
		})
	}
}

func TestFzfSelector_Failure(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	fzf := testutil.WriteFakeTool(t, t.TempDir(), "fzf", "cat > /dev/null\necho 'fzf: unknown option' >&2\nexit 2")
	sel := &FzfSelector{Command: []string{fzf}, Stderr: &stderr}

	_, err := sel.Select(context.Background(), []string{"a: x"})
	if issue.KindOf(err) != issue.KindToolInvocation {
		t.Fatalf("Select() error = %v, want tool invocation error", err)
	}
	var exitErr *issue.ToolExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode != 2 {
		t.Errorf("error should carry exit status 2, got %v", err)
	}
	if stderr.String() != "fzf: unknown option\n" {
		t.Errorf("stderr = %q, want it passed through", stderr.String())
	}
}

func TestFzfSelector_MissingTool(t *testing.T) {
	t.Parallel()

	sel := &FzfSelector{Command: []string{filepath.Join(t.TempDir(), "no-such-fzf")}}
	_, err := sel.Select(context.Background(), []string{"a: x"})
	if issue.KindOf(err) != issue.KindToolInvocation {
		t.Errorf("Select() error = %v, want tool invocation error", err)
	}

	_, err = (&FzfSelector{}).Select(context.Background(), nil)
	if !errors.Is(err, ErrEmptyCommand) {
		t.Errorf("Select() with no command error = %v, want ErrEmptyCommand", err)
	}
}
