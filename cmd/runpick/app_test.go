// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/invowk/runpick/internal/config"
	"github.com/invowk/runpick/internal/issue"
	"github.com/invowk/runpick/internal/runtime"
	"github.com/invowk/runpick/internal/testutil"
	"github.com/invowk/runpick/pkg/types"

	"github.com/google/go-cmp/cmp"
)

// App tests are not parallel: Execute installs the slog default logger.

type (
	fakeConfig struct {
		cfg *config.Config
		err error
	}

	fakeFinder struct {
		paths []string
		err   error
	}

	fakeSelector struct {
		choice string
		err    error
		lines  []string
		called bool
	}

	fakeRunner struct {
		result *runtime.Result
		dir    string
		script string
		called bool
	}
)

func (f *fakeConfig) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.cfg != nil {
		return f.cfg, nil
	}
	return config.DefaultConfig(), nil
}

func (f *fakeFinder) Find(context.Context) ([]string, error) {
	return f.paths, f.err
}

func (f *fakeSelector) Select(_ context.Context, lines []string) (string, error) {
	f.called = true
	f.lines = lines
	return f.choice, f.err
}

func (f *fakeRunner) Run(_ context.Context, dir, script string) *runtime.Result {
	f.called = true
	f.dir = dir
	f.script = script
	if f.result == nil {
		return runtime.NewExitCodeResult(types.ExitSuccess)
	}
	return f.result
}

type appFixture struct {
	app      *App
	config   *fakeConfig
	finder   *fakeFinder
	selector *fakeSelector
	runner   *fakeRunner
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
}

func newAppFixture(t *testing.T, paths []string) *appFixture {
	t.Helper()

	f := &appFixture{
		config:   &fakeConfig{},
		finder:   &fakeFinder{paths: paths},
		selector: &fakeSelector{},
		runner:   &fakeRunner{},
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
	}
	app, err := NewApp(Dependencies{
		Config:   f.config,
		Finder:   f.finder,
		Selector: f.selector,
		Runner:   f.runner,
		Stdout:   f.stdout,
		Stderr:   f.stderr,
	})
	if err != nil {
		t.Fatalf("NewApp() returned error: %v", err)
	}
	f.app = app
	return f
}

// twoPackages writes the svc-a and b manifests and returns their paths in
// discovery order.
func twoPackages(t *testing.T) (root string, paths []string) {
	t.Helper()
	root = t.TempDir()
	paths = []string{
		testutil.WriteManifest(t, root, "a", `{"name":"svc-a","scripts":{"build":"tsc","test":"vitest"}}`),
		testutil.WriteManifest(t, root, "b", `{"scripts":{"start":"node ."}}`),
	}
	return root, paths
}

func exitCode(t *testing.T, err error) types.ExitCode {
	t.Helper()
	if err == nil {
		return types.ExitSuccess
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Execute() returned %T (%v), want *ExitError", err, err)
	}
	return exitErr.Code
}

func TestApp_Execute_RunsSelectedScript(t *testing.T) {
	root, paths := twoPackages(t)
	f := newAppFixture(t, paths)
	f.selector.choice = "b: start\n"

	err := f.app.Execute(context.Background())
	if code := exitCode(t, err); code != 0 {
		t.Fatalf("exit code = %d, want 0 (stderr: %s)", code, f.stderr)
	}

	if diff := cmp.Diff([]string{"svc-a: build", "svc-a: test", "b: start"}, f.selector.lines); diff != "" {
		t.Errorf("selector lines mismatch (-want +got):\n%s", diff)
	}
	if f.runner.dir != filepath.Join(root, "b") {
		t.Errorf("runner dir = %q, want %q", f.runner.dir, filepath.Join(root, "b"))
	}
	if f.runner.script != "start" {
		t.Errorf("runner script = %q, want start", f.runner.script)
	}

	out := f.stdout.String()
	if !strings.Contains(out, "Running script") || !strings.Contains(out, `"start"`) {
		t.Errorf("stdout = %q, want the running-script status line", out)
	}
}

func TestApp_Execute_PropagatesChildExitCode(t *testing.T) {
	_, paths := twoPackages(t)
	f := newAppFixture(t, paths)
	f.selector.choice = "svc-a: test"
	f.runner.result = runtime.NewExitCodeResult(3)

	err := f.app.Execute(context.Background())
	if code := exitCode(t, err); code != 3 {
		t.Errorf("exit code = %d, want 3", code)
	}
	if strings.Contains(f.stderr.String(), "Error:") {
		t.Errorf("a failing script should not produce a runpick error, stderr: %s", f.stderr)
	}
}

func TestApp_Execute_FatalPaths(t *testing.T) {
	_, paths := twoPackages(t)

	tests := []struct {
		name           string
		setup          func(f *appFixture)
		wantStderr     []string
		wantSelectCall bool
	}{
		{
			name:           "cancelled selection",
			setup:          func(f *appFixture) { f.selector.choice = "" },
			wantStderr:     []string{"no selection made", "No selection made"},
			wantSelectCall: true,
		},
		{
			name:           "unrecognized selection",
			setup:          func(f *appFixture) { f.selector.choice = "ghost: run" },
			wantStderr:     []string{"option not recognized: ghost: run", "Selected option not recognized"},
			wantSelectCall: true,
		},
		{
			name: "selector failure",
			setup: func(f *appFixture) {
				f.selector.err = issue.NewToolError("fzf", errors.New("executable file not found"))
			},
			wantStderr:     []string{"failed to select a script: failed to run fzf", "Could not start the fuzzy selector"},
			wantSelectCall: true,
		},
		{
			name: "finder failure",
			setup: func(f *appFixture) {
				f.finder.err = issue.NewToolError("fd", errors.New("executable file not found"))
			},
			wantStderr: []string{"failed to discover manifests: failed to run fd", "Could not search for package.json files"},
		},
		{
			name:       "no scripts",
			setup:      func(f *appFixture) { f.finder.paths = nil },
			wantStderr: []string{"no scripts found", "No package scripts found"},
		},
		{
			name: "runner failure",
			setup: func(f *appFixture) {
				f.selector.choice = "b: start"
				f.runner.result = runtime.NewErrorResult(types.ExitFailure, issue.NewToolError("npm", errors.New("executable file not found")))
			},
			wantStderr:     []string{"failed to run the script: start: failed to run npm", "Could not start the package script runner"},
			wantSelectCall: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAppFixture(t, paths)
			tt.setup(f)

			err := f.app.Execute(context.Background())
			if code := exitCode(t, err); code != types.ExitFailure {
				t.Errorf("exit code = %d, want %d", code, types.ExitFailure)
			}
			for _, want := range tt.wantStderr {
				if !strings.Contains(f.stderr.String(), want) {
					t.Errorf("stderr missing %q:\n%s", want, f.stderr)
				}
			}
			if f.selector.called != tt.wantSelectCall {
				t.Errorf("selector called = %v, want %v", f.selector.called, tt.wantSelectCall)
			}
			if tt.name != "runner failure" && f.runner.called {
				t.Error("runner must not be called")
			}
		})
	}
}

func TestApp_Execute_SkipsBrokenManifest(t *testing.T) {
	root, paths := twoPackages(t)
	broken := testutil.WriteManifest(t, root, "broken", `{"scripts": {`)
	f := newAppFixture(t, []string{paths[0], broken, paths[1]})
	f.selector.choice = "svc-a: build"

	if code := exitCode(t, f.app.Execute(context.Background())); code != 0 {
		t.Fatalf("exit code = %d, want 0 (stderr: %s)", code, f.stderr)
	}
	if diff := cmp.Diff([]string{"svc-a: build", "svc-a: test", "b: start"}, f.selector.lines); diff != "" {
		t.Errorf("selector lines mismatch (-want +got):\n%s", diff)
	}
	stderr := f.stderr.String()
	if !strings.Contains(stderr, "skipping manifest") || !strings.Contains(stderr, broken) {
		t.Errorf("stderr should warn about %s:\n%s", broken, stderr)
	}
}

func TestApp_Execute_ConfigFailureFallsBackToDefaults(t *testing.T) {
	_, paths := twoPackages(t)
	f := newAppFixture(t, paths)
	f.config.err = issue.WrapWithContext(errors.New("expected '}'"), "load configuration", "/tmp/config.cue")
	f.selector.choice = "b: start"

	if code := exitCode(t, f.app.Execute(context.Background())); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	stderr := f.stderr.String()
	for _, want := range []string{"Warning:", "failed to load configuration", "Failed to load configuration"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}
	if !f.runner.called {
		t.Error("runner should still be called")
	}
}

func TestApp_Execute_VerboseTracing(t *testing.T) {
	_, paths := twoPackages(t)
	f := newAppFixture(t, paths)
	cfg := config.DefaultConfig()
	cfg.UI.Verbose = true
	f.config.cfg = cfg
	f.selector.choice = "b: start"

	if code := exitCode(t, f.app.Execute(context.Background())); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	for _, want := range []string{"manifests discovered", "manifest read", "svc-a (2 scripts)", "options built"} {
		if !strings.Contains(f.stderr.String(), want) {
			t.Errorf("verbose stderr missing %q:\n%s", want, f.stderr)
		}
	}
}

func TestApp_Pipeline_FromConfig(t *testing.T) {
	t.Parallel()

	app, err := NewApp(Dependencies{Config: &fakeConfig{}})
	if err != nil {
		t.Fatalf("NewApp() returned error: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Runner.Command = "pnpm --silent"
	cfg.Selector.Backend = config.SelectorBackendBuiltin

	p, err := app.pipeline(cfg)
	if err != nil {
		t.Fatalf("pipeline() returned error: %v", err)
	}
	runner, ok := p.runner.(*runtime.PackageRunner)
	if !ok {
		t.Fatalf("runner is %T, want *runtime.PackageRunner", p.runner)
	}
	if diff := cmp.Diff([]string{"pnpm", "--silent", "run", "dev"}, runner.Args("dev")); diff != "" {
		t.Errorf("runner args mismatch (-want +got):\n%s", diff)
	}

	cfg.Finder.Command = `fd "unterminated`
	if _, err := app.pipeline(cfg); !errors.Is(err, config.ErrInvalidCommand) {
		t.Errorf("pipeline() error = %v, want ErrInvalidCommand", err)
	}
}

func TestApp_Execute_CanceledDuringExtraction(t *testing.T) {
	_, paths := twoPackages(t)
	f := newAppFixture(t, paths)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	if code := exitCode(t, f.app.Execute(ctx)); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if f.selector.called {
		t.Error("selector was called after cancellation")
	}
	if f.runner.called {
		t.Error("runner was called after cancellation")
	}
	if !strings.Contains(f.stderr.String(), context.Canceled.Error()) {
		t.Errorf("stderr = %q, want the cancellation reason", f.stderr.String())
	}
}
