// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the runpick command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// newRootCommand builds the runpick command around app.
func newRootCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "runpick",
		Short: "Pick a package.json script and run it",
		Long: TitleStyle.Render("runpick") + SubtitleStyle.Render(" - pick a package.json script and run it") + `

runpick lists every package.json below the current directory, collects
their scripts, lets you choose one with a fuzzy finder and runs it with
your package manager in the package's own directory. It exits with the
script's exit code.

` + SubtitleStyle.Render("Requirements:") + `
  fd    file search (finder.command)
  fzf   fuzzy selection (selector.command, or selector.backend: "builtin")
  npm   script runner (runner.command)

` + SubtitleStyle.Render("Configuration:") + `
  $XDG_CONFIG_HOME/runpick/config.cue, or ./runpick.cue`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Execute(cmd.Context())
		},
	}
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the root command and exits the process. It is called by
// main.main() and is the only place that calls os.Exit.
func Execute() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes runpick with args and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app, err := NewApp(Dependencies{Stdout: stdout, Stderr: stderr})
	if err != nil {
		fmt.Fprintln(stderr, ErrorStyle.Render("Error:"), err)
		return 1
	}

	rootCmd := newRootCommand(app)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	// Pipeline errors are rendered by App; fang's own copy is discarded.
	rootCmd.SetErr(io.Discard)

	err = fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return int(exitErr.Code)
	}
	// Usage errors (unknown flag, unexpected argument) never reach App.
	fmt.Fprintln(stderr, ErrorStyle.Render("Error:"), err)
	return 1
}
