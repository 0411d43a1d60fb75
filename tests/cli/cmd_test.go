// SPDX-License-Identifier: MPL-2.0

// Package cli contains end-to-end tests that drive the runpick binary with
// testscript. fd, fzf and npm are replaced by small shell scripts so the
// scripts can assert on exactly what each tool received.
package cli

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

// binaryPath is the path to the built runpick binary.
var binaryPath string

// fakeTools are installed into $WORK/.bin ahead of the real PATH.
var fakeTools = map[string]string{
	// fd: record the arguments, list manifests outside node_modules.
	"fd": `printf '%s\n' "$@" > "$WORK/fd-args"
find . -name package.json -not -path '*/node_modules/*' | sed 's|^\./||' | sort`,
	// fzf: record the candidates newline-terminated, print $FZF_PICK if it
	// is one of them.
	"fzf": `{ cat; echo; } > "$WORK/fzf-input"
[ -n "$FZF_PICK" ] || exit 130
grep -Fx "$FZF_PICK" "$WORK/fzf-input"`,
	// npm: report what ran where, exit with $NPM_EXIT.
	"npm": `echo "npm $* in $(basename "$PWD")"
exit "${NPM_EXIT:-0}"`,
	"pnpm": `echo "pnpm $* in $(basename "$PWD")"`,
}

func TestMain(m *testing.M) {
	wd, err := os.Getwd()
	if err != nil {
		panic("failed to get working directory: " + err.Error())
	}

	// Walk up to find go.mod
	projectRoot := wd
	for {
		if _, err := os.Stat(filepath.Join(projectRoot, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(projectRoot)
		if parent == projectRoot {
			panic("could not find project root (go.mod)")
		}
		projectRoot = parent
	}

	binDir, err := os.MkdirTemp("", "runpick-cli-")
	if err != nil {
		panic("failed to create bin directory: " + err.Error())
	}

	binaryName := "runpick"
	if runtime.GOOS == "windows" {
		binaryName = "runpick.exe"
	}
	binaryPath = filepath.Join(binDir, binaryName)

	cmd := exec.CommandContext(context.Background(), "go", "build", "-o", binaryPath, ".")
	cmd.Dir = projectRoot
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build runpick: " + err.Error())
	}

	code := m.Run()
	_ = os.RemoveAll(binDir)
	os.Exit(code)
}

// TestCLI runs all testscript tests in the testdata directory.
func TestCLI(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake tools are POSIX shell scripts")
	}

	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			toolDir := filepath.Join(env.WorkDir, ".bin")
			if err := os.MkdirAll(toolDir, 0o755); err != nil {
				return err
			}
			for name, body := range fakeTools {
				script := []byte("#!/bin/sh\n" + body + "\n")
				if err := os.WriteFile(filepath.Join(toolDir, name), script, 0o755); err != nil {
					return err
				}
			}

			path := toolDir + string(os.PathListSeparator) +
				filepath.Dir(binaryPath) + string(os.PathListSeparator) +
				env.Getenv("PATH")
			env.Setenv("PATH", path)
			env.Setenv("XDG_CONFIG_HOME", filepath.Join(env.WorkDir, ".config"))
			return nil
		},
		// Continue running all tests even if one fails
		ContinueOnError: true,
	})
}
