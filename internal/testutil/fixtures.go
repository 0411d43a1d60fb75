// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// WriteManifest writes content to <root>/<dir>/package.json and returns the
// manifest path. dir may be "" for the root itself.
func WriteManifest(t testing.TB, root, dir, content string) string {
	t.Helper()
	manifestDir := filepath.Join(root, dir)
	MustMkdirAll(t, manifestDir, 0o755)
	path := filepath.Join(manifestDir, "package.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write manifest %s: %v", path, err)
	}
	return path
}

// WriteFakeTool writes an executable POSIX shell script named name into dir
// and returns its path. body is the script without the shebang line.
// Tests using it are skipped on Windows.
func WriteFakeTool(t testing.TB, dir, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tools are POSIX shell scripts")
	}
	MustMkdirAll(t, dir, 0o755)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("failed to write fake tool %s: %v", path, err)
	}
	return path
}

// PrependPath puts dir first on PATH for the rest of the test.
// Tests calling it must not run in parallel.
func PrependPath(t testing.TB, dir string) {
	t.Helper()
	restore := MustSetenv(t, "PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	t.Cleanup(restore)
}
