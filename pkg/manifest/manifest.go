// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/invowk/runpick/internal/issue"

	"github.com/tidwall/gjson"
)

// FileName is the manifest file name searched for by default.
const FileName = "package.json"

var (
	// ErrInvalidJSON is returned for manifests that are not well-formed JSON.
	ErrInvalidJSON = errors.New("invalid JSON")
	// ErrNullManifest is returned for a manifest whose whole content is null.
	ErrNullManifest = errors.New("manifest is null")
)

// Record is the script listing of one manifest.
type Record struct {
	// Label is the declared package name, or the containing directory's basename.
	Label string
	// Scripts are the script names in declaration order, without duplicates.
	Scripts []string
	// Path is the manifest path as reported by discovery.
	Path string
}

// Dir returns the directory that owns the manifest; scripts run there.
func (r *Record) Dir() string {
	return filepath.Dir(r.Path)
}

// Extract reads and parses the manifest at path. It returns (nil, nil) when
// the manifest has no "scripts" object. Read and parse failures are returned
// as *issue.Error of kind KindManifestParse.
func Extract(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, issue.NewManifestError(path, err)
	}

	rec, err := Parse(path, data)
	if err != nil {
		return nil, issue.NewManifestError(path, err)
	}
	return rec, nil
}

// Parse builds a Record from manifest content. path is used for the record's
// Path and for the directory-name fallback label.
func Parse(path string, data []byte) (*Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}

	root := gjson.ParseBytes(data)
	if root.Type == gjson.Null {
		return nil, ErrNullManifest
	}
	if !root.IsObject() {
		return nil, nil
	}

	scripts := root.Get("scripts")
	if !scripts.IsObject() {
		return nil, nil
	}

	return &Record{
		Label:   label(path, root.Get("name")),
		Scripts: scriptNames(scripts),
		Path:    path,
	}, nil
}

// scriptNames returns object keys in document order. A key repeated in the
// document keeps its first position.
func scriptNames(scripts gjson.Result) []string {
	var names []string
	seen := make(map[string]bool)
	scripts.ForEach(func(key, _ gjson.Result) bool {
		name := validText(key.String())
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		return true
	})
	return names
}

// label uses "name" when it is a non-empty string, a non-zero number or true.
// Anything else falls back to the basename of the manifest's directory.
func label(path string, name gjson.Result) string {
	switch name.Type {
	case gjson.String:
		if name.Str != "" {
			return validText(name.Str)
		}
	case gjson.Number:
		if name.Num != 0 {
			return strconv.FormatFloat(name.Num, 'f', -1, 64)
		}
	case gjson.True:
		return "true"
	}
	return dirLabel(path)
}

// validText replaces invalid UTF-8 sequences with U+FFFD so the display line
// echoed back by the selector matches the lookup key.
func validText(s string) string {
	return strings.ToValidUTF8(s, "\uFFFD")
}

// dirLabel resolves "." (a manifest in the working directory) to the real
// directory name so the label is meaningful.
func dirLabel(path string) string {
	dir := filepath.Dir(path)
	if dir == "." {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
	}
	return validText(filepath.Base(dir))
}

// String returns a short description for logs.
func (r *Record) String() string {
	return fmt.Sprintf("%s (%d scripts) at %s", r.Label, len(r.Scripts), r.Path)
}
