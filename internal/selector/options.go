// SPDX-License-Identifier: MPL-2.0

package selector

import (
	"github.com/invowk/runpick/pkg/manifest"
)

// displaySeparator joins the package label and script name.
const displaySeparator = ": "

type (
	// Option is one runnable (directory, script) pair.
	Option struct {
		// Display is "<label>: <script>", the line shown to the operator.
		Display string
		// Dir is the directory that owns the manifest.
		Dir string
		// Script is the script name passed to the runner.
		Script string
	}

	// OptionSet holds the displayed lines and the lookup used to resolve a
	// choice. Both are built from the same entries in one pass.
	OptionSet struct {
		options []Option
		lookup  map[string]Option
	}
)

// BuildOptions flattens records into options in record order, then script
// declaration order. When two options share a display line every line is
// still listed, but the later one wins on lookup.
func BuildOptions(records []*manifest.Record) *OptionSet {
	set := &OptionSet{lookup: make(map[string]Option)}
	for _, rec := range records {
		if rec == nil {
			continue
		}
		dir := rec.Dir()
		for _, script := range rec.Scripts {
			opt := Option{
				Display: rec.Label + displaySeparator + script,
				Dir:     dir,
				Script:  script,
			}
			set.options = append(set.options, opt)
			set.lookup[opt.Display] = opt
		}
	}
	return set
}

// Len returns the number of listed options.
func (s *OptionSet) Len() int { return len(s.options) }

// Options returns a copy of the listed options in order.
func (s *OptionSet) Options() []Option {
	return append([]Option(nil), s.options...)
}

// Displays returns the lines to present, in order.
func (s *OptionSet) Displays() []string {
	lines := make([]string, len(s.options))
	for i, opt := range s.options {
		lines[i] = opt.Display
	}
	return lines
}

// Resolve returns the option for a chosen line.
func (s *OptionSet) Resolve(display string) (Option, bool) {
	opt, ok := s.lookup[display]
	return opt, ok
}
