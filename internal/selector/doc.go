// SPDX-License-Identifier: MPL-2.0

// Package selector flattens manifest records into display lines, hands them
// to an interactive picker, and resolves the chosen line back to the
// directory and script it came from.
//
// Two pickers are available: an external fzf-compatible process
// (FzfSelector) and the in-process list from package tui (BuiltinSelector).
package selector
