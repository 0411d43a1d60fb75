// SPDX-License-Identifier: MPL-2.0

// Package issue provides the error taxonomy and user-facing help for runpick.
//
// Every failure in the pipeline is an *Error tagged with a Kind. Only
// KindManifestParse is recovered locally; the other kinds end the run. The
// CLI layer maps a Kind to an exit code and, where one exists, a catalog
// Issue rendered as Markdown.
package issue
