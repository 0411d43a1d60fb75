// SPDX-License-Identifier: MPL-2.0

// Package runtime runs a package script as a child process attached to the
// caller's terminal and reports its exit code.
package runtime
