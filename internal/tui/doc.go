// SPDX-License-Identifier: MPL-2.0

// Package tui provides the in-process script picker, a Bubble Tea program
// around a bubbles list with fuzzy filtering.
package tui
