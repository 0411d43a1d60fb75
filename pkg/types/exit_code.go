// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// ExitSuccess is the exit code of a script that completed normally.
	ExitSuccess ExitCode = 0
	// ExitFailure is the exit code used for every launcher-side failure
	// (tool missing, nothing to select, selection cancelled).
	ExitFailure ExitCode = 1

	// signalExitBase is added to a signal number to form the exit code a
	// POSIX shell reports for a child terminated by that signal.
	signalExitBase = 128
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode represents a process exit status code.
	// Exit codes are in the range 0-255 on POSIX systems.
	// The zero value (0) means success.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode is outside the
	// valid range (0-255).
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// ExitCodeFromSignal returns the shell-style exit code (128+n) for a child
// killed by signal n.
func ExitCodeFromSignal(signal int) ExitCode {
	return ExitCode(signalExitBase + signal)
}

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode so callers can use errors.Is for programmatic detection.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate returns an error if the ExitCode is outside the valid range (0-255).
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == ExitSuccess }

// IsSignal reports whether the code follows the 128+n convention for a
// signal-terminated child.
func (c ExitCode) IsSignal() bool { return c > signalExitBase && c <= 255 }

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
