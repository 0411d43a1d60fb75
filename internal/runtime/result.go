// SPDX-License-Identifier: MPL-2.0

package runtime

import "github.com/invowk/runpick/pkg/types"

// Result is the outcome of one script run.
type Result struct {
	// ExitCode is the code the caller should exit with.
	ExitCode types.ExitCode
	// Error is set when the child could not be started or waited on.
	// A child that ran and exited nonzero is not an error.
	Error error
}

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code types.ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewExitCodeResult creates a Result for a child that ran to completion.
func NewExitCodeResult(code types.ExitCode) *Result {
	return &Result{ExitCode: code}
}

// Success reports whether the child ran and exited zero.
func (r *Result) Success() bool {
	return r.Error == nil && r.ExitCode.IsSuccess()
}
