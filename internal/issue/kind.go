// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// KindUnknown is the zero Kind; it is never produced by this package.
	KindUnknown Kind = iota
	// KindToolInvocation: an external utility is missing, failed to start,
	// or exited unexpectedly.
	KindToolInvocation
	// KindManifestParse: a single manifest could not be read or parsed.
	KindManifestParse
	// KindEmptyResult: no scripts were found across all manifests.
	KindEmptyResult
	// KindUserCancelled: the interactive selection produced no choice.
	KindUserCancelled
	// KindSelectionIntegrity: the chosen line has no backing option entry.
	KindSelectionIntegrity
)

var (
	// ErrNoScripts is the cause carried by KindEmptyResult errors.
	ErrNoScripts = errors.New("no scripts found")
	// ErrNoSelection is the cause carried by KindUserCancelled errors.
	ErrNoSelection = errors.New("no selection made")
	// ErrUnrecognizedOption is the cause carried by KindSelectionIntegrity errors.
	ErrUnrecognizedOption = errors.New("option not recognized")
)

type (
	// Kind classifies a pipeline failure.
	Kind int

	// ToolExitError is the cause of a KindToolInvocation error when the tool
	// started but exited with an unexpected status.
	ToolExitError struct {
		ExitCode int
		// Stderr is the tool's trimmed diagnostic output, if it was captured.
		Stderr string
	}

	// Error is a pipeline failure tagged with its Kind.
	Error struct {
		Kind Kind
		// Resource names the tool, manifest path or option involved (optional).
		Resource string
		Cause    error
	}
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindToolInvocation:
		return "tool_invocation"
	case KindManifestParse:
		return "manifest_parse"
	case KindEmptyResult:
		return "empty_result"
	case KindUserCancelled:
		return "user_cancelled"
	case KindSelectionIntegrity:
		return "selection_integrity"
	default:
		return "unknown"
	}
}

// IsFatal reports whether an error of this kind ends the run.
func (k Kind) IsFatal() bool {
	return k != KindManifestParse
}

// NewToolError reports that the external tool could not be run.
func NewToolError(tool string, cause error) *Error {
	return &Error{Kind: KindToolInvocation, Resource: tool, Cause: cause}
}

// NewManifestError reports an unreadable or malformed manifest.
func NewManifestError(path string, cause error) *Error {
	return &Error{Kind: KindManifestParse, Resource: path, Cause: cause}
}

// NewEmptyResultError reports that no scripts were discovered.
func NewEmptyResultError() *Error {
	return &Error{Kind: KindEmptyResult, Cause: ErrNoScripts}
}

// NewCancelledError reports that the operator made no selection.
func NewCancelledError() *Error {
	return &Error{Kind: KindUserCancelled, Cause: ErrNoSelection}
}

// NewIntegrityError reports a selected line with no backing entry.
func NewIntegrityError(selected string) *Error {
	return &Error{Kind: KindSelectionIntegrity, Resource: selected, Cause: ErrUnrecognizedOption}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var msg strings.Builder

	switch e.Kind {
	case KindToolInvocation:
		msg.WriteString("failed to run ")
		msg.WriteString(e.Resource)
	case KindManifestParse:
		msg.WriteString("failed to read manifest ")
		msg.WriteString(e.Resource)
	default:
		if e.Cause != nil {
			msg.WriteString(e.Cause.Error())
		} else {
			msg.WriteString(e.Kind.String())
		}
		if e.Resource != "" {
			msg.WriteString(": ")
			msg.WriteString(e.Resource)
		}
		return msg.String()
	}

	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}
	return msg.String()
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.Cause }

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Error implements the error interface.
func (e *ToolExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("exit status %d", e.ExitCode)
	}
	return fmt.Sprintf("exit status %d: %s", e.ExitCode, e.Stderr)
}
