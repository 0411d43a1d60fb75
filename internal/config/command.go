// SPDX-License-Identifier: MPL-2.0

package config

import (
	"mvdan.cc/sh/v3/shell"
)

// String returns the raw command line.
func (c Command) String() string { return string(c) }

// Args splits the command line into argv using POSIX shell word rules
// (quotes, escapes and $VAR expansion). The result always has at least one
// element.
func (c Command) Args() ([]string, error) {
	return c.args("command")
}

func (c Command) args(field string) ([]string, error) {
	fields, err := shell.Fields(string(c), nil)
	if err != nil {
		return nil, &InvalidCommandError{Field: field, Value: c, Cause: err}
	}
	if len(fields) == 0 {
		return nil, &InvalidCommandError{Field: field, Value: c}
	}
	return fields, nil
}
