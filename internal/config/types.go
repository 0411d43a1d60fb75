// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"

	"github.com/invowk/runpick/pkg/manifest"

	"github.com/charmbracelet/lipgloss"
)

const (
	// SelectorBackendFzf pipes options through an external fzf process.
	SelectorBackendFzf SelectorBackend = "fzf"
	// SelectorBackendBuiltin uses the in-process list picker.
	SelectorBackendBuiltin SelectorBackend = "builtin"

	// ColorSchemeAuto picks dark or light from the terminal background.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces the dark palette.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces the light palette.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// hasDarkBackground queries the terminal; replaced in tests.
	hasDarkBackground = lipgloss.HasDarkBackground

	// ErrInvalidSelectorBackend is returned when a SelectorBackend value is not recognized.
	ErrInvalidSelectorBackend = errors.New("invalid selector backend")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidCommand is returned when a configured command line is empty or unparsable.
	ErrInvalidCommand = errors.New("invalid command")
)

type (
	// SelectorBackend chooses how the option list is presented.
	SelectorBackend string

	// InvalidSelectorBackendError wraps ErrInvalidSelectorBackend.
	InvalidSelectorBackendError struct {
		Value SelectorBackend
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError wraps ErrInvalidColorScheme.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// Command is a command line such as "npm --silent". It is split into
	// argv with shell word rules by Args.
	Command string

	// InvalidCommandError wraps ErrInvalidCommand.
	InvalidCommandError struct {
		Field string
		Value Command
		Cause error
	}

	// Config is the complete runpick configuration.
	Config struct {
		Finder   FinderConfig   `json:"finder" mapstructure:"finder"`
		Selector SelectorConfig `json:"selector" mapstructure:"selector"`
		Runner   RunnerConfig   `json:"runner" mapstructure:"runner"`
		UI       UIConfig       `json:"ui" mapstructure:"ui"`
	}

	// FinderConfig configures manifest discovery.
	FinderConfig struct {
		Command  Command  `json:"command" mapstructure:"command"`
		Manifest string   `json:"manifest" mapstructure:"manifest"`
		Exclude  []string `json:"exclude" mapstructure:"exclude"`
	}

	// SelectorConfig configures interactive selection.
	SelectorConfig struct {
		Backend SelectorBackend `json:"backend" mapstructure:"backend"`
		Command Command         `json:"command" mapstructure:"command"`
	}

	// RunnerConfig configures the package script runner.
	RunnerConfig struct {
		Command Command `json:"command" mapstructure:"command"`
	}

	// UIConfig configures output.
	UIConfig struct {
		Verbose     bool        `json:"verbose" mapstructure:"verbose"`
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
	}
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Finder: FinderConfig{
			Command:  "fd",
			Manifest: manifest.FileName,
			Exclude:  []string{"node_modules"},
		},
		Selector: SelectorConfig{
			Backend: SelectorBackendFzf,
			Command: "fzf",
		},
		Runner: RunnerConfig{
			Command: "npm",
		},
		UI: UIConfig{
			Verbose:     false,
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// Validate checks every field CUE cannot fully check: commands must split
// into at least one word.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Selector.Backend.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, err)
	}
	commands := []struct {
		field string
		cmd   Command
	}{
		{"finder.command", c.Finder.Command},
		{"selector.command", c.Selector.Command},
		{"runner.command", c.Runner.Command},
	}
	for _, fc := range commands {
		if _, err := fc.cmd.args(fc.field); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Validate returns an error if the backend is not recognized.
func (b SelectorBackend) Validate() error {
	switch b {
	case SelectorBackendFzf, SelectorBackendBuiltin:
		return nil
	default:
		return &InvalidSelectorBackendError{Value: b}
	}
}

// Error implements the error interface.
func (e *InvalidSelectorBackendError) Error() string {
	return fmt.Sprintf("invalid selector backend %q (valid: fzf, builtin)", e.Value)
}

// Unwrap returns ErrInvalidSelectorBackend for errors.Is() compatibility.
func (e *InvalidSelectorBackendError) Unwrap() error { return ErrInvalidSelectorBackend }

// Validate returns an error if the scheme is not recognized.
func (s ColorScheme) Validate() error {
	switch s {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: s}
	}
}

// GlamourStyle returns the glamour style name for this scheme. Auto asks the
// terminal for its background color.
func (s ColorScheme) GlamourStyle() string {
	switch s {
	case ColorSchemeLight:
		return "light"
	case ColorSchemeDark:
		return "dark"
	}
	if hasDarkBackground() {
		return "dark"
	}
	return "light"
}

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Error implements the error interface.
func (e *InvalidCommandError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: invalid command %q: %v", e.Field, e.Value, e.Cause)
	}
	return fmt.Sprintf("%s: command must not be empty", e.Field)
}

// Unwrap returns ErrInvalidCommand for errors.Is() compatibility.
func (e *InvalidCommandError) Unwrap() error { return ErrInvalidCommand }
