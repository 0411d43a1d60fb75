// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Color palette shared by all CLI output. Tuned for dark terminal backgrounds.
const (
	// ColorPrimary is purple: titles and the picker header.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray: subtitles and secondary text.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorError is red: fatal errors.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber: recoverable problems such as a bad config file.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is blue: script names and directories.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	// TitleStyle is for primary headers and section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// ErrorStyle is for error messages and failure indicators.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for warning messages and caution indicators.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// CmdStyle is for script names and paths.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)
)
