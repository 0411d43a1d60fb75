// SPDX-License-Identifier: MPL-2.0

// Package config handles runpick configuration using Viper with CUE as the file format.
//
// Configuration is read from config.cue in the platform config directory
// (~/.config/runpick on Linux, ~/Library/Application Support/runpick on macOS,
// %APPDATA%\runpick on Windows), falling back to runpick.cue in the working
// directory. Without a file the built-in defaults reproduce the classic
// fd + fzf + npm pipeline. Files are validated against the embedded
// config_schema.cue before being merged over the defaults.
package config
