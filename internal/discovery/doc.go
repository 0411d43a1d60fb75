// SPDX-License-Identifier: MPL-2.0

// Package discovery locates manifest files by invoking an external file
// finder (fd by default) once and reading the paths it prints.
package discovery
