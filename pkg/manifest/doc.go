// SPDX-License-Identifier: MPL-2.0

// Package manifest extracts script declarations from package.json files.
//
// Extraction is deliberately forgiving: an unreadable or malformed manifest
// yields a per-file error and never aborts the batch, and a manifest without
// a "scripts" object simply contributes nothing.
package manifest
