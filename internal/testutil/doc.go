// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Besides environment and directory helpers (MustSetenv, MustChdir), it builds
// fixtures for the pipeline: manifest trees (WriteManifest) and fake external
// tools placed on PATH (WriteFakeTool, PrependPath).
package testutil
