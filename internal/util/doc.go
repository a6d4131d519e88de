// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds small helpers shared by askdocs packages.
//
// # File Operations
//
//   - AtomicWriteFile: crash-safe writes for the config file and exports
//
// # Display Helpers
//
//   - TruncateWidth: cell-width aware truncation for sample questions and status lines
//   - Clip: prompt excerpts for log fields
//   - Plural: "1 entry" / "3 entries" style labels
package util
