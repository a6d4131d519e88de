// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the askdocs command line.
//
// Running askdocs with no subcommand starts the full screen search modal.
// The other commands reach the same backend without the TUI.
//
// # Commands
//
//   - ask: Ask one question and stream the answer to stdout
//   - chat: Line oriented session with input history and sample questions
//   - history: List, show or clear answered questions
//   - config: Show, locate, create, validate and edit the config file
//   - version: Print build information
//
// # Usage
//
//	root := cli.NewRootCmd()
//	if err := root.ExecuteContext(ctx); err != nil {
//	    // report and exit non-zero
//	}
//
// Global flags --config, --base-url and --log-level apply to every command.
package cli
