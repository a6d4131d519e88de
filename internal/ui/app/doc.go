// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package app is the Bubble Tea program behind the askdocs TUI.

The Model owns no search state. Every keystroke, click and submit is
forwarded to a search.Store, and the screen is redrawn from the store's
snapshots. Store notifications reach the program through a Bridge: the
subscriber posts to a one slot mailbox and a re-armed command turns it into
a StateMsg, so notifications never block the store.

# Keys

	ctrl+k, /, enter   open the search modal
	esc                close the modal and reset it
	enter              submit the prompt
	1-9                pick a sample question while the prompt is empty
	up/down, tab       highlight and pick a sample question
	pgup/pgdown        scroll the answer
	q                  quit while the modal is closed
	ctrl+c             quit

# Usage

	err := app.Run(ctx, app.RunOptions{
		Config:     cfg,
		Store:      store,
		Renderer:   renderer,
		ConfigPath: path,
	})
*/
package app
