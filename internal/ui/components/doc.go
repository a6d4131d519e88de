// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the visual UI components for the askdocs TUI.

Components are plain structs with View methods; the ones that take input
(SearchBar, Spinner, Answer) also have Bubble Tea style Update methods. None
of them owns search state: the app model copies each store snapshot into
them.

# Components

  - SearchBar - single line input with OnChange and OnClick hooks
  - Spinner - bubbles spinner with a "Loading..." label
  - Samples - numbered sample questions, truncated to the modal width
  - Header - logo and the project and chat links
  - Footer - "Powered by" credit and the site footer text
  - Answer - scrollable viewport showing rendered markdown
  - Modal - centers a body over the backdrop and maps clicks into it

# Usage

	bar := components.NewSearchBar(theme, cfg.Theme.ModalPlaceholder)
	bar.OnChange = store.SetPrompt
	cmd := bar.Focus()

	modal := components.NewModal(theme)
	view := modal.Render(body, width, height)
*/
package components
