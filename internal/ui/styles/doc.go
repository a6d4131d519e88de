// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the askdocs TUI.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection.

# Color System (colors.go)

  - Purple - Primary accent, logo and selected samples
  - Cyan - Brand color, prompt marker and links
  - Emerald - Success states
  - Amber - Warnings and the loading indicator
  - Rose - Errors

Text colors step down from TextPrimary through TextSecondary to TextMuted.
Surface colors layer the backdrop, the modal and its highlights.

# Theme (theme.go)

A Theme groups the lipgloss styles of one screen: the backdrop with the
search trigger, and the modal with its header, search bar, samples, answer
and footer.

	theme := styles.NewTheme()
	theme.SetSize(msg.Width, msg.Height)
	box := theme.Modal.Width(theme.ModalWidth()).Render(body)

# Accessibility

Status messages pair a color with an ASCII indicator ([OK], [X], [!], [i]),
and links are underlined, so nothing depends on color alone.
*/
package styles
