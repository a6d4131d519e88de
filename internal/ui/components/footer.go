// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/askdocs/internal/ui/styles"
)

// =============================================================================
// FOOTER COMPONENT
// =============================================================================

// Footer credits the answering backend and shows the site footer text.
type Footer struct {
	theme         *styles.Theme
	width         int
	text          string
	poweredBy     string
	poweredByLink string
}

// NewFooter creates a new Footer.
func NewFooter(theme *styles.Theme, text, poweredBy, poweredByLink string) *Footer {
	return &Footer{
		theme:         theme,
		width:         80,
		text:          text,
		poweredBy:     poweredBy,
		poweredByLink: poweredByLink,
	}
}

// SetWidth sets the footer width.
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetText replaces the footer strings.
func (f *Footer) SetText(text, poweredBy, poweredByLink string) {
	f.text = text
	f.poweredBy = poweredBy
	f.poweredByLink = poweredByLink
}

// View renders the credit on the left and the footer text on the right.
func (f *Footer) View() string {
	left := f.theme.PoweredBy.Render(f.poweredBy)
	if f.poweredByLink != "" {
		link := f.theme.LinkStyle.Render(f.poweredByLink)
		if lipgloss.Width(left)+lipgloss.Width(link)+1 <= f.width {
			left += " " + link
		}
	}

	line := left
	if f.text != "" {
		right := f.theme.FooterText.Render(f.text)
		if gap := f.width - lipgloss.Width(left) - lipgloss.Width(right); gap >= 2 {
			line = left + strings.Repeat(" ", gap) + right
		}
	}
	return f.theme.Footer.Width(f.width).Render(line)
}
