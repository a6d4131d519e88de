// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/askdocs/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header shows the site logo with the project, chat and docs repository
// links.
type Header struct {
	theme       *styles.Theme
	width       int
	logo        string
	projectLink string
	chatLink    string
	repoLink    string
}

// NewHeader creates a new Header.
func NewHeader(theme *styles.Theme, logo, projectLink, chatLink, repoLink string) *Header {
	return &Header{
		theme:       theme,
		width:       80,
		logo:        logo,
		projectLink: projectLink,
		chatLink:    chatLink,
		repoLink:    repoLink,
	}
}

// SetWidth sets the header width.
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetLinks replaces the logo and links, e.g. after a config reload.
func (h *Header) SetLinks(logo, projectLink, chatLink, repoLink string) {
	h.logo = logo
	h.projectLink = projectLink
	h.chatLink = chatLink
	h.repoLink = repoLink
}

// View renders the logo on the left and the links on the right. Links that
// do not fit are dropped from the right: docs repository, then chat.
func (h *Header) View() string {
	logo := h.theme.Logo.Render(h.logo)

	var links []string
	if h.projectLink != "" {
		links = append(links, h.theme.HeaderLink.Render(h.projectLink))
	}
	if h.chatLink != "" {
		links = append(links, h.theme.HeaderLink.Render(h.chatLink))
	}
	if h.repoLink != "" {
		links = append(links, h.theme.HeaderLink.Render(h.repoLink))
	}

	for len(links) > 0 {
		right := strings.Join(links, "  ")
		gap := h.width - lipgloss.Width(logo) - lipgloss.Width(right)
		if gap >= 2 {
			return logo + strings.Repeat(" ", gap) + right
		}
		links = links[:len(links)-1]
	}
	return logo
}
