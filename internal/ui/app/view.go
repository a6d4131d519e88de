// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/askdocs/internal/ui/components"
	"github.com/jeranaias/askdocs/internal/ui/styles"
)

// Modal body rows above and below the content area.
const (
	headerLines    = 1
	separatorLines = 1
	barLines       = 2
	statusLines    = 1
	footerLines    = 2

	// samplesTop is the body line where the samples title is drawn.
	samplesTop = headerLines + separatorLines + barLines

	minContentHeight = 3
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the page, or the modal over it when open.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if !m.state.Open {
		return m.viewClosed()
	}
	return m.viewOpen()
}

func (m *Model) viewClosed() string {
	header := m.siteHeader.View()
	footer := m.siteFooter.View()

	midHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if midHeight < 1 {
		midHeight = 1
	}

	trigger := m.bar.ViewTrigger(m.cfg.Theme.Placeholder, "ctrl+k")
	r := components.PlaceRect(m.width, midHeight, trigger)
	r.Y += lipgloss.Height(header)
	m.trigger = r

	middle := lipgloss.Place(m.width, midHeight, lipgloss.Center, lipgloss.Center, trigger)
	return lipgloss.JoinVertical(lipgloss.Left, header, middle, footer)
}

func (m *Model) viewOpen() string {
	cw := m.theme.ContentWidth()
	h := m.contentHeight()

	var content string
	switch {
	case m.state.Output != "":
		content = m.answer.View()
	case m.state.Loading:
		content = m.spinner.View()
	default:
		content = m.samples.View()
	}
	content = lipgloss.NewStyle().Width(cw).Height(h).MaxHeight(h).Render(content)

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.modalHeader.View(),
		m.theme.Separator.Render(strings.Repeat("─", cw)),
		m.bar.View(),
		content,
		m.statusLine(cw),
		m.modalFooter.View(),
	)
	return m.modal.Render(body, m.width, m.height)
}

func (m *Model) statusLine(width int) string {
	line := lipgloss.NewStyle().MaxWidth(width).MaxHeight(statusLines)
	if m.status == "" {
		return line.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	if m.statusErr {
		return line.Render(m.theme.StatusError.Render(styles.StatusIndicators.Error + " " + m.status))
	}
	return line.Render(m.theme.StatusInfo.Render(styles.StatusIndicators.Info + " " + m.status))
}

// contentHeight is the row budget for samples, spinner or answer.
func (m *Model) contentHeight() int {
	fixed := samplesTop + statusLines + footerLines
	h := m.theme.ModalHeight() - m.theme.Modal.GetVerticalFrameSize() - fixed
	if h < minContentHeight {
		return minContentHeight
	}
	return h
}

// showingSamples reports whether the content area lists the samples.
func (m *Model) showingSamples() bool {
	return m.state.Output == "" && !m.state.Loading
}
