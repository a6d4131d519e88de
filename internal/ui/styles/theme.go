// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const (
	// MaxModalWidth caps the modal on wide terminals.
	MaxModalWidth = 100

	// MinModalWidth is the narrowest modal before it takes the full width.
	MinModalWidth = 40
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// BACKDROP STYLES
	// ==========================================================================

	App     lipgloss.Style
	Trigger lipgloss.Style
	Hint    lipgloss.Style

	// ==========================================================================
	// MODAL STYLES
	// ==========================================================================

	Modal     lipgloss.Style
	Separator lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Logo       lipgloss.Style
	HeaderLink lipgloss.Style

	// ==========================================================================
	// SEARCH BAR STYLES
	// ==========================================================================

	SearchBar         lipgloss.Style
	SearchBarFocused  lipgloss.Style
	SearchPrompt      lipgloss.Style
	SearchText        lipgloss.Style
	SearchPlaceholder lipgloss.Style
	SearchCursor      lipgloss.Style

	// ==========================================================================
	// SAMPLE STYLES
	// ==========================================================================

	SampleTitle    lipgloss.Style
	SampleItem     lipgloss.Style
	SampleSelected lipgloss.Style
	SampleIndex    lipgloss.Style

	// ==========================================================================
	// ANSWER STYLES
	// ==========================================================================

	Answer      lipgloss.Style
	Spinner     lipgloss.Style
	LoadingText lipgloss.Style

	// ==========================================================================
	// FOOTER STYLES
	// ==========================================================================

	Footer     lipgloss.Style
	FooterText lipgloss.Style
	PoweredBy  lipgloss.Style

	// ==========================================================================
	// STATUS STYLES
	// ==========================================================================

	StatusError lipgloss.Style
	StatusInfo  lipgloss.Style
	LinkStyle   lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Backdrop
	t.App = lipgloss.NewStyle()

	t.Trigger = lipgloss.NewStyle().
		Foreground(TextSecondary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 2)

	t.Hint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Modal
	t.Modal = lipgloss.NewStyle().
		Background(Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 1)

	t.Separator = lipgloss.NewStyle().
		Foreground(Overlay)

	// Header
	t.Logo = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.HeaderLink = lipgloss.NewStyle().
		Foreground(LinkColor).
		Underline(true)

	// Search bar
	t.SearchBar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay)

	t.SearchBarFocused = t.SearchBar.
		BorderForeground(Cyan)

	t.SearchPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.SearchText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.SearchPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.SearchCursor = lipgloss.NewStyle().
		Foreground(Purple)

	// Samples
	t.SampleTitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.SampleItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.SampleSelected = lipgloss.NewStyle().
		Foreground(Purple).
		Background(SurfaceBright).
		Bold(true).
		Padding(0, 1)

	t.SampleIndex = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Answer
	t.Answer = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Amber)

	t.LoadingText = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Footer
	t.Footer = lipgloss.NewStyle().
		Foreground(TextMuted).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay)

	t.FooterText = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.PoweredBy = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Status
	t.StatusError = lipgloss.NewStyle().
		Foreground(ErrorHighContrast).
		Bold(true)

	t.StatusInfo = lipgloss.NewStyle().
		Foreground(InfoHighContrast)

	t.LinkStyle = lipgloss.NewStyle().
		Foreground(LinkColor).
		Underline(true)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// ModalWidth returns the outer width of the modal: 80% of the terminal,
// capped at MaxModalWidth, or the whole terminal when that would be under
// MinModalWidth.
func (t *Theme) ModalWidth() int {
	if t.Width <= 0 {
		return MinModalWidth
	}
	w := t.Width * 8 / 10
	if w > MaxModalWidth {
		w = MaxModalWidth
	}
	if w < MinModalWidth {
		w = t.Width
	}
	return w
}

// ModalHeight returns the outer height of the modal.
func (t *Theme) ModalHeight() int {
	if t.Height <= 0 {
		return 20
	}
	h := t.Height * 8 / 10
	if h < 12 {
		h = t.Height
	}
	return h
}

// ContentWidth is the width available inside the modal border and padding.
func (t *Theme) ContentWidth() int {
	w := t.ModalWidth() - t.Modal.GetHorizontalFrameSize()
	if w < 1 {
		return 1
	}
	return w
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
