// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/askdocs/internal/ui/styles"
)

// =============================================================================
// MODAL COMPONENT
// =============================================================================

// Rect is a screen rectangle in cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) is inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Modal draws a bordered box centered over the backdrop.
type Modal struct {
	theme *styles.Theme

	// Set by Render.
	box     Rect
	content Rect
}

// NewModal creates a new Modal.
func NewModal(theme *styles.Theme) *Modal {
	return &Modal{theme: theme}
}

// Render boxes body at the theme's modal width and centers it in a
// width x height screen.
func (m *Modal) Render(body string, width, height int) string {
	style := m.theme.Modal.
		Width(m.theme.ModalWidth() - m.theme.Modal.GetHorizontalBorderSize())
	box := style.Render(body)

	m.box = PlaceRect(width, height, box)
	boxH := m.box.H
	m.content = Rect{
		X: m.box.X + style.GetBorderLeftSize() + style.GetPaddingLeft(),
		Y: m.box.Y + style.GetBorderTopSize() + style.GetPaddingTop(),
		W: m.theme.ContentWidth(),
		H: boxH - style.GetVerticalFrameSize(),
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceBackground(styles.Backdrop))
}

// Box returns where the last Render put the modal.
func (m *Modal) Box() Rect {
	return m.box
}

// ContentOrigin returns the screen cell of the body's top-left corner.
func (m *Modal) ContentOrigin() (x, y int) {
	return m.content.X, m.content.Y
}

// BodyLine maps a screen row to a line of the body, or -1 outside it.
func (m *Modal) BodyLine(x, y int) int {
	if !m.content.Contains(x, y) {
		return -1
	}
	return y - m.content.Y
}

// PlaceRect returns where lipgloss.Place centers content in a width x
// height area.
func PlaceRect(width, height int, content string) Rect {
	w, h := lipgloss.Size(content)
	return Rect{
		X: placeOffset(width, w),
		Y: placeOffset(height, h),
		W: w,
		H: h,
	}
}

// placeOffset matches the leading gap lipgloss.Place uses for centering.
func placeOffset(outer, inner int) int {
	gap := outer - inner
	if gap <= 0 {
		return 0
	}
	return gap - int(math.Round(float64(gap)*0.5))
}
