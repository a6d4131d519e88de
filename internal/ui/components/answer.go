// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/askdocs/internal/render"
	"github.com/jeranaias/askdocs/internal/ui/styles"
)

// =============================================================================
// ANSWER COMPONENT
// =============================================================================

// Answer shows the streamed answer as rendered markdown in a scrollable
// viewport. While following, new content keeps the view at the bottom;
// scrolling up stops following until the bottom is reached again.
type Answer struct {
	viewport viewport.Model
	renderer *render.Renderer
	theme    *styles.Theme

	markdown string
	follow   bool
}

// NewAnswer creates an empty Answer. A nil renderer shows raw markdown.
func NewAnswer(theme *styles.Theme, renderer *render.Renderer) *Answer {
	vp := viewport.New(60, 10)
	vp.MouseWheelEnabled = true

	return &Answer{
		viewport: vp,
		renderer: renderer,
		theme:    theme,
		follow:   true,
	}
}

// SetSize sets the viewport size and re-renders for the new width.
func (a *Answer) SetSize(width, height int) {
	if height < 1 {
		height = 1
	}
	a.viewport.Width = width
	a.viewport.Height = height
	if a.renderer != nil {
		a.renderer.SetWidth(width)
	}
	a.refresh()
}

// SetMarkdown replaces the answer text.
func (a *Answer) SetMarkdown(md string) {
	if md == a.markdown {
		return
	}
	if md == "" {
		a.follow = true
	}
	a.markdown = md
	a.refresh()
}

// Refresh re-renders the current text, e.g. after the renderer changed.
func (a *Answer) Refresh() {
	a.refresh()
}

// Markdown returns the raw answer text.
func (a *Answer) Markdown() string {
	return a.markdown
}

// Empty reports whether there is nothing to show.
func (a *Answer) Empty() bool {
	return a.markdown == ""
}

func (a *Answer) refresh() {
	content := a.markdown
	if a.renderer != nil {
		content = a.renderer.Render(a.markdown)
	}
	a.viewport.SetContent(a.theme.Answer.Render(content))
	if a.follow {
		a.viewport.GotoBottom()
	}
}

// ScrollUp scrolls up n lines.
func (a *Answer) ScrollUp(n int) {
	a.viewport.LineUp(n)
	a.follow = a.viewport.AtBottom()
}

// ScrollDown scrolls down n lines.
func (a *Answer) ScrollDown(n int) {
	a.viewport.LineDown(n)
	a.follow = a.viewport.AtBottom()
}

// Following reports whether new content scrolls into view.
func (a *Answer) Following() bool {
	return a.follow
}

// Update passes scroll keys and mouse wheel events to the viewport.
func (a *Answer) Update(msg tea.Msg) (*Answer, tea.Cmd) {
	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	a.follow = a.viewport.AtBottom()
	return a, cmd
}

// View renders the viewport.
func (a *Answer) View() string {
	return a.viewport.View()
}
