// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/askdocs/internal/ui/styles"
)

// =============================================================================
// SEARCH BAR COMPONENT
// =============================================================================

// SearchBar is a single line text input. It holds no search state of its
// own beyond the text being edited.
type SearchBar struct {
	input   textinput.Model
	theme   *styles.Theme
	width   int
	focused bool

	// OnChange is called with the new value after every edit.
	OnChange func(string)

	// OnClick is called by Click.
	OnClick func()
}

// NewSearchBar creates a SearchBar showing placeholder when empty.
func NewSearchBar(theme *styles.Theme, placeholder string) *SearchBar {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "? "
	ti.Width = 40

	ti.PromptStyle = theme.SearchPrompt
	ti.TextStyle = theme.SearchText
	ti.PlaceholderStyle = theme.SearchPlaceholder
	ti.Cursor.Style = theme.SearchCursor

	return &SearchBar{
		input: ti,
		theme: theme,
		width: 44,
	}
}

// Focus focuses the input.
func (b *SearchBar) Focus() tea.Cmd {
	b.focused = true
	return b.input.Focus()
}

// Blur removes focus from the input.
func (b *SearchBar) Blur() {
	b.focused = false
	b.input.Blur()
}

// Focused returns whether the input is focused.
func (b *SearchBar) Focused() bool {
	return b.focused
}

// SetWidth sets the outer width.
func (b *SearchBar) SetWidth(width int) {
	b.width = width
	// Account for the prompt and cursor
	inputWidth := width - len(b.input.Prompt) - 1
	if inputWidth < 10 {
		inputWidth = 10
	}
	b.input.Width = inputWidth
}

// SetPlaceholder sets the placeholder text.
func (b *SearchBar) SetPlaceholder(placeholder string) {
	b.input.Placeholder = placeholder
}

// SetMaxChars sets the character limit; 0 means none.
func (b *SearchBar) SetMaxChars(max int) {
	b.input.CharLimit = max
}

// Value returns the current text.
func (b *SearchBar) Value() string {
	return b.input.Value()
}

// SetValue replaces the text without calling OnChange. Used to mirror the
// store's prompt back into the input.
func (b *SearchBar) SetValue(value string) {
	if value == b.input.Value() {
		return
	}
	b.input.SetValue(value)
	b.input.CursorEnd()
}

// Click runs OnClick.
func (b *SearchBar) Click() {
	if b.OnClick != nil {
		b.OnClick()
	}
}

// Update handles key messages and reports edits through OnChange.
func (b *SearchBar) Update(msg tea.Msg) (*SearchBar, tea.Cmd) {
	before := b.input.Value()

	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)

	if after := b.input.Value(); after != before && b.OnChange != nil {
		b.OnChange(after)
	}
	return b, cmd
}

// View renders the input with an underline that lights up when focused.
func (b *SearchBar) View() string {
	style := b.theme.SearchBar
	if b.focused {
		style = b.theme.SearchBarFocused
	}
	return style.Width(b.width).Render(b.input.View())
}

// ViewTrigger renders the closed search bar shown on the backdrop.
func (b *SearchBar) ViewTrigger(placeholder, hint string) string {
	return lipgloss.JoinHorizontal(lipgloss.Center,
		b.theme.Trigger.Render(b.theme.SearchPlaceholder.Render(placeholder)),
		"  ",
		b.theme.Hint.Render(hint),
	)
}
