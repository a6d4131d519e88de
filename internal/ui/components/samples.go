// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/jeranaias/askdocs/internal/ui/styles"
	"github.com/jeranaias/askdocs/internal/util"
)

// SamplesTitle is shown above the sample questions.
const SamplesTitle = "Try one of these samples:"

// =============================================================================
// SAMPLES COMPONENT
// =============================================================================

// Samples lists the configured sample questions. Items are numbered from 1
// so the number keys can pick them.
type Samples struct {
	items    []string
	selected int
	width    int
	theme    *styles.Theme
}

// NewSamples creates the list with nothing selected.
func NewSamples(theme *styles.Theme, items []string) *Samples {
	return &Samples{
		items:    append([]string(nil), items...),
		selected: -1,
		width:    60,
		theme:    theme,
	}
}

// SetItems replaces the questions and clears the selection.
func (s *Samples) SetItems(items []string) {
	s.items = append([]string(nil), items...)
	s.selected = -1
}

// Items returns the questions.
func (s *Samples) Items() []string {
	return append([]string(nil), s.items...)
}

// Len returns the number of questions.
func (s *Samples) Len() int {
	return len(s.items)
}

// SetWidth sets the width items are truncated to.
func (s *Samples) SetWidth(width int) {
	s.width = width
}

// Selected returns the highlighted index, or -1.
func (s *Samples) Selected() int {
	return s.selected
}

// Select highlights item i; out of range clears the highlight.
func (s *Samples) Select(i int) {
	if i < 0 || i >= len(s.items) {
		s.selected = -1
		return
	}
	s.selected = i
}

// Next moves the highlight down, wrapping around.
func (s *Samples) Next() {
	if len(s.items) == 0 {
		return
	}
	s.selected = (s.selected + 1) % len(s.items)
}

// Prev moves the highlight up, wrapping around.
func (s *Samples) Prev() {
	if len(s.items) == 0 {
		return
	}
	if s.selected <= 0 {
		s.selected = len(s.items) - 1
		return
	}
	s.selected--
}

// Height is the number of lines View renders.
func (s *Samples) Height() int {
	if len(s.items) == 0 {
		return 0
	}
	return len(s.items) + 1
}

// ItemAt maps a line of the rendered list to an item index. Line 0 is the
// title.
func (s *Samples) ItemAt(line int) (int, bool) {
	i := line - 1
	if i < 0 || i >= len(s.items) {
		return -1, false
	}
	return i, true
}

// View renders the title and the numbered questions.
func (s *Samples) View() string {
	if len(s.items) == 0 {
		return ""
	}

	lines := make([]string, 0, len(s.items)+1)
	lines = append(lines, s.theme.SampleTitle.Render(SamplesTitle))

	for i, item := range s.items {
		index := strconv.Itoa(i+1) + "."
		// index, a space, and the item padding on both sides
		room := s.width - len(index) - 3
		text := util.TruncateWidth(item, room)

		style := s.theme.SampleItem
		if i == s.selected {
			style = s.theme.SampleSelected
		}
		lines = append(lines, s.theme.SampleIndex.Render(index)+" "+style.Render(text))
	}
	return strings.Join(lines, "\n")
}
