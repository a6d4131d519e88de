// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/askdocs/internal/render"
	"github.com/jeranaias/askdocs/internal/ui/styles"
)

func typeRunes(b *SearchBar, s string) {
	for _, r := range s {
		b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// =============================================================================
// SEARCH BAR TESTS
// =============================================================================

func TestSearchBar_OnChange(t *testing.T) {
	bar := NewSearchBar(styles.NewTheme(), "Search...")
	bar.Focus()

	var changes []string
	bar.OnChange = func(v string) { changes = append(changes, v) }

	typeRunes(bar, "hi")
	if got := bar.Value(); got != "hi" {
		t.Fatalf("Value() = %q, want %q", got, "hi")
	}
	if len(changes) != 2 || changes[1] != "hi" {
		t.Errorf("OnChange calls = %q", changes)
	}

	bar.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if changes[len(changes)-1] != "h" {
		t.Errorf("last OnChange after backspace = %q", changes[len(changes)-1])
	}
}

func TestSearchBar_SetValueIsSilent(t *testing.T) {
	bar := NewSearchBar(styles.NewTheme(), "Search...")
	called := false
	bar.OnChange = func(string) { called = true }

	bar.SetValue("What is Embedbase?")

	if called {
		t.Error("SetValue should not call OnChange")
	}
	if bar.Value() != "What is Embedbase?" {
		t.Errorf("Value() = %q", bar.Value())
	}
}

func TestSearchBar_Click(t *testing.T) {
	bar := NewSearchBar(styles.NewTheme(), "Search...")
	bar.Click() // no handler is fine

	clicks := 0
	bar.OnClick = func() { clicks++ }
	bar.Click()

	if clicks != 1 {
		t.Errorf("OnClick called %d times", clicks)
	}
}

func TestSearchBar_Focus(t *testing.T) {
	bar := NewSearchBar(styles.NewTheme(), "Search...")
	if bar.Focused() {
		t.Error("new bar should not be focused")
	}
	bar.Focus()
	if !bar.Focused() {
		t.Error("Focus() did not focus")
	}
	bar.Blur()
	if bar.Focused() {
		t.Error("Blur() did not blur")
	}
}

func TestSearchBar_ViewShowsPlaceholder(t *testing.T) {
	bar := NewSearchBar(styles.NewTheme(), "Ask a question...")
	bar.SetWidth(50)

	if !strings.Contains(bar.View(), "Ask a question") {
		t.Errorf("View() missing placeholder:\n%s", bar.View())
	}
	if !strings.Contains(bar.ViewTrigger("Search...", "ctrl+k"), "ctrl+k") {
		t.Error("ViewTrigger() missing hint")
	}
}

// =============================================================================
// SPINNER TESTS
// =============================================================================

func TestSpinner_Lifecycle(t *testing.T) {
	s := NewSpinner(styles.NewTheme())

	if s.View() != "" {
		t.Error("inactive spinner should render nothing")
	}

	if cmd := s.Start(); cmd == nil {
		t.Error("Start() should return a tick command")
	}
	if cmd := s.Start(); cmd != nil {
		t.Error("second Start() should not start another tick loop")
	}
	if !s.IsActive() {
		t.Error("spinner should be active")
	}
	if !strings.Contains(s.View(), "Loading...") {
		t.Errorf("View() = %q, want Loading...", s.View())
	}

	if strings.Contains(s.View(), "(0s)") {
		t.Errorf("View() shows a timer before SetShowTimer: %q", s.View())
	}

	s.SetShowTimer(true)
	if !strings.Contains(s.View(), "(0s)") {
		t.Errorf("View() = %q, want elapsed time", s.View())
	}

	s.Stop()
	if _, cmd := s.Update(nil); cmd != nil {
		t.Error("stopped spinner should not keep ticking")
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{1500 * time.Millisecond, "1s"},
		{59 * time.Second, "59s"},
		{61 * time.Second, "1m 1s"},
	}
	for _, tt := range tests {
		if got := formatElapsed(tt.d); got != tt.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

// =============================================================================
// SAMPLES TESTS
// =============================================================================

func TestSamples_View(t *testing.T) {
	s := NewSamples(styles.NewTheme(), []string{"What is Embedbase?", "How do I add data?"})
	view := s.View()

	if !strings.Contains(view, SamplesTitle) {
		t.Errorf("View() missing title:\n%s", view)
	}
	if !strings.Contains(view, "1.") || !strings.Contains(view, "What is Embedbase?") {
		t.Errorf("View() missing first sample:\n%s", view)
	}
	if s.Height() != 3 {
		t.Errorf("Height() = %d, want 3", s.Height())
	}
}

func TestSamples_Empty(t *testing.T) {
	s := NewSamples(styles.NewTheme(), nil)
	if s.View() != "" || s.Height() != 0 {
		t.Error("empty samples should render nothing")
	}
	s.Next()
	if s.Selected() != -1 {
		t.Error("Next() on empty list should keep nothing selected")
	}
}

func TestSamples_Truncates(t *testing.T) {
	s := NewSamples(styles.NewTheme(), []string{strings.Repeat("long question ", 20)})
	s.SetWidth(30)

	for _, line := range strings.Split(s.View(), "\n")[1:] {
		if w := lipgloss.Width(line); w > 30 {
			t.Errorf("line width %d exceeds 30: %q", w, line)
		}
	}
}

func TestSamples_Navigation(t *testing.T) {
	s := NewSamples(styles.NewTheme(), []string{"a", "b", "c"})

	s.Next()
	if s.Selected() != 0 {
		t.Errorf("Selected() = %d, want 0", s.Selected())
	}
	s.Prev()
	if s.Selected() != 2 {
		t.Errorf("Prev() from first = %d, want 2", s.Selected())
	}
	s.Next()
	if s.Selected() != 0 {
		t.Errorf("Next() from last = %d, want 0", s.Selected())
	}
	s.Select(7)
	if s.Selected() != -1 {
		t.Errorf("Select(7) = %d, want -1", s.Selected())
	}
}

func TestSamples_ItemAt(t *testing.T) {
	s := NewSamples(styles.NewTheme(), []string{"a", "b"})

	tests := []struct {
		line   int
		want   int
		wantOK bool
	}{
		{0, -1, false}, // title
		{1, 0, true},
		{2, 1, true},
		{3, -1, false},
	}
	for _, tt := range tests {
		got, ok := s.ItemAt(tt.line)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ItemAt(%d) = %d, %v; want %d, %v", tt.line, got, ok, tt.want, tt.wantOK)
		}
	}
}

// =============================================================================
// HEADER AND FOOTER TESTS
// =============================================================================

func newTestHeader() *Header {
	return NewHeader(styles.NewTheme(), "Embedbase",
		"https://github.com/different-ai/embedbase",
		"https://discord.gg/pMNeuGrDky",
		"https://github.com/different-ai/embedbase-docs")
}

func TestHeader_View(t *testing.T) {
	h := newTestHeader()
	h.SetWidth(160)

	view := h.View()
	for _, want := range []string{"Embedbase", "github.com", "discord.gg", "embedbase-docs"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q: %q", want, view)
		}
	}
	if w := lipgloss.Width(view); w != 160 {
		t.Errorf("View() width = %d, want 160", w)
	}
}

func TestHeader_DropsRepositoryLinkFirst(t *testing.T) {
	h := newTestHeader()
	h.SetWidth(100)

	view := h.View()
	if strings.Contains(view, "embedbase-docs") {
		t.Errorf("repository link should be dropped first: %q", view)
	}
	if !strings.Contains(view, "discord.gg") {
		t.Errorf("chat link should still fit: %q", view)
	}

	h.SetLinks("Acme", "", "", "https://github.com/acme/docs")
	if view := h.View(); !strings.Contains(view, "github.com/acme/docs") {
		t.Errorf("SetLinks() repository link not shown: %q", view)
	}
}

func TestHeader_DropsLinksWhenNarrow(t *testing.T) {
	h := newTestHeader()
	h.SetWidth(20)

	view := h.View()
	if strings.Contains(view, "github") || strings.Contains(view, "discord") {
		t.Errorf("narrow header should drop links: %q", view)
	}
	if !strings.Contains(view, "Embedbase") {
		t.Errorf("narrow header lost the logo: %q", view)
	}
}

func TestFooter_View(t *testing.T) {
	f := NewFooter(styles.NewTheme(), "Embedbase Nextra Docs", "Powered by Embedbase", "https://embedbase.xyz")
	f.SetWidth(100)

	view := f.View()
	for _, want := range []string{"Powered by Embedbase", "embedbase.xyz", "Embedbase Nextra Docs"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

// =============================================================================
// ANSWER TESTS
// =============================================================================

func TestAnswer_SetMarkdown(t *testing.T) {
	a := NewAnswer(styles.NewTheme(), nil)
	a.SetSize(40, 5)

	if !a.Empty() {
		t.Error("new answer should be empty")
	}

	a.SetMarkdown("Hello")
	a.SetMarkdown("Hello world")

	if a.Markdown() != "Hello world" {
		t.Errorf("Markdown() = %q", a.Markdown())
	}
	if !strings.Contains(a.View(), "Hello world") {
		t.Errorf("View() = %q", a.View())
	}
}

func TestAnswer_FollowsNewContent(t *testing.T) {
	a := NewAnswer(styles.NewTheme(), nil)
	a.SetSize(40, 3)

	var lines []string
	for i := 0; i < 20; i++ {
		lines = append(lines, "line")
	}
	lines = append(lines, "last")
	a.SetMarkdown(strings.Join(lines, "\n"))

	if !strings.Contains(a.View(), "last") {
		t.Errorf("following view should show the last line:\n%s", a.View())
	}

	a.ScrollUp(5)
	if a.Following() {
		t.Error("scrolling up should stop following")
	}
	a.SetMarkdown(strings.Join(lines, "\n") + "\nnewer")
	if strings.Contains(a.View(), "newer") {
		t.Error("view jumped to new content while not following")
	}

	a.ScrollDown(100)
	if !a.Following() {
		t.Error("reaching the bottom should resume following")
	}
}

func TestAnswer_RendersMarkdown(t *testing.T) {
	r := render.New(render.Options{Style: "notty", WordWrap: 40})
	a := NewAnswer(styles.NewTheme(), r)
	a.SetSize(40, 10)

	a.SetMarkdown("# Title\n\nbody text")
	if !strings.Contains(a.View(), "Title") || !strings.Contains(a.View(), "body text") {
		t.Errorf("View() = %q", a.View())
	}
}

// =============================================================================
// MODAL TESTS
// =============================================================================

func TestModal_RenderCenters(t *testing.T) {
	theme := styles.NewTheme()
	theme.SetSize(100, 30)
	m := NewModal(theme)

	out := m.Render("body", 100, 30)

	if w, h := lipgloss.Size(out); w != 100 || h != 30 {
		t.Errorf("Render() size = %dx%d, want 100x30", w, h)
	}

	box := m.Box()
	if box.W != theme.ModalWidth() {
		t.Errorf("box width = %d, want %d", box.W, theme.ModalWidth())
	}
	if box.X != (100-box.W)/2 {
		t.Errorf("box x = %d, want %d", box.X, (100-box.W)/2)
	}
	if !box.Contains(50, 15) {
		t.Error("center of screen should be inside the modal")
	}
	if box.Contains(0, 0) {
		t.Error("corner should be outside the modal")
	}
}

func TestModal_BodyLine(t *testing.T) {
	theme := styles.NewTheme()
	theme.SetSize(100, 30)
	m := NewModal(theme)
	m.Render("first\nsecond\nthird", 100, 30)

	x, y := m.ContentOrigin()
	if got := m.BodyLine(x, y+1); got != 1 {
		t.Errorf("BodyLine(second line) = %d, want 1", got)
	}
	if got := m.BodyLine(0, 0); got != -1 {
		t.Errorf("BodyLine(outside) = %d, want -1", got)
	}
}

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 2, Y: 3, W: 4, H: 2}
	if !r.Contains(2, 3) || !r.Contains(5, 4) {
		t.Error("corners inside should be contained")
	}
	if r.Contains(6, 3) || r.Contains(2, 5) {
		t.Error("cells past the edge should not be contained")
	}
}

func TestPlaceRect(t *testing.T) {
	r := PlaceRect(20, 5, "abcd\nefgh")
	if r != (Rect{X: 8, Y: 1, W: 4, H: 2}) {
		t.Errorf("PlaceRect() = %+v", r)
	}
}
