// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/askdocs/internal/config"
	"github.com/jeranaias/askdocs/internal/docsapi"
	"github.com/jeranaias/askdocs/internal/render"
	"github.com/jeranaias/askdocs/internal/search"
)

// StatusTimeout is how long a status message stays visible.
const StatusTimeout = 5 * time.Second

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case StateMsg:
		return m, tea.Batch(m.refresh(), m.bridge.Wait())

	case SubmitDoneMsg:
		return m, m.submitDone(msg.Err)

	case ConfigReloadedMsg:
		return m, tea.Batch(m.applyReload(msg), m.waitReload())

	case statusClearMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	// Cursor blink and other input internals
	if m.state.Open {
		_, cmd := m.bar.Update(msg)
		return m, cmd
	}
	return m, nil
}

// refresh applies the store's current state. The store is read directly
// rather than trusting a message payload, since Update may have changed it
// after the message was built.
func (m *Model) refresh() tea.Cmd {
	return m.apply(m.store.Snapshot())
}

func (m *Model) apply(st search.State) tea.Cmd {
	prev := m.state
	m.state = st

	var cmds []tea.Cmd
	if st.Open && !prev.Open {
		cmds = append(cmds, m.bar.Focus())
	}
	if !st.Open && prev.Open {
		m.bar.Blur()
		m.bar.SetValue("")
		m.samples.Select(-1)
	}

	m.answer.SetMarkdown(st.Output)

	if st.Loading {
		cmds = append(cmds, m.spinner.Start())
	} else {
		m.spinner.Stop()
	}
	return tea.Batch(cmds...)
}

// =============================================================================
// KEYS
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		return tea.Quit
	}

	if !m.state.Open {
		switch {
		case key.Matches(msg, m.keys.Open):
			m.bar.Click()
			return m.refresh()
		case msg.String() == "q":
			return tea.Quit
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Close):
		m.store.Close()
		return m.refresh()

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.PageUp):
		m.answer.ScrollUp(m.contentHeight() / 2)
		return nil

	case key.Matches(msg, m.keys.PageDown):
		m.answer.ScrollDown(m.contentHeight() / 2)
		return nil

	case key.Matches(msg, m.keys.Up):
		if m.showingSamples() {
			m.samples.Prev()
		} else {
			m.answer.ScrollUp(1)
		}
		return nil

	case key.Matches(msg, m.keys.Down):
		if m.showingSamples() {
			m.samples.Next()
		} else {
			m.answer.ScrollDown(1)
		}
		return nil

	case key.Matches(msg, m.keys.UseSample):
		if i := m.samples.Selected(); i >= 0 && m.showingSamples() {
			m.useSample(i)
			return m.refresh()
		}
		return nil
	}

	// Digits pick a sample only while there is nothing typed.
	if i, ok := sampleDigit(msg); ok && m.state.Prompt == "" && m.showingSamples() && i < m.samples.Len() {
		m.useSample(i)
		return m.refresh()
	}

	_, cmd := m.bar.Update(msg)
	return tea.Batch(cmd, m.refresh())
}

func sampleDigit(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 || msg.Alt {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '1' || r > '9' {
		return 0, false
	}
	return int(r - '1'), true
}

func (m *Model) useSample(i int) {
	items := m.samples.Items()
	if i < 0 || i >= len(items) {
		return
	}
	m.samples.Select(i)
	// The input applies its char limit and sanitizer; the store gets what it shows.
	m.bar.SetValue(items[i])
	m.store.SelectSample(m.bar.Value())
}

// =============================================================================
// MOUSE
// =============================================================================

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		if m.state.Open && !m.answer.Empty() {
			_, cmd := m.answer.Update(msg)
			return cmd
		}
		return nil
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	if !m.state.Open {
		if m.trigger.Contains(msg.X, msg.Y) {
			m.bar.Click()
			return m.refresh()
		}
		return nil
	}

	// A click on the backdrop closes the modal.
	if !m.modal.Box().Contains(msg.X, msg.Y) {
		m.store.Close()
		return m.refresh()
	}

	if m.showingSamples() {
		line := m.modal.BodyLine(msg.X, msg.Y) - samplesTop
		if i, ok := m.samples.ItemAt(line); ok {
			m.useSample(i)
			return m.refresh()
		}
	}
	return nil
}

// =============================================================================
// SUBMIT
// =============================================================================

func (m *Model) submit() tea.Cmd {
	ctx, store := m.ctx, m.store
	m.samples.Select(-1)
	m.status = ""
	return func() tea.Msg {
		return SubmitDoneMsg{Err: store.Submit(ctx)}
	}
}

func (m *Model) submitDone(err error) tea.Cmd {
	switch {
	case err == nil, errors.Is(err, search.ErrCanceled):
		return nil
	case errors.Is(err, search.ErrEmptyPrompt):
		return m.setStatus("Type a question first", false)
	}

	m.log.Warn("search failed", "err", err)
	return m.setStatus(describeError(err, m.cfg.API.BaseURL), true)
}

// describeError turns a submit error into one status line.
func describeError(err error, baseURL string) string {
	switch {
	case docsapi.IsStatusError(err):
		return err.Error()
	case docsapi.IsNotReachable(err):
		return "cannot reach " + baseURL
	case docsapi.IsTimeout(err):
		return "request timed out"
	}
	return err.Error()
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusID++
	m.status = text
	m.statusErr = isErr

	id := m.statusID
	return tea.Tick(StatusTimeout, func(time.Time) tea.Msg {
		return statusClearMsg{id: id}
	})
}

// =============================================================================
// LAYOUT AND RELOAD
// =============================================================================

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.theme.SetSize(width, height)

	cw := m.theme.ContentWidth()
	m.siteHeader.SetWidth(width)
	m.siteFooter.SetWidth(width)
	m.modalHeader.SetWidth(cw)
	m.modalFooter.SetWidth(cw)
	m.bar.SetWidth(cw)
	m.samples.SetWidth(cw)
	m.help.Width = cw
	m.answer.SetSize(cw, m.contentHeight())
}

func (m *Model) applyReload(msg ConfigReloadedMsg) tea.Cmd {
	if msg.Err != nil {
		m.log.Warn("config reload failed", "err", msg.Err)
		return m.setStatus("config reload failed: "+msg.Err.Error(), true)
	}
	if msg.Config == nil {
		return nil
	}

	m.cfg = msg.Config
	config.SetGlobal(m.cfg)
	t := m.cfg.Theme
	m.siteHeader.SetLinks(t.Logo, t.ProjectLink, t.ChatLink, t.DocsRepositoryBase)
	m.modalHeader.SetLinks(t.Logo, t.ProjectLink, t.ChatLink, t.DocsRepositoryBase)
	m.siteFooter.SetText(t.FooterText, t.PoweredByText, t.PoweredByLink)
	m.modalFooter.SetText(t.FooterText, t.PoweredByText, t.PoweredByLink)
	m.samples.SetItems(m.cfg.Search.SampleQuestions)
	m.bar.SetPlaceholder(t.ModalPlaceholder)
	m.bar.SetMaxChars(m.cfg.Search.MaxChars)
	if m.renderer != nil {
		m.renderer.SetOptions(render.OptionsFromTheme(t))
		m.answer.Refresh()
	}

	m.log.Info("config reloaded")
	return m.setStatus("configuration reloaded", false)
}
