// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"pkt.systems/pslog"

	"github.com/jeranaias/askdocs/internal/config"
	"github.com/jeranaias/askdocs/internal/logging"
	"github.com/jeranaias/askdocs/internal/render"
	"github.com/jeranaias/askdocs/internal/search"
	"github.com/jeranaias/askdocs/internal/ui/components"
	"github.com/jeranaias/askdocs/internal/ui/styles"
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the root Bubble Tea model.
type Model struct {
	ctx      context.Context
	log      pslog.Logger
	cfg      *config.Config
	store    *search.Store
	bridge   *Bridge
	renderer *render.Renderer

	theme *styles.Theme
	keys  KeyMap
	help  help.Model

	// Components
	bar         *components.SearchBar
	samples     *components.Samples
	answer      *components.Answer
	spinner     components.Spinner
	modal       *components.Modal
	siteHeader  *components.Header
	siteFooter  *components.Footer
	modalHeader *components.Header
	modalFooter *components.Footer

	// Last snapshot applied to the components
	state search.State

	width   int
	height  int
	trigger components.Rect

	// Transient status line
	status    string
	statusErr bool
	statusID  int

	reloads chan ConfigReloadedMsg
}

// New builds the model. A nil cfg uses config.Global; renderer may be nil
// to show raw markdown.
func New(ctx context.Context, cfg *config.Config, store *search.Store, renderer *render.Renderer) *Model {
	if cfg == nil {
		cfg = config.Global()
	}
	theme := styles.NewTheme()
	t := cfg.Theme

	m := &Model{
		ctx:      ctx,
		log:      logging.Ctx(ctx),
		cfg:      cfg,
		store:    store,
		bridge:   NewBridge(store),
		renderer: renderer,
		theme:    theme,
		keys:     DefaultKeyMap(),
		help:     help.New(),

		bar:         components.NewSearchBar(theme, t.ModalPlaceholder),
		samples:     components.NewSamples(theme, cfg.Search.SampleQuestions),
		answer:      components.NewAnswer(theme, renderer),
		spinner:     components.NewSpinner(theme),
		modal:       components.NewModal(theme),
		siteHeader:  components.NewHeader(theme, t.Logo, t.ProjectLink, t.ChatLink, t.DocsRepositoryBase),
		siteFooter:  components.NewFooter(theme, t.FooterText, t.PoweredByText, t.PoweredByLink),
		modalHeader: components.NewHeader(theme, t.Logo, t.ProjectLink, t.ChatLink, t.DocsRepositoryBase),
		modalFooter: components.NewFooter(theme, t.FooterText, t.PoweredByText, t.PoweredByLink),

		reloads: make(chan ConfigReloadedMsg, 1),
	}

	m.bar.SetMaxChars(cfg.Search.MaxChars)
	m.spinner.SetShowTimer(true)
	m.bar.OnChange = store.SetPrompt
	m.bar.OnClick = store.Open
	m.state = store.Snapshot()
	return m
}

// Init starts listening for store changes and config reloads.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.bridge.Wait(), m.waitReload(), textinput.Blink)
}

// Close stops the store subscription.
func (m *Model) Close() {
	m.bridge.Close()
}

// PostReload hands a reloaded configuration to the running program. Only
// the newest pending reload is kept. Safe to call from any goroutine.
func (m *Model) PostReload(msg ConfigReloadedMsg) {
	for {
		select {
		case m.reloads <- msg:
			return
		default:
		}
		select {
		case <-m.reloads:
		default:
		}
	}
}

func (m *Model) waitReload() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.reloads:
			return msg
		case <-m.ctx.Done():
			return nil
		}
	}
}

// =============================================================================
// RUN
// =============================================================================

// RunOptions configures Run.
type RunOptions struct {
	Config   *config.Config
	Store    *search.Store
	Renderer *render.Renderer

	// ConfigPath is watched for changes when set.
	ConfigPath string
}

// Run shows the TUI until the user quits or ctx is done.
func Run(ctx context.Context, opts RunOptions) error {
	m := New(ctx, opts.Config, opts.Store, opts.Renderer)
	defer m.Close()

	if opts.ConfigPath != "" {
		err := config.Watch(ctx, opts.ConfigPath, config.DefaultWatchDebounce, func(cfg *config.Config, err error) {
			m.PostReload(ConfigReloadedMsg{Config: cfg, Err: err})
		})
		if err != nil {
			m.log.Warn("config watch disabled", "path", opts.ConfigPath, "err", err)
		}
	}

	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
