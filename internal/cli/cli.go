// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/jeranaias/askdocs/internal/config"
	"github.com/jeranaias/askdocs/internal/docsapi"
	"github.com/jeranaias/askdocs/internal/history"
	"github.com/jeranaias/askdocs/internal/logging"
	"github.com/jeranaias/askdocs/internal/render"
	"github.com/jeranaias/askdocs/internal/search"
	"github.com/jeranaias/askdocs/internal/ui/app"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// globalOptions holds the persistent flags.
type globalOptions struct {
	configPath string
	baseURL    string
	logLevel   string
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// NewRootCmd builds the askdocs command tree.
func NewRootCmd() *cobra.Command {
	g := &globalOptions{}

	root := &cobra.Command{
		Use:   "askdocs",
		Short: "Ask questions about the docs from your terminal",
		Long: `askdocs searches a documentation site by asking its backend.

With no command it opens a full screen search box. Press ctrl+k or enter
to open it, type a question or pick a sample, and press enter.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			lipgloss.SetColorProfile(colorProfile(cmd.OutOrStdout()))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, g)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&g.configPath, "config", "", "config file (default ~/.askdocs/config.toml)")
	flags.StringVar(&g.baseURL, "base-url", "", "docs backend origin, overrides api.base_url")
	flags.StringVar(&g.logLevel, "log-level", "", "log level: trace, debug, info, warn or error")

	root.AddCommand(newAskCmd(g))
	root.AddCommand(newChatCmd(g))
	root.AddCommand(newHistoryCmd(g))
	root.AddCommand(newConfigCmd(g))
	root.AddCommand(newVersionCmd())

	return root
}

func runTUI(cmd *cobra.Command, g *globalOptions) error {
	if !IsTTY() || !isTerminal(cmd.OutOrStdout()) {
		return errors.New("the search modal needs a terminal; use 'askdocs ask' in scripts")
	}

	e, err := setup(cmd, g, true)
	if err != nil {
		return err
	}
	defer e.Close()

	store := e.newStore(e.newClient(), e.openHistory())

	renderer := render.New(render.OptionsFromTheme(e.cfg.Theme))
	if err := renderer.Err(); err != nil {
		e.log.Warn("markdown rendering disabled", "err", err)
	}

	e.log.Info("starting search modal", "base_url", e.cfg.API.BaseURL)
	return app.Run(cmd.Context(), app.RunOptions{
		Config:     e.cfg,
		Store:      store,
		Renderer:   renderer,
		ConfigPath: e.cfgPath,
	})
}

// =============================================================================
// COMMAND ENVIRONMENT
// =============================================================================

// env is the loaded configuration and logger a command runs with.
type env struct {
	cfg     *config.Config
	cfgPath string
	log     pslog.Logger
	closers []io.Closer
}

// Close releases files opened by setup, newest first.
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i].Close()
	}
	e.closers = nil
}

// loadConfig reads --config or the default file and applies the flag
// overrides. warn is a config file that failed to load and was replaced by
// defaults.
func loadConfig(g *globalOptions) (cfg *config.Config, path string, warn error, err error) {
	if g.configPath != "" {
		path = g.configPath
		cfg, err = config.LoadFromPath(path)
		if err != nil {
			return nil, "", nil, err
		}
	} else {
		if path, err = config.ResolvedPath(); err != nil {
			return nil, "", nil, err
		}
		cfg, warn = config.Load()
		if cfg == nil {
			return nil, "", nil, warn
		}
	}

	if g.baseURL == "" && g.logLevel == "" {
		return cfg, path, warn, nil
	}
	if g.baseURL != "" {
		cfg.API.BaseURL = g.baseURL
	}
	if g.logLevel != "" {
		cfg.Logging.Level = g.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, path, warn, nil
}

// setup loads the config and binds a logger to the command context. The
// TUI owns the terminal, so it always logs to a file.
func setup(cmd *cobra.Command, g *globalOptions, tui bool) (*env, error) {
	cfg, path, warn, err := loadConfig(g)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, cfgPath: path}

	logPath, err := cfg.LogPath()
	if err != nil {
		return nil, err
	}
	if tui && logPath == "" {
		if dir, err := config.ConfigDir(); err == nil {
			logPath = filepath.Join(dir, "askdocs.log")
		}
	}

	switch {
	case logPath != "":
		l, closer, err := logging.OpenFile(logPath, cfg.Logging.Level)
		if err != nil {
			return nil, err
		}
		e.log = l
		e.closers = append(e.closers, closer)
	case tui:
		e.log = logging.New(io.Discard, logging.Options{})
	default:
		stderr := cmd.ErrOrStderr()
		e.log = logging.New(stderr, logging.Options{
			Level:   cfg.Logging.Level,
			Format:  cfg.Logging.Format,
			NoColor: !colorsEnabled(stderr),
		})
	}
	logging.RedirectStdlib(e.log)

	if warn != nil {
		e.log.Warn("config file ignored, using defaults", "path", path, "err", warn)
	}

	config.SetGlobal(cfg)
	cmd.SetContext(logging.ContextWithLogger(cmd.Context(), e.log))
	return e, nil
}

func (e *env) newClient() *docsapi.Client {
	api := e.cfg.API
	return docsapi.NewClientWithConfig(&docsapi.ClientConfig{
		BaseURL:           api.BaseURL,
		BuildPromptPath:   api.BuildPromptPath,
		QAPath:            api.QAPath,
		Token:             api.Token,
		Timeout:           api.Timeout(),
		RequestsPerMinute: api.RequestsPerMinute,
		UserAgent:         "askdocs/" + Version,
	})
}

// openHistory opens the history database when enabled. Failures are logged
// and leave history off for this run.
func (e *env) openHistory() *history.Store {
	if !e.cfg.History.Enabled {
		return nil
	}
	hist, err := e.openHistoryFile()
	if err != nil {
		e.log.Warn("history disabled", "err", err)
		return nil
	}
	return hist
}

func (e *env) openHistoryFile() (*history.Store, error) {
	path, err := e.cfg.HistoryPath()
	if err != nil {
		return nil, err
	}
	hist, err := history.Open(path)
	if err != nil {
		return nil, err
	}
	e.closers = append(e.closers, hist)
	e.log.Debug("history opened", "path", hist.Path())
	return hist, nil
}

func (e *env) newStore(answerer search.Answerer, hist *history.Store) *search.Store {
	opts := []search.Option{
		search.WithSamples(e.cfg.Search.SampleQuestions...),
		search.WithMaxChars(e.cfg.Search.MaxChars),
		search.WithLogger(e.log),
	}
	if hist != nil {
		opts = append(opts, search.WithRecorder(hist))
	}
	return search.New(answerer, opts...)
}
