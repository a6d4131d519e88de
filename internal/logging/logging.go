// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the pslog logger used across askdocs and carries it
// through context.
package logging

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/pslog"

	"github.com/jeranaias/askdocs/internal/util"
)

// Options selects level and output mode.
type Options struct {
	Level   string // trace, debug, info, error
	Format  string // console or json
	NoColor bool
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) pslog.Logger {
	po := pslog.Options{
		Mode:     pslog.ModeConsole,
		NoColor:  opts.NoColor,
		MinLevel: pslog.InfoLevel,
	}
	if strings.EqualFold(opts.Format, "json") {
		po.Mode = pslog.ModeStructured
		po.NoColor = true
		po.VerboseFields = true
	}
	switch strings.ToLower(opts.Level) {
	case "trace":
		po.MinLevel = pslog.TraceLevel
	case "debug":
		po.MinLevel = pslog.DebugLevel
	case "error":
		po.MinLevel = pslog.ErrorLevel
	}
	return pslog.NewWithOptions(w, po)
}

// OpenFile returns a JSON logger appending to path. The TUI owns the
// terminal, so it logs here instead of stderr.
func OpenFile(path string, level string) (pslog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return New(f, Options{Level: level, Format: "json"}), f, nil
}

// RedirectStdlib sends the standard library logger through l.
func RedirectStdlib(l pslog.Logger) {
	log.SetOutput(pslog.LogLogger(l).Writer())
	log.SetFlags(0)
}

// ContextWithLogger binds l to ctx.
func ContextWithLogger(ctx context.Context, l pslog.Logger) context.Context {
	return pslog.ContextWithLogger(ctx, l)
}

// Ctx returns the logger bound to ctx.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// WithPrompt annotates the logger with a clipped prompt and its length.
func WithPrompt(l pslog.Logger, prompt string) pslog.Logger {
	if prompt == "" {
		return l
	}
	return l.With("prompt", util.Clip(prompt, 60), "prompt_len", len([]rune(prompt)))
}

// WithEndpoint annotates the logger with the backend endpoint in use.
func WithEndpoint(l pslog.Logger, endpoint string) pslog.Logger {
	if endpoint == "" {
		return l
	}
	return l.With("endpoint", endpoint)
}
