// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/termenv"

	"github.com/jeranaias/askdocs/internal/config"
)

// DefaultWidth is used when neither a word wrap nor a width is known.
const DefaultWidth = 80

// Options selects the look of rendered markdown.
type Options struct {
	// Style is a glamour style name, "auto", or a path to a JSON style file.
	Style string

	// WordWrap fixes the wrap column; 0 follows the width given to SetWidth.
	WordWrap int

	// CodeFormatter is the chroma formatter name, e.g. terminal256.
	CodeFormatter string

	// CodeStyle overrides the chroma style used for code blocks.
	CodeStyle string
}

// OptionsFromTheme maps the theme section of the configuration.
func OptionsFromTheme(t config.ThemeConfig) Options {
	return Options{
		Style:         t.Style,
		WordWrap:      t.WordWrap,
		CodeFormatter: t.CodeFormatter,
		CodeStyle:     t.CodeStyle,
	}
}

// Renderer renders markdown. It is safe for concurrent use.
type Renderer struct {
	mu    sync.Mutex
	opts  Options
	width int
	tr    *glamour.TermRenderer
	err   error
}

// New builds a Renderer. Build errors are kept and reported by Err.
func New(opts Options) *Renderer {
	r := &Renderer{opts: opts, width: DefaultWidth}
	r.rebuild()
	return r
}

// Err returns the error from the last build, if any.
func (r *Renderer) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// SetWidth changes the wrap width when WordWrap is 0.
func (r *Renderer) SetWidth(width int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if width <= 0 || width == r.width {
		return
	}
	r.width = width
	if r.opts.WordWrap == 0 {
		r.rebuildLocked()
	}
}

// SetOptions swaps the options, e.g. after a config reload.
func (r *Renderer) SetOptions(opts Options) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if opts == r.opts {
		return
	}
	r.opts = opts
	r.rebuildLocked()
}

// Render returns md styled for the terminal, or md itself on failure.
func (r *Renderer) Render(md string) string {
	if strings.TrimSpace(md) == "" {
		return md
	}

	r.mu.Lock()
	tr := r.tr
	r.mu.Unlock()
	if tr == nil {
		return md
	}

	out, err := tr.Render(md)
	if err != nil {
		return md
	}
	return out
}

func (r *Renderer) rebuild() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rebuildLocked()
}

func (r *Renderer) rebuildLocked() {
	wrap := r.opts.WordWrap
	if wrap == 0 {
		wrap = r.width
	}

	options := []glamour.TermRendererOption{
		glamour.WithWordWrap(wrap),
		glamour.WithColorProfile(termenv.ColorProfile()),
	}
	styleOpt, err := r.styleOption()
	if err != nil {
		r.tr, r.err = nil, err
		return
	}
	options = append(options, styleOpt)
	if r.opts.CodeFormatter != "" {
		options = append(options, glamour.WithChromaFormatter(r.opts.CodeFormatter))
	}

	r.tr, r.err = glamour.NewTermRenderer(options...)
	if r.err != nil {
		r.tr = nil
	}
}

func (r *Renderer) styleOption() (glamour.TermRendererOption, error) {
	name := ResolveStyle(r.opts.Style)

	base, ok := styles.DefaultStyles[name]
	if !ok {
		if r.opts.CodeStyle != "" {
			return nil, fmt.Errorf("code_style cannot be combined with custom style file %q", name)
		}
		return glamour.WithStylesFromJSONFile(name), nil
	}
	if r.opts.CodeStyle == "" {
		return glamour.WithStyles(*base), nil
	}

	cfg := *base
	cfg.CodeBlock = withCodeTheme(cfg.CodeBlock, r.opts.CodeStyle)
	return glamour.WithStyles(cfg), nil
}

// withCodeTheme points code blocks at a registered chroma style. Dropping
// the inline chroma palette makes glamour look the theme up by name.
func withCodeTheme(block ansi.StyleCodeBlock, theme string) ansi.StyleCodeBlock {
	block.Theme = theme
	block.Chroma = nil
	return block
}

// ResolveStyle maps "auto" and "" to dark or light from the terminal
// background. Other names are returned unchanged.
func ResolveStyle(style string) string {
	switch style {
	case "", "auto":
		if !termenv.HasDarkBackground() {
			return styles.LightStyle
		}
		return styles.DarkStyle
	}
	return style
}
