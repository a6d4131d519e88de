// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/jeranaias/askdocs/internal/config"
	"github.com/jeranaias/askdocs/internal/history"
	"github.com/jeranaias/askdocs/internal/render"
	"github.com/jeranaias/askdocs/internal/search"
	"github.com/jeranaias/askdocs/internal/util"
)

// chatHistoryLimit is how many past questions /history lists.
const chatHistoryLimit = 10

type chatOptions struct {
	render    bool
	noHistory bool
}

func newChatCmd(g *globalOptions) *cobra.Command {
	o := &chatOptions{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Ask questions in a line oriented session",
		Long: `Chat reads questions one line at a time, with arrow key history.
Type /help for the slash commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, g, o)
		},
	}

	cmd.Flags().BoolVar(&o.render, "render", false, "render answers as markdown instead of streaming raw text")
	cmd.Flags().BoolVar(&o.noHistory, "no-history", false, "do not record questions")
	return cmd
}

func runChat(cmd *cobra.Command, g *globalOptions, o *chatOptions) error {
	if !IsTTY() {
		return errors.New("chat needs a terminal; use 'askdocs ask' in scripts")
	}

	e, err := setup(cmd, g, false)
	if err != nil {
		return err
	}
	defer e.Close()

	var hist *history.Store
	if !o.noHistory {
		hist = e.openHistory()
	}

	out := cmd.OutOrStdout()
	sess := &chatSession{
		store:   e.newStore(e.newClient(), hist),
		history: hist,
		out:     out,
	}
	if o.render && isTerminal(out) {
		sess.renderer = render.New(render.OptionsFromTheme(e.cfg.Theme))
		sess.renderer.SetWidth(terminalWidth(out))
	}
	sess.store.Open()
	defer sess.store.Close()

	input := newLineReader()
	defer input.Close()

	fmt.Fprintf(out, "%s %s\n\n", TitleStyle.Render(e.cfg.Theme.Logo),
		DimStyle.Render("- ask a question, /help for commands, ctrl+d to quit"))

	ctx := cmd.Context()
	for {
		line, err := input.ReadInput(PromptStyle.Render("askdocs> "))
		if err != nil {
			// ctrl+c at the prompt or ctrl+d
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}

		more, err := sess.handle(ctx, line)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", ErrorStyle.Render("[Error]"), err)
		}
		if !more || ctx.Err() != nil {
			return nil
		}
	}
}

// =============================================================================
// SESSION
// =============================================================================

// chatSession answers lines typed into chat.
type chatSession struct {
	store    *search.Store
	history  *history.Store
	renderer *render.Renderer
	out      io.Writer
}

// handle runs one input line. It returns false when the session should end.
func (s *chatSession) handle(ctx context.Context, line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return true, nil
	}
	if strings.HasPrefix(line, "/") {
		return s.command(ctx, line)
	}

	s.store.SetPrompt(line)
	return true, s.ask(ctx)
}

func (s *chatSession) ask(ctx context.Context) error {
	err := streamAnswer(ctx, s.store, s.out, s.renderer)
	fmt.Fprintln(s.out)
	return err
}

func (s *chatSession) command(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "/quit", "/exit", "/q":
		return false, nil

	case "/help", "/?":
		s.printHelp()

	case "/samples":
		samples := s.store.Samples()
		if len(samples) == 0 {
			fmt.Fprintln(s.out, DimStyle.Render("No sample questions configured."))
			break
		}
		fmt.Fprintln(s.out, TitleStyle.Render("Try one of these samples:"))
		for i, q := range samples {
			fmt.Fprintf(s.out, "  %s %s\n", DimStyle.Render(strconv.Itoa(i+1)+"."), q)
		}

	case "/sample":
		if len(args) != 1 {
			return true, errors.New("usage: /sample N")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return true, fmt.Errorf("not a number: %q", args[0])
		}
		if err := s.store.SelectSampleIndex(n - 1); err != nil {
			return true, err
		}
		fmt.Fprintf(s.out, "%s %s\n", DimStyle.Render(">"), s.store.Snapshot().Prompt)
		return true, s.ask(ctx)

	case "/clear":
		s.store.Close()
		s.store.Open()
		fmt.Fprintln(s.out, DimStyle.Render("Cleared."))

	case "/history":
		return true, s.printHistory(ctx)

	default:
		return true, fmt.Errorf("unknown command %s, try /help", name)
	}
	return true, nil
}

func (s *chatSession) printHelp() {
	cmds := [][2]string{
		{"/samples", "list the sample questions"},
		{"/sample N", "ask sample question N"},
		{"/history", "show recent questions"},
		{"/clear", "forget the last answer"},
		{"/quit", "leave chat"},
	}
	for _, c := range cmds {
		fmt.Fprintf(s.out, "  %-12s %s\n", c[0], DimStyle.Render(c[1]))
	}
}

func (s *chatSession) printHistory(ctx context.Context) error {
	if s.history == nil {
		fmt.Fprintln(s.out, DimStyle.Render("History is disabled."))
		return nil
	}
	entries, err := s.history.List(ctx, chatHistoryLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(s.out, DimStyle.Render("No questions recorded yet."))
		return nil
	}
	for _, entry := range entries {
		fmt.Fprintf(s.out, "  %s %s\n", DimStyle.Render(entry.ShortID()), util.TruncateWidth(entry.Prompt, 60))
	}
	return nil
}

// =============================================================================
// INPUT HISTORY
// =============================================================================

// lineReader provides input history and line editing for chat.
type lineReader struct {
	line        *liner.State
	historyFile string
}

func newLineReader() *lineReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	r := &lineReader{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	r.loadHistory()
	return r
}

func (r *lineReader) loadHistory() {
	if f, err := os.Open(r.historyFile); err == nil {
		r.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads one line, recording it in the input history.
func (r *lineReader) ReadInput(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

func (r *lineReader) saveHistory() {
	if err := os.MkdirAll(filepath.Dir(r.historyFile), 0700); err != nil {
		return
	}
	f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	r.line.WriteHistory(f)
}

// Close saves history and restores the terminal.
func (r *lineReader) Close() {
	r.saveHistory()
	r.line.Close()
}
