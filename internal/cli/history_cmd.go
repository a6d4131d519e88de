// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/askdocs/internal/history"
	"github.com/jeranaias/askdocs/internal/render"
	"github.com/jeranaias/askdocs/internal/util"
)

func newHistoryCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"hist"},
		Short:   "List, show or clear answered questions",
	}
	cmd.AddCommand(newHistoryListCmd(g))
	cmd.AddCommand(newHistoryShowCmd(g))
	cmd.AddCommand(newHistoryClearCmd(g))
	return cmd
}

// withHistory opens the history database for a history subcommand. The
// enabled flag only controls recording, so the file is opened regardless.
func withHistory(cmd *cobra.Command, g *globalOptions, fn func(e *env, hist *history.Store) error) error {
	e, err := setup(cmd, g, false)
	if err != nil {
		return err
	}
	defer e.Close()

	hist, err := e.openHistoryFile()
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	return fn(e, hist)
}

// =============================================================================
// LIST
// =============================================================================

func newHistoryListCmd(g *globalOptions) *cobra.Command {
	var (
		limit int
		query string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recent questions, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(cmd, g, func(e *env, hist *history.Store) error {
				var (
					entries []history.Entry
					err     error
				)
				if query != "" {
					entries, err = hist.Search(cmd.Context(), query, limit)
				} else {
					entries, err = hist.List(cmd.Context(), limit)
				}
				if err != nil {
					return err
				}
				printEntries(cmd.OutOrStdout(), entries)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of entries")
	cmd.Flags().StringVarP(&query, "search", "s", "", "only entries whose question or answer contains this text")
	return cmd
}

func printEntries(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, DimStyle.Render("No questions recorded yet."))
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %s  %s\n",
			DimStyle.Render(e.ShortID()),
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
			util.TruncateWidth(e.Prompt, 60))
	}
}

// =============================================================================
// SHOW
// =============================================================================

func newHistoryShowCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a question and its answer",
		Long:  "Show prints one entry. Any unique prefix of its ID will do.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(cmd, g, func(e *env, hist *history.Store) error {
				entry, err := hist.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				answer := entry.Answer
				if isTerminal(out) {
					r := render.New(render.OptionsFromTheme(e.cfg.Theme))
					r.SetWidth(terminalWidth(out))
					answer = r.Render(answer)
				}
				printEntry(out, entry, answer)
				return nil
			})
		},
	}
}

func printEntry(w io.Writer, e history.Entry, answer string) {
	fmt.Fprintf(w, "%s %s\n", RenderLabel("ID"), e.ID)
	fmt.Fprintf(w, "%s %s\n", RenderLabel("Asked"), e.CreatedAt.Local().Format(time.RFC1123))
	fmt.Fprintf(w, "%s %s\n", RenderLabel("Question"), ValueStyle.Render(e.Prompt))
	if e.RefinedPrompt != "" && e.RefinedPrompt != e.Prompt {
		fmt.Fprintf(w, "%s %s\n", RenderLabel("Refined"), e.RefinedPrompt)
	}
	fmt.Fprintf(w, "%s %s, %s\n", RenderLabel("Took"),
		e.Duration.Round(time.Millisecond), util.Plural(e.Chunks, "chunk", "chunks"))
	fmt.Fprintln(w, RenderSeparator(60))
	fmt.Fprintln(w, strings.TrimRight(answer, "\n"))
}

// =============================================================================
// CLEAR
// =============================================================================

func newHistoryClearCmd(g *globalOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every recorded question",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to clear history without --yes")
			}
			return withHistory(cmd, g, func(e *env, hist *history.Store) error {
				n, err := hist.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s removed %s from %s\n",
					RenderStatus("ok"), util.Plural(n, "entry", "entries"), hist.Path())
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm deletion")
	return cmd
}
