// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/askdocs/internal/history"
	"github.com/jeranaias/askdocs/internal/render"
	"github.com/jeranaias/askdocs/internal/search"
)

// ErrNoQuestion is returned by ask when neither args nor stdin hold a question.
var ErrNoQuestion = errors.New("no question given")

type askOptions struct {
	render    bool
	refined   bool
	noHistory bool
}

func newAskCmd(g *globalOptions) *cobra.Command {
	o := &askOptions{}

	cmd := &cobra.Command{
		Use:   "ask [question...]",
		Short: "Ask one question and stream the answer",
		Long: `Ask sends the question to the docs backend and streams the answer to
stdout as it arrives. With no arguments the question is read from stdin.`,
		Example: `  askdocs ask "What is Embedbase?"
  askdocs ask --render how do I add a dataset
  echo "How do I install it?" | askdocs ask`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, g, o, args)
		},
	}

	cmd.Flags().BoolVar(&o.render, "render", false, "render the answer as markdown when stdout is a terminal")
	cmd.Flags().BoolVar(&o.refined, "refined", false, "print the refined prompt to stderr")
	cmd.Flags().BoolVar(&o.noHistory, "no-history", false, "do not record this question")
	return cmd
}

func runAsk(cmd *cobra.Command, g *globalOptions, o *askOptions, args []string) error {
	question, err := readQuestion(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	e, err := setup(cmd, g, false)
	if err != nil {
		return err
	}
	defer e.Close()

	var answerer search.Answerer = e.newClient()
	if o.refined {
		answerer = &refinedPrinter{Answerer: answerer, w: cmd.ErrOrStderr()}
	}

	var hist *history.Store
	if !o.noHistory {
		hist = e.openHistory()
	}
	store := e.newStore(answerer, hist)

	out := cmd.OutOrStdout()
	var renderer *render.Renderer
	if o.render && isTerminal(out) {
		renderer = render.New(render.OptionsFromTheme(e.cfg.Theme))
		renderer.SetWidth(terminalWidth(out))
	}

	store.Open()
	store.SetPrompt(question)
	if err := streamAnswer(cmd.Context(), store, out, renderer); err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}
	return nil
}

// readQuestion joins args, or reads stdin when there are none.
func readQuestion(stdin io.Reader, args []string) (string, error) {
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" && stdin != nil && !isTerminal(stdin) {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read question from stdin: %w", err)
		}
		question = strings.TrimSpace(string(data))
	}
	if question == "" {
		return "", ErrNoQuestion
	}
	return question, nil
}

// streamAnswer submits the store's prompt. Without a renderer each chunk is
// written to w as it arrives; with one, the finished answer is rendered
// once at the end.
func streamAnswer(ctx context.Context, store *search.Store, w io.Writer, renderer *render.Renderer) error {
	var (
		printed  int
		writeErr error
	)

	unsubscribe := func() {}
	if renderer == nil {
		unsubscribe = store.Subscribe(func(st search.State) {
			if len(st.Output) < printed {
				printed = 0
			}
			if len(st.Output) > printed && writeErr == nil {
				_, writeErr = io.WriteString(w, st.Output[printed:])
				printed = len(st.Output)
			}
		})
	}
	err := store.Submit(ctx)
	unsubscribe()

	if err != nil {
		if printed > 0 {
			fmt.Fprintln(w)
		}
		return err
	}

	output := store.Snapshot().Output
	if renderer != nil {
		_, err := io.WriteString(w, renderer.Render(output))
		return err
	}
	if output != "" && !strings.HasSuffix(output, "\n") {
		fmt.Fprintln(w)
	}
	return writeErr
}

// refinedPrinter echoes the refined prompt to w.
type refinedPrinter struct {
	search.Answerer
	w io.Writer
}

func (p *refinedPrinter) BuildPrompt(ctx context.Context, prompt string) (string, error) {
	refined, err := p.Answerer.BuildPrompt(ctx, prompt)
	if err == nil {
		fmt.Fprintf(p.w, "%s %s\n", DimStyle.Render("refined:"), refined)
	}
	return refined, err
}
