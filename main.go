// askdocs - ask a documentation site questions from the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"pkt.systems/pslog"

	"github.com/jeranaias/askdocs/internal/cli"
	"github.com/jeranaias/askdocs/internal/logging"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Commands replace this once the config is loaded.
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = logging.ContextWithLogger(ctx, logger)
	logging.RedirectStdlib(logger)

	root := cli.NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		logger.Error("askdocs failed", "err", err)
		return 1
	}
	return 0
}
