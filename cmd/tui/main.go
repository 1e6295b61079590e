package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"codeberg.org/papergen/server/internal/artifact"
	"codeberg.org/papergen/server/internal/config"
	"codeberg.org/papergen/server/internal/errors"
	"codeberg.org/papergen/server/internal/generation"
	"codeberg.org/papergen/server/internal/logger"
	"codeberg.org/papergen/server/internal/submit"
	"codeberg.org/papergen/server/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
)

func main() {
	os.Exit(run())
}

func run() int {
	flags, err := config.ParseTUIFlags(os.Args[1:])
	if err != nil {
		return 2
	}

	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		fmt.Fprintf(os.Stderr, "papergen: %s\n", errors.DisplayMessage(err))
		return 1
	}

	// the ui owns the terminal, so logs go to a file or nowhere
	closeLog := configureLogging(cfg)
	defer closeLog()

	client := generation.NewClient(cfg.GenerationServiceURL, cfg.GenerationTimeout)
	dispatcher := submit.NewDispatcher(client, artifact.New(cfg.ArtifactDir), cfg.InputPolicy)

	if flags.Once || !term.IsTerminal(os.Stdout.Fd()) {
		return runOnce(dispatcher, flags)
	}

	app := tui.NewApp(cfg.Environment, dispatcher, tui.NewAnalyzeClient(cfg.GatewayURL))
	if flags.Repo != "" || flags.Docs != "" {
		app.Prefill(flags.Repo, flags.Docs)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running papergen: %v\n", err)
		return 1
	}

	return 0
}

func runOnce(dispatcher *submit.Dispatcher, flags config.Flags) int {
	docs := flags.Docs
	if flags.DocsFile != "" {
		data, err := os.ReadFile(flags.DocsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "papergen: %s\n", errors.DisplayMessage(err))
			return 1
		}
		docs = string(data)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	req := submit.Request{RepoURL: flags.Repo, Documentation: docs}
	if err := tui.RunOnce(ctx, dispatcher, req, os.Stdout); err != nil {
		logger.ErrorErr(err, "submission failed", "category", errors.Classify(err).Category())
		fmt.Fprintf(os.Stderr, "papergen: %s\n", errors.DisplayMessage(err))
		return 1
	}

	return 0
}

func configureLogging(cfg *config.Config) func() {
	if cfg.LogFile == "" {
		logger.Configure(cfg.Environment, io.Discard)
		return func() {}
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		logger.Configure(cfg.Environment, io.Discard)
		return func() {}
	}

	logger.Configure(cfg.Environment, f)
	return func() { f.Close() } //nolint:errcheck,gosec // best-effort on exit
}
