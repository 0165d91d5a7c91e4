package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nissyi-gh/momentum/internal/config"
	"github.com/nissyi-gh/momentum/internal/importer"
	"github.com/nissyi-gh/momentum/internal/logging"
	"github.com/nissyi-gh/momentum/internal/model"
	"github.com/nissyi-gh/momentum/internal/todo"
	"github.com/nissyi-gh/momentum/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(flag.NewFlagSet(os.Args[0], flag.ExitOnError), os.Args[1:])
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logging.Options{
		File:            cfg.LogFile,
		Level:           cfg.LogLevel,
		ReportTimestamp: true,
	})
	if err != nil {
		return err
	}
	defer logger.Close()
	logger.Info("starting", "config", cfg.ConfigFile, "theme", cfg.Theme, "undo_timeout", cfg.UndoTimeout.Duration)

	quotes := model.RandomQuotes(cfg.Quotes)
	list := todo.New(
		todo.WithLogger(logger.Logger),
		todo.WithUndoTTL(cfg.UndoTimeout.Duration),
		todo.WithQuotes(quotes),
	)
	defer list.Close()

	if cfg.ImportPath != "" {
		n, err := importer.ImportFile(list, cfg.ImportPath)
		if err != nil {
			return err
		}
		logger.Info("tasks imported", "path", cfg.ImportPath, "count", n)
	}

	m := ui.NewModel(list, ui.Options{
		Theme:      cfg.Theme,
		Username:   cfg.Username,
		ExportPath: cfg.ExportPath,
		Quote:      quotes(),
		Logger:     logger.Logger,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	list.Subscribe(ui.Notify(p))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	logger.Info("bye")
	return nil
}
