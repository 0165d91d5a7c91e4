// Package logging sets up the charmbracelet/log logger. The terminal belongs
// to the UI, so output goes to a file or nowhere.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Options holds logger configuration.
type Options struct {
	// File is the log file path. Empty discards all output.
	File            string
	Level           string
	ReportTimestamp bool
	Prefix          string
}

// Logger is a log.Logger together with the file it writes to.
type Logger struct {
	*log.Logger
	file *os.File
}

// New creates a logger from opts. Close releases the file.
func New(opts Options) (*Logger, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		l, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = l
	}

	var (
		w    io.Writer = io.Discard
		file *os.File
	)
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w, file = f, f
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "momentum"
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       log.LogfmtFormatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          prefix,
	})
	return &Logger{Logger: logger, file: file}, nil
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}
