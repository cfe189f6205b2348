// ============================================================================
// minic - Toy Language Front End
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating structured loggers
// Author:      Mike Stoffels
// Created:     2026-10-13
// License:     MIT
// ============================================================================

package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name, attached to every record
	ServiceName string

	// Log level (debug, info, warn, error)
	Level string

	// Output format for the primary output: "json" or "text" (default: text)
	Format string

	// Primary output (default: stderr)
	Output io.Writer

	// Optional log file; records are appended as JSON
	File string

	// Additional outputs, each receiving JSON records
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "warn",
		Format:      "text",
	}
}

// Logger is a slog logger together with the resources it owns
type Logger struct {
	*slog.Logger
	file *os.File
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// NewLogger creates a logger that fans records out to every configured output
func NewLogger(cfg LoggerConfig) (*Logger, error) {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	handlers := []slog.Handler{newHandler(cfg.Format, output, opts)}
	for _, w := range cfg.AdditionalOutputs {
		handlers = append(handlers, slog.NewJSONHandler(w, opts))
	}

	logger := &Logger{}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		logger.file = f
		handlers = append(handlers, slog.NewJSONHandler(f, opts))
	}

	var handler slog.Handler
	if len(handlers) == 1 {
		handler = handlers[0]
	} else {
		handler = slogmulti.Fanout(handlers...)
	}

	l := slog.New(handler)
	if cfg.ServiceName != "" {
		l = l.With("service", cfg.ServiceName)
	}
	logger.Logger = l
	return logger, nil
}

func newHandler(format string, w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// parseLevel converts a string level to slog.Level. Unknown names yield info.
func parseLevel(level string) slog.Level {
	l, _ := ParseLevel(level)
	return l.Slog()
}
