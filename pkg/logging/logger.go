// Package logging provides structured logging for the bumper system using zerolog.
// Console output is used when attached to a terminal, JSON otherwise, so the
// same binary reads well both interactively and in CI logs.
//
// Example usage:
//
//	logging.Info().Str("repo", "valory-xyz/open-aea").Msg("Fetching packages")
//
//	// Loggers travel on the context during a run
//	ctx := logging.WithRepo(context.Background(), "valory-xyz/trader")
//	logging.FromContext(ctx).Debug().Msg("comparing hashes")
//
//	logging.Err(err).
//	    Str("repo", "valory-xyz/trader").
//	    Int("status", 502).
//	    Msg("Failed to fetch packages file")
package logging

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger is the process-wide logger behind the package-level event
// functions. Rebuilt by SetDefault and Configure.
var defaultLogger zerolog.Logger

func init() {
	defaultLogger = NewLoggerFromConfig(envDefaults())
}

// envDefaults builds the startup configuration from the environment. LOG_LEVEL
// wins over the DEBUG shortcut; everything else keeps DefaultConfig values.
func envDefaults() *Config {
	cfg := DefaultConfig()
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Level = level
	} else if os.Getenv("DEBUG") != "" {
		cfg.Level = "debug"
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.Format = format
	}
	return cfg
}

// Default returns the process-wide logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger // keep zerolog's package logger in step
}

// New creates a new JSON logger writing to w at the current global level.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		Level(zerolog.GlobalLevel()).
		With().
		Timestamp().
		Logger()
}

// With creates a child logger context with additional fields.
func With() zerolog.Context {
	return defaultLogger.With()
}

// Debug opens a debug event on the default logger.
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info opens an info event on the default logger.
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn opens a warn event on the default logger.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// Error opens an error event on the default logger.
func Error() *zerolog.Event {
	return defaultLogger.Error()
}

// Fatal opens a fatal event; zerolog exits the process once it is sent.
func Fatal() *zerolog.Event {
	return defaultLogger.Fatal()
}

// Err opens an error event tagged with err.
func Err(err error) *zerolog.Event {
	return defaultLogger.Err(err)
}

// isTerminal reports whether the given file is attached to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
