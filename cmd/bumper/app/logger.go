package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/valory-xyz/bumper/pkg/logging"
)

// levelNames are the log levels accepted by --log-level and LOG_LEVEL.
var levelNames = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// NewLogger builds the application logger from config. Level precedence,
// highest first: --log-level (or LOG_LEVEL), --verbose, --quiet, then the
// info default. Caller annotation switches on at debug and below.
func NewLogger(config *Config) zerolog.Logger {
	level := determineLogLevel(config)
	return logging.NewLoggerFromConfig(&logging.Config{
		Level:     level,
		Format:    config.LogFormat,
		Output:    config.LogOutput,
		NoColor:   config.NoColor,
		AddCaller: level == "debug" || level == "trace",
	})
}

// determineLogLevel resolves the effective level name from config.
func determineLogLevel(config *Config) string {
	if config.LogLevel != "" {
		validated := validateLogLevel(config.LogLevel)
		if validated != config.LogLevel {
			fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using %q\n", config.LogLevel, validated)
		}
		return validated
	}

	if config.Verbose && config.Quiet {
		// Contradictory shortcuts; the more restrictive one wins
		fmt.Fprintf(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet\n")
		return "warn"
	}
	if config.Verbose {
		return "debug"
	}
	if config.Quiet {
		return "warn"
	}
	return "info"
}

// validateLogLevel returns level if it is a known name, info otherwise.
func validateLogLevel(level string) string {
	if levelNames[level] {
		return level
	}
	return "info"
}
