package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/valory-xyz/bumper/pkg/logging"
)

// saveGlobalState snapshots the default logger and global level so tests that
// reconfigure logging leave no trace.
func saveGlobalState(t *testing.T) {
	t.Helper()
	original := *logging.Default()
	level := zerolog.GlobalLevel()
	t.Cleanup(func() {
		logging.SetDefault(original)
		zerolog.SetGlobalLevel(level)
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := logging.DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.False(t, cfg.AddCaller)
}

func TestNewLoggerFromConfig(t *testing.T) {
	saveGlobalState(t)

	t.Run("writes JSON to a file", func(t *testing.T) {
		logfile := filepath.Join(t.TempDir(), "bumper.log")
		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:     "debug",
			Format:    "json",
			Output:    logfile,
			AddCaller: true,
		})

		logger.Info().Str("repo", "valory-xyz/open-aea").Msg("fetching packages file")

		content, err := os.ReadFile(logfile)
		assert.NoError(t, err)
		assert.Contains(t, string(content), "fetching packages file")
		assert.Contains(t, string(content), `"level":"info"`)
	})

	t.Run("console format uses short level names", func(t *testing.T) {
		logfile := filepath.Join(t.TempDir(), "bumper.log")
		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:   "info",
			Format:  "console",
			Output:  logfile,
			NoColor: true,
		})

		logger.Info().Str("repo", "valory-xyz/trader").Msg("console test")

		content, err := os.ReadFile(logfile)
		assert.NoError(t, err)
		assert.Contains(t, string(content), "console test")
		assert.Contains(t, string(content), "INF")
	})

	t.Run("nil config falls back to defaults", func(t *testing.T) {
		logger := logging.NewLoggerFromConfig(nil)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})
}

func TestConfigure(t *testing.T) {
	saveGlobalState(t)

	logfile := filepath.Join(t.TempDir(), "bumper.log")
	logging.Configure(&logging.Config{
		Level:  "warn",
		Format: "json",
		Output: logfile,
	})

	// Below the warn threshold
	logging.Debug().Msg("skipped repo detail")
	logging.Info().Msg("checked repo")

	// At or above it
	logging.Warn().Msg("fetch failed")
	logging.Error().Msg("manifest malformed")

	content, err := os.ReadFile(logfile)
	assert.NoError(t, err)
	output := string(content)
	assert.NotContains(t, output, "skipped repo detail")
	assert.NotContains(t, output, "checked repo")
	assert.Contains(t, output, "fetch failed")
	assert.Contains(t, output, "manifest malformed")
}

func TestConfigureFromEnv(t *testing.T) {
	saveGlobalState(t)

	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_OUTPUT", "discard")

	logging.ConfigureFromEnv()
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestLevelFiltering(t *testing.T) {
	saveGlobalState(t)

	tests := []struct {
		level     string
		logFunc   func() *zerolog.Event
		shouldLog bool
	}{
		{"debug", logging.Debug, true},
		{"info", logging.Info, true},
		{"info", logging.Debug, false},
		{"warn", logging.Warn, true},
		{"warn", logging.Info, false},
		{"error", logging.Error, true},
		{"error", logging.Warn, false},
	}

	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			logfile := filepath.Join(t.TempDir(), "bumper.log")
			logging.Configure(&logging.Config{
				Level:  tc.level,
				Format: "json",
				Output: logfile,
			})

			tc.logFunc().Msg("probe")

			content, err := os.ReadFile(logfile)
			assert.NoError(t, err)
			if tc.shouldLog {
				assert.Contains(t, string(content), "probe")
			} else {
				assert.Empty(t, string(content))
			}
		})
	}
}

