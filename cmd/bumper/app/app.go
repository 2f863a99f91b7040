// Package app wires the bumper CLI together: configuration loading,
// logger setup, and construction of the bumper instance the commands
// run against.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/valory-xyz/bumper"
	"github.com/valory-xyz/bumper/pkg/errors"
)

// App holds the dependencies shared by all CLI commands.
type App struct {
	// Build metadata stamped in by the linker
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Bumper instance (lazy-initialized, singleton)
	mu     sync.RWMutex
	bumper bumper.Bumper
}

// New creates an App with the given build metadata. Configuration is
// loaded from the environment and may be replaced through options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("app", "failed to load configuration", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Option configures an App instance.
type Option func(*App) error

// WithConfig replaces the loaded configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return errors.NewValidationError("config", nil, "cannot be nil")
		}
		a.config = config
		return nil
	}
}

// WithLogger replaces the default logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		if logger == nil {
			return errors.NewValidationError("logger", nil, "cannot be nil")
		}
		a.logger = logger
		return nil
	}
}

// Version reports the release version stamped into the binary.
func (a *App) Version() string { return a.version }

// Commit reports the git revision the binary was built from.
func (a *App) Commit() string { return a.commit }

// Date reports when the binary was built.
func (a *App) Date() string { return a.date }

// BuiltBy reports which build system produced the binary.
func (a *App) BuiltBy() string { return a.builtBy }

// Config exposes the effective configuration.
func (a *App) Config() *Config { return a.config }

// Logger exposes the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// Bumper returns the shared bumper instance, creating it on first use.
// Safe for concurrent callers; exactly one instance is ever built.
func (a *App) Bumper() (bumper.Bumper, error) {
	a.mu.RLock()
	if a.bumper != nil {
		b := a.bumper
		a.mu.RUnlock()
		return b, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Another caller may have built it between the two locks
	if a.bumper != nil {
		return a.bumper, nil
	}

	b, err := bumper.New(a.buildBumperOptions()...)
	if err != nil {
		return nil, err
	}

	a.bumper = b
	return b, nil
}

// BumperWithOptions builds a fresh bumper instance from the config options
// plus any extras. Commands use it for per-invocation settings that differ
// from the shared instance (dry-run, diff, or a manifest path override).
func (a *App) BumperWithOptions(extra ...bumper.Option) (bumper.Bumper, error) {
	opts := append(a.buildBumperOptions(), extra...)
	return bumper.New(opts...)
}

// buildBumperOptions converts the non-empty config values into options.
func (a *App) buildBumperOptions() []bumper.Option {
	var opts []bumper.Option

	if len(a.config.Repos) > 0 {
		opts = append(opts, bumper.WithRepos(a.config.Repos))
	}
	if a.config.ManifestPath != "" {
		opts = append(opts, bumper.WithManifestPath(a.config.ManifestPath))
	}
	if a.config.RemotePath != "" {
		opts = append(opts, bumper.WithRemotePath(a.config.RemotePath))
	}
	if a.config.BaseURL != "" {
		opts = append(opts, bumper.WithBaseURL(a.config.BaseURL))
	}
	if a.config.GitHubToken != "" {
		opts = append(opts, bumper.WithToken(a.config.GitHubToken))
	}

	return opts
}
