// Package bumper checks a local packages manifest against the dev packages
// published by a fleet of GitHub repositories and bumps third_party hashes
// that exactly one repository has republished. Names claimed by several
// repositories are reported as collisions and left untouched; names no
// checked repository publishes are reported as not found.
package bumper

import (
	"context"
	"fmt"

	"github.com/valory-xyz/bumper/internal/github"
	"github.com/valory-xyz/bumper/pkg/reconcile"
	"github.com/valory-xyz/bumper/pkg/registry"
)

// Bumper runs reconciliation passes against the repository fleet.
type Bumper interface {
	// Run fetches the fleet's published manifests, reconciles the local
	// manifest against them, and writes back any bumps unless dry-run is
	// configured.
	Run(ctx context.Context) (*reconcile.Result, error)

	// Repos returns the repository fleet this instance checks.
	Repos() []string
}

// bumper is the internal implementation of the Bumper interface
type bumper struct {
	config  *config
	fetcher registry.ContentFetcher
}

// New creates a new Bumper instance with the given options
func New(opts ...Option) (Bumper, error) {
	b := &bumper{
		config: defaultConfig(),
	}

	if err := b.options(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}

	// Use the injected fetcher or build a GitHub contents client
	if b.fetcher = b.config.fetcher; b.fetcher == nil {
		b.fetcher = github.NewClient(b.config.baseURL, b.config.token)
	}

	return b, nil
}

// options applies the given options to the configuration.
func (b *bumper) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(b.config); err != nil {
			return err
		}
	}
	return nil
}

// Repos returns a copy of the configured repository fleet.
func (b *bumper) Repos() []string {
	repos := make([]string, len(b.config.repos))
	copy(repos, b.config.repos)
	return repos
}
