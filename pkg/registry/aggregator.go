package registry

import (
	"context"

	"github.com/valory-xyz/bumper/pkg/constants"
	"github.com/valory-xyz/bumper/pkg/errors"
	"github.com/valory-xyz/bumper/pkg/logging"
	"github.com/valory-xyz/bumper/pkg/manifest"
)

// ContentFetcher retrieves the raw bytes of a file from a repository.
type ContentFetcher interface {
	FetchFile(ctx context.Context, repo, path string) ([]byte, error)
}

// Aggregator collects dev package claims from a fleet of repositories.
type Aggregator struct {
	fetcher  ContentFetcher
	path     string
	progress func(repo string)
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithManifestPath overrides the manifest path fetched from each repository.
func WithManifestPath(path string) Option {
	return func(a *Aggregator) {
		if path != "" {
			a.path = path
		}
	}
}

// WithProgress registers a callback invoked before each repository fetch.
func WithProgress(fn func(repo string)) Option {
	return func(a *Aggregator) {
		a.progress = fn
	}
}

// NewAggregator creates an aggregator that reads manifests through fetcher.
func NewAggregator(fetcher ContentFetcher, opts ...Option) *Aggregator {
	a := &Aggregator{
		fetcher: fetcher,
		path:    constants.DefaultManifestPath,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Collect fetches the published manifest of every repository in order and
// merges their dev sections into a single claim set. Repositories whose
// manifest cannot be fetched or decoded are skipped with a diagnostic and
// excluded from the checked list. A manifest without a dev section
// contributes no claims but still counts as checked. The returned error is
// non-nil only when ctx ends before the fleet is exhausted; no other
// failure aborts the run.
func (a *Aggregator) Collect(ctx context.Context, repos []string) (Claims, []string, error) {
	logger := logging.Ctx(ctx)
	claims := make(Claims)
	checked := make([]string, 0, len(repos))

	for _, repo := range repos {
		if err := ctx.Err(); err != nil {
			return claims, checked, err
		}
		if a.progress != nil {
			a.progress(repo)
		}

		data, err := a.fetcher.FetchFile(ctx, repo, a.path)
		if err != nil {
			// A fetch killed by the context ending aborts the run rather
			// than counting as an ordinary per-repo skip
			if (errors.IsCanceled(err) || errors.IsTimeout(err)) && ctx.Err() != nil {
				return claims, checked, ctx.Err()
			}
			logger.Warn().Err(err).Str("repo", repo).Msg("no packages fetched")
			continue
		}

		logger.Debug().Str("repo", repo).Msg("parsing packages")
		dev, err := manifest.ParseDev(data)
		if err != nil {
			logger.Warn().Err(err).Str("repo", repo).Msg("unparseable packages file")
			continue
		}

		checked = append(checked, repo)
		for name, hash := range dev {
			logger.Debug().Str("repo", repo).Str("package", name).Msg("found package")
			claims.Add(Claim{Name: name, Hash: hash, Repo: repo})
		}
	}

	return claims, checked, nil
}
