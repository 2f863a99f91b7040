package bumper

import (
	"github.com/valory-xyz/bumper/pkg/constants"
	"github.com/valory-xyz/bumper/pkg/errors"
	"github.com/valory-xyz/bumper/pkg/registry"
)

// config holds the assembled settings for a Bumper instance.
type config struct {
	repos        []string
	manifestPath string
	remotePath   string
	baseURL      string
	token        string
	dryRun       bool
	diff         bool
	progress     func(repo string)
	fetcher      registry.ContentFetcher
}

func defaultConfig() *config {
	return &config{
		repos:        registry.DefaultRepos(),
		manifestPath: constants.DefaultManifestPath,
		remotePath:   constants.DefaultManifestPath,
	}
}

// Option is a function that configures a Bumper instance
type Option func(*config) error

// WithRepos overrides the repository fleet to check. Repositories are given
// in owner/name form and checked in slice order.
func WithRepos(repos []string) Option {
	return func(c *config) error {
		if len(repos) == 0 {
			return &errors.ValidationError{
				Field:   "repos",
				Message: "at least one repository is required",
			}
		}
		c.repos = repos
		return nil
	}
}

// WithManifestPath sets the local manifest file to reconcile.
func WithManifestPath(path string) Option {
	return func(c *config) error {
		if path != "" {
			c.manifestPath = path
		}
		return nil
	}
}

// WithRemotePath sets the manifest path fetched from each repository.
func WithRemotePath(path string) Option {
	return func(c *config) error {
		if path != "" {
			c.remotePath = path
		}
		return nil
	}
}

// WithBaseURL overrides the GitHub API base URL.
func WithBaseURL(url string) Option {
	return func(c *config) error {
		c.baseURL = url
		return nil
	}
}

// WithToken sets the bearer token for GitHub API requests. An empty token
// leaves requests unauthenticated.
func WithToken(token string) Option {
	return func(c *config) error {
		c.token = token
		return nil
	}
}

// WithDryRun configures whether the manifest write-back is skipped.
func WithDryRun(enabled bool) Option {
	return func(c *config) error {
		c.dryRun = enabled
		return nil
	}
}

// WithDiff configures whether the result carries a unified diff preview of
// the manifest changes.
func WithDiff(enabled bool) Option {
	return func(c *config) error {
		c.diff = enabled
		return nil
	}
}

// WithProgress registers a callback invoked before each repository fetch.
func WithProgress(fn func(repo string)) Option {
	return func(c *config) error {
		c.progress = fn
		return nil
	}
}

// WithFetcher injects a custom content fetcher, replacing the GitHub
// contents client.
func WithFetcher(fetcher registry.ContentFetcher) Option {
	return func(c *config) error {
		c.fetcher = fetcher
		return nil
	}
}
