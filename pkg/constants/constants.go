// Package constants provides values shared across the bumper codebase:
// timeouts, file permissions, GitHub API parameters, and manifest
// formatting defaults.
package constants

import "time"

// Timeouts
const (
	// DefaultHTTPTimeout bounds a single HTTP request to the GitHub API
	DefaultHTTPTimeout = 30 * time.Second

	// CommandTimeout caps one whole CLI invocation, fetches included
	CommandTimeout = 10 * time.Minute
)

// Permissions for files and directories created by the tool
const (
	// DirPermissions is the mode for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the mode for created files (rw-r--r--)
	FilePermissions = 0644
)

// GitHub API parameters
const (
	GitHubAPIBaseURL   = "https://api.github.com"
	GitHubAPIVersion   = "2022-11-28"
	GitHubAcceptHeader = "application/vnd.github+json"

	// GitHubTokenEnvVar is the environment variable holding the API token
	GitHubTokenEnvVar = "GITHUB_TOKEN"
)

// Manifest defaults
const (
	// DefaultManifestPath is the in-repo path of the package manifest,
	// both locally and in the remote repositories
	DefaultManifestPath = "packages/packages.json"

	// ManifestIndent is the indentation unit used when writing the manifest
	ManifestIndent = "    "
)
