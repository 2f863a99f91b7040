// Package github provides a minimal GitHub REST API client for fetching
// repository files through the contents endpoint.
package github

import (
	"context"
	"encoding/base64"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/valory-xyz/bumper/internal/transport"
	"github.com/valory-xyz/bumper/pkg/constants"
	"github.com/valory-xyz/bumper/pkg/errors"
	"github.com/valory-xyz/bumper/pkg/logging"
)

// Client fetches files from GitHub repositories via the contents API.
type Client struct {
	baseURL string
	client  *transport.Client
}

// NewClient creates a new GitHub client. An empty baseURL selects the
// public GitHub API; an empty token leaves requests unauthenticated.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = constants.GitHubAPIBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  transport.New(&transport.BearerAuth{}, token),
	}
}

// contentsResponse is the contents API envelope for a single file.
type contentsResponse struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Size     int    `json:"size"`
	Encoding string `json:"encoding"`
	Content  string `json:"content"`
}

// FetchFile retrieves the raw bytes of a file from a repository's default
// branch. The repo is given in owner/name form and path relative to the
// repository root.
func (c *Client) FetchFile(ctx context.Context, repo, path string) ([]byte, error) {
	url := fmt.Sprintf("%s/repos/%s/contents/%s", c.baseURL, repo, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapIO("create", "GET "+url, err)
	}
	req.Header.Set("Accept", constants.GitHubAcceptHeader)
	req.Header.Set("X-GitHub-Api-Version", constants.GitHubAPIVersion)

	logging.FromContext(ctx).Debug().
		Str("repo", repo).
		Str("url", url).
		Msg("fetching file")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &errors.APIError{
			Repo:     repo,
			Endpoint: url,
			Message:  "request failed",
			Err:      err,
		}
	}

	var envelope contentsResponse
	if err := transport.DecodeResponse(resp, &envelope); err != nil {
		var apiErr *errors.APIError
		if stderrors.As(err, &apiErr) {
			apiErr.Repo = repo
		}
		return nil, err
	}

	if envelope.Encoding != "base64" {
		return nil, errors.NewParseError("json", path,
			fmt.Sprintf("unexpected content encoding %q from %s", envelope.Encoding, repo), nil)
	}

	// The API wraps base64 payloads at 60 columns
	raw := strings.ReplaceAll(envelope.Content, "\n", "")
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, errors.WrapParse("base64", path, err)
	}

	return decoded, nil
}
