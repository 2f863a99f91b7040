package transport

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/valory-xyz/bumper/pkg/errors"
	"github.com/valory-xyz/bumper/pkg/logging"
)

// DecodeResponse reads a JSON response body into target and closes it.
// Non-200 responses are returned as an APIError carrying the status code
// and response body; the caller fills in the repository.
func DecodeResponse(resp *http.Response, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Msg("failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		endpoint := ""
		if resp.Request != nil && resp.Request.URL != nil {
			endpoint = resp.Request.URL.String()
		}
		return &errors.APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   endpoint,
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", "response", err)
	}

	return nil
}
