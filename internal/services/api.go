// Raw Spotify responses and provider errors
package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/desertthunder/spotthings/internal/shared"
)

// maxBodyBytes caps how much of a Spotify response is buffered.
const maxBodyBytes = 4 << 20

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// ContentType returns the upstream content type, defaulting to JSON for non-empty JSON bodies.
func (r *APIResponse) ContentType() string {
	if ct := r.Headers.Get("Content-Type"); ct != "" {
		return ct
	}
	if r.IsJSON {
		return "application/json"
	}
	return "text/plain; charset=utf-8"
}

func readAPIResponse(resp *http.Response) (*APIResponse, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", shared.ErrProvider, err)
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}

	var jsonData any
	if len(body) > 0 {
		if err := json.Unmarshal(body, &jsonData); err == nil {
			apiResp.IsJSON = true
			apiResp.JSONData = jsonData
		}
	}

	return apiResp, nil
}

// ProviderError is a non-2xx answer from the Spotify Web API.
//
// It matches [shared.ErrProvider], and [shared.ErrProviderAuth] for 401s.
type ProviderError struct {
	StatusCode int
	Message    string
	Response   *APIResponse
}

func newProviderError(resp *APIResponse) *ProviderError {
	pe := &ProviderError{StatusCode: resp.StatusCode, Response: resp}

	var body struct {
		Error struct {
			Status  int    `json:"status"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body, &body); err == nil {
		pe.Message = body.Error.Message
	}
	if pe.Message == "" {
		pe.Message = http.StatusText(resp.StatusCode)
	}

	return pe
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("spotify API error: status %d: %s", e.StatusCode, e.Message)
}

func (e *ProviderError) Unwrap() []error {
	if e.StatusCode == http.StatusUnauthorized {
		return []error{shared.ErrProvider, shared.ErrProviderAuth}
	}
	return []error{shared.ErrProvider}
}
