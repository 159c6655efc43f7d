// Spotify API implementation of [Player]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/desertthunder/spotthings/internal/credentials"
	"github.com/desertthunder/spotthings/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"
)

// Scopes granted at /login.
var Scopes = []string{
	"user-read-private",
	"user-read-email",
	"user-read-playback-state",
	"user-modify-playback-state",
}

// SpotifyDevice is a Spotify Connect playback target.
type SpotifyDevice struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Type             string `json:"type"` // Computer, Smartphone, Speaker, ...
	IsActive         bool   `json:"is_active"`
	IsPrivateSession bool   `json:"is_private_session"`
	IsRestricted     bool   `json:"is_restricted"`
	VolumePercent    *int   `json:"volume_percent"`
}

type devicesResponse struct {
	Devices []SpotifyDevice `json:"devices"`
}

type playRequest struct {
	ContextURI string `json:"context_uri"`
}

// NewOAuthConfig builds the Spotify [oauth2.Config] from configuration.
func NewOAuthConfig(conf shared.SpotifyConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     conf.ClientID,
		ClientSecret: conf.ClientSecret,
		RedirectURL:  conf.RedirectURI,
		Scopes:       Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   spotifyAuthURL,
			TokenURL:  spotifyTokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
}

// SpotifyFactory implements [ClientFactory]. Every client it builds shares one rate limiter.
type SpotifyFactory struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// FactoryOpts configures a [SpotifyFactory].
type FactoryOpts struct {
	BaseURL           string
	HTTPClient        *http.Client
	RequestsPerSecond float64 // <= 0 disables limiting
}

// NewSpotifyFactory creates a [SpotifyFactory], defaulting to the public Web API and [http.DefaultClient].
func NewSpotifyFactory(opts FactoryOpts) *SpotifyFactory {
	if opts.BaseURL == "" {
		opts.BaseURL = spotifyBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	return &SpotifyFactory{
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		limiter:    limiter,
	}
}

// NewClient injects the credential's access token into a fresh [SpotifyClient].
func (f *SpotifyFactory) NewClient(cred *credentials.Credential) Player {
	client := &SpotifyClient{
		baseURL:    f.baseURL,
		httpClient: f.httpClient,
		limiter:    f.limiter,
	}
	if cred != nil && cred.AccessToken != "" {
		client.token = cred.Token()
	}
	return client
}

// SpotifyClient calls the Spotify Web API with a single bearer token.
type SpotifyClient struct {
	baseURL    string
	token      *oauth2.Token
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Authenticated reports whether the client carries an access token.
func (s *SpotifyClient) Authenticated() bool {
	return s.token != nil
}

// doRequest performs a request to the Spotify API and returns the raw response.
//
// Non-2xx statuses are returned as a [*ProviderError].
func (s *SpotifyClient) doRequest(ctx context.Context, method, endpoint string, body any) (*APIResponse, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrProvider, err)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if s.token != nil {
		s.token.SetAuthHeader(req)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", shared.ErrProvider, err)
	}
	defer resp.Body.Close()

	apiResp, err := readAPIResponse(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newProviderError(apiResp)
	}

	return apiResp, nil
}

// Devices retrieves the user's available devices.
func (s *SpotifyClient) Devices(ctx context.Context) ([]SpotifyDevice, error) {
	resp, err := s.DevicesRaw(ctx)
	if err != nil {
		return nil, err
	}

	var devices devicesResponse
	if err := json.Unmarshal(resp.Body, &devices); err != nil {
		return nil, fmt.Errorf("%w: failed to decode devices: %v", shared.ErrProvider, err)
	}

	return devices.Devices, nil
}

func (s *SpotifyClient) DevicesRaw(ctx context.Context) (*APIResponse, error) {
	return s.doRequest(ctx, http.MethodGet, "/me/player/devices", nil)
}

func (s *SpotifyClient) PlaylistsRaw(ctx context.Context) (*APIResponse, error) {
	return s.doRequest(ctx, http.MethodGet, "/me/playlists", nil)
}

// Play starts playback of contextURI on deviceID.
func (s *SpotifyClient) Play(ctx context.Context, deviceID, contextURI string) (*APIResponse, error) {
	if deviceID == "" || contextURI == "" {
		return nil, fmt.Errorf("%w: device_id and context_uri are required", shared.ErrMissingArgument)
	}

	endpoint := "/me/player/play?device_id=" + url.QueryEscape(deviceID)
	return s.doRequest(ctx, http.MethodPut, endpoint, playRequest{ContextURI: contextURI})
}

// Pause pauses playback on deviceID.
func (s *SpotifyClient) Pause(ctx context.Context, deviceID string) (*APIResponse, error) {
	if deviceID == "" {
		return nil, fmt.Errorf("%w: device_id is required", shared.ErrMissingArgument)
	}

	endpoint := "/me/player/pause?device_id=" + url.QueryEscape(deviceID)
	return s.doRequest(ctx, http.MethodPut, endpoint, nil)
}
