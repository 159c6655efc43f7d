package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotthings/internal/services"
	"github.com/desertthunder/spotthings/internal/shared"
)

// PlaybackHandler proxies the Spotify playback and library endpoints.
//
// Every route obtains a fresh credential first, so an expiring token is refreshed before the
// Spotify call is made.
type PlaybackHandler struct {
	tokens  TokenManager
	factory services.ClientFactory
	logger  *log.Logger
}

// NewPlaybackHandler creates a [PlaybackHandler].
func NewPlaybackHandler(tokens TokenManager, factory services.ClientFactory, logger *log.Logger) *PlaybackHandler {
	return &PlaybackHandler{
		tokens:  tokens,
		factory: factory,
		logger:  shared.WithLogger(logger, "handler", "playback"),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *PlaybackHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/playlists"},
		{Method: http.MethodGet, Path: "/devices"},
		{Method: http.MethodGet, Path: "/play"},
		{Method: http.MethodGet, Path: "/pause"},
	}
}

func (h *PlaybackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var call func(services.Player) (*services.APIResponse, error)

	switch r.URL.Path {
	case "/playlists":
		call = func(p services.Player) (*services.APIResponse, error) { return p.PlaylistsRaw(r.Context()) }
	case "/devices":
		call = func(p services.Player) (*services.APIResponse, error) { return p.DevicesRaw(r.Context()) }
	case "/play":
		deviceID, contextURI := query.Get("device_id"), query.Get("context_uri")
		if deviceID == "" {
			http.Error(w, "Missing device_id", http.StatusBadRequest)
			return
		}
		if contextURI == "" {
			http.Error(w, "Missing context_uri", http.StatusBadRequest)
			return
		}
		call = func(p services.Player) (*services.APIResponse, error) { return p.Play(r.Context(), deviceID, contextURI) }
	case "/pause":
		deviceID := query.Get("device_id")
		if deviceID == "" {
			http.Error(w, "Missing device_id", http.StatusBadRequest)
			return
		}
		call = func(p services.Player) (*services.APIResponse, error) { return p.Pause(r.Context(), deviceID) }
	default:
		http.NotFound(w, r)
		return
	}

	cred, err := h.tokens.EnsureFreshToken(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	resp, err := call(h.factory.NewClient(cred))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeAPIResponse(w, resp)
}
