package server

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotthings/internal/services"
	"github.com/desertthunder/spotthings/internal/shared"
)

// writeError maps the error taxonomy onto status codes. Spotify errors pass through with their
// own status and body.
func writeError(w http.ResponseWriter, logger *log.Logger, err error) {
	var pe *services.ProviderError

	switch {
	case errors.Is(err, shared.ErrAuthorization):
		http.Error(w, "Authorization failed", http.StatusBadRequest)
	case errors.Is(err, shared.ErrUnauthorized):
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	case errors.Is(err, shared.ErrRefresh):
		http.Error(w, "Token refresh rejected, visit /login to authorize again", http.StatusUnauthorized)
	case errors.Is(err, shared.ErrIO):
		logger.Error("credential storage failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	case errors.As(err, &pe) && pe.Response != nil:
		writeAPIResponse(w, pe.Response)
	case errors.Is(err, shared.ErrProvider):
		logger.Warn("spotify unreachable", "error", err)
		http.Error(w, "Bad gateway", http.StatusBadGateway)
	default:
		logger.Error("unhandled error", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// writeAPIResponse relays a Spotify response verbatim.
func writeAPIResponse(w http.ResponseWriter, resp *services.APIResponse) {
	if len(resp.Body) > 0 {
		w.Header().Set("Content-Type", resp.ContentType())
	}
	w.WriteHeader(resp.StatusCode)
	if len(resp.Body) > 0 {
		w.Write(resp.Body)
	}
}
