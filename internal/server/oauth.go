package server

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotthings/internal/auth"
	"github.com/desertthunder/spotthings/internal/shared"
)

// expiryLayout formats the safe expiry shown by /refresh, e.g. "March 1, 2025 12:55 PM".
const expiryLayout = "January 2, 2006 3:04 PM"

// AuthHandler serves the Spotify authorization endpoints.
type AuthHandler struct {
	tokens TokenManager
	logger *log.Logger
}

// NewAuthHandler creates an [AuthHandler] backed by tokens.
func NewAuthHandler(tokens TokenManager, logger *log.Logger) *AuthHandler {
	return &AuthHandler{tokens: tokens, logger: shared.WithLogger(logger, "handler", "auth")}
}

// Routes returns the HTTP routes this handler serves.
func (h *AuthHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/login"},
		{Method: http.MethodGet, Path: "/callback"},
		{Method: http.MethodGet, Path: "/refresh"},
	}
}

func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/login":
		h.login(w, r)
	case "/callback":
		h.callback(w, r)
	case "/refresh":
		h.refresh(w, r)
	default:
		http.NotFound(w, r)
	}
}

// login redirects to the Spotify consent page.
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.tokens.AuthURL(), http.StatusFound)
}

// callback exchanges the authorization code Spotify redirected back with.
func (h *AuthHandler) callback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	code := query.Get("code")
	if code == "" {
		if errParam := query.Get("error"); errParam != "" {
			h.logger.Warn("authorization denied", "error", errParam)
		}
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if state := query.Get("state"); state != "" && state != auth.State {
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	if _, err := h.tokens.CompleteAuthorization(r.Context(), code); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "Logged in")
}

// refresh refreshes the token when it is inside the safe-expiry margin.
func (h *AuthHandler) refresh(w http.ResponseWriter, r *http.Request) {
	res, err := h.tokens.Refresh(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if res.Refreshed {
		fmt.Fprint(w, "Token refreshed")
		return
	}

	fmt.Fprintf(w, "Token is still valid. Expires at %s", res.Credential.SafeExpiry().UTC().Format(expiryLayout))
}
