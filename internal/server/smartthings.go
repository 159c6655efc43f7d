package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotthings/internal/shared"
	"github.com/desertthunder/spotthings/internal/smartthings"
)

// maxInteractionBytes bounds a single ST Schema request body.
const maxInteractionBytes = 1 << 20

// SmartThingsHandler is the ST Schema webhook. It always answers 200 with a JSON payload, which
// is either the interaction's response or a globalError.
type SmartThingsHandler struct {
	dispatcher *smartthings.Dispatcher
	logger     *log.Logger
}

// NewSmartThingsHandler creates a [SmartThingsHandler].
func NewSmartThingsHandler(dispatcher *smartthings.Dispatcher, logger *log.Logger) *SmartThingsHandler {
	return &SmartThingsHandler{dispatcher: dispatcher, logger: shared.WithLogger(logger, "handler", "smartthings")}
}

// Routes returns the HTTP routes this handler serves.
func (h *SmartThingsHandler) Routes() []Route {
	return []Route{{Method: http.MethodPost, Path: "/smartthings"}}
}

func (h *SmartThingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxInteractionBytes))

	var resp any
	if err != nil {
		resp = smartthings.NewErrorResponse(RequestID(r.Context()), "",
			fmt.Errorf("%w: reading body: %w", shared.ErrInvalidInput, err))
	} else {
		resp = h.dispatcher.Handle(r.Context(), body, RequestID(r.Context()))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("encoding interaction response", "error", err)
	}
}

// PingHandler answers liveness probes.
type PingHandler struct{}

// Routes returns the HTTP routes this handler serves.
func (PingHandler) Routes() []Route {
	return []Route{{Method: http.MethodGet, Path: "/ping"}}
}

func (PingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "pong")
}
