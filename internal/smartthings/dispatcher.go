package smartthings

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotthings/internal/services"
	"github.com/desertthunder/spotthings/internal/shared"
)

// DeviceLister returns the Spotify devices to expose, in provider order.
type DeviceLister interface {
	ListDevices(ctx context.Context) ([]services.SpotifyDevice, error)
}

// DeviceListerFunc adapts a function to [DeviceLister].
type DeviceListerFunc func(ctx context.Context) ([]services.SpotifyDevice, error)

func (f DeviceListerFunc) ListDevices(ctx context.Context) ([]services.SpotifyDevice, error) {
	return f(ctx)
}

// Dispatcher routes decoded interactions to their handlers.
type Dispatcher struct {
	devices  DeviceLister
	clientID string
	logger   *log.Logger
}

// DispatcherOpts configures a [Dispatcher].
type DispatcherOpts struct {
	Devices  DeviceLister
	ClientID string // ST Schema client id; empty skips the callback grant check
	Logger   *log.Logger
}

// NewDispatcher creates a [Dispatcher].
func NewDispatcher(opts DispatcherOpts) *Dispatcher {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	return &Dispatcher{
		devices:  opts.Devices,
		clientID: opts.ClientID,
		logger:   shared.WithLogger(opts.Logger, "component", "smartthings"),
	}
}

// Dispatch answers req. Only discovery produces a payload; everything else is an error.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (any, error) {
	switch r := req.(type) {
	case *DiscoveryRequest:
		devices, err := d.devices.ListDevices(ctx)
		if err != nil {
			return nil, err
		}
		return Translate(r.Headers.RequestID, devices), nil
	case *GrantCallbackAccess:
		if d.clientID != "" && r.CallbackAuthentication.ClientID != d.clientID {
			return nil, &ClientError{ClientID: r.CallbackAuthentication.ClientID}
		}
		return nil, &InteractionError{Type: r.Headers.InteractionType}
	case *CommandRequest, *StateRefreshRequest, *UnsupportedRequest:
		return nil, &InteractionError{Type: req.Header().InteractionType}
	default:
		return nil, fmt.Errorf("%w: unexpected request type %T", shared.ErrInvalidInput, req)
	}
}

// Handle decodes body, dispatches it and always returns a payload to send back.
//
// requestID is used when the body carries none (e.g. from an X-Request-Id header); a uuid is
// generated when both are empty.
func (d *Dispatcher) Handle(ctx context.Context, body []byte, requestID string) (resp any) {
	interaction := InteractionType("")
	if requestID == "" {
		requestID = shared.GenerateID()
	}

	defer func() {
		if p := recover(); p != nil {
			d.logger.Error("interaction panicked", "interaction", interaction, "panic", p)
			resp = NewErrorResponse(requestID, interaction, fmt.Errorf("internal error: %v", p))
		}
	}()

	req, err := Decode(body)
	if err != nil {
		d.logger.Warn("rejecting malformed interaction", "error", err)
		return NewErrorResponse(requestID, interaction, err)
	}

	h := req.Header()
	interaction = h.InteractionType
	if h.RequestID != "" {
		requestID = h.RequestID
	}

	d.logger.Info("interaction received", "interaction", interaction, "request_id", requestID)

	if r, ok := req.(*DiscoveryRequest); ok {
		r.Headers.RequestID = requestID
	}

	payload, err := d.Dispatch(ctx, req)
	if err != nil {
		d.logger.Warn("interaction failed", "interaction", interaction, "request_id", requestID, "error", err)
		return NewErrorResponse(requestID, interaction, err)
	}

	return payload
}
