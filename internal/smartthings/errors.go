package smartthings

import (
	"errors"
	"fmt"

	"github.com/desertthunder/spotthings/internal/shared"
)

// ErrorEnum is an ST Schema globalError code.
type ErrorEnum string

const (
	ErrorBadRequest             ErrorEnum = "BAD-REQUEST"
	ErrorInvalidToken           ErrorEnum = "INVALID-TOKEN"
	ErrorTokenExpired           ErrorEnum = "TOKEN-EXPIRED"
	ErrorInvalidInteractionType ErrorEnum = "INVALID-INTERACTION-TYPE"
	ErrorInvalidClient          ErrorEnum = "INVALID-CLIENT"
)

// InteractionError reports an interaction type the bridge does not handle.
type InteractionError struct {
	Type InteractionType
}

func (e *InteractionError) Error() string {
	return fmt.Sprintf("error. not supported interactionType %s", e.Type)
}

// Unwrap lets callers match [shared.ErrNotImplemented].
func (e *InteractionError) Unwrap() error {
	return shared.ErrNotImplemented
}

// ClientError reports a callback grant issued to a different ST client.
type ClientError struct {
	ClientID string
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("unknown SmartThings client %q", e.ClientID)
}

// GlobalError is the error block of an ST Schema response.
type GlobalError struct {
	ErrorEnum ErrorEnum `json:"errorEnum"`
	Detail    string    `json:"detail"`
}

// ErrorResponse is the protocol-compliant reply for a failed interaction.
type ErrorResponse struct {
	Headers     Headers     `json:"headers"`
	GlobalError GlobalError `json:"globalError"`
}

// NewErrorResponse classifies err into a [GlobalError] and echoes the request id.
func NewErrorResponse(requestID string, interaction InteractionType, err error) ErrorResponse {
	return ErrorResponse{
		Headers: Headers{
			Schema:          Schema,
			Version:         Version,
			InteractionType: interaction.ResponseType(),
			RequestID:       requestID,
		},
		GlobalError: GlobalError{
			ErrorEnum: classify(err),
			Detail:    err.Error(),
		},
	}
}

func classify(err error) ErrorEnum {
	var ie *InteractionError
	var ce *ClientError
	switch {
	case errors.As(err, &ie):
		return ErrorInvalidInteractionType
	case errors.As(err, &ce):
		return ErrorInvalidClient
	case errors.Is(err, shared.ErrUnauthorized):
		return ErrorInvalidToken
	case errors.Is(err, shared.ErrRefresh), errors.Is(err, shared.ErrProviderAuth):
		return ErrorTokenExpired
	default:
		return ErrorBadRequest
	}
}
