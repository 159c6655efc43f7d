package smartthings

import (
	"encoding/json"
	"fmt"

	"github.com/desertthunder/spotthings/internal/shared"
)

const (
	Schema  = "st-schema"
	Version = "1.0"
)

// InteractionType is the headers.interactionType of an ST Schema message.
type InteractionType string

const (
	InteractionDiscovery      InteractionType = "discoveryRequest"
	InteractionCommand        InteractionType = "commandRequest"
	InteractionStateRefresh   InteractionType = "stateRefreshRequest"
	InteractionGrantCallback  InteractionType = "grantCallbackAccess"
	InteractionDiscoveryResp  InteractionType = "discoveryResponse"
	InteractionCommandResp    InteractionType = "commandResponse"
	InteractionStateResp      InteractionType = "stateRefreshResponse"
	InteractionAccessTokenRsp InteractionType = "accessTokenResponse"
	InteractionResult         InteractionType = "interactionResultResponse"
)

// ResponseType returns the interaction type a reply to t carries.
func (t InteractionType) ResponseType() InteractionType {
	switch t {
	case InteractionDiscovery:
		return InteractionDiscoveryResp
	case InteractionCommand:
		return InteractionCommandResp
	case InteractionStateRefresh:
		return InteractionStateResp
	case InteractionGrantCallback:
		return InteractionAccessTokenRsp
	default:
		return InteractionResult
	}
}

// Headers is the common ST Schema header block.
type Headers struct {
	Schema          string          `json:"schema"`
	Version         string          `json:"version"`
	InteractionType InteractionType `json:"interactionType"`
	RequestID       string          `json:"requestId"`
}

// Authentication carries the token SmartThings obtained for this integration.
type Authentication struct {
	TokenType string `json:"tokenType"`
	Token     string `json:"token"`
}

// Request is one decoded ST Schema interaction.
type Request interface {
	Header() Headers
	interaction()
}

type base struct {
	Headers        Headers         `json:"headers"`
	Authentication *Authentication `json:"authentication,omitempty"`
}

func (b base) Header() Headers { return b.Headers }
func (base) interaction()      {}

// DiscoveryRequest asks for the list of devices this integration exposes.
type DiscoveryRequest struct {
	base
}

// Command is a single capability command for a device.
type Command struct {
	Component  string `json:"component"`
	Capability string `json:"capability"`
	Command    string `json:"command"`
	Arguments  []any  `json:"arguments"`
}

// CommandDevice groups the commands targeting one device.
type CommandDevice struct {
	ExternalDeviceID string         `json:"externalDeviceId"`
	DeviceCookie     map[string]any `json:"deviceCookie,omitempty"`
	Commands         []Command      `json:"commands"`
}

// CommandRequest asks the integration to act on devices.
type CommandRequest struct {
	base
	Devices []CommandDevice `json:"devices"`
}

// DeviceRef identifies a device in a state refresh.
type DeviceRef struct {
	ExternalDeviceID string         `json:"externalDeviceId"`
	DeviceCookie     map[string]any `json:"deviceCookie,omitempty"`
}

// StateRefreshRequest asks for the current state of devices.
type StateRefreshRequest struct {
	base
	Devices []DeviceRef `json:"devices"`
}

// CallbackAuthentication is the code grant SmartThings offers for proactive state callbacks.
type CallbackAuthentication struct {
	GrantType string `json:"grantType"`
	Scope     string `json:"scope"`
	Code      string `json:"code"`
	ClientID  string `json:"clientId"`
}

// CallbackURLs lists where callbacks would be sent.
type CallbackURLs struct {
	OAuthToken    string `json:"oauthToken"`
	StateCallback string `json:"stateCallback"`
}

// GrantCallbackAccess offers the integration callback credentials.
type GrantCallbackAccess struct {
	base
	CallbackAuthentication CallbackAuthentication `json:"callbackAuthentication"`
	CallbackURLs           CallbackURLs           `json:"callbackUrls"`
}

// UnsupportedRequest is any interaction type outside the known set.
type UnsupportedRequest struct {
	base
	Raw json.RawMessage `json:"-"`
}

// Decode parses an ST Schema request body into its [Request] variant.
func Decode(data []byte) (Request, error) {
	var probe base
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: malformed ST Schema request: %v", shared.ErrInvalidInput, err)
	}

	var req Request
	switch probe.Headers.InteractionType {
	case InteractionDiscovery:
		req = &DiscoveryRequest{}
	case InteractionCommand:
		req = &CommandRequest{}
	case InteractionStateRefresh:
		req = &StateRefreshRequest{}
	case InteractionGrantCallback:
		req = &GrantCallbackAccess{}
	default:
		return &UnsupportedRequest{base: probe, Raw: json.RawMessage(data)}, nil
	}

	if err := json.Unmarshal(data, req); err != nil {
		return nil, fmt.Errorf("%w: malformed %s: %v", shared.ErrInvalidInput, probe.Headers.InteractionType, err)
	}

	return req, nil
}
