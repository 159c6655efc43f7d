package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Credential lifecycle errors
	ErrAuthorization = fmt.Errorf("authorization code exchange failed")
	ErrUnauthorized  = fmt.Errorf("not authorized")
	ErrRefresh       = fmt.Errorf("token refresh failed")
	ErrIO            = fmt.Errorf("credential storage failed")

	// Provider errors
	ErrProvider     = fmt.Errorf("spotify API request failed")
	ErrProviderAuth = fmt.Errorf("spotify rejected the access token")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
)
