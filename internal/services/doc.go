// Package services talks to the Spotify Web API on behalf of the bridge.
//
// # Client Factory
//
// [SpotifyFactory] implements [ClientFactory]: it injects the stored access token into a freshly
// built [SpotifyClient] per request. Without a credential the client is unauthenticated and
// Spotify's 401 comes back as a [ProviderError] matching [shared.ErrProviderAuth].
//
// Token freshness is not handled here; callers go through the auth package first.
//
// # Rate Limiting
//
// All clients from one factory share a [rate.Limiter] so a burst of SmartThings discovery calls
// cannot exhaust the Spotify quota. Waiting honors the request context.
//
// # Error Handling
//
//   - [shared.ErrProvider] : transport failure or any non-2xx status
//   - [shared.ErrProviderAuth] : 401 from Spotify
//   - [shared.ErrMissingArgument] : Play/Pause called without ids
//
// Nothing is retried.
package services
