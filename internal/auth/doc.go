// Package auth owns the Spotify credential lifecycle.
//
// # States
//
// The [Manager] moves a single credential between two states:
//
//   - Unauthorized: the [credentials.Store] holds nothing. [Manager.EnsureFreshToken] fails with
//     [shared.ErrUnauthorized] and the user has to visit /login.
//   - Authorized: [Manager.CompleteAuthorization] exchanged a code and saved the token pair.
//
// # Refresh Policy
//
// A stored token is handed out unchanged until now reaches expires_at minus
// [credentials.SafeExpiryMargin]. From then on the next caller performs exactly one refresh-token
// grant, keeps the old refresh token unless Spotify issued a new one, and saves the result.
// A rejected refresh token surfaces as [shared.ErrRefresh]; nothing is retried.
//
// Refreshes are serialized with a mutex so concurrent requests observing an expiring token do
// not both hit the token endpoint.
package auth
