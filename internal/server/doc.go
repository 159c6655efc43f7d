// Package server is the HTTP surface of the bridge.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support. [BasicRouter] uses
// [http.ServeMux] internally and filters by method, answering 405 for other methods.
//
// [Middleware] wraps handlers in reverse order (last added executes first). [NewServer] installs
// [Recoverer], [RequestLogger] and a per-client [RateLimiter].
//
// # Handlers
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and
// adds the routes it serves:
//   - [PingHandler]: GET /ping
//   - [AuthHandler]: GET /login, /callback, /refresh
//   - [PlaybackHandler]: GET /playlists, /devices, /play, /pause
//   - [SmartThingsHandler]: POST /smartthings
//
// Validation failures are answered with 400 before any credential or Spotify call is made.
// Errors from the token lifecycle are mapped to status codes in one place.
package server
