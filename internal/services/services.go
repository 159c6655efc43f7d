// package services defines the Spotify Web API client used by the bridge
package services

import (
	"context"

	"github.com/desertthunder/spotthings/internal/credentials"
)

// Player is the subset of the Spotify Web API the bridge exposes.
type Player interface {
	// Devices lists the user's available Spotify Connect devices.
	Devices(ctx context.Context) ([]SpotifyDevice, error)

	// DevicesRaw returns the /me/player/devices response body untouched.
	DevicesRaw(ctx context.Context) (*APIResponse, error)

	// PlaylistsRaw returns the /me/playlists response body untouched.
	PlaylistsRaw(ctx context.Context) (*APIResponse, error)

	// Play starts contextURI (album, playlist, artist) on deviceID.
	Play(ctx context.Context, deviceID, contextURI string) (*APIResponse, error)

	// Pause pauses playback on deviceID.
	Pause(ctx context.Context, deviceID string) (*APIResponse, error)
}

// ClientFactory builds a [Player] for the current credential.
//
// A nil credential yields an unauthenticated client whose calls fail with
// [shared.ErrProviderAuth].
type ClientFactory interface {
	NewClient(cred *credentials.Credential) Player
}
