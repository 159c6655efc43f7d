// Package smartthings implements the ST Schema side of the bridge.
//
// # Interactions
//
// SmartThings POSTs a JSON envelope whose headers.interactionType selects the payload. [Decode]
// turns it into one of a closed set of [Request] variants:
//
//   - [DiscoveryRequest] : answered with a [DiscoveryResponse] listing Spotify Connect devices
//   - [CommandRequest], [StateRefreshRequest], [GrantCallbackAccess] : decoded but not handled
//   - [UnsupportedRequest] : any other interaction type
//
// # Discovery Translation
//
// [Translate] maps Spotify devices to ST device descriptors one-to-one and in order. The Spotify
// device id becomes externalDeviceId verbatim; SmartThings uses it to recognize a device across
// discoveries.
//
// # Errors
//
// SmartThings treats a missing reply as a failure, so every request gets a payload.
// [Dispatcher.Dispatch] returns (payload, error); [Dispatcher.Handle] converts errors once into an
// [ErrorResponse] carrying an ST Schema globalError.
package smartthings
