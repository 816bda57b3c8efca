// Package real provides the Steamworks-backed platform for steambridge.
//
// SteamworksPlatform implements interfaces.IPlatform on top of the flat C
// API exported by libsteam_api. Callbacks are pumped with manual dispatch:
// RunCallbacks runs one frame on the client pipe, decodes every pending
// callback message this package understands into a Go payload and hands it
// to a dispatch.Registry on the calling goroutine.
//
// # Building
//
// The cgo backend is only compiled with the steamworks build tag and needs
// the SDK redistributable on the linker path:
//
//	CGO_LDFLAGS="-L$STEAMWORKS_SDK/redistributable_bin/linux64" \
//	    go build -tags steamworks ./...
//
// Without the tag this package only carries the payload decoders, and the
// factory reports ErrRealUnavailable for real platforms.
//
// # Decoded Callbacks
//
//	┌──────────────────────────┬──────┬──────────────────────────────┐
//	│ Steam struct             │  id  │ Go payload                   │
//	├──────────────────────────┼──────┼──────────────────────────────┤
//	│ PersonaStateChange_t     │ 304  │ *friend.PersonaStateChange   │
//	│ SteamShutdown_t          │ 704  │ *callbacks.SteamShutdown     │
//	└──────────────────────────┴──────┴──────────────────────────────┘
//
// Every other callback id is skipped.
//
// # SDK Version
//
// The versioned accessors (SteamAPI_SteamFriends_v017 and friends) are those
// of SDK 1.58 through 1.60. Linking against a different SDK fails at link
// time rather than at run time.
package real
