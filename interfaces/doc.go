// Package interfaces defines the contracts between the binding and the
// platform SDK it wraps.
//
// The SDK is treated as an external black box with two faces:
//
//   - a notification dispatch system ([IDispatcher]) plus the message pump
//     that drives it ([IMessagePump]);
//   - a process-wide accessor registry ([IPlatform]) handing out the six
//     service facets: [IFriends], [IRemoteStorage], [IUGC], [IUser],
//     [IUserStats] and [IUtils].
//
// Two implementations exist. The testing package provides an in-memory
// platform for tests and pure-Go builds; the real package talks to
// libsteam_api and is compiled with the steamworks build tag. The factory
// package selects between them from a [PlatformConfig]:
//
//	config := &interfaces.PlatformConfig{UseSimulation: true, PumpInterval: 5 * time.Millisecond}
//	if err := config.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	platform, err := factory.NewPlatformFactory().CreatePlatformWithConfig(config)
//
// # Error Handling
//
// Facet methods mirror the SDK and do not return errors. Only platform
// initialization and dispatcher registration can fail.
package interfaces
