// Package testing provides an in-memory platform for deterministic testing
// of the binding without a running Steam client.
//
// # Overview
//
// SimulatedPlatform implements interfaces.IPlatform. Notifications are posted
// into a queue and handed to registered handlers only when RunCallbacks is
// called, mirroring the message pump of the real SDK:
//
//	sim := testing.NewSimulatedPlatform(&interfaces.PlatformConfig{UseSimulation: true, AppID: 480})
//	if err := sim.Init(); err != nil {
//	    log.Fatal(err)
//	}
//
//	bridge, _ := callbacks.New(sim.Dispatcher(), cbs)
//	sim.PostPersonaStateChange(76561197960265729, friend.PersonaChangeName)
//	sim.RunCallbacks() // cbs.OnPersonaStateChanged runs here
//
// # Simulation vs Real Implementation
//
//   - Simulation (this package): notifications are synthesized by the test
//     and recorded in a delivery log for verification.
//
//   - Real (real package): notifications come from libsteam_api through
//     manual callback dispatch. Requires the steamworks build tag.
//
// Both implement interfaces.IPlatform and are selected by the factory package.
//
// # Facets
//
// The six facets are backed by plain fields with setters for test setup
// (SetPersonaName, WriteFile, SetSubscribedItems, SetNumAchievements, ...).
// SimulatedFriends.RequestUserInformation behaves like the SDK: the first
// request for a user queues a persona-state-change carrying the Name flag
// and returns true; later requests return false.
//
// # Thread Safety
//
// All methods are safe for concurrent use. Handlers run on the goroutine
// calling RunCallbacks with no platform lock held, so they may post new
// notifications; those are delivered by the following RunCallbacks.
package testing
