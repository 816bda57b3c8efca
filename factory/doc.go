// Package factory selects and creates platform implementations for
// steambridge.
//
// The factory abstracts the creation of the platform, allowing seamless
// switching between the in-memory simulation (for testing) and the Steamworks
// backend without changing consuming code.
//
// # Configuration
//
// The factory reads its default configuration from the environment:
//   - STEAMBRIDGE_SIMULATION: "true" or "false" to enable simulation mode
//   - STEAMBRIDGE_APP_ID: app id reported by the simulated platform
//   - STEAMBRIDGE_PUMP_INTERVAL: Go duration between message pump runs,
//     within [MinPumpInterval, MaxPumpInterval]
//   - STEAMBRIDGE_LOG_LEVEL: logrus level name
//
// Invalid values are logged and replaced by defaults.
//
// STEAMBRIDGE_CONFIG may name a YAML file with the same settings (keys
// use_simulation, app_id, pump_interval, log_level). It is applied before
// the variables above, so the environment wins. See LoadConfigFile.
//
// # Usage
//
//	factory := NewPlatformFactory()
//
//	platform, err := factory.CreatePlatform()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := platform.Init(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Testing Support
//
// CreateSimulationForTesting returns a concrete *testing.SimulatedPlatform
// so tests can post notifications directly:
//
//	func TestMyFeature(t *testing.T) {
//	    sim := factory.NewPlatformFactory().CreateSimulationForTesting(factory.WithAppID(730))
//	    // sim.Init(), sim.PostPersonaStateChange(...), sim.RunCallbacks()
//	}
//
// # Steamworks Backend
//
// Real platforms are only available in binaries built with -tags steamworks.
// Otherwise CreatePlatform returns ErrRealUnavailable when simulation is off.
package factory
