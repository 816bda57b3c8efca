// Package steambridge implements Go bindings to a small portion of the
// Steamworks API, centred on the callback bridge that forwards
// persona-state-change and shutdown notifications.
//
// # Getting Started
//
// Create a client, subscribe to notifications and pump callbacks:
//
//	client, err := steambridge.New(steambridge.NewOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Shutdown()
//
//	changes := client.OnPersonaStateChanged()
//	go func() {
//	    for change := range changes.C() {
//	        fmt.Printf("%s changed: %s\n", change.SteamID, change.ChangeFlags)
//	    }
//	}()
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//	client.Run(ctx)
//
// Only one Client can be alive per process, because the SDK itself is a
// process-wide singleton. New returns ErrAlreadyInitialized otherwise.
//
// # Core Types
//
//   - [Client]: initialized platform plus the callback bridge
//   - [Options]: platform selection, usually from [NewOptions]
//   - [Subscription]: unbounded, ordered notification stream
//
// # Message Pump
//
// Notifications are only delivered while callbacks are pumped. Either call
// RunCallbacks from your own loop:
//
//	for client.IsRunning() {
//	    client.RunCallbacks()
//	    time.Sleep(client.IterationInterval())
//	}
//
// or let Run do it on a ticker until its context is cancelled. Subscribers
// are fed on the pumping goroutine and read on their own.
//
// # Persona Names
//
// PersonaName requests user information when needed and waits for the
// matching persona-state-change, so it must be called while another
// goroutine pumps:
//
//	go client.Run(ctx)
//	name, err := client.PersonaName(ctx, steamid.ID(76561197960287930))
//
// # Configuration
//
// NewOptions reads STEAMBRIDGE_SIMULATION, STEAMBRIDGE_APP_ID,
// STEAMBRIDGE_PUMP_INTERVAL and STEAMBRIDGE_LOG_LEVEL through the factory
// package. Tests usually inject a simulated platform instead:
//
//	sim := testing.NewSimulatedPlatform(nil)
//	client, err := steambridge.New(&steambridge.Options{Platform: sim})
//
// # Thread Safety
//
// Client methods are safe for concurrent use. RunCallbacks calls are
// serialized; Shutdown may be called from a subscriber or dispatcher
// handler, in which case teardown completes when the pump returns.
//
// # C API Bindings
//
// The capi subpackage builds a shared library exposing the bridge through a
// flat C interface. See its package documentation for details.
package steambridge
