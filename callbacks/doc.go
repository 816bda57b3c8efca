// Package callbacks bridges the platform's push-based notifications to a pair
// of plain functions.
//
// A Bridge owns two subscriptions, one for persona-state-change and one for
// shutdown notifications. It is created subscribed and Close releases both:
//
//	bridge, err := callbacks.New(platform.Dispatcher(), callbacks.Callbacks{
//	    OnPersonaStateChanged: func(p *friend.PersonaStateChange) { ... },
//	    OnSteamShutdown:       func(*callbacks.SteamShutdown) { ... },
//	})
//	if err != nil {
//	    return err
//	}
//	defer bridge.Close()
//
//	for running {
//	    platform.RunCallbacks() // notifications are forwarded here
//	}
//
// # Forwarding
//
// Each delivered notification results in exactly one call of the matching
// function with the payload pointer the dispatcher delivered. The bridge does
// not copy, filter, coalesce, reorder or defer anything; delivery order and
// delivery goroutine are those of the dispatcher.
//
// # Thread Safety
//
// The function pair is immutable after New. The bridge itself takes no
// locks: callers must not call Close concurrently with New, with another
// Close, or with a delivery in flight on another goroutine.
package callbacks
