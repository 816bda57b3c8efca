package callbacks

import (
	"errors"
	"fmt"

	"github.com/opd-ai/steambridge/dispatch"
	"github.com/opd-ai/steambridge/friend"
	"github.com/opd-ai/steambridge/interfaces"
	"github.com/sirupsen/logrus"
)

// SteamShutdown is the payload of a shutdown notification. The platform
// sends it when the client is about to exit.
type SteamShutdown struct {
	_ uint8
}

// Callbacks is the pair of functions a Bridge forwards to.
type Callbacks struct {
	OnPersonaStateChanged func(*friend.PersonaStateChange)
	OnSteamShutdown       func(*SteamShutdown)
}

var (
	// ErrNilDispatcher is returned by New when no dispatcher is supplied.
	ErrNilDispatcher = errors.New("nil dispatcher")

	// ErrIncompleteCallbacks is returned by New when either function is nil.
	ErrIncompleteCallbacks = errors.New("both callbacks are required")
)

// Bridge is a live subscription to persona-state-change and shutdown
// notifications. It is either subscribed to both kinds or to neither.
type Bridge struct {
	dispatcher interfaces.IDispatcher
	callbacks  Callbacks

	personaToken  dispatch.Token
	shutdownToken dispatch.Token
}

// New subscribes to both notification kinds and returns the bridge. Every
// notification delivered by d from now until Close is forwarded to cbs on the
// goroutine d delivers it on.
//
// If the second subscription fails the first is released before the error
// is returned.
func New(d interfaces.IDispatcher, cbs Callbacks) (*Bridge, error) {
	if d == nil {
		return nil, ErrNilDispatcher
	}
	if cbs.OnPersonaStateChanged == nil || cbs.OnSteamShutdown == nil {
		return nil, ErrIncompleteCallbacks
	}

	b := &Bridge{dispatcher: d, callbacks: cbs}

	personaToken, err := d.Register(dispatch.KindPersonaStateChange, b.forwardPersonaStateChange)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", dispatch.KindPersonaStateChange, err)
	}

	shutdownToken, err := d.Register(dispatch.KindSteamShutdown, b.forwardSteamShutdown)
	if err != nil {
		d.Unregister(personaToken)
		return nil, fmt.Errorf("subscribe %s: %w", dispatch.KindSteamShutdown, err)
	}

	b.personaToken = personaToken
	b.shutdownToken = shutdownToken

	logrus.WithFields(logrus.Fields{
		"function":       "callbacks.New",
		"persona_token":  personaToken,
		"shutdown_token": shutdownToken,
	}).Debug("Callback bridge subscribed")

	return b, nil
}

// Close releases both subscriptions. No notification is forwarded once Close
// returns. Calling Close again has no effect.
func (b *Bridge) Close() {
	if !b.Subscribed() {
		return
	}

	b.dispatcher.Unregister(b.personaToken)
	b.dispatcher.Unregister(b.shutdownToken)

	logrus.WithFields(logrus.Fields{
		"function":       "Bridge.Close",
		"persona_token":  b.personaToken,
		"shutdown_token": b.shutdownToken,
	}).Debug("Callback bridge unsubscribed")

	b.personaToken = 0
	b.shutdownToken = 0
}

// Subscribed reports whether the bridge is still forwarding notifications.
func (b *Bridge) Subscribed() bool {
	return b.personaToken != 0
}

func (b *Bridge) forwardPersonaStateChange(payload any) {
	p, ok := payload.(*friend.PersonaStateChange)
	if !ok {
		logDroppedPayload(dispatch.KindPersonaStateChange, payload)
		return
	}
	b.callbacks.OnPersonaStateChanged(p)
}

func (b *Bridge) forwardSteamShutdown(payload any) {
	p, ok := payload.(*SteamShutdown)
	if !ok {
		logDroppedPayload(dispatch.KindSteamShutdown, payload)
		return
	}
	b.callbacks.OnSteamShutdown(p)
}

func logDroppedPayload(kind dispatch.Kind, payload any) {
	logrus.WithFields(logrus.Fields{
		"function":     "Bridge.forward",
		"kind":         kind,
		"payload_type": fmt.Sprintf("%T", payload),
	}).Warn("Dropping notification with unexpected payload type")
}
