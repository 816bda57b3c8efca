// Package dispatch implements the subscription bookkeeping of the platform's
// notification system: handlers registered per notification kind, opaque
// tokens to release them, and in-order delivery.
//
// Both the simulated platform and the Steamworks backend delegate to a
// Registry; they differ only in where notifications come from.
package dispatch

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Kind identifies a notification category. Values match the platform's
// callback ids.
type Kind int32

const (
	// KindPersonaStateChange is PersonaStateChange_t (friends base 300 + 4).
	KindPersonaStateChange Kind = 304
	// KindSteamShutdown is SteamShutdown_t (utils base 700 + 4).
	KindSteamShutdown Kind = 704
)

func (k Kind) String() string {
	switch k {
	case KindPersonaStateChange:
		return "persona_state_change"
	case KindSteamShutdown:
		return "steam_shutdown"
	default:
		return fmt.Sprintf("kind(%d)", int32(k))
	}
}

// Known reports whether k is a kind the registry accepts subscriptions for.
func (k Kind) Known() bool {
	return k == KindPersonaStateChange || k == KindSteamShutdown
}

// Token identifies one active registration. The zero Token is never issued.
type Token uint64

// Handler receives the payload of one notification. The payload is only
// valid for the duration of the call.
type Handler func(payload any)

var (
	// ErrNilHandler is returned when registering a nil handler.
	ErrNilHandler = errors.New("nil notification handler")

	// ErrUnknownKind is returned when registering for an unsupported kind.
	ErrUnknownKind = errors.New("unknown notification kind")
)

type subscription struct {
	token   Token
	kind    Kind
	handler Handler
	active  atomic.Bool
}

// Registry tracks handler registrations and delivers notifications to them.
// It is safe for concurrent use. No lock is held while a handler runs, so
// handlers may register and unregister from inside a delivery.
type Registry struct {
	mu      sync.RWMutex
	next    Token
	byKind  map[Kind][]*subscription
	byToken map[Token]*subscription
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byKind:  make(map[Kind][]*subscription),
		byToken: make(map[Token]*subscription),
	}
}

// Register subscribes handler to notifications of kind and returns the token
// needed to release the subscription.
func (r *Registry) Register(kind Kind, handler Handler) (Token, error) {
	if handler == nil {
		return 0, ErrNilHandler
	}
	if !kind.Known() {
		return 0, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	r.mu.Lock()
	r.next++
	sub := &subscription{token: r.next, kind: kind, handler: handler}
	sub.active.Store(true)
	r.byToken[sub.token] = sub
	r.byKind[kind] = append(r.byKind[kind], sub)
	r.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function": "Registry.Register",
		"kind":     kind,
		"token":    sub.token,
	}).Debug("Registered notification handler")

	return sub.token, nil
}

// Unregister releases the subscription identified by token. Once it returns
// the handler is not invoked again, including by a delivery already in
// progress. It reports false for unknown or already released tokens.
func (r *Registry) Unregister(token Token) bool {
	r.mu.Lock()
	sub, ok := r.byToken[token]
	if !ok {
		r.mu.Unlock()
		return false
	}
	sub.active.Store(false)
	delete(r.byToken, token)

	subs := r.byKind[sub.kind]
	for i, s := range subs {
		if s == sub {
			// copy so snapshots held by in-flight deliveries stay intact
			remaining := make([]*subscription, 0, len(subs)-1)
			remaining = append(remaining, subs[:i]...)
			remaining = append(remaining, subs[i+1:]...)
			r.byKind[sub.kind] = remaining
			break
		}
	}
	r.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function": "Registry.Unregister",
		"kind":     sub.kind,
		"token":    token,
	}).Debug("Unregistered notification handler")

	return true
}

// Deliver invokes every active handler of kind with payload, in registration
// order, on the calling goroutine. It returns the number of handlers invoked.
func (r *Registry) Deliver(kind Kind, payload any) int {
	r.mu.RLock()
	subs := r.byKind[kind]
	r.mu.RUnlock()

	delivered := 0
	for _, sub := range subs {
		if !sub.active.Load() {
			continue
		}
		sub.handler(payload)
		delivered++
	}
	return delivered
}

// Count returns the number of active registrations for kind.
func (r *Registry) Count(kind Kind) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byKind[kind])
}
