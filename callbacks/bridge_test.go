package callbacks

import (
	"errors"
	"testing"

	"github.com/opd-ai/steambridge/dispatch"
	"github.com/opd-ai/steambridge/friend"
	"github.com/opd-ai/steambridge/interfaces"
	"github.com/opd-ai/steambridge/steamid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects forwarded payloads in delivery order.
type recorder struct {
	persona  []*friend.PersonaStateChange
	shutdown []*SteamShutdown
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnPersonaStateChanged: func(p *friend.PersonaStateChange) { r.persona = append(r.persona, p) },
		OnSteamShutdown:       func(s *SteamShutdown) { r.shutdown = append(r.shutdown, s) },
	}
}

func personaPayload(id steamid.ID, flags friend.PersonaChange) *friend.PersonaStateChange {
	return &friend.PersonaStateChange{SteamID: id, ChangeFlags: flags}
}

// failingDispatcher rejects registrations of one kind.
type failingDispatcher struct {
	*dispatch.Registry
	failKind dispatch.Kind
}

var errRegistrationRefused = errors.New("registration refused")

func (f *failingDispatcher) Register(kind dispatch.Kind, h dispatch.Handler) (dispatch.Token, error) {
	if kind == f.failKind {
		return 0, errRegistrationRefused
	}
	return f.Registry.Register(kind, h)
}

var _ interfaces.IDispatcher = (*failingDispatcher)(nil)

func TestNewValidatesArguments(t *testing.T) {
	rec := &recorder{}

	_, err := New(nil, rec.callbacks())
	assert.ErrorIs(t, err, ErrNilDispatcher)

	_, err = New(dispatch.NewRegistry(), Callbacks{OnSteamShutdown: func(*SteamShutdown) {}})
	assert.ErrorIs(t, err, ErrIncompleteCallbacks)

	_, err = New(dispatch.NewRegistry(), Callbacks{OnPersonaStateChanged: func(*friend.PersonaStateChange) {}})
	assert.ErrorIs(t, err, ErrIncompleteCallbacks)
}

func TestNewSubscribesBothKinds(t *testing.T) {
	reg := dispatch.NewRegistry()
	rec := &recorder{}

	b, err := New(reg, rec.callbacks())
	require.NoError(t, err)

	assert.True(t, b.Subscribed())
	assert.Equal(t, 1, reg.Count(dispatch.KindPersonaStateChange))
	assert.Equal(t, 1, reg.Count(dispatch.KindSteamShutdown))

	b.Close()
	assert.False(t, b.Subscribed())
	assert.Equal(t, 0, reg.Count(dispatch.KindPersonaStateChange))
	assert.Equal(t, 0, reg.Count(dispatch.KindSteamShutdown))
}

func TestFailedSubscriptionRollsBack(t *testing.T) {
	d := &failingDispatcher{Registry: dispatch.NewRegistry(), failKind: dispatch.KindSteamShutdown}
	rec := &recorder{}

	b, err := New(d, rec.callbacks())
	assert.Nil(t, b)
	assert.ErrorIs(t, err, errRegistrationRefused)

	assert.Equal(t, 0, d.Count(dispatch.KindPersonaStateChange), "first subscription must be released")
	assert.Equal(t, 0, d.Count(dispatch.KindSteamShutdown))

	d.Deliver(dispatch.KindPersonaStateChange, personaPayload(1, friend.PersonaChangeName))
	assert.Empty(t, rec.persona)
}

func TestFirstSubscriptionFailure(t *testing.T) {
	d := &failingDispatcher{Registry: dispatch.NewRegistry(), failKind: dispatch.KindPersonaStateChange}

	_, err := New(d, (&recorder{}).callbacks())
	assert.ErrorIs(t, err, errRegistrationRefused)
	assert.Equal(t, 0, d.Count(dispatch.KindSteamShutdown))
}

// P1: nothing is forwarded after Close returns.
func TestNoForwardingAfterClose(t *testing.T) {
	reg := dispatch.NewRegistry()
	rec := &recorder{}

	// a delivery before the bridge exists reaches nobody
	reg.Deliver(dispatch.KindPersonaStateChange, personaPayload(1, friend.PersonaChangeName))

	b, err := New(reg, rec.callbacks())
	require.NoError(t, err)
	assert.Empty(t, rec.persona)

	b.Close()
	reg.Deliver(dispatch.KindPersonaStateChange, personaPayload(2, friend.PersonaChangeName))
	reg.Deliver(dispatch.KindSteamShutdown, &SteamShutdown{})

	assert.Empty(t, rec.persona)
	assert.Empty(t, rec.shutdown)
}

// P2: N deliveries give N forwards with identical payloads in order.
func TestForwardingFidelity(t *testing.T) {
	reg := dispatch.NewRegistry()
	rec := &recorder{}
	b, err := New(reg, rec.callbacks())
	require.NoError(t, err)
	defer b.Close()

	var sent []*friend.PersonaStateChange
	for i := 0; i < 25; i++ {
		p := personaPayload(steamid.ID(76561197960265728+uint64(i)), friend.PersonaChange(i))
		sent = append(sent, p)
		reg.Deliver(dispatch.KindPersonaStateChange, p)
	}

	require.Len(t, rec.persona, len(sent))
	for i := range sent {
		assert.Same(t, sent[i], rec.persona[i], "payload %d must be passed through unchanged", i)
	}
}

// P3: kinds never cross.
func TestKindsAreIndependent(t *testing.T) {
	reg := dispatch.NewRegistry()
	rec := &recorder{}
	b, err := New(reg, rec.callbacks())
	require.NoError(t, err)
	defer b.Close()

	reg.Deliver(dispatch.KindSteamShutdown, &SteamShutdown{})
	assert.Empty(t, rec.persona)
	assert.Len(t, rec.shutdown, 1)

	reg.Deliver(dispatch.KindPersonaStateChange, personaPayload(5, friend.PersonaChangeStatus))
	assert.Len(t, rec.persona, 1)
	assert.Len(t, rec.shutdown, 1)
}

// P4: bridges do not interfere with each other.
func TestBridgesAreIndependent(t *testing.T) {
	reg := dispatch.NewRegistry()
	recA, recB := &recorder{}, &recorder{}

	b, err := New(reg, recB.callbacks())
	require.NoError(t, err)
	defer b.Close()

	a, err := New(reg, recA.callbacks())
	require.NoError(t, err)
	reg.Deliver(dispatch.KindPersonaStateChange, personaPayload(1, friend.PersonaChangeName))
	a.Close()

	reg.Deliver(dispatch.KindPersonaStateChange, personaPayload(2, friend.PersonaChangeName))
	reg.Deliver(dispatch.KindSteamShutdown, &SteamShutdown{})

	assert.Len(t, recA.persona, 1)
	assert.Empty(t, recA.shutdown)
	assert.Len(t, recB.persona, 2)
	assert.Len(t, recB.shutdown, 1)
}

// P5: a delivery made while the callback is still running is not coalesced.
func TestReentrantDeliveryIsNotCoalesced(t *testing.T) {
	reg := dispatch.NewRegistry()
	var seen []steamid.ID
	first := personaPayload(1, friend.PersonaChangeName)
	second := personaPayload(2, friend.PersonaChangeName)

	b, err := New(reg, Callbacks{
		OnPersonaStateChanged: func(p *friend.PersonaStateChange) {
			seen = append(seen, p.SteamID)
			if p == first {
				reg.Deliver(dispatch.KindPersonaStateChange, second)
			}
		},
		OnSteamShutdown: func(*SteamShutdown) {},
	})
	require.NoError(t, err)
	defer b.Close()

	reg.Deliver(dispatch.KindPersonaStateChange, first)
	assert.Equal(t, []steamid.ID{1, 2}, seen)
}

func TestCloseIsIdempotent(t *testing.T) {
	reg := dispatch.NewRegistry()
	other, err := reg.Register(dispatch.KindSteamShutdown, func(any) {})
	require.NoError(t, err)

	b, err := New(reg, (&recorder{}).callbacks())
	require.NoError(t, err)
	b.Close()
	b.Close()

	assert.Equal(t, 1, reg.Count(dispatch.KindSteamShutdown), "unrelated registration must survive")
	assert.True(t, reg.Unregister(other))
}

func TestCloseFromInsideCallback(t *testing.T) {
	reg := dispatch.NewRegistry()
	calls := 0
	var b *Bridge

	b, err := New(reg, Callbacks{
		OnPersonaStateChanged: func(*friend.PersonaStateChange) {
			calls++
			b.Close()
		},
		OnSteamShutdown: func(*SteamShutdown) { calls++ },
	})
	require.NoError(t, err)

	reg.Deliver(dispatch.KindPersonaStateChange, personaPayload(1, friend.PersonaChangeName))
	reg.Deliver(dispatch.KindPersonaStateChange, personaPayload(2, friend.PersonaChangeName))
	reg.Deliver(dispatch.KindSteamShutdown, &SteamShutdown{})

	assert.Equal(t, 1, calls)
	assert.False(t, b.Subscribed())
}

func TestUnexpectedPayloadTypeIsDropped(t *testing.T) {
	reg := dispatch.NewRegistry()
	rec := &recorder{}
	b, err := New(reg, rec.callbacks())
	require.NoError(t, err)
	defer b.Close()

	reg.Deliver(dispatch.KindPersonaStateChange, "not a payload")
	reg.Deliver(dispatch.KindSteamShutdown, 42)

	assert.Empty(t, rec.persona)
	assert.Empty(t, rec.shutdown)
}
