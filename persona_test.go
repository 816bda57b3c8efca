package steambridge

import (
	"context"
	"testing"
	"time"

	"github.com/opd-ai/steambridge/steamid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonaNameWaitsForNameChange(t *testing.T) {
	client, platform := newTestClient(t)
	id := steamid.ID(76561198012145679)
	platform.SimulatedFriends().SetPersonaName(id, "Alice")

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()
	go client.Run(ctx)

	name, err := client.PersonaName(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Alice", name)

	// cached now, answered without a round trip
	name, err = client.PersonaName(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Alice", name)
	assert.Equal(t, 0, client.persona.len(), "temporary subscriptions are released")
}

func TestPersonaNameCached(t *testing.T) {
	client, platform := newTestClient(t)
	id := steamid.ID(76561198012145679)
	platform.SimulatedFriends().SetPersonaName(id, "Bob")
	platform.SimulatedFriends().MarkLoaded(id)

	name, err := client.PersonaName(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Bob", name)
	assert.Equal(t, 0, platform.Pending())
}

func TestPersonaNameHonoursContext(t *testing.T) {
	client, _ := newTestClient(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// nobody pumps, so the name change never arrives
	_, err := client.PersonaName(ctx, steamid.ID(7))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPersonaNameInterruptedByShutdown(t *testing.T) {
	client, _ := newTestClient(t)

	result := make(chan error, 1)
	go func() {
		_, err := client.PersonaName(context.Background(), steamid.ID(9))
		result <- err
	}()

	require.Eventually(t, func() bool { return client.persona.len() == 1 }, testTimeout, time.Millisecond)
	client.Shutdown()

	select {
	case err := <-result:
		assert.ErrorIs(t, err, ErrClientClosed)
	case <-time.After(testTimeout):
		t.Fatal("PersonaName did not return after Shutdown")
	}
}
