//go:build !steamworks

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/opd-ai/steambridge/dispatch"
	"github.com/opd-ai/steambridge/friend"
	"github.com/opd-ai/steambridge/limits"
	"github.com/opd-ai/steambridge/steamid"
	sim "github.com/opd-ai/steambridge/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSteamID = uint64(76561198012145679)
	testFlags   = uint32(friend.PersonaChangeName | friend.PersonaChangeStatus)
)

func initLibrary(t *testing.T) *sim.SimulatedPlatform {
	t.Helper()
	resetRecorder()
	require.True(t, steambridge_init())
	t.Cleanup(steambridge_shutdown)
	return currentSimulation()
}

func TestRegisterForwardUnregister(t *testing.T) {
	initLibrary(t)

	handle := registerRecorder(true, true)
	require.NotZero(t, handle)

	require.True(t, steambridge_sim_post_persona_state_change(testSteamID, testFlags))
	steambridge_run_callbacks()

	got := lastRecorded()
	assert.Equal(t, 1, got.personaCalls)
	assert.Equal(t, testSteamID, got.steamID)
	assert.Equal(t, testFlags, got.changeFlags)
	assert.Equal(t, 0, got.shutdownCalls)

	unregister(handle)

	require.True(t, steambridge_sim_post_persona_state_change(testSteamID, testFlags))
	require.True(t, steambridge_sim_post_steam_shutdown())
	steambridge_run_callbacks()

	got = lastRecorded()
	assert.Equal(t, 1, got.personaCalls, "no forwarding after unregister")
	assert.Equal(t, 0, got.shutdownCalls)
}

func TestShutdownNotificationIsForwarded(t *testing.T) {
	initLibrary(t)
	handle := registerRecorder(true, true)
	require.NotZero(t, handle)
	defer unregister(handle)

	require.True(t, steambridge_sim_post_steam_shutdown())
	require.True(t, steambridge_sim_post_steam_shutdown())
	steambridge_run_callbacks()

	got := lastRecorded()
	assert.Equal(t, 2, got.shutdownCalls)
	assert.Equal(t, 0, got.personaCalls)
}

func TestEachHandleForwardsIndependently(t *testing.T) {
	initLibrary(t)
	first := registerRecorder(true, true)
	second := registerRecorder(true, true)
	require.NotZero(t, first)
	require.NotZero(t, second)
	assert.NotEqual(t, first, second)

	require.True(t, steambridge_sim_post_persona_state_change(testSteamID, testFlags))
	steambridge_run_callbacks()
	assert.Equal(t, 2, lastRecorded().personaCalls)

	unregister(first)
	require.True(t, steambridge_sim_post_persona_state_change(testSteamID, testFlags))
	steambridge_run_callbacks()
	assert.Equal(t, 3, lastRecorded().personaCalls)

	unregister(second)
}

func TestUnregisterTwiceIsNoOp(t *testing.T) {
	initLibrary(t)
	handle := registerRecorder(true, true)
	require.NotZero(t, handle)

	unregister(handle)
	unregister(handle)
	unregister(0)
	unregister(handle + 1000)

	assert.Equal(t, 0, registrations.count())
}

func TestUnregisterFromInsideCallback(t *testing.T) {
	initLibrary(t)
	handle := registerRecorder(true, true)
	require.NotZero(t, handle)
	unregisterOnPersona(handle)

	require.True(t, steambridge_sim_post_persona_state_change(testSteamID, testFlags))
	require.True(t, steambridge_sim_post_persona_state_change(testSteamID, testFlags))
	require.True(t, steambridge_sim_post_steam_shutdown())
	steambridge_run_callbacks()

	got := lastRecorded()
	assert.Equal(t, 1, got.personaCalls)
	assert.Equal(t, 0, got.shutdownCalls)
	assert.Equal(t, 0, registrations.count())
}

func TestRegisterRejectsNullCallbacks(t *testing.T) {
	initLibrary(t)

	assert.Zero(t, registerRecorder(false, true))
	assert.Zero(t, registerRecorder(true, false))
	assert.Zero(t, registerRecorder(false, false))
	assert.Equal(t, 0, registrations.count())
	assert.Equal(t, 1, currentSimulation().Registry().Count(dispatch.KindPersonaStateChange), "only the client's own subscription")
}

func TestRegisterBeforeInit(t *testing.T) {
	resetRecorder()
	require.False(t, steambridge_is_initialized())

	assert.Zero(t, registerRecorder(true, true))
	assert.False(t, steambridge_sim_post_steam_shutdown())
	steambridge_run_callbacks()
	assert.Equal(t, facetSet{}, facetHandles())
}

func TestShutdownReleasesHandles(t *testing.T) {
	resetRecorder()
	require.True(t, steambridge_init())
	assert.True(t, steambridge_init(), "second init reports the existing client")

	handle := registerRecorder(true, true)
	require.NotZero(t, handle)
	friends := facetHandles().friends
	require.NotZero(t, friends)

	steambridge_shutdown()
	assert.False(t, steambridge_is_initialized())
	assert.Equal(t, 0, registrations.count())
	assert.Equal(t, 0, facets.count())
	assert.Equal(t, int32(-1), friendCount(friends), "facet handles die with the client")

	// releasing a handle after shutdown is harmless
	unregister(handle)
	steambridge_shutdown()

	require.True(t, steambridge_init())
	defer steambridge_shutdown()
	again := registerRecorder(true, true)
	assert.NotEqual(t, handle, again, "handles are never reused")
}

func TestIterationInterval(t *testing.T) {
	assert.Equal(t, uint32(5), steambridge_iteration_interval())

	initLibrary(t)
	assert.NotZero(t, steambridge_iteration_interval())
}

func TestFacetAccessors(t *testing.T) {
	platform := initLibrary(t)
	h := facetHandles()

	for name, id := range map[string]uintptr{
		"friends":        h.friends,
		"remote_storage": h.remoteStorage,
		"ugc":            h.ugc,
		"user":           h.user,
		"user_stats":     h.userStats,
		"utils":          h.utils,
	} {
		assert.NotZero(t, id, name)
	}

	platform.SimulatedFriends().SetFriendCount(4)
	platform.SimulatedRemoteStorage().WriteFile("save.dat", []byte{1})
	platform.SimulatedUGC().SetSubscribedItems(9)
	platform.SimulatedUserStats().SetNumAchievements(21)

	assert.Equal(t, uint32(480), utilsAppID(h.utils))
	assert.Equal(t, sim.DefaultLocalSteamID.Uint64(), userSteamID(h.user))
	assert.True(t, userLoggedOn(h.user))
	assert.Equal(t, int32(4), friendCount(h.friends))
	assert.Equal(t, int32(1), remoteFileCount(h.remoteStorage))
	assert.True(t, remoteFileExists(h.remoteStorage, "save.dat"))
	assert.False(t, remoteFileExists(h.remoteStorage, "other.dat"))
	assert.Equal(t, uint32(9), subscribedItems(h.ugc))
	assert.Equal(t, uint32(21), achievementCount(h.userStats))
}

func TestFacetHandleOfWrongKind(t *testing.T) {
	initLibrary(t)
	h := facetHandles()

	assert.Equal(t, uint32(0), utilsAppID(h.user))
	assert.Equal(t, uint64(0), userSteamID(h.utils))
	assert.Equal(t, int32(-1), friendCount(h.ugc))
	assert.Equal(t, int32(-1), remoteFileCount(0))
}

func TestRemoteStorageRejectsLongNames(t *testing.T) {
	platform := initLibrary(t)
	storage := facetHandles().remoteStorage

	fits := strings.Repeat("a", limits.MaxFileNameLength-1)
	tooLong := strings.Repeat("b", limits.MaxFileNameLength)
	platform.SimulatedRemoteStorage().WriteFile(fits, nil)
	platform.SimulatedRemoteStorage().WriteFile(tooLong, nil)

	assert.True(t, remoteFileExists(storage, fits))
	assert.False(t, remoteFileExists(storage, tooLong))
	assert.False(t, remoteFileExists(storage, ""))
}

func TestPersonaNameBuffer(t *testing.T) {
	platform := initLibrary(t)
	friends := facetHandles().friends
	const name = "Gordon Freeman"

	platform.SimulatedFriends().SetPersonaName(steamid.ID(testSteamID), name)
	require.True(t, requestUserInformation(friends, testSteamID, true))
	assert.False(t, requestUserInformation(friends, testSteamID, true))

	buf := make([]byte, limits.MaxPersonaNameLength)
	n := personaName(friends, testSteamID, buf, 0)
	assert.Equal(t, int32(len(name)), n)
	assert.Equal(t, name, string(buf[:n]))
	assert.Zero(t, buf[n])

	short := make([]byte, 7)
	n = personaName(friends, testSteamID, short, 0)
	assert.Equal(t, int32(len(name)), n, "the full length is reported when truncating")
	assert.Equal(t, "Gordon\x00", string(short))

	assert.Equal(t, int32(len(name)), personaName(friends, testSteamID, nil, 0), "length query")
	assert.Equal(t, int32(-1), personaName(friends, testSteamID, nil, 16))
	assert.Equal(t, int32(-1), personaName(0, testSteamID, buf, 0))
}

func TestPersonaNameOversizedBuffer(t *testing.T) {
	platform := initLibrary(t)
	friends := facetHandles().friends
	const name = "Alyx Vance"

	platform.SimulatedFriends().SetPersonaName(steamid.ID(testSteamID), name)
	require.True(t, requestUserInformation(friends, testSteamID, true))

	buf := bytes.Repeat([]byte{0xff}, limits.MaxPersonaNameLength)
	n := personaNameOversized(friends, testSteamID, buf)
	require.Equal(t, int32(len(name)), n)
	assert.Equal(t, name, string(buf[:n]))
	assert.Zero(t, buf[n])
	assert.Equal(t, byte(0xff), buf[n+1], "nothing past the terminator is written")
}
