//go:build !steamworks

// Recording callbacks for the package tests. Test files cannot use cgo, so
// they live here; nothing in this file is exported from the library.

package main

/*
#include <stdlib.h>
#include "steambridge.h"

extern void steambridge_unregister_callbacks(SteamBridgeHandle handle);

static int recorded_persona_calls;
static uint64_t recorded_steam_id;
static uint32_t recorded_change_flags;
static int recorded_shutdown_calls;
static SteamBridgeHandle unregister_on_persona;

static void record_persona_state_changed(const SteamBridgePersonaStateChange *payload) {
    recorded_persona_calls++;
    recorded_steam_id = payload->steam_id;
    recorded_change_flags = payload->change_flags;
    if (unregister_on_persona) {
        steambridge_unregister_callbacks(unregister_on_persona);
    }
}

static void record_steam_shutdown(const SteamBridgeSteamShutdown *payload) {
    (void)payload;
    recorded_shutdown_calls++;
}

static SteamBridgeCallbacks recorder_callbacks(int persona, int shutdown) {
    SteamBridgeCallbacks cbs;
    cbs.on_persona_state_changed = persona ? record_persona_state_changed : NULL;
    cbs.on_steam_shutdown = shutdown ? record_steam_shutdown : NULL;
    return cbs;
}

static void recorder_reset(void) {
    recorded_persona_calls = 0;
    recorded_steam_id = 0;
    recorded_change_flags = 0;
    recorded_shutdown_calls = 0;
    unregister_on_persona = 0;
}

static void recorder_unregister_on_persona(SteamBridgeHandle handle) {
    unregister_on_persona = handle;
}

static int recorder_persona_calls(void) { return recorded_persona_calls; }
static uint64_t recorder_steam_id(void) { return recorded_steam_id; }
static uint32_t recorder_change_flags(void) { return recorded_change_flags; }
static int recorder_shutdown_calls(void) { return recorded_shutdown_calls; }
*/
import "C"

import "unsafe"

// The helpers below drive the exported API with C callbacks so the tests,
// which cannot use cgo themselves, can exercise it end to end.

type recorded struct {
	personaCalls  int
	steamID       uint64
	changeFlags   uint32
	shutdownCalls int
}

func resetRecorder() {
	C.recorder_reset()
}

func lastRecorded() recorded {
	return recorded{
		personaCalls:  int(C.recorder_persona_calls()),
		steamID:       uint64(C.recorder_steam_id()),
		changeFlags:   uint32(C.recorder_change_flags()),
		shutdownCalls: int(C.recorder_shutdown_calls()),
	}
}

func registerRecorder(persona, shutdown bool) uintptr {
	var p, s C.int
	if persona {
		p = 1
	}
	if shutdown {
		s = 1
	}
	return uintptr(steambridge_register_callbacks(C.recorder_callbacks(p, s)))
}

func unregisterOnPersona(handle uintptr) {
	C.recorder_unregister_on_persona(C.SteamBridgeHandle(handle))
}

func unregister(handle uintptr) {
	steambridge_unregister_callbacks(C.SteamBridgeHandle(handle))
}

func facetHandles() facetSet {
	return facetSet{
		friends:       uintptr(steambridge_get_friends()),
		remoteStorage: uintptr(steambridge_get_remote_storage()),
		ugc:           uintptr(steambridge_get_ugc()),
		user:          uintptr(steambridge_get_user()),
		userStats:     uintptr(steambridge_get_user_stats()),
		utils:         uintptr(steambridge_get_utils()),
	}
}

// personaName calls steambridge_friends_get_persona_name with buf, or with
// a NULL buffer of nullSize bytes when buf is nil.
func personaName(friends uintptr, steamID uint64, buf []byte, nullSize int) int32 {
	if buf == nil {
		return steambridge_friends_get_persona_name(C.SteamBridgeFriends(friends), steamID, nil, C.size_t(nullSize))
	}
	return steambridge_friends_get_persona_name(C.SteamBridgeFriends(friends), steamID,
		(*C.char)(unsafe.Pointer(unsafe.SliceData(buf))), C.size_t(len(buf)))
}

// personaNameOversized passes buf while claiming the largest size_t.
func personaNameOversized(friends uintptr, steamID uint64, buf []byte) int32 {
	return steambridge_friends_get_persona_name(C.SteamBridgeFriends(friends), steamID,
		(*C.char)(unsafe.Pointer(unsafe.SliceData(buf))), ^C.size_t(0))
}

func remoteFileExists(storage uintptr, name string) bool {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return steambridge_remote_storage_file_exists(C.SteamBridgeRemoteStorage(storage), cname)
}

func utilsAppID(utils uintptr) uint32 {
	return steambridge_utils_get_app_id(C.SteamBridgeUtils(utils))
}

func userSteamID(user uintptr) uint64 {
	return steambridge_user_get_steam_id(C.SteamBridgeUser(user))
}

func userLoggedOn(user uintptr) bool {
	return steambridge_user_logged_on(C.SteamBridgeUser(user))
}

func requestUserInformation(friends uintptr, steamID uint64, nameOnly bool) bool {
	return steambridge_friends_request_user_information(C.SteamBridgeFriends(friends), steamID, nameOnly)
}

func friendCount(friends uintptr) int32 {
	return steambridge_friends_get_friend_count(C.SteamBridgeFriends(friends))
}

func remoteFileCount(storage uintptr) int32 {
	return steambridge_remote_storage_get_file_count(C.SteamBridgeRemoteStorage(storage))
}

func subscribedItems(ugc uintptr) uint32 {
	return steambridge_ugc_get_num_subscribed_items(C.SteamBridgeUGC(ugc))
}

func achievementCount(stats uintptr) uint32 {
	return steambridge_user_stats_get_num_achievements(C.SteamBridgeUserStats(stats))
}
