package main

// #include "steambridge.h"
import "C"

import (
	"errors"
	"math"
	"unsafe"

	"github.com/opd-ai/steambridge/interfaces"
	"github.com/opd-ai/steambridge/limits"
	"github.com/opd-ai/steambridge/steamid"
	"github.com/sirupsen/logrus"
)

func currentFacets() facetSet {
	clientMu.RLock()
	defer clientMu.RUnlock()
	return facetIDs
}

// lookupFacet resolves a facet handle issued by one of the get functions.
func lookupFacet[T any](function string, handle uintptr) (T, bool) {
	var zero T
	v, ok := facets.get(handle)
	if !ok {
		logrus.WithFields(logrus.Fields{
			"function": function,
			"handle":   handle,
		}).Warn("Invalid facet handle")
		return zero, false
	}
	f, ok := v.(T)
	if !ok {
		logrus.WithFields(logrus.Fields{
			"function": function,
			"handle":   handle,
		}).Warn("Facet handle of the wrong kind")
		return zero, false
	}
	return f, true
}

//export steambridge_get_friends
func steambridge_get_friends() C.SteamBridgeFriends {
	return C.SteamBridgeFriends(currentFacets().friends)
}

//export steambridge_get_remote_storage
func steambridge_get_remote_storage() C.SteamBridgeRemoteStorage {
	return C.SteamBridgeRemoteStorage(currentFacets().remoteStorage)
}

//export steambridge_get_ugc
func steambridge_get_ugc() C.SteamBridgeUGC {
	return C.SteamBridgeUGC(currentFacets().ugc)
}

//export steambridge_get_user
func steambridge_get_user() C.SteamBridgeUser {
	return C.SteamBridgeUser(currentFacets().user)
}

//export steambridge_get_user_stats
func steambridge_get_user_stats() C.SteamBridgeUserStats {
	return C.SteamBridgeUserStats(currentFacets().userStats)
}

//export steambridge_get_utils
func steambridge_get_utils() C.SteamBridgeUtils {
	return C.SteamBridgeUtils(currentFacets().utils)
}

//export steambridge_utils_get_app_id
func steambridge_utils_get_app_id(utils C.SteamBridgeUtils) uint32 {
	u, ok := lookupFacet[interfaces.IUtils]("steambridge_utils_get_app_id", uintptr(utils))
	if !ok {
		return 0
	}
	return uint32(u.GetAppID())
}

//export steambridge_user_get_steam_id
func steambridge_user_get_steam_id(user C.SteamBridgeUser) uint64 {
	u, ok := lookupFacet[interfaces.IUser]("steambridge_user_get_steam_id", uintptr(user))
	if !ok {
		return 0
	}
	return u.GetSteamID().Uint64()
}

//export steambridge_user_logged_on
func steambridge_user_logged_on(user C.SteamBridgeUser) bool {
	u, ok := lookupFacet[interfaces.IUser]("steambridge_user_logged_on", uintptr(user))
	return ok && u.LoggedOn()
}

//export steambridge_friends_request_user_information
func steambridge_friends_request_user_information(friends C.SteamBridgeFriends, steamID uint64, nameOnly bool) bool {
	f, ok := lookupFacet[interfaces.IFriends]("steambridge_friends_request_user_information", uintptr(friends))
	if !ok {
		return false
	}
	return f.RequestUserInformation(steamid.ID(steamID), nameOnly)
}

// steambridge_friends_get_persona_name copies the cached name of steam_id
// into buf and returns the full name length, like snprintf. A buffer of
// STEAMBRIDGE_MAX_PERSONA_NAME bytes always suffices; a shorter one receives
// a truncated, terminated name. Passing buf NULL and size 0 only queries the
// length. Returns -1 for an invalid handle or a NULL buffer with non-zero
// size.
//
//export steambridge_friends_get_persona_name
func steambridge_friends_get_persona_name(friends C.SteamBridgeFriends, steamID uint64, buf *C.char, size C.size_t) int32 {
	if buf == nil && size != 0 {
		return -1
	}
	// Only len(name)+1 bytes are ever written, so a larger claim is capped
	// to keep the slice length representable as int.
	if size > math.MaxInt32 {
		size = math.MaxInt32
	}
	var dst []byte
	if buf != nil {
		dst = unsafe.Slice((*byte)(unsafe.Pointer(buf)), int(size))
	}
	return copyPersonaName(uintptr(friends), steamid.ID(steamID), dst)
}

func copyPersonaName(friends uintptr, id steamid.ID, dst []byte) int32 {
	f, ok := lookupFacet[interfaces.IFriends]("steambridge_friends_get_persona_name", friends)
	if !ok {
		return -1
	}
	name := f.GetFriendPersonaName(id)
	if len(dst) == 0 {
		return int32(len(name))
	}
	if _, err := limits.CopyCString(dst, name); err != nil && !errors.Is(err, limits.ErrBufferTooSmall) {
		return -1
	}
	return int32(len(name))
}

//export steambridge_friends_get_friend_count
func steambridge_friends_get_friend_count(friends C.SteamBridgeFriends) int32 {
	f, ok := lookupFacet[interfaces.IFriends]("steambridge_friends_get_friend_count", uintptr(friends))
	if !ok {
		return -1
	}
	return int32(f.GetFriendCount())
}

// steambridge_remote_storage_file_exists reports whether name exists in
// cloud storage. Names of STEAMBRIDGE_MAX_FILE_NAME bytes or more are
// rejected.
//
//export steambridge_remote_storage_file_exists
func steambridge_remote_storage_file_exists(storage C.SteamBridgeRemoteStorage, name *C.char) bool {
	if name == nil {
		return false
	}
	return fileExists(uintptr(storage), C.GoString(name))
}

func fileExists(storage uintptr, name string) bool {
	if len(name) == 0 || limits.RequiredSize(name) > limits.MaxFileNameLength {
		return false
	}
	r, ok := lookupFacet[interfaces.IRemoteStorage]("steambridge_remote_storage_file_exists", storage)
	return ok && r.FileExists(name)
}

//export steambridge_remote_storage_get_file_count
func steambridge_remote_storage_get_file_count(storage C.SteamBridgeRemoteStorage) int32 {
	r, ok := lookupFacet[interfaces.IRemoteStorage]("steambridge_remote_storage_get_file_count", uintptr(storage))
	if !ok {
		return -1
	}
	return int32(r.GetFileCount())
}

//export steambridge_ugc_get_num_subscribed_items
func steambridge_ugc_get_num_subscribed_items(ugc C.SteamBridgeUGC) uint32 {
	u, ok := lookupFacet[interfaces.IUGC]("steambridge_ugc_get_num_subscribed_items", uintptr(ugc))
	if !ok {
		return 0
	}
	return u.GetNumSubscribedItems()
}

//export steambridge_user_stats_get_num_achievements
func steambridge_user_stats_get_num_achievements(stats C.SteamBridgeUserStats) uint32 {
	s, ok := lookupFacet[interfaces.IUserStats]("steambridge_user_stats_get_num_achievements", uintptr(stats))
	if !ok {
		return 0
	}
	return s.GetNumAchievements()
}
