package main

/*
#include "steambridge.h"

static inline void steambridge_call_persona_state_changed(const SteamBridgeCallbacks *cbs, const SteamBridgePersonaStateChange *payload) {
    if (cbs && cbs->on_persona_state_changed) {
        cbs->on_persona_state_changed(payload);
    }
}

static inline void steambridge_call_steam_shutdown(const SteamBridgeCallbacks *cbs, const SteamBridgeSteamShutdown *payload) {
    if (cbs && cbs->on_steam_shutdown) {
        cbs->on_steam_shutdown(payload);
    }
}
*/
import "C"

import (
	"unsafe"

	"github.com/opd-ai/steambridge/callbacks"
	"github.com/opd-ai/steambridge/friend"
	"github.com/sirupsen/logrus"
)

// The persona payload is handed to C without copying, so the Go and C
// layouts must agree.
var (
	_ [unsafe.Sizeof(C.SteamBridgePersonaStateChange{}) - unsafe.Sizeof(friend.PersonaStateChange{})]struct{}
	_ [unsafe.Sizeof(friend.PersonaStateChange{}) - unsafe.Sizeof(C.SteamBridgePersonaStateChange{})]struct{}
	_ [unsafe.Offsetof(C.SteamBridgePersonaStateChange{}.change_flags) - unsafe.Offsetof(friend.PersonaStateChange{}.ChangeFlags)]struct{}
	_ [unsafe.Offsetof(friend.PersonaStateChange{}.ChangeFlags) - unsafe.Offsetof(C.SteamBridgePersonaStateChange{}.change_flags)]struct{}
)

// registration is one live callback handle. cbs lives in Go memory and is
// passed to the trampolines for the duration of each call only.
type registration struct {
	bridge *callbacks.Bridge
	cbs    C.SteamBridgeCallbacks
}

func (r *registration) forwardPersonaStateChange(p *friend.PersonaStateChange) {
	C.steambridge_call_persona_state_changed(&r.cbs, (*C.SteamBridgePersonaStateChange)(unsafe.Pointer(p)))
}

func (r *registration) forwardSteamShutdown(*callbacks.SteamShutdown) {
	var payload C.SteamBridgeSteamShutdown
	C.steambridge_call_steam_shutdown(&r.cbs, &payload)
}

// steambridge_register_callbacks subscribes the function pair to
// persona-state-change and shutdown notifications and returns the handle
// that releases them. It returns 0 when the library is not initialized,
// either pointer is NULL or the subscription fails; nothing stays
// registered in that case.
//
//export steambridge_register_callbacks
func steambridge_register_callbacks(cbs C.SteamBridgeCallbacks) C.SteamBridgeHandle {
	c := currentClient()
	if c == nil {
		logrus.WithFields(logrus.Fields{
			"function": "steambridge_register_callbacks",
		}).Error("Library not initialized")
		return 0
	}
	if cbs.on_persona_state_changed == nil || cbs.on_steam_shutdown == nil {
		logrus.WithFields(logrus.Fields{
			"function":           "steambridge_register_callbacks",
			"has_persona_change": cbs.on_persona_state_changed != nil,
			"has_steam_shutdown": cbs.on_steam_shutdown != nil,
		}).Error("Both callbacks are required")
		return 0
	}

	reg := &registration{cbs: cbs}
	bridge, err := callbacks.New(c.Dispatcher(), callbacks.Callbacks{
		OnPersonaStateChanged: reg.forwardPersonaStateChange,
		OnSteamShutdown:       reg.forwardSteamShutdown,
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "steambridge_register_callbacks",
			"error":    err.Error(),
		}).Error("Failed to register callbacks")
		return 0
	}
	reg.bridge = bridge

	handle := registrations.put(reg)
	logrus.WithFields(logrus.Fields{
		"function": "steambridge_register_callbacks",
		"handle":   handle,
	}).Debug("Registered callbacks")
	return C.SteamBridgeHandle(handle)
}

// steambridge_unregister_callbacks releases a handle. No callback of the
// handle runs after it returns when called on the thread that pumps
// callbacks, including from inside one of its own callbacks. Unknown and
// already released handles are ignored.
//
//export steambridge_unregister_callbacks
func steambridge_unregister_callbacks(handle C.SteamBridgeHandle) {
	reg, ok := registrations.take(uintptr(handle))
	if !ok {
		logrus.WithFields(logrus.Fields{
			"function": "steambridge_unregister_callbacks",
			"handle":   uintptr(handle),
		}).Warn("Ignoring unknown callback handle")
		return
	}
	reg.bridge.Close()

	logrus.WithFields(logrus.Fields{
		"function": "steambridge_unregister_callbacks",
		"handle":   uintptr(handle),
	}).Debug("Unregistered callbacks")
}
