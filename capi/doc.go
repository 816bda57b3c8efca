// Package main provides C API bindings for steambridge, letting C and other
// native callers receive Steam persona-state-change and shutdown
// notifications through plain function pointers.
//
// # Overview
//
// The library owns the process-wide platform client. A caller initializes
// it once, registers any number of callback pairs, pumps the message queue
// from its main loop and shuts it down when done. Each registration returns
// an opaque handle that is passed back to release it.
//
// # Build Instructions
//
// To build as a C shared library:
//
//	go build -buildmode=c-shared -o libsteambridge.so ./capi/
//
// This links the in-memory simulated platform. To link libsteam_api from
// the Steamworks SDK instead:
//
//	CGO_LDFLAGS="-L$STEAMWORKS_SDK/redistributable_bin/linux64" \
//	    go build -tags steamworks -buildmode=c-shared -o libsteambridge.so ./capi/
//
// This generates:
//   - libsteambridge.so: The shared library
//   - libsteambridge.h: Auto-generated C header with the exported functions
//
// steambridge.h defines the payload structs, callback types and handles
// shared by both.
//
// # C API Usage
//
//	#include "libsteambridge.h"
//
//	static void on_persona(const SteamBridgePersonaStateChange *p) {
//	    if (p->change_flags & STEAMBRIDGE_PERSONA_CHANGE_NAME) {
//	        printf("%llu renamed\n", (unsigned long long)p->steam_id);
//	    }
//	}
//
//	static void on_shutdown(const SteamBridgeSteamShutdown *p) {
//	    running = false;
//	}
//
//	if (!steambridge_init()) {
//	    return 1;
//	}
//
//	SteamBridgeCallbacks cbs = { on_persona, on_shutdown };
//	SteamBridgeHandle h = steambridge_register_callbacks(cbs);
//
//	while (running) {
//	    steambridge_run_callbacks();
//	    usleep(steambridge_iteration_interval() * 1000);
//	}
//
//	steambridge_unregister_callbacks(h);
//	steambridge_shutdown();
//
// # Facets
//
// steambridge_get_friends, steambridge_get_remote_storage,
// steambridge_get_ugc, steambridge_get_user, steambridge_get_user_stats and
// steambridge_get_utils return handles for the SDK interfaces. They return
// 0 before initialization and become invalid at shutdown. String results
// are copied into caller buffers with snprintf semantics: the return value
// is the full length and the copy is always terminated.
//
// # Thread Safety
//
// Callbacks run synchronously on the thread that calls
// steambridge_run_callbacks; payload pointers are valid only for the
// duration of the call. Unregistering on that thread, including from inside
// a callback, guarantees the pair is never invoked again. Unregistering on
// another thread while the pump is running may still let one in-flight
// notification through.
//
// # Error Handling
//
// Registration returns handle 0 when it fails and nothing stays registered.
// A NULL function pointer is a failure.
// Accessors taking a facet handle return 0, false or -1 for unknown
// handles. Failures are logged through logrus.
//
// # Files
//
//   - main.go: Initialization, shutdown and the message pump
//   - bridge.go: Callback registration
//   - facets.go: Facet accessors
//   - handles.go: Opaque handle table
//   - platform_sim.go: Simulated platform and notification injection
//   - recorder.go: Recording C callbacks used by the tests
//   - doc.go: This documentation file
package main
