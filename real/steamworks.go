//go:build steamworks

package real

/*
#cgo LDFLAGS: -lsteam_api
#include <stdint.h>
#include <stdbool.h>
#include <stdlib.h>

typedef int32_t HSteamPipe;
typedef int32_t HSteamUser;
typedef uint64_t SteamAPICall_t;

typedef struct {
	HSteamUser m_hSteamUser;
	int m_iCallback;
	uint8_t *m_pubParam;
	int m_cubParam;
} CallbackMsg_t;

// Prototypes of the extern "C" symbols of steam_api_flat.h. The SDK headers
// are C++ and cannot be included here.
extern int SteamAPI_InitFlat(char *pOutErrMsg);
extern void SteamAPI_Shutdown(void);
extern HSteamPipe SteamAPI_GetHSteamPipe(void);
extern void SteamAPI_ManualDispatch_Init(void);
extern void SteamAPI_ManualDispatch_RunFrame(HSteamPipe hSteamPipe);
extern bool SteamAPI_ManualDispatch_GetNextCallback(HSteamPipe hSteamPipe, CallbackMsg_t *pCallbackMsg);
extern void SteamAPI_ManualDispatch_FreeLastCallback(HSteamPipe hSteamPipe);

extern void *SteamAPI_SteamFriends_v017(void);
extern void *SteamAPI_SteamRemoteStorage_v016(void);
extern void *SteamAPI_SteamUGC_v018(void);
extern void *SteamAPI_SteamUser_v023(void);
extern void *SteamAPI_SteamUserStats_v012(void);
extern void *SteamAPI_SteamUtils_v010(void);

extern const char *SteamAPI_ISteamFriends_GetPersonaName(void *self);
extern const char *SteamAPI_ISteamFriends_GetFriendPersonaName(void *self, uint64_t steamIDFriend);
extern bool SteamAPI_ISteamFriends_RequestUserInformation(void *self, uint64_t steamIDUser, bool bRequireNameOnly);
extern int SteamAPI_ISteamFriends_GetFriendCount(void *self, int iFriendFlags);
extern bool SteamAPI_ISteamRemoteStorage_FileExists(void *self, const char *pchFile);
extern int32_t SteamAPI_ISteamRemoteStorage_GetFileCount(void *self);
extern uint32_t SteamAPI_ISteamUGC_GetNumSubscribedItems(void *self);
extern uint64_t SteamAPI_ISteamUser_GetSteamID(void *self);
extern bool SteamAPI_ISteamUser_BLoggedOn(void *self);
extern uint32_t SteamAPI_ISteamUserStats_GetNumAchievements(void *self);
extern uint32_t SteamAPI_ISteamUtils_GetAppID(void *self);
extern uint32_t SteamAPI_ISteamUtils_GetSecondsSinceAppActive(void *self);

#define STEAMBRIDGE_ERR_MSG_SIZE 1024
#define STEAMBRIDGE_FRIEND_FLAG_IMMEDIATE 0x04
*/
import "C"

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/opd-ai/steambridge/dispatch"
	"github.com/opd-ai/steambridge/interfaces"
	"github.com/opd-ai/steambridge/steamid"
	"github.com/sirupsen/logrus"
)

var (
	// ErrInitFailed is returned when SteamAPI_InitFlat does not succeed.
	ErrInitFailed = errors.New("steam api init failed")

	// ErrAlreadyInitialized is returned by a second Init.
	ErrAlreadyInitialized = errors.New("steamworks platform already initialized")
)

// SteamworksPlatform implements interfaces.IPlatform over libsteam_api.
type SteamworksPlatform struct {
	config      *interfaces.PlatformConfig
	registry    *dispatch.Registry
	pipe        C.HSteamPipe
	initialized bool
	mu          sync.Mutex

	// pumpMu serializes RunCallbacks across goroutines.
	pumpMu sync.Mutex

	friends       *steamFriends
	remoteStorage *steamRemoteStorage
	ugc           *steamUGC
	user          *steamUser
	userStats     *steamUserStats
	utils         *steamUtils
}

// NewSteamworksPlatform creates an uninitialized Steamworks platform.
func NewSteamworksPlatform(config *interfaces.PlatformConfig) *SteamworksPlatform {
	logrus.WithFields(logrus.Fields{
		"function": "NewSteamworksPlatform",
		"interval": config.PumpInterval,
	}).Info("Creating Steamworks platform")

	return &SteamworksPlatform{
		config:   config,
		registry: dispatch.NewRegistry(),
	}
}

// Init initializes the Steam API, switches it to manual callback dispatch
// and resolves the facet interfaces.
func (p *SteamworksPlatform) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return ErrAlreadyInitialized
	}

	errMsg := (*C.char)(C.calloc(1, C.STEAMBRIDGE_ERR_MSG_SIZE))
	defer C.free(unsafe.Pointer(errMsg))

	if res := InitResult(C.SteamAPI_InitFlat(errMsg)); res != InitOK {
		msg := C.GoString(errMsg)
		logrus.WithFields(logrus.Fields{
			"function": "SteamworksPlatform.Init",
			"result":   res,
			"message":  msg,
		}).Error("SteamAPI_InitFlat failed")
		return fmt.Errorf("%w: %s: %s", ErrInitFailed, res, msg)
	}

	C.SteamAPI_ManualDispatch_Init()
	p.pipe = C.SteamAPI_GetHSteamPipe()

	p.friends = &steamFriends{ptr: C.SteamAPI_SteamFriends_v017()}
	p.remoteStorage = &steamRemoteStorage{ptr: C.SteamAPI_SteamRemoteStorage_v016()}
	p.ugc = &steamUGC{ptr: C.SteamAPI_SteamUGC_v018()}
	p.user = &steamUser{ptr: C.SteamAPI_SteamUser_v023()}
	p.userStats = &steamUserStats{ptr: C.SteamAPI_SteamUserStats_v012()}
	p.utils = &steamUtils{ptr: C.SteamAPI_SteamUtils_v010()}
	p.initialized = true

	logrus.WithFields(logrus.Fields{
		"function": "SteamworksPlatform.Init",
		"pipe":     int32(p.pipe),
		"app_id":   p.utils.GetAppID(),
	}).Info("Steamworks platform initialized")
	return nil
}

// Shutdown shuts the Steam API down. Registrations are kept. It may be
// called from a handler; the running RunCallbacks stops at the next message.
func (p *SteamworksPlatform) Shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	C.SteamAPI_Shutdown()
	p.initialized = false

	logrus.WithFields(logrus.Fields{
		"function": "SteamworksPlatform.Shutdown",
	}).Info("Steamworks platform shut down")
}

// IsSimulation returns false.
func (p *SteamworksPlatform) IsSimulation() bool {
	return false
}

// Dispatcher returns the registry decoded callbacks are delivered through.
func (p *SteamworksPlatform) Dispatcher() interfaces.IDispatcher {
	return p.registry
}

// RunCallbacks runs one manual dispatch frame and delivers every decoded
// callback on the calling goroutine. Each message is copied into a Go
// payload and released before handlers run, so handlers may call back into
// the SDK.
func (p *SteamworksPlatform) RunCallbacks() {
	p.pumpMu.Lock()
	defer p.pumpMu.Unlock()

	p.mu.Lock()
	ready := p.initialized
	pipe := p.pipe
	p.mu.Unlock()
	if !ready {
		return
	}

	C.SteamAPI_ManualDispatch_RunFrame(pipe)

	var msg C.CallbackMsg_t
	for p.isInitialized() && C.SteamAPI_ManualDispatch_GetNextCallback(pipe, &msg) {
		id := int32(msg.m_iCallback)
		data := C.GoBytes(unsafe.Pointer(msg.m_pubParam), msg.m_cubParam)
		C.SteamAPI_ManualDispatch_FreeLastCallback(pipe)

		if id == callbackSteamAPICallCompleted {
			continue
		}

		kind, payload, err := decodeCallback(id, data)
		if errors.Is(err, ErrUnhandledCallback) {
			continue
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "SteamworksPlatform.RunCallbacks",
				"callback": id,
				"size":     len(data),
				"error":    err.Error(),
			}).Warn("Dropping undecodable callback")
			continue
		}
		p.registry.Deliver(kind, payload)
	}
}

func (p *SteamworksPlatform) isInitialized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

func (p *SteamworksPlatform) Friends() interfaces.IFriends             { return p.friends }
func (p *SteamworksPlatform) RemoteStorage() interfaces.IRemoteStorage { return p.remoteStorage }
func (p *SteamworksPlatform) UGC() interfaces.IUGC                     { return p.ugc }
func (p *SteamworksPlatform) User() interfaces.IUser                   { return p.user }
func (p *SteamworksPlatform) UserStats() interfaces.IUserStats         { return p.userStats }
func (p *SteamworksPlatform) Utils() interfaces.IUtils                 { return p.utils }

type steamFriends struct{ ptr unsafe.Pointer }

func (f *steamFriends) GetPersonaName() string {
	return C.GoString(C.SteamAPI_ISteamFriends_GetPersonaName(f.ptr))
}

func (f *steamFriends) GetFriendPersonaName(id steamid.ID) string {
	return C.GoString(C.SteamAPI_ISteamFriends_GetFriendPersonaName(f.ptr, C.uint64_t(id)))
}

func (f *steamFriends) RequestUserInformation(id steamid.ID, nameOnly bool) bool {
	return bool(C.SteamAPI_ISteamFriends_RequestUserInformation(f.ptr, C.uint64_t(id), C.bool(nameOnly)))
}

func (f *steamFriends) GetFriendCount() int {
	return int(C.SteamAPI_ISteamFriends_GetFriendCount(f.ptr, C.STEAMBRIDGE_FRIEND_FLAG_IMMEDIATE))
}

type steamRemoteStorage struct{ ptr unsafe.Pointer }

func (r *steamRemoteStorage) FileExists(name string) bool {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return bool(C.SteamAPI_ISteamRemoteStorage_FileExists(r.ptr, cname))
}

func (r *steamRemoteStorage) GetFileCount() int {
	return int(C.SteamAPI_ISteamRemoteStorage_GetFileCount(r.ptr))
}

type steamUGC struct{ ptr unsafe.Pointer }

func (u *steamUGC) GetNumSubscribedItems() uint32 {
	return uint32(C.SteamAPI_ISteamUGC_GetNumSubscribedItems(u.ptr))
}

type steamUser struct{ ptr unsafe.Pointer }

func (u *steamUser) GetSteamID() steamid.ID {
	return steamid.ID(C.SteamAPI_ISteamUser_GetSteamID(u.ptr))
}

func (u *steamUser) LoggedOn() bool {
	return bool(C.SteamAPI_ISteamUser_BLoggedOn(u.ptr))
}

type steamUserStats struct{ ptr unsafe.Pointer }

func (s *steamUserStats) GetNumAchievements() uint32 {
	return uint32(C.SteamAPI_ISteamUserStats_GetNumAchievements(s.ptr))
}

type steamUtils struct{ ptr unsafe.Pointer }

func (u *steamUtils) GetAppID() steamid.AppID {
	return steamid.AppID(C.SteamAPI_ISteamUtils_GetAppID(u.ptr))
}

func (u *steamUtils) GetSecondsSinceAppActive() uint32 {
	return uint32(C.SteamAPI_ISteamUtils_GetSecondsSinceAppActive(u.ptr))
}

var _ interfaces.IPlatform = (*SteamworksPlatform)(nil)
