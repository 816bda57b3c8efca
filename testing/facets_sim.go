package testing

import (
	"sync"

	"github.com/opd-ai/steambridge/friend"
	"github.com/opd-ai/steambridge/steamid"
)

// UnknownPersonaName is returned for users whose persona was never loaded.
const UnknownPersonaName = "[unknown]"

// SimulatedFriends implements interfaces.IFriends.
type SimulatedFriends struct {
	platform  *SimulatedPlatform
	localName string
	names     map[steamid.ID]string
	loaded    map[steamid.ID]bool
	friends   int
	mu        sync.RWMutex
}

// SetPersonaName sets the name the platform will report for id once its
// persona has been requested.
func (f *SimulatedFriends) SetPersonaName(id steamid.ID, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.names[id] = name
}

// SetLocalPersonaName sets the local user's display name.
func (f *SimulatedFriends) SetLocalPersonaName(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.localName = name
}

// SetFriendCount sets the value returned by GetFriendCount.
func (f *SimulatedFriends) SetFriendCount(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.friends = n
}

// MarkLoaded makes id behave as already cached, so RequestUserInformation
// returns false without queuing a notification.
func (f *SimulatedFriends) MarkLoaded(id steamid.ID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loaded == nil {
		f.loaded = make(map[steamid.ID]bool)
	}
	f.loaded[id] = true
}

func (f *SimulatedFriends) GetPersonaName() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.localName
}

func (f *SimulatedFriends) GetFriendPersonaName(id steamid.ID) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if !f.loaded[id] {
		return UnknownPersonaName
	}
	if name, ok := f.names[id]; ok {
		return name
	}
	return UnknownPersonaName
}

// RequestUserInformation queues a persona-state-change for id the first time
// it is requested and reports whether one was queued.
func (f *SimulatedFriends) RequestUserInformation(id steamid.ID, nameOnly bool) bool {
	f.mu.Lock()
	if f.loaded[id] {
		f.mu.Unlock()
		return false
	}
	if f.loaded == nil {
		f.loaded = make(map[steamid.ID]bool)
	}
	f.loaded[id] = true
	f.mu.Unlock()

	flags := friend.PersonaChangeName
	if !nameOnly {
		flags |= friend.PersonaChangeAvatar
	}
	if _, err := f.platform.PostPersonaStateChange(id, flags); err != nil {
		f.mu.Lock()
		delete(f.loaded, id)
		f.mu.Unlock()
		return false
	}
	return true
}

func (f *SimulatedFriends) GetFriendCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.friends
}

// SimulatedRemoteStorage implements interfaces.IRemoteStorage over a map.
type SimulatedRemoteStorage struct {
	files map[string][]byte
	mu    sync.RWMutex
}

// WriteFile stores data under name.
func (r *SimulatedRemoteStorage) WriteFile(name string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files[name] = append([]byte(nil), data...)
}

func (r *SimulatedRemoteStorage) FileExists(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.files[name]
	return ok
}

func (r *SimulatedRemoteStorage) GetFileCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.files)
}

// SimulatedUGC implements interfaces.IUGC.
type SimulatedUGC struct {
	subscribed uint32
	mu         sync.RWMutex
}

// SetSubscribedItems sets the value returned by GetNumSubscribedItems.
func (u *SimulatedUGC) SetSubscribedItems(n uint32) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.subscribed = n
}

func (u *SimulatedUGC) GetNumSubscribedItems() uint32 {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.subscribed
}

// SimulatedUser implements interfaces.IUser.
type SimulatedUser struct {
	steamID  steamid.ID
	loggedOn bool
	mu       sync.RWMutex
}

func (u *SimulatedUser) setLoggedOn(v bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.loggedOn = v
}

func (u *SimulatedUser) GetSteamID() steamid.ID {
	return u.steamID
}

func (u *SimulatedUser) LoggedOn() bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.loggedOn
}

// SimulatedUserStats implements interfaces.IUserStats.
type SimulatedUserStats struct {
	achievements uint32
	mu           sync.RWMutex
}

// SetNumAchievements sets the value returned by GetNumAchievements.
func (s *SimulatedUserStats) SetNumAchievements(n uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.achievements = n
}

func (s *SimulatedUserStats) GetNumAchievements() uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.achievements
}

// SimulatedUtils implements interfaces.IUtils.
type SimulatedUtils struct {
	platform *SimulatedPlatform
	appID    steamid.AppID
}

func (u *SimulatedUtils) GetAppID() steamid.AppID {
	return u.appID
}

func (u *SimulatedUtils) GetSecondsSinceAppActive() uint32 {
	return u.platform.secondsActive()
}
