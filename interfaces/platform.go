package interfaces

import (
	"errors"
	"fmt"
	"time"

	"github.com/opd-ai/steambridge/dispatch"
	"github.com/opd-ai/steambridge/steamid"
	"github.com/sirupsen/logrus"
)

// IDispatcher is the platform's notification dispatch system.
type IDispatcher interface {
	// Register subscribes handler to one notification kind and returns the
	// token needed to release it.
	Register(kind dispatch.Kind, handler dispatch.Handler) (dispatch.Token, error)

	// Unregister releases a subscription. It reports false for unknown tokens.
	Unregister(token dispatch.Token) bool
}

// IMessagePump delivers queued notifications on the calling goroutine.
type IMessagePump interface {
	// RunCallbacks dispatches every notification queued so far.
	RunCallbacks()
}

// IFriends is the friends facet.
type IFriends interface {
	// GetPersonaName returns the local user's display name.
	GetPersonaName() string

	// GetFriendPersonaName returns the cached display name of another user.
	GetFriendPersonaName(id steamid.ID) string

	// RequestUserInformation asks the platform to fetch persona data for id.
	// It returns false when the data is already cached and no
	// persona-state-change will follow.
	RequestUserInformation(id steamid.ID, nameOnly bool) bool

	// GetFriendCount returns the number of regular friends.
	GetFriendCount() int
}

// IRemoteStorage is the cloud storage facet.
type IRemoteStorage interface {
	FileExists(name string) bool
	GetFileCount() int
}

// IUGC is the user-generated content facet.
type IUGC interface {
	GetNumSubscribedItems() uint32
}

// IUser is the identity facet.
type IUser interface {
	GetSteamID() steamid.ID
	LoggedOn() bool
}

// IUserStats is the stats and achievements facet.
type IUserStats interface {
	GetNumAchievements() uint32
}

// IUtils is the utilities facet.
type IUtils interface {
	GetAppID() steamid.AppID
	GetSecondsSinceAppActive() uint32
}

// IPlatform is the process-wide registry of platform services.
type IPlatform interface {
	IMessagePump

	// Init brings the platform up. It must succeed before any other call.
	Init() error

	// Shutdown releases the platform. Safe to call more than once.
	Shutdown()

	// IsSimulation returns true for the in-memory implementation.
	IsSimulation() bool

	// Dispatcher returns the notification dispatch system.
	Dispatcher() IDispatcher

	Friends() IFriends
	RemoteStorage() IRemoteStorage
	UGC() IUGC
	User() IUser
	UserStats() IUserStats
	Utils() IUtils
}

// PlatformConfig holds configuration for platform implementations. It is
// read from an optional YAML file and then from STEAMBRIDGE_* variables.
type PlatformConfig struct {
	// UseSimulation selects the in-memory platform instead of Steamworks.
	UseSimulation bool `env:"STEAMBRIDGE_SIMULATION" yaml:"use_simulation"`

	// AppID is reported by the simulated utils facet. The real platform
	// reads its app id from the running client.
	AppID uint32 `env:"STEAMBRIDGE_APP_ID" yaml:"app_id"`

	// PumpInterval is how often a background pump calls RunCallbacks.
	PumpInterval time.Duration `env:"STEAMBRIDGE_PUMP_INTERVAL" yaml:"pump_interval"`

	// LogLevel is a logrus level name.
	LogLevel string `env:"STEAMBRIDGE_LOG_LEVEL" yaml:"log_level"`
}

var (
	// ErrInvalidPumpInterval indicates a non-positive pump interval.
	ErrInvalidPumpInterval = errors.New("pump interval must be positive")

	// ErrInvalidLogLevel indicates a log level logrus does not know.
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Validate checks the configuration for values no implementation accepts.
func (c *PlatformConfig) Validate() error {
	if c.PumpInterval <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidPumpInterval, c.PumpInterval)
	}
	if c.LogLevel == "" {
		return nil
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return nil
}
