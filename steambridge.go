package steambridge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/opd-ai/steambridge/callbacks"
	"github.com/opd-ai/steambridge/factory"
	"github.com/opd-ai/steambridge/friend"
	"github.com/opd-ai/steambridge/interfaces"
	"github.com/opd-ai/steambridge/steamid"
	"github.com/sirupsen/logrus"
)

// DefaultIterationInterval is used when no pump interval is configured.
const DefaultIterationInterval = 5 * time.Millisecond

var (
	// ErrAlreadyInitialized is returned by New while another Client is alive.
	ErrAlreadyInitialized = errors.New("steambridge: a client is already initialized")

	// ErrClientClosed is returned by blocking calls interrupted by Shutdown.
	ErrClientClosed = errors.New("steambridge: client shut down")
)

// clientActive guards the process-wide platform: the SDK supports a single
// initialization per process.
var clientActive atomic.Bool

// Options contains configuration options for creating a Client.
type Options struct {
	// Platform, when set, is used instead of creating one from Config. It
	// must not be initialized yet; New initializes it and Shutdown shuts it
	// down.
	Platform interfaces.IPlatform

	// Config selects and configures the platform when Platform is nil.
	Config *interfaces.PlatformConfig
}

// NewOptions returns options carrying the factory default configuration,
// including STEAMBRIDGE_* environment overrides.
func NewOptions() *Options {
	return &Options{
		Config: factory.NewPlatformFactory().GetCurrentConfig(),
	}
}

// Client represents an initialized platform with one callback bridge that
// fans notifications out to Go subscribers.
type Client struct {
	options       *Options
	platform      interfaces.IPlatform
	bridge        *callbacks.Bridge
	instanceID    uuid.UUID
	iterationTime time.Duration

	persona  subscriberSet[friend.PersonaStateChange]
	shutdown subscriberSet[callbacks.SteamShutdown]

	// pumpMu is held for the duration of RunCallbacks.
	pumpMu   sync.Mutex
	closing  atomic.Bool
	teardown sync.Once
	done     chan struct{}
}

// New initializes the platform and subscribes the client to persona-state
// and shutdown notifications. Only one Client may be alive per process.
func New(options *Options) (*Client, error) {
	if options == nil {
		options = NewOptions()
	}
	if !clientActive.CompareAndSwap(false, true) {
		return nil, ErrAlreadyInitialized
	}

	c, err := newClient(options)
	if err != nil {
		clientActive.Store(false)
		return nil, err
	}
	return c, nil
}

func newClient(options *Options) (*Client, error) {
	c := &Client{
		options:       options,
		instanceID:    uuid.New(),
		iterationTime: DefaultIterationInterval,
		done:          make(chan struct{}),
	}

	if cfg := options.Config; cfg != nil {
		applyLogLevel(cfg.LogLevel)
		if cfg.PumpInterval > 0 {
			c.iterationTime = cfg.PumpInterval
		}
	}

	platform := options.Platform
	if platform == nil {
		var err error
		platform, err = factory.NewPlatformFactory().CreatePlatformWithConfig(options.Config)
		if err != nil {
			return nil, fmt.Errorf("create platform: %w", err)
		}
	}

	if err := platform.Init(); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "New",
			"instance": c.instanceID.String(),
			"error":    err.Error(),
		}).Error("Failed to initialize platform")
		return nil, fmt.Errorf("init platform: %w", err)
	}
	c.platform = platform

	bridge, err := callbacks.New(platform.Dispatcher(), callbacks.Callbacks{
		OnPersonaStateChanged: func(p *friend.PersonaStateChange) { c.persona.publish(*p) },
		OnSteamShutdown:       func(s *callbacks.SteamShutdown) { c.shutdown.publish(*s) },
	})
	if err != nil {
		platform.Shutdown()
		return nil, fmt.Errorf("subscribe callbacks: %w", err)
	}
	c.bridge = bridge

	logrus.WithFields(logrus.Fields{
		"function":   "New",
		"instance":   c.instanceID.String(),
		"simulation": platform.IsSimulation(),
		"interval":   c.iterationTime,
	}).Info("Client initialized")

	return c, nil
}

func applyLogLevel(name string) {
	if name == "" {
		return
	}
	level, err := logrus.ParseLevel(name)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "applyLogLevel",
			"value":    name,
			"error":    err.Error(),
		}).Warn("Ignoring invalid log level")
		return
	}
	logrus.SetLevel(level)
}

// InstanceID identifies this client in log output.
func (c *Client) InstanceID() uuid.UUID {
	return c.instanceID
}

// RunCallbacks runs the message pump once. Subscribers and dispatcher
// handlers are invoked on the calling goroutine.
func (c *Client) RunCallbacks() {
	c.pumpMu.Lock()
	defer func() {
		c.pumpMu.Unlock()
		if c.closing.Load() {
			c.finishShutdown()
		}
	}()

	if c.closing.Load() {
		return
	}
	c.platform.RunCallbacks()
}

// IterationInterval returns the recommended interval between RunCallbacks calls.
func (c *Client) IterationInterval() time.Duration {
	return c.iterationTime
}

// IsRunning reports whether Shutdown has not been called.
func (c *Client) IsRunning() bool {
	return !c.closing.Load()
}

// Run pumps callbacks every IterationInterval until ctx is done or the
// client shuts down. A panic raised by a handler during one pump is logged
// and the loop continues.
func (c *Client) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.iterationTime)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.done:
			return nil
		case <-ticker.C:
		}
		safeCall(c.instanceID, "Client.RunCallbacks", c.RunCallbacks)
	}
}

// Shutdown releases the bridge, closes every subscription and shuts the
// platform down. When called while RunCallbacks is in progress, including
// from a handler, teardown completes as that RunCallbacks returns. Calling
// Shutdown again has no effect.
func (c *Client) Shutdown() {
	if !c.closing.CompareAndSwap(false, true) {
		return
	}
	if c.pumpMu.TryLock() {
		c.pumpMu.Unlock()
		c.finishShutdown()
		return
	}

	logrus.WithFields(logrus.Fields{
		"function": "Client.Shutdown",
		"instance": c.instanceID.String(),
	}).Debug("Deferring shutdown until the running pump returns")
}

func (c *Client) finishShutdown() {
	c.teardown.Do(func() {
		c.bridge.Close()
		c.persona.closeAll()
		c.shutdown.closeAll()
		c.platform.Shutdown()
		close(c.done)
		clientActive.Store(false)

		logrus.WithFields(logrus.Fields{
			"function": "Client.Shutdown",
			"instance": c.instanceID.String(),
		}).Info("Client shut down")
	})
}

// Done is closed once the client has fully shut down.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// OnPersonaStateChanged subscribes to persona-state-change notifications.
// https://partner.steamgames.com/doc/api/ISteamFriends#PersonaStateChange_t
func (c *Client) OnPersonaStateChanged() *Subscription[friend.PersonaStateChange] {
	return c.persona.add()
}

// OnSteamShutdown subscribes to shutdown notifications.
// https://partner.steamgames.com/doc/api/ISteamUtils#SteamShutdown_t
func (c *Client) OnSteamShutdown() *Subscription[callbacks.SteamShutdown] {
	return c.shutdown.add()
}

// Dispatcher exposes the platform's notification dispatch system for
// additional bridges.
func (c *Client) Dispatcher() interfaces.IDispatcher {
	return c.platform.Dispatcher()
}

// AppID returns the id of the running app.
// https://partner.steamgames.com/doc/api/ISteamUtils#GetAppID
func (c *Client) AppID() steamid.AppID {
	return c.platform.Utils().GetAppID()
}

func (c *Client) Friends() interfaces.IFriends             { return c.platform.Friends() }
func (c *Client) RemoteStorage() interfaces.IRemoteStorage { return c.platform.RemoteStorage() }
func (c *Client) UGC() interfaces.IUGC                     { return c.platform.UGC() }
func (c *Client) User() interfaces.IUser                   { return c.platform.User() }
func (c *Client) UserStats() interfaces.IUserStats         { return c.platform.UserStats() }
func (c *Client) Utils() interfaces.IUtils                 { return c.platform.Utils() }
