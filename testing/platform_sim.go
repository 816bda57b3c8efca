package testing

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/opd-ai/steambridge/callbacks"
	"github.com/opd-ai/steambridge/dispatch"
	"github.com/opd-ai/steambridge/friend"
	"github.com/opd-ai/steambridge/interfaces"
	"github.com/opd-ai/steambridge/steamid"
	"github.com/sirupsen/logrus"
)

// DefaultLocalSteamID is the SteamID reported by the simulated user facet.
const DefaultLocalSteamID steamid.ID = 76561197960265729

var (
	// ErrNotInitialized is returned when posting to a platform that is not
	// initialized.
	ErrNotInitialized = errors.New("simulated platform not initialized")

	// ErrAlreadyInitialized is returned by a second Init.
	ErrAlreadyInitialized = errors.New("simulated platform already initialized")
)

type queuedNotification struct {
	kind    dispatch.Kind
	payload any
}

// DeliveryRecord represents one dispatched notification for test verification.
type DeliveryRecord struct {
	Kind     dispatch.Kind
	Payload  any
	Handlers int
	// Interrupted is set when a handler panicked during this delivery;
	// Handlers is then -1.
	Interrupted bool
	Timestamp   int64
}

// SimulatedPlatform is an in-memory IPlatform. Notifications posted with
// Post* are queued and delivered on the goroutine that calls RunCallbacks.
type SimulatedPlatform struct {
	config      *interfaces.PlatformConfig
	registry    *dispatch.Registry
	pending     []queuedNotification
	deliveryLog []DeliveryRecord
	initialized bool
	activeSince time.Time
	mu          sync.Mutex

	friends       *SimulatedFriends
	remoteStorage *SimulatedRemoteStorage
	ugc           *SimulatedUGC
	user          *SimulatedUser
	userStats     *SimulatedUserStats
	utils         *SimulatedUtils
}

// NewSimulatedPlatform creates a simulated platform. Init must be called
// before notifications can be posted.
func NewSimulatedPlatform(config *interfaces.PlatformConfig) *SimulatedPlatform {
	if config == nil {
		config = &interfaces.PlatformConfig{UseSimulation: true, AppID: 480, PumpInterval: 5 * time.Millisecond}
	}

	logrus.WithFields(logrus.Fields{
		"function": "NewSimulatedPlatform",
		"app_id":   config.AppID,
	}).Info("Creating simulated platform")

	s := &SimulatedPlatform{
		config:   config,
		registry: dispatch.NewRegistry(),
	}
	s.friends = &SimulatedFriends{platform: s, names: make(map[steamid.ID]string), localName: "Player"}
	s.remoteStorage = &SimulatedRemoteStorage{files: make(map[string][]byte)}
	s.ugc = &SimulatedUGC{}
	s.user = &SimulatedUser{steamID: DefaultLocalSteamID}
	s.userStats = &SimulatedUserStats{}
	s.utils = &SimulatedUtils{platform: s, appID: steamid.AppID(config.AppID)}
	return s
}

// Init marks the platform initialized.
func (s *SimulatedPlatform) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return ErrAlreadyInitialized
	}
	s.initialized = true
	s.activeSince = time.Now()
	s.user.setLoggedOn(true)

	logrus.WithFields(logrus.Fields{
		"function": "SimulatedPlatform.Init",
		"app_id":   s.config.AppID,
	}).Info("Simulated platform initialized")
	return nil
}

// Shutdown discards queued notifications and marks the platform
// uninitialized. Existing registrations are kept, as with the real SDK.
func (s *SimulatedPlatform) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	dropped := len(s.pending)
	s.pending = nil
	s.initialized = false
	s.user.setLoggedOn(false)

	logrus.WithFields(logrus.Fields{
		"function": "SimulatedPlatform.Shutdown",
		"dropped":  dropped,
	}).Info("Simulated platform shut down")
}

// IsSimulation returns true.
func (s *SimulatedPlatform) IsSimulation() bool {
	return true
}

// Dispatcher returns the registry notifications are delivered through.
func (s *SimulatedPlatform) Dispatcher() interfaces.IDispatcher {
	return s.registry
}

// Registry exposes the underlying registry for inspection in tests.
func (s *SimulatedPlatform) Registry() *dispatch.Registry {
	return s.registry
}

// Post queues a notification of kind. The payload is delivered unchanged.
func (s *SimulatedPlatform) Post(kind dispatch.Kind, payload any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return fmt.Errorf("post %s: %w", kind, ErrNotInitialized)
	}
	s.pending = append(s.pending, queuedNotification{kind: kind, payload: payload})
	return nil
}

// PostPersonaStateChange queues a persona-state-change notification and
// returns the payload that will be delivered.
func (s *SimulatedPlatform) PostPersonaStateChange(id steamid.ID, flags friend.PersonaChange) (*friend.PersonaStateChange, error) {
	payload := &friend.PersonaStateChange{SteamID: id, ChangeFlags: flags}
	if err := s.Post(dispatch.KindPersonaStateChange, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// PostSteamShutdown queues a shutdown notification.
func (s *SimulatedPlatform) PostSteamShutdown() (*callbacks.SteamShutdown, error) {
	payload := &callbacks.SteamShutdown{}
	if err := s.Post(dispatch.KindSteamShutdown, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Pending returns the number of queued notifications.
func (s *SimulatedPlatform) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// RunCallbacks delivers the notifications queued when it was called, oldest
// first. Notifications posted by handlers during the run are delivered by
// the next call. If a handler panics, the notification being delivered is
// logged as interrupted and the rest of the batch goes back to the front of
// the queue before the panic propagates.
func (s *SimulatedPlatform) RunCallbacks() {
	s.mu.Lock()
	if !s.initialized {
		s.mu.Unlock()
		return
	}
	batch := s.pending
	s.pending = nil
	s.mu.Unlock()

	delivered := 0
	defer func() {
		if delivered < len(batch) {
			s.requeueAfterPanic(batch[delivered], batch[delivered+1:])
		}
	}()

	for _, n := range batch {
		handlers := s.registry.Deliver(n.kind, n.payload)
		s.record(n, handlers, false)
		delivered++
	}

	if len(batch) > 0 {
		logrus.WithFields(logrus.Fields{
			"function":      "SimulatedPlatform.RunCallbacks",
			"notifications": len(batch),
		}).Debug("Delivered queued notifications")
	}
}

func (s *SimulatedPlatform) record(n queuedNotification, handlers int, interrupted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deliveryLog = append(s.deliveryLog, DeliveryRecord{
		Kind:        n.kind,
		Payload:     n.payload,
		Handlers:    handlers,
		Interrupted: interrupted,
		Timestamp:   time.Now().UnixNano(),
	})
}

func (s *SimulatedPlatform) requeueAfterPanic(failed queuedNotification, rest []queuedNotification) {
	s.record(failed, -1, true)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized && len(rest) > 0 {
		pending := make([]queuedNotification, 0, len(rest)+len(s.pending))
		pending = append(pending, rest...)
		s.pending = append(pending, s.pending...)
	}

	logrus.WithFields(logrus.Fields{
		"function": "SimulatedPlatform.RunCallbacks",
		"kind":     failed.kind,
		"requeued": len(rest),
	}).Warn("Handler panicked, requeued the rest of the batch")
}

// GetDeliveryLog returns a copy of every delivery made so far.
func (s *SimulatedPlatform) GetDeliveryLog() []DeliveryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := make([]DeliveryRecord, len(s.deliveryLog))
	copy(log, s.deliveryLog)
	return log
}

// ClearDeliveryLog empties the delivery log.
func (s *SimulatedPlatform) ClearDeliveryLog() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deliveryLog = nil
}

// GetStats returns counters describing the simulation.
func (s *SimulatedPlatform) GetStats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]interface{}{
		"initialized":          s.initialized,
		"pending":              len(s.pending),
		"total_deliveries":     len(s.deliveryLog),
		"persona_handlers":     s.registry.Count(dispatch.KindPersonaStateChange),
		"shutdown_handlers":    s.registry.Count(dispatch.KindSteamShutdown),
		"is_simulation":        true,
		"configured_app_id":    s.config.AppID,
		"configured_pump_rate": s.config.PumpInterval,
	}
}

func (s *SimulatedPlatform) Friends() interfaces.IFriends             { return s.friends }
func (s *SimulatedPlatform) RemoteStorage() interfaces.IRemoteStorage { return s.remoteStorage }
func (s *SimulatedPlatform) UGC() interfaces.IUGC                     { return s.ugc }
func (s *SimulatedPlatform) User() interfaces.IUser                   { return s.user }
func (s *SimulatedPlatform) UserStats() interfaces.IUserStats         { return s.userStats }
func (s *SimulatedPlatform) Utils() interfaces.IUtils                 { return s.utils }

// SimulatedFriends returns the concrete friends facet for test setup.
func (s *SimulatedPlatform) SimulatedFriends() *SimulatedFriends { return s.friends }

// SimulatedRemoteStorage returns the concrete remote storage facet.
func (s *SimulatedPlatform) SimulatedRemoteStorage() *SimulatedRemoteStorage {
	return s.remoteStorage
}

// SimulatedUGC returns the concrete UGC facet.
func (s *SimulatedPlatform) SimulatedUGC() *SimulatedUGC { return s.ugc }

// SimulatedUserStats returns the concrete user stats facet.
func (s *SimulatedPlatform) SimulatedUserStats() *SimulatedUserStats { return s.userStats }

func (s *SimulatedPlatform) secondsActive() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return 0
	}
	return uint32(time.Since(s.activeSince) / time.Second)
}
