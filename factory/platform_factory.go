package factory

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/opd-ai/steambridge/interfaces"
	"github.com/opd-ai/steambridge/testing"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Validation constants for configuration bounds checking.
const (
	// MinPumpInterval is the shortest allowed interval between message pump runs.
	MinPumpInterval = time.Millisecond
	// MaxPumpInterval is the longest allowed interval between message pump runs.
	MaxPumpInterval = time.Second
	// DefaultAppID is Spacewar, the app id Valve provides for SDK testing.
	DefaultAppID = 480
	// ConfigFileEnvVar names the variable holding the path of an optional
	// YAML configuration file.
	ConfigFileEnvVar = "STEAMBRIDGE_CONFIG"
)

// ErrRealUnavailable is returned when a real platform is requested from a
// binary built without the steamworks tag.
var ErrRealUnavailable = errors.New("steamworks backend not compiled in (build with -tags steamworks)")

// PlatformFactory creates platform implementations based on configuration.
// It is safe for concurrent use; all methods are protected by an internal mutex.
type PlatformFactory struct {
	mu            sync.RWMutex
	defaultConfig *interfaces.PlatformConfig
}

// TestConfigOption is a functional option for customizing test simulation configuration.
type TestConfigOption func(*interfaces.PlatformConfig)

// NewPlatformFactory creates a new factory with default configuration
// overridden by the file named in STEAMBRIDGE_CONFIG, then by the
// environment.
func NewPlatformFactory() *PlatformFactory {
	defaultConfig := createDefaultConfig()
	applyConfigFile(defaultConfig)
	applyEnvironmentOverrides(defaultConfig)
	logConfigurationInfo(defaultConfig)

	return &PlatformFactory{
		defaultConfig: defaultConfig,
	}
}

// createDefaultConfig returns the configuration used when neither a file nor
// an environment variable sets a field.
func createDefaultConfig() *interfaces.PlatformConfig {
	return &interfaces.PlatformConfig{
		UseSimulation: false,
		AppID:         DefaultAppID,
		PumpInterval:  5 * time.Millisecond,
		LogLevel:      "info",
	}
}

func applyConfigFile(config *interfaces.PlatformConfig) {
	path := os.Getenv(ConfigFileEnvVar)
	if path == "" {
		return
	}
	if err := LoadConfigFile(path, config); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "applyConfigFile",
			"path":     path,
			"error":    err.Error(),
		}).Warn("Ignoring configuration file")
	}
}

// LoadConfigFile overlays the YAML document at path onto config. Fields the
// file does not mention keep their values. Unknown keys and values that fail
// validation reject the whole file and leave config unchanged.
//
//	use_simulation: true
//	app_id: 480
//	pump_interval: 16ms
//	log_level: debug
func LoadConfigFile(path string, config *interfaces.PlatformConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	candidate := *config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&candidate); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := validateConfig(&candidate); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "LoadConfigFile",
		"path":     path,
	}).Debug("Loaded configuration file")

	*config = candidate
	return nil
}

// applyEnvironmentOverrides reads STEAMBRIDGE_* variables into config. A
// variable that fails to parse leaves the whole configuration at its previous
// values; a pump interval or log level out of bounds falls back field by field.
func applyEnvironmentOverrides(config *interfaces.PlatformConfig) {
	candidate := *config
	if err := env.Parse(&candidate); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "applyEnvironmentOverrides",
			"error":    err.Error(),
		}).Warn("Failed to parse STEAMBRIDGE_* environment variables, using defaults")
		return
	}

	if !pumpIntervalInBounds(candidate.PumpInterval) {
		logrus.WithFields(logrus.Fields{
			"function":    "applyEnvironmentOverrides",
			"env_var":     "STEAMBRIDGE_PUMP_INTERVAL",
			"value":       candidate.PumpInterval,
			"min":         MinPumpInterval,
			"max":         MaxPumpInterval,
			"using_value": config.PumpInterval,
		}).Warn("STEAMBRIDGE_PUMP_INTERVAL value out of bounds, using default")
		candidate.PumpInterval = config.PumpInterval
	}

	if _, err := logrus.ParseLevel(candidate.LogLevel); err != nil {
		logrus.WithFields(logrus.Fields{
			"function":    "applyEnvironmentOverrides",
			"env_var":     "STEAMBRIDGE_LOG_LEVEL",
			"value":       candidate.LogLevel,
			"error":       err.Error(),
			"using_value": config.LogLevel,
		}).Warn("Failed to parse STEAMBRIDGE_LOG_LEVEL, using default")
		candidate.LogLevel = config.LogLevel
	}

	*config = candidate
}

func pumpIntervalInBounds(d time.Duration) bool {
	return d >= MinPumpInterval && d <= MaxPumpInterval
}

// logConfigurationInfo logs the final configuration settings for debugging purposes.
func logConfigurationInfo(config *interfaces.PlatformConfig) {
	logrus.WithFields(logrus.Fields{
		"function":       "NewPlatformFactory",
		"use_simulation": config.UseSimulation,
		"app_id":         config.AppID,
		"pump_interval":  config.PumpInterval,
		"log_level":      config.LogLevel,
	}).Info("Created platform factory with configuration")
}

// CreatePlatform creates a platform implementation based on the default configuration.
func (f *PlatformFactory) CreatePlatform() (interfaces.IPlatform, error) {
	return f.CreatePlatformWithConfig(nil)
}

// CreatePlatformWithConfig creates a platform implementation with custom
// configuration. A nil config selects the factory default. The returned
// platform is not yet initialized.
func (f *PlatformFactory) CreatePlatformWithConfig(config *interfaces.PlatformConfig) (interfaces.IPlatform, error) {
	if config == nil {
		config = f.GetCurrentConfig()
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function":       "CreatePlatformWithConfig",
		"use_simulation": config.UseSimulation,
		"app_id":         config.AppID,
		"pump_interval":  config.PumpInterval,
	}).Info("Creating platform implementation")

	if config.UseSimulation {
		logrus.WithFields(logrus.Fields{
			"function": "CreatePlatformWithConfig",
			"type":     "simulation",
		}).Info("Creating simulated platform")

		return testing.NewSimulatedPlatform(config), nil
	}

	logrus.WithFields(logrus.Fields{
		"function": "CreatePlatformWithConfig",
		"type":     "real",
	}).Info("Creating Steamworks platform")

	return newRealPlatform(config)
}

func validateConfig(config *interfaces.PlatformConfig) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid platform config: %w", err)
	}
	if !pumpIntervalInBounds(config.PumpInterval) {
		return fmt.Errorf("invalid platform config: %w: %v not in [%v, %v]",
			interfaces.ErrInvalidPumpInterval, config.PumpInterval, MinPumpInterval, MaxPumpInterval)
	}
	return nil
}

// WithAppID sets the app id reported by the simulated utils facet.
func WithAppID(appID uint32) TestConfigOption {
	return func(c *interfaces.PlatformConfig) {
		c.AppID = appID
	}
}

// WithPumpInterval sets a custom pump interval for the test configuration.
func WithPumpInterval(d time.Duration) TestConfigOption {
	return func(c *interfaces.PlatformConfig) {
		c.PumpInterval = d
	}
}

// WithLogLevel sets the log level carried by the test configuration.
func WithLogLevel(level string) TestConfigOption {
	return func(c *interfaces.PlatformConfig) {
		c.LogLevel = level
	}
}

// CreateSimulationForTesting creates a simulated platform specifically for
// testing. Default test configuration uses AppID=480 and PumpInterval=1ms.
func (f *PlatformFactory) CreateSimulationForTesting(opts ...TestConfigOption) *testing.SimulatedPlatform {
	testConfig := &interfaces.PlatformConfig{
		UseSimulation: true,
		AppID:         DefaultAppID,
		PumpInterval:  time.Millisecond,
		LogLevel:      "debug",
	}

	for _, opt := range opts {
		opt(testConfig)
	}

	logrus.WithFields(logrus.Fields{
		"function":      "CreateSimulationForTesting",
		"app_id":        testConfig.AppID,
		"pump_interval": testConfig.PumpInterval,
	}).Info("Creating simulation implementation for testing")

	return testing.NewSimulatedPlatform(testConfig)
}

// SwitchToSimulation switches the configuration to use simulation
func (f *PlatformFactory) SwitchToSimulation() {
	f.mu.Lock()
	defer f.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function": "SwitchToSimulation",
		"previous": f.defaultConfig.UseSimulation,
	}).Info("Switching factory to simulation mode")

	f.defaultConfig.UseSimulation = true
}

// SwitchToReal switches the configuration to use the Steamworks backend
func (f *PlatformFactory) SwitchToReal() {
	f.mu.Lock()
	defer f.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function": "SwitchToReal",
		"previous": f.defaultConfig.UseSimulation,
	}).Info("Switching factory to real mode")

	f.defaultConfig.UseSimulation = false
}

// GetCurrentConfig returns a copy of the current default configuration
func (f *PlatformFactory) GetCurrentConfig() *interfaces.PlatformConfig {
	f.mu.RLock()
	defer f.mu.RUnlock()

	config := *f.defaultConfig
	return &config
}

// IsUsingSimulation returns true if the factory is configured for simulation
func (f *PlatformFactory) IsUsingSimulation() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.defaultConfig.UseSimulation
}

// UpdateConfig replaces the factory's default configuration after validating it.
func (f *PlatformFactory) UpdateConfig(config *interfaces.PlatformConfig) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if err := validateConfig(config); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function":       "UpdateConfig",
		"old_simulation": f.defaultConfig.UseSimulation,
		"new_simulation": config.UseSimulation,
		"old_interval":   f.defaultConfig.PumpInterval,
		"new_interval":   config.PumpInterval,
	}).Info("Updating factory configuration")

	updated := *config
	f.defaultConfig = &updated
	return nil
}
