// Package config provides configuration management for the pointz host.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	// Network contains port and bind settings
	Network NetworkConfig `json:"network"`

	// Input contains input simulation timing
	Input InputConfig `json:"input"`

	// General contains general application settings
	General GeneralConfig `json:"general"`
}

// NetworkConfig contains port and bind address settings
type NetworkConfig struct {
	// DiscoveryPort is the UDP port answering client discovery probes
	DiscoveryPort int `json:"discovery_port"`

	// CommandPort is the UDP port receiving input command datagrams
	CommandPort int `json:"command_port"`

	// StatusPort is the TCP port serving the local status API
	StatusPort int `json:"status_port"`

	// Bind is the address the UDP listeners bind to
	Bind string `json:"bind"`

	// StatusBind is the address the status API binds to; loopback keeps the
	// page off the LAN
	StatusBind string `json:"status_bind"`
}

// InputConfig contains input simulation timing settings
type InputConfig struct {
	// ClickDelayMS is the pause between a click's press and release events
	ClickDelayMS int `json:"click_delay_ms"`

	// DoubleClickTimeoutMS is the window within which a second click on the
	// same button counts as a double click
	DoubleClickTimeoutMS int `json:"double_click_timeout_ms"`

	// DragBatchIntervalMS throttles drag event emission while a button is held
	DragBatchIntervalMS int `json:"drag_batch_interval_ms"`

	// FallbackScreenWidth and FallbackScreenHeight size the assumed screen
	// when the real cursor position is unknown; moves start from its center
	FallbackScreenWidth  float64 `json:"fallback_screen_width"`
	FallbackScreenHeight float64 `json:"fallback_screen_height"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	// AppDownloadURL is the client download link shown on the status page
	AppDownloadURL string `json:"app_download_url"`

	// KeepAwake prevents the host from sleeping while serving
	KeepAwake bool `json:"keep_awake"`

	// StartOnLogin registers the host as a login item
	StartOnLogin bool `json:"start_on_login"`
}

// Timing is the input layer's view of the timing configuration, with
// millisecond fields widened to durations.
type Timing struct {
	ClickDelay           time.Duration
	DoubleClickTimeout   time.Duration
	DragBatchInterval    time.Duration
	FallbackScreenWidth  float64
	FallbackScreenHeight float64
}

// Timing derives the duration view used by the input layer.
func (c InputConfig) Timing() Timing {
	return Timing{
		ClickDelay:           time.Duration(c.ClickDelayMS) * time.Millisecond,
		DoubleClickTimeout:   time.Duration(c.DoubleClickTimeoutMS) * time.Millisecond,
		DragBatchInterval:    time.Duration(c.DragBatchIntervalMS) * time.Millisecond,
		FallbackScreenWidth:  c.FallbackScreenWidth,
		FallbackScreenHeight: c.FallbackScreenHeight,
	}
}

// DefaultConfig returns a new Config with the published wire defaults
func DefaultConfig() *Config {
	return &Config{
		Network: NetworkConfig{
			DiscoveryPort: 45454,
			CommandPort:   45455,
			StatusPort:    45460,
			Bind:          "0.0.0.0",
			StatusBind:    "127.0.0.1",
		},
		Input: InputConfig{
			ClickDelayMS:         10,
			DoubleClickTimeoutMS: 350,
			DragBatchIntervalMS:  16,
			FallbackScreenWidth:  1920,
			FallbackScreenHeight: 1080,
		},
		General: GeneralConfig{
			AppDownloadURL: "https://github.com/qol-tools/pointZ/releases/latest",
			KeepAwake:      false,
			StartOnLogin:   false,
		},
	}
}

// Manager handles loading and saving configuration
type Manager struct {
	mu         sync.Mutex
	configPath string
	config     *Config
}

// NewManager creates a new configuration manager
func NewManager() (*Manager, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	return &Manager{
		configPath: configPath,
		config:     DefaultConfig(),
	}, nil
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support", "pointz")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		configDir = filepath.Join(appData, "pointz")
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config", "pointz")
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(configDir, "config.json"), nil
}

// Load reads the configuration from disk
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.configPath)
	if os.IsNotExist(err) {
		// No config file, use defaults
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "reading config file")
	}

	if err := json.Unmarshal(data, m.config); err != nil {
		return errors.Wrapf(err, "parsing %s", m.configPath)
	}
	return nil
}

// Save writes the configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding config")
	}

	return os.WriteFile(m.configPath, data, 0644)
}

// Get returns the current configuration
func (m *Manager) Get() *Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.config
}

// Set updates the configuration
func (m *Manager) Set(config *Config) {
	m.mu.Lock()
	m.config = config
	m.mu.Unlock()
}

// Path returns the location of the config file on disk.
func (m *Manager) Path() string {
	return m.configPath
}
