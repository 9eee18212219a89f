package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	return &Manager{
		configPath: filepath.Join(t.TempDir(), "config.json"),
		config:     DefaultConfig(),
	}
}

// TestDefaultConfig tests the published defaults
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Network.DiscoveryPort != 45454 {
		t.Errorf("Expected discovery port 45454, got %d", cfg.Network.DiscoveryPort)
	}
	if cfg.Network.CommandPort != 45455 {
		t.Errorf("Expected command port 45455, got %d", cfg.Network.CommandPort)
	}
	if cfg.Network.StatusPort != 45460 {
		t.Errorf("Expected status port 45460, got %d", cfg.Network.StatusPort)
	}
	if cfg.Network.Bind != "0.0.0.0" {
		t.Errorf("Expected bind 0.0.0.0, got %s", cfg.Network.Bind)
	}
	if cfg.Network.StatusBind != "127.0.0.1" {
		t.Errorf("Expected status bind 127.0.0.1, got %s", cfg.Network.StatusBind)
	}
	if cfg.Input.ClickDelayMS != 10 {
		t.Errorf("Expected click delay 10ms, got %d", cfg.Input.ClickDelayMS)
	}
	if cfg.Input.DoubleClickTimeoutMS != 350 {
		t.Errorf("Expected double click timeout 350ms, got %d", cfg.Input.DoubleClickTimeoutMS)
	}
	if cfg.Input.DragBatchIntervalMS != 16 {
		t.Errorf("Expected drag batch interval 16ms, got %d", cfg.Input.DragBatchIntervalMS)
	}
	if cfg.Input.FallbackScreenWidth != 1920 || cfg.Input.FallbackScreenHeight != 1080 {
		t.Errorf("Expected fallback screen 1920x1080, got %vx%v",
			cfg.Input.FallbackScreenWidth, cfg.Input.FallbackScreenHeight)
	}
	if cfg.General.AppDownloadURL == "" {
		t.Error("Expected a download URL")
	}
}

// TestInputTiming tests the millisecond-to-duration derivation
func TestInputTiming(t *testing.T) {
	timing := InputConfig{
		ClickDelayMS:         10,
		DoubleClickTimeoutMS: 350,
		DragBatchIntervalMS:  16,
		FallbackScreenWidth:  800,
		FallbackScreenHeight: 600,
	}.Timing()

	if timing.ClickDelay != 10*time.Millisecond {
		t.Errorf("Expected click delay 10ms, got %v", timing.ClickDelay)
	}
	if timing.DoubleClickTimeout != 350*time.Millisecond {
		t.Errorf("Expected double click timeout 350ms, got %v", timing.DoubleClickTimeout)
	}
	if timing.DragBatchInterval != 16*time.Millisecond {
		t.Errorf("Expected drag batch interval 16ms, got %v", timing.DragBatchInterval)
	}
	if timing.FallbackScreenWidth != 800 || timing.FallbackScreenHeight != 600 {
		t.Errorf("Expected fallback screen 800x600, got %vx%v",
			timing.FallbackScreenWidth, timing.FallbackScreenHeight)
	}
}

// TestLoadMissingFile tests that a missing config file keeps the defaults
func TestLoadMissingFile(t *testing.T) {
	m := testManager(t)

	if err := m.Load(); err != nil {
		t.Fatalf("Expected no error for a missing file, got %v", err)
	}
	if m.Get().Network.CommandPort != 45455 {
		t.Errorf("Expected default command port, got %d", m.Get().Network.CommandPort)
	}
}

// TestSaveLoadRoundTrip tests that saved settings survive a reload
func TestSaveLoadRoundTrip(t *testing.T) {
	m := testManager(t)

	cfg := DefaultConfig()
	cfg.Network.CommandPort = 50001
	cfg.Input.DoubleClickTimeoutMS = 500
	cfg.General.KeepAwake = true
	m.Set(cfg)

	if err := m.Save(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	reloaded := &Manager{configPath: m.Path(), config: DefaultConfig()}
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got := reloaded.Get()
	if got.Network.CommandPort != 50001 {
		t.Errorf("Expected command port 50001, got %d", got.Network.CommandPort)
	}
	if got.Input.DoubleClickTimeoutMS != 500 {
		t.Errorf("Expected double click timeout 500ms, got %d", got.Input.DoubleClickTimeoutMS)
	}
	if !got.General.KeepAwake {
		t.Error("Expected keep awake to be set")
	}
}

// TestLoadPartialFile tests that absent fields keep their defaults
func TestLoadPartialFile(t *testing.T) {
	m := testManager(t)

	partial := []byte(`{"network": {"command_port": 50002}}`)
	if err := os.WriteFile(m.Path(), partial, 0644); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := m.Load(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got := m.Get()
	if got.Network.CommandPort != 50002 {
		t.Errorf("Expected command port 50002, got %d", got.Network.CommandPort)
	}
	if got.Network.DiscoveryPort != 45454 {
		t.Errorf("Expected default discovery port, got %d", got.Network.DiscoveryPort)
	}
	if got.Input.DragBatchIntervalMS != 16 {
		t.Errorf("Expected default drag batch interval, got %d", got.Input.DragBatchIntervalMS)
	}
}

// TestLoadMalformedFile tests that unparseable config is an error
func TestLoadMalformedFile(t *testing.T) {
	m := testManager(t)

	if err := os.WriteFile(m.Path(), []byte("{not json"), 0644); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := m.Load(); err == nil {
		t.Error("Expected an error for malformed config")
	}
}
