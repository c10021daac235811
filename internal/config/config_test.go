package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultValues(t *testing.T) {
	cfg := Default()
	if cfg.Desktops.Minimum != 10 {
		t.Errorf("desktops.minimum = %d, want 10", cfg.Desktops.Minimum)
	}
	if cfg.Indicator.DurationMs != 1500 {
		t.Errorf("indicator.duration_ms = %d, want 1500", cfg.Indicator.DurationMs)
	}
	if !cfg.Indicator.Enabled || !cfg.Notifications.Enabled {
		t.Error("indicator and notifications should default to enabled")
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Desktops.Minimum != 10 {
		t.Errorf("desktops.minimum = %d, want default 10", cfg.Desktops.Minimum)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "desktops:\n  minimum: 6\nindicator:\n  enabled: false\n  duration_ms: 800\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Desktops.Minimum != 6 {
		t.Errorf("desktops.minimum = %d, want 6", cfg.Desktops.Minimum)
	}
	if cfg.Indicator.Enabled {
		t.Error("indicator.enabled should be false")
	}
	if got := cfg.IndicatorDuration(); got != 800*time.Millisecond {
		t.Errorf("IndicatorDuration = %v, want 800ms", got)
	}
	// Untouched sections keep their defaults.
	if !cfg.Notifications.Enabled {
		t.Error("notifications.enabled should keep its default")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("desktops: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed config should be a startup error")
	}
}

func TestValidateBounds(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"minimum too low", "desktops:\n  minimum: 0\n"},
		{"minimum above table", "desktops:\n  minimum: 11\n"},
		{"duration too short", "indicator:\n  duration_ms: 5\n"},
		{"duration too long", "indicator:\n  duration_ms: 60000\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("config %q should fail validation", tt.body)
			}
		})
	}
}
