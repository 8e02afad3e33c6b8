package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SCOUT_PROVIDER", "SCOUT_MODEL", "SCOUT_HEADLESS",
		"SCOUT_VIEWPORT_WIDTH", "SCOUT_VIEWPORT_HEIGHT",
		"SCOUT_BROWSER_TIMEOUT_MS", "SCOUT_SCREENSHOT_DIR",
		"SCOUT_CACHE_PATH", "SCOUT_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Provider != DefaultProvider {
		t.Errorf("Provider = %q, want %q", cfg.Provider, DefaultProvider)
	}
	if !cfg.Headless {
		t.Error("Headless should default to true")
	}
	if cfg.ViewportWidth != DefaultViewportWidth || cfg.ViewportHeight != DefaultViewportHeight {
		t.Errorf("viewport = %dx%d, want %dx%d",
			cfg.ViewportWidth, cfg.ViewportHeight, DefaultViewportWidth, DefaultViewportHeight)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SCOUT_PROVIDER", "anthropic")
	t.Setenv("SCOUT_HEADLESS", "false")
	t.Setenv("SCOUT_VIEWPORT_WIDTH", "1920")
	t.Setenv("SCOUT_VIEWPORT_HEIGHT", "1080")
	t.Setenv("SCOUT_LOG_LEVEL", "debug")

	cfg := Load()

	if cfg.Provider != "anthropic" {
		t.Errorf("Provider = %q, want anthropic", cfg.Provider)
	}
	if cfg.Headless {
		t.Error("Headless should be overridden to false")
	}
	if cfg.ViewportWidth != 1920 || cfg.ViewportHeight != 1080 {
		t.Errorf("viewport = %dx%d, want 1920x1080", cfg.ViewportWidth, cfg.ViewportHeight)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("SCOUT_VIEWPORT_WIDTH", "wide")
	t.Setenv("SCOUT_HEADLESS", "sometimes")

	cfg := Load()

	if cfg.ViewportWidth != DefaultViewportWidth {
		t.Errorf("ViewportWidth = %d, want default %d", cfg.ViewportWidth, DefaultViewportWidth)
	}
	if !cfg.Headless {
		t.Error("malformed bool should fall back to default true")
	}
}
