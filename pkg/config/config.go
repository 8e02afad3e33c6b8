// Package config loads application settings from the environment.
//
// Settings come from process environment variables, with a .env file loaded
// first when present. Every field has a usable default except the API key of
// whichever LLM provider is selected, which is validated at construction of
// the provider rather than here.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Defaults for browser and execution settings.
const (
	DefaultProvider        = "openai"
	DefaultViewportWidth   = 1280
	DefaultViewportHeight  = 720
	DefaultBrowserTimeout  = 30000 // milliseconds
	DefaultScreenshotDir   = "./temp/screenshots"
	DefaultCachePath       = "./temp/selector_cache.json"
	DefaultScreenshotWidth = 1280 // max width sent to vision models
)

// Config holds the application settings.
type Config struct {
	// Provider selects the LLM backend: "openai" or "anthropic".
	Provider string

	// Model overrides the provider's default model when non-empty.
	Model string

	// OpenAIAPIKey and OpenAIBaseURL configure the OpenAI provider.
	OpenAIAPIKey  string
	OpenAIBaseURL string

	// AnthropicAPIKey configures the Anthropic provider.
	AnthropicAPIKey string

	// Headless controls whether the browser runs without a visible window.
	Headless bool

	// ViewportWidth and ViewportHeight set the browser viewport.
	ViewportWidth  int
	ViewportHeight int

	// BrowserTimeoutMs is the default timeout for page operations.
	BrowserTimeoutMs float64

	// ScreenshotDir is where step screenshots are written.
	ScreenshotDir string

	// ScreenshotMaxWidth bounds the width of screenshots sent to the vision
	// model; larger captures are downscaled.
	ScreenshotMaxWidth int

	// CachePath is the selector cache file location.
	CachePath string

	// LogLevel is a logrus level name ("debug", "info", "warn", "error").
	LogLevel string
}

// Load reads settings from the environment. A .env file in the working
// directory is loaded first when present; missing files are not an error.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Provider:           envOr("SCOUT_PROVIDER", DefaultProvider),
		Model:              os.Getenv("SCOUT_MODEL"),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:      os.Getenv("OPENAI_BASE_URL"),
		AnthropicAPIKey:    os.Getenv("ANTHROPIC_API_KEY"),
		Headless:           envBool("SCOUT_HEADLESS", true),
		ViewportWidth:      envInt("SCOUT_VIEWPORT_WIDTH", DefaultViewportWidth),
		ViewportHeight:     envInt("SCOUT_VIEWPORT_HEIGHT", DefaultViewportHeight),
		BrowserTimeoutMs:   float64(envInt("SCOUT_BROWSER_TIMEOUT_MS", DefaultBrowserTimeout)),
		ScreenshotDir:      envOr("SCOUT_SCREENSHOT_DIR", DefaultScreenshotDir),
		ScreenshotMaxWidth: envInt("SCOUT_SCREENSHOT_MAX_WIDTH", DefaultScreenshotWidth),
		CachePath:          envOr("SCOUT_CACHE_PATH", DefaultCachePath),
		LogLevel:           envOr("SCOUT_LOG_LEVEL", "info"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
