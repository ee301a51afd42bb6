package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheURLTTL        time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Input limits.
	MaxInlineSize int64
	MaxFetchSize  int64

	// Extraction defaults.
	MaxDepth int

	// AllowPrivateIPs disables SSRF protection for URL inputs.
	AllowPrivateIPs bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from TREEPICK_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("TREEPICK_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("TREEPICK_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("TREEPICK_CACHE_FILE_TTL", 15*time.Minute),
		CacheURLTTL:        envDuration("TREEPICK_CACHE_URL_TTL", 5*time.Minute),
		CacheContentTTL:    envDuration("TREEPICK_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("TREEPICK_CACHE_SWEEP_INTERVAL", 60*time.Second),
		MaxInlineSize:      envInt64("TREEPICK_MAX_INLINE_SIZE", 4<<20),
		MaxFetchSize:       envInt64("TREEPICK_MAX_FETCH_SIZE", 32<<20),
		MaxDepth:           envInt("TREEPICK_MAX_DEPTH", 0),
		AllowPrivateIPs:    envBool("TREEPICK_ALLOW_PRIVATE_IPS", false),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
