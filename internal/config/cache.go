package config

import "time"

// CacheConfig defines settings for the response cache middleware.  Only GET
// responses are cached; occupancy moves fast during an event, so the default
// TTL is short.  When Enabled is false or no Redis client is configured,
// caching is disabled entirely.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      getenv("CACHE_ENABLED", "true") == "true",
		TTL:          parseDur(getenv("CACHE_TTL", "5s"), 5*time.Second),
		Prefix:       getenv("CACHE_PREFIX", "cache"),
		MaxBodyBytes: atoiDefault("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}
