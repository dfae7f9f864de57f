package config

import (
	"os"
	"strconv"
	"time"
)

// NavCacheConfig defines settings for the classification navigation cache.
// Every page of the original site rebuilt the classification menu with a
// fresh query; here the list is served from a short-TTL read-through cache
// instead.  When Enabled is false or no Redis client is configured the
// cache layer falls through to the database on every read.
type NavCacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadNavCacheConfig reads environment variables to build a NavCacheConfig.
// Defaults are used when variables are not set.
func LoadNavCacheConfig() NavCacheConfig {
	return NavCacheConfig{
		Enabled: getenv("NAV_CACHE_ENABLED", "true") == "true",
		TTL:     parseDur(getenv("NAV_CACHE_TTL", "30s")),
		Prefix:  getenv("NAV_CACHE_PREFIX", "nav"),
	}
}

// Helper functions shared with ratelimit.go.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string, def int) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
