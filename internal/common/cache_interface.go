package common

import (
	"strings"
	"time"

	"github.com/Shamanth-8/drones/internal/constants"
)

// CacheInterface defines the contract for cache implementations
type CacheInterface interface {
	// Set stores a value in cache with the given key and duration
	Set(key string, value interface{}, duration time.Duration)

	// Get retrieves a value from cache by key
	// Returns the value and true if found, nil and false otherwise
	Get(key string) (interface{}, bool)

	// Delete removes a value from cache by key
	Delete(key string)

	// GetOrSet retrieves a value from cache, or loads it using the loader function if not found
	GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error)

	// Close closes any underlying connections (for Redis, etc.)
	Close() error
}

// CacheKey joins a prefix and key parts, e.g. CONFLICTS_r12
func CacheKey(prefix constants.CachePrefix, parts ...string) string {
	return string(prefix) + strings.Join(parts, "_")
}

// AsStrings recovers a []string from a cached value. The in-memory cache
// returns the original slice; Redis returns the JSON-decoded []interface{}.
func AsStrings(v interface{}) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return t, true
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	case nil:
		return []string{}, true
	}
	return nil, false
}
