// Package cache provides short-lived result caching so repeated
// discovery requests for the same location do not re-hit the sources.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// DiscoveryKey generates a cache key for one discovery query. Radius
// and cap are part of the key: a wider search is not answerable from a
// narrower cached one.
func DiscoveryKey(location string, radiusMeters, maxResults int) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%d", location, radiusMeters, maxResults)))
	return "agriscout:v1:" + hex.EncodeToString(hash[:])
}
