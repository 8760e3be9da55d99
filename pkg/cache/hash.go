package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Keyer builds cache keys for each kind of cached value.
type Keyer interface {
	// HTTPKey is the key for a raw API response.
	HTTPKey(namespace, key string) string
	// CardKey is the key for a rendered card.
	CardKey(opts CardKeyOpts) string
}

// CardKeyOpts are the inputs that change a rendered card's bytes.
type CardKeyOpts struct {
	Username string `json:"username"`
	Theme    string `json:"theme"`
	Layout   string `json:"layout"`
	TopN     int    `json:"top_n"`
	Caption  string `json:"caption,omitempty"`
	Updated  bool   `json:"updated,omitempty"`

	// Settings fingerprints the scoring and aggregation configuration.
	Settings string `json:"settings,omitempty"`
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard key layout.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// HTTPKey returns "http:<namespace>:<key>".
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// CardKey returns "card:<sha256(opts)>".
func (DefaultKeyer) CardKey(opts CardKeyOpts) string {
	return hashKey("card", opts)
}
