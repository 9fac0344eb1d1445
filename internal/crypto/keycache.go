// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Pollivu Authors

package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// keySize is the derived AES key length: 256 bits.
	keySize = 32

	// kdfIterations is the PBKDF2-HMAC-SHA256 iteration count. The
	// derivation is deliberately expensive so a leaked secret key still
	// resists brute force; the cache below keeps the cost off the hot
	// path.
	kdfIterations = 100_000

	// DefaultKeyCacheSize bounds the derived-key table. One process
	// normally holds a single secret; the bound only guards against
	// pathological reconfiguration loops.
	DefaultKeyCacheSize = 16
)

// KeyCache is a bounded table of derived encryption keys, keyed by the
// SHA-256 fingerprint of the secret. It is an explicit component owned
// by whoever builds the process configuration, shared between every
// engine constructed from it, and safe for concurrent use.
type KeyCache struct {
	mu    sync.Mutex
	limit int
	keys  map[string][]byte
}

// NewKeyCache constructs a KeyCache holding at most limit derived keys.
// A limit below one falls back to DefaultKeyCacheSize.
func NewKeyCache(limit int) *KeyCache {
	if limit < 1 {
		limit = DefaultKeyCacheSize
	}

	return &KeyCache{
		limit: limit,
		keys:  make(map[string][]byte, limit),
	}
}

// GetOrDerive returns the 256-bit key derived from secret and salt via
// PBKDF2-HMAC-SHA256, deriving and caching it on first use. When the
// table is full an arbitrary entry is evicted.
func (c *KeyCache) GetOrDerive(secret, salt []byte) []byte {
	fp := fingerprint(secret)

	c.mu.Lock()
	defer c.mu.Unlock()

	if key, ok := c.keys[fp]; ok {
		return key
	}

	key := pbkdf2.Key(secret, salt, kdfIterations, keySize, sha256.New)

	if len(c.keys) >= c.limit {
		for victim := range c.keys {
			delete(c.keys, victim)
			break
		}
	}
	c.keys[fp] = key

	return key
}

// Len reports the number of cached keys.
func (c *KeyCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.keys)
}

// fingerprint identifies a secret without retaining it: SHA-256 hex of
// the secret bytes.
func fingerprint(secret []byte) string {
	sum := sha256.Sum256(secret)
	return hex.EncodeToString(sum[:])
}
