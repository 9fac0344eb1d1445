package crypto

import (
	"bytes"
	"crypto/sha256"
	"testing"

	"golang.org/x/crypto/pbkdf2"
)

func TestKeyCache_DeriveMatchesPBKDF2(t *testing.T) {
	cache := NewKeyCache(4)

	secret := []byte("app-secret")
	salt := []byte("install-salt")

	got := cache.GetOrDerive(secret, salt)
	want := pbkdf2.Key(secret, salt, kdfIterations, keySize, sha256.New)

	if len(got) != keySize {
		t.Fatalf("derived key length = %d, want %d", len(got), keySize)
	}
	if !bytes.Equal(got, want) {
		t.Fatal("derived key does not match direct PBKDF2 computation")
	}
}

func TestKeyCache_ReturnsCachedKey(t *testing.T) {
	cache := NewKeyCache(4)

	k1 := cache.GetOrDerive([]byte("secret"), []byte("salt"))
	k2 := cache.GetOrDerive([]byte("secret"), []byte("salt"))

	if !bytes.Equal(k1, k2) {
		t.Fatal("repeated derivation for one secret must return the same key")
	}
	if cache.Len() != 1 {
		t.Fatalf("cache size = %d, want 1", cache.Len())
	}
}

func TestKeyCache_DifferentSecretsDifferentKeys(t *testing.T) {
	cache := NewKeyCache(4)

	k1 := cache.GetOrDerive([]byte("secret-a"), []byte("salt"))
	k2 := cache.GetOrDerive([]byte("secret-b"), []byte("salt"))

	if bytes.Equal(k1, k2) {
		t.Fatal("different secrets must derive different keys")
	}
	if cache.Len() != 2 {
		t.Fatalf("cache size = %d, want 2", cache.Len())
	}
}

func TestKeyCache_BoundedEviction(t *testing.T) {
	cache := NewKeyCache(2)

	cache.GetOrDerive([]byte("one"), []byte("salt"))
	cache.GetOrDerive([]byte("two"), []byte("salt"))
	cache.GetOrDerive([]byte("three"), []byte("salt"))

	if cache.Len() > 2 {
		t.Fatalf("cache size = %d, must stay within limit 2", cache.Len())
	}

	// An evicted secret re-derives to the same key material.
	k := cache.GetOrDerive([]byte("one"), []byte("salt"))
	want := pbkdf2.Key([]byte("one"), []byte("salt"), kdfIterations, keySize, sha256.New)
	if !bytes.Equal(k, want) {
		t.Fatal("re-derived key after eviction does not match PBKDF2")
	}
}

func TestKeyCache_ZeroLimitFallsBack(t *testing.T) {
	cache := NewKeyCache(0)

	if cache.limit != DefaultKeyCacheSize {
		t.Fatalf("limit = %d, want default %d", cache.limit, DefaultKeyCacheSize)
	}
}
