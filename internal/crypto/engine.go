// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Pollivu Authors

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pollivu/pollivu/internal/logger"
)

// aesEngine is the private implementation of [Engine]: AES-256-GCM over
// a key derived from the application secret and the installation salt.
type aesEngine struct {
	key []byte
	log *logger.Logger
}

// NewEngine constructs an [Engine] from the application secret key and
// the installation salt. The two values must come from separate
// configuration sources so a single leak never yields both.
//
// Construction fails with [ErrMissingSecret] when either value is empty.
// Key derivation goes through cache, so building several engines from
// the same secret pays the PBKDF2 cost once.
func NewEngine(secretKey, salt string, cache *KeyCache, log *logger.Logger) (Engine, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("%w: secret key is empty", ErrMissingSecret)
	}
	if salt == "" {
		return nil, fmt.Errorf("%w: installation salt is empty", ErrMissingSecret)
	}
	if log == nil {
		log = logger.Nop()
	}

	return &aesEngine{
		key: cache.GetOrDerive([]byte(secretKey), []byte(salt)),
		log: log,
	}, nil
}

// Encrypt implements [Engine]. It seals plaintext with AES-256-GCM under
// a fresh random 12-byte nonce and returns base64url(nonce ‖ ciphertext).
// Nonce reuse under one key breaks GCM entirely, so the nonce is drawn
// from the OS CSPRNG on every call and never derived from the input.
//
// Empty plaintext short-circuits to an empty blob without touching the
// cipher.
func (e *aesEngine) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	gcm, err := e.newGCM()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	// Prepend the nonce so Decrypt can split it back out.
	ciphertext := gcm.Seal(nil, nonce, []byte(plaintext), nil)
	blob := append(nonce, ciphertext...)

	return base64.URLEncoding.EncodeToString(blob), nil
}

// Decrypt implements [Engine]. It reverses [aesEngine.Encrypt]: decode
// base64url, split nonce and ciphertext, open and verify the
// authentication tag.
//
// Every failure surfaces as [ErrDecryptionFailed]. A tampered blob and a
// wrong key are indistinguishable on purpose; the underlying cause is
// logged for operators and never shown to callers.
func (e *aesEngine) Decrypt(blob string) (string, error) {
	if blob == "" {
		return "", nil
	}

	raw, err := base64.URLEncoding.DecodeString(blob)
	if err != nil {
		e.log.Warn().Err(err).Str("func", "Decrypt").Msg("blob is not valid base64")
		return "", fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}

	gcm, err := e.newGCM()
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(raw) < nonceSize {
		e.log.Warn().Int("blob_len", len(raw)).Str("func", "Decrypt").Msg("blob shorter than nonce")
		return "", fmt.Errorf("%w: ciphertext too short", ErrDecryptionFailed)
	}

	nonce, ciphertext := raw[:nonceSize], raw[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		// Wrong key and tampered data both land here; only the log
		// carries the distinction the auth tag cannot make.
		e.log.Warn().Err(err).Str("func", "Decrypt").Msg("authentication failed, tampered blob or wrong key")
		return "", fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}

	return string(plaintext), nil
}

// EncryptMap implements [Engine]. It serializes values to JSON and
// encrypts the result with [aesEngine.Encrypt].
func (e *aesEngine) EncryptMap(values map[string]string) (string, error) {
	plaintext, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("marshal values: %w", err)
	}

	return e.Encrypt(string(plaintext))
}

// DecryptMap implements [Engine]. It decrypts a blob produced by
// [aesEngine.EncryptMap] and unmarshals the plaintext JSON.
func (e *aesEngine) DecryptMap(blob string) (map[string]string, error) {
	if blob == "" {
		return map[string]string{}, nil
	}

	plaintext, err := e.Decrypt(blob)
	if err != nil {
		return nil, err
	}

	values := make(map[string]string)
	if err := json.Unmarshal([]byte(plaintext), &values); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}

	return values, nil
}

// newGCM builds the AES-256-GCM AEAD for the engine key.
func (e *aesEngine) newGCM() (cipher.AEAD, error) {
	block, err := aes.NewCipher(e.key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}
