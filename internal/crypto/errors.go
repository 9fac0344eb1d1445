package crypto

import "errors"

var (
	// ErrMissingSecret is returned at construction time when the secret
	// key or the installation salt is absent. The process must refuse
	// to serve traffic in that state; there is no default-salt
	// fallback, because a shared default would make every
	// installation's derived key guessable.
	ErrMissingSecret = errors.New("encryption secret or salt is not configured")

	// ErrDecryptionFailed is returned when a blob cannot be decrypted:
	// truncated data, a tampered ciphertext, or the wrong key. The
	// cases are deliberately indistinguishable to callers; the engine
	// logs the underlying cause for operators.
	ErrDecryptionFailed = errors.New("decryption failed")
)
