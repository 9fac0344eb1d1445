package crypto

// Engine provides authenticated encryption for fields the application
// marks sensitive: poll questions and option labels. It knows nothing
// about the network, the database, or polls; its only job is turning
// plaintext into opaque storage blobs and back.
//
// Blob format: base64url(nonce ‖ AES-256-GCM ciphertext). The key is
// derived once, at construction, from the application secret and the
// installation salt via PBKDF2.
type Engine interface {
	// Encrypt seals plaintext into an opaque blob. Empty plaintext
	// maps to an empty blob.
	Encrypt(plaintext string) (string, error)

	// Decrypt opens a blob produced by Encrypt. Any failure (corrupt
	// data, tampering, wrong key) returns ErrDecryptionFailed; callers
	// reading possibly-legacy plaintext must catch it explicitly and
	// fall back themselves, the engine never does it for them.
	Decrypt(blob string) (string, error)

	// EncryptMap serializes a string map to JSON and encrypts it.
	EncryptMap(values map[string]string) (string, error)

	// DecryptMap decrypts a blob produced by EncryptMap back into a
	// string map.
	DecryptMap(blob string) (map[string]string, error)
}
