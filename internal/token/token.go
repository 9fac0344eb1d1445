// Package token implements the identifier scheme of the voting domain:
// random URL-safe tokens for poll IDs, creator credentials and anonymous
// sessions, plus the deterministic one-way derivation that turns an
// anonymous session into a per-poll voter identity.
//
// Nothing in this package touches storage. Raw tokens never reach the
// database; callers hash them with HashForStorage first, so a database
// compromise reveals neither session identifiers nor creator tokens.
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"regexp"
)

const (
	// PollIDLength is the length in characters of generated poll IDs.
	PollIDLength = 16

	// CreatorTokenBytes is the entropy of a creator credential.
	CreatorTokenBytes = 32

	// SessionIDBytes is the entropy of an anonymous session identifier.
	SessionIDBytes = 32
)

// pollIDPattern accepts 8-32 URL-safe characters. Generated IDs are
// always 16 characters; the wider range keeps externally issued IDs
// addressable.
var pollIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{8,32}$`)

// Generate returns a URL-safe token with byteLength bytes of entropy
// from the operating system's CSPRNG, encoded as unpadded base64url.
func Generate(byteLength int) (string, error) {
	buf := make([]byte, byteLength)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", fmt.Errorf("error reading random bytes: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// NewPollID returns a fresh poll identifier: 16 URL-safe characters cut
// from a 16-byte random token. Collisions are not checked at insert
// time; at this entropy the probability is negligible.
func NewPollID() (string, error) {
	t, err := Generate(PollIDLength)
	if err != nil {
		return "", err
	}

	return t[:PollIDLength], nil
}

// NewCreatorToken returns a fresh creator credential. It is handed to
// the poll creator exactly once; the server stores only its hash.
func NewCreatorToken() (string, error) {
	return Generate(CreatorTokenBytes)
}

// NewSessionID returns a fresh anonymous session identifier for the
// long-lived voter cookie.
func NewSessionID() (string, error) {
	return Generate(SessionIDBytes)
}

// DeriveVoterToken derives the per-poll voter token for an anonymous
// session: the SHA-256 hex digest of "sessionID:pollID".
//
// The derivation is deterministic, so a repeat visit recognizes a prior
// vote, and poll-scoped, so stored hashes from different polls are not
// linkable to one another even for the same session. An empty session ID
// is legal input and derives an ordinary deterministic token.
func DeriveVoterToken(sessionID, pollID string) string {
	sum := sha256.Sum256([]byte(sessionID + ":" + pollID))
	return hex.EncodeToString(sum[:])
}

// HashForStorage returns the SHA-256 hex digest of a token. Every token
// goes through this before it is compared against or written to the
// database.
func HashForStorage(t string) string {
	sum := sha256.Sum256([]byte(t))
	return hex.EncodeToString(sum[:])
}

// ValidPollID reports whether id looks like a poll identifier: 8-32
// characters of [A-Za-z0-9_-]. Anything else is rejected before it
// reaches the protocol or a query.
func ValidPollID(id string) bool {
	return pollIDPattern.MatchString(id)
}
