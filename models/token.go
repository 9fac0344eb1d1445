package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// SessionToken is the bearer credential issued to a logged-in account.
//
// It embeds [jwt.Token] for signing and parsing and [jwt.RegisteredClaims]
// for standard claim access. The account ID travels in the "sub" claim as
// a base-10 string; UserID caches the parsed value so handlers do not
// re-parse it on every authorization check.
//
// Note that this credential authenticates accounts only. Anonymous voter
// identity and anonymous creator rights use the token engine's derived
// and random tokens instead and never go through JWT.
type SessionToken struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS form (header.payload.signature)
	// sent in the Authorization header.
	SignedString string `json:"-"`

	// UserID is the account identifier parsed from the "sub" claim.
	UserID int64 `json:"-"`
}

// GetUserID extracts the account identifier from the "sub" claim and
// parses it as a base-10 int64.
func (t *SessionToken) GetUserID() (int64, error) {
	sub, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting user ID from token: %w", err)
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting user ID %q to int64: %w", sub, err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *SessionToken) String() string {
	return t.SignedString
}
