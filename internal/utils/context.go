// Package utils provides small helpers shared across the application:
// type-safe context keys, JWT generation and validation, JSON response
// writing, and trace-ID generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys. A dedicated type
// prevents collisions with other packages storing string-keyed values
// in the same context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey stores the authenticated account's ID in the request
// context. Set by the auth middleware after JWT validation; absent for
// anonymous requests.
var UserIDCtxKey = contextKey("userID")

// SessionIDCtxKey stores the anonymous voter session identifier in the
// request context. Set by the session middleware from the long-lived
// session cookie; present on every request, authenticated or not.
var SessionIDCtxKey = contextKey("sessionID")

// GetUserIDFromContext retrieves the authenticated account's ID.
//
// ok is false when the request is anonymous or the stored value has an
// unexpected type.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// GetSessionIDFromContext retrieves the anonymous session identifier
// placed in the context by the session middleware.
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionIDCtxKey).(string)
	return sessionID, ok
}
