// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Pollivu Authors

package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestGetUserIDFromContext_Success(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserIDCtxKey, int64(42))

	userID, ok := GetUserIDFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if userID != 42 {
		t.Errorf("expected userID=42, got %d", userID)
	}
}

func TestGetUserIDFromContext_Missing(t *testing.T) {
	userID, ok := GetUserIDFromContext(context.Background())

	if ok {
		t.Fatal("expected ok=false for empty context")
	}
	if userID != 0 {
		t.Errorf("expected zero userID, got %d", userID)
	}
}

func TestGetUserIDFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserIDCtxKey, "not-an-int")

	if _, ok := GetUserIDFromContext(ctx); ok {
		t.Fatal("expected ok=false for mistyped value")
	}
}

func TestGetSessionIDFromContext_Success(t *testing.T) {
	ctx := context.WithValue(context.Background(), SessionIDCtxKey, "anon-session-token")

	sessionID, ok := GetSessionIDFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if sessionID != "anon-session-token" {
		t.Errorf("expected session id 'anon-session-token', got %q", sessionID)
	}
}

func TestGetSessionIDFromContext_Missing(t *testing.T) {
	if _, ok := GetSessionIDFromContext(context.Background()); ok {
		t.Fatal("expected ok=false for empty context")
	}
}
