// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Pollivu Authors

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pollivu/pollivu/internal/config"
	"github.com/pollivu/pollivu/internal/logger"
	"github.com/pollivu/pollivu/internal/metrics"
	"github.com/pollivu/pollivu/internal/service"
	"github.com/pollivu/pollivu/internal/utils"
	"github.com/pollivu/pollivu/models"
)

func newSessionHandler(cookieSecure bool) *Handler {
	return NewHandler(
		&service.Services{},
		metrics.New(),
		config.Server{CookieSecure: cookieSecure},
		models.NewAppBuildInfo("test", "", ""),
		logger.Nop(),
	)
}

func sessionCookieFrom(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	return nil
}

func TestWithSession_IssuesCookieOnFirstVisit(t *testing.T) {
	h := newSessionHandler(false)

	var capturedSessionID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedSessionID, _ = utils.GetSessionIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := injectNopLogger(httptest.NewRequest(http.MethodGet, "/api/poll/x", nil))
	rr := httptest.NewRecorder()
	h.withSession(next).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	cookie := sessionCookieFrom(rr)
	require.NotNil(t, cookie, "first visit must set the session cookie")
	assert.Equal(t, capturedSessionID, cookie.Value, "context and cookie must carry the same identifier")
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, sessionCookieMaxAge, cookie.MaxAge)
	assert.False(t, cookie.Secure)
}

func TestWithSession_SecureFlagFollowsConfig(t *testing.T) {
	h := newSessionHandler(true)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := injectNopLogger(httptest.NewRequest(http.MethodGet, "/api/poll/x", nil))
	rr := httptest.NewRecorder()
	h.withSession(next).ServeHTTP(rr, req)

	cookie := sessionCookieFrom(rr)
	require.NotNil(t, cookie)
	assert.True(t, cookie.Secure)
}

func TestWithSession_ReusesExistingCookie(t *testing.T) {
	h := newSessionHandler(false)

	var capturedSessionID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedSessionID, _ = utils.GetSessionIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := injectNopLogger(httptest.NewRequest(http.MethodGet, "/api/poll/x", nil))
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "returning-visitor"})
	rr := httptest.NewRecorder()
	h.withSession(next).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "returning-visitor", capturedSessionID)
	assert.Nil(t, sessionCookieFrom(rr), "an existing cookie must not be reissued")
}

func TestWithSession_UniquePerVisitor(t *testing.T) {
	h := newSessionHandler(false)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	middleware := h.withSession(next)

	seen := make(map[string]struct{})
	for i := 0; i < 20; i++ {
		req := injectNopLogger(httptest.NewRequest(http.MethodGet, "/api/poll/x", nil))
		rr := httptest.NewRecorder()
		middleware.ServeHTTP(rr, req)

		cookie := sessionCookieFrom(rr)
		require.NotNil(t, cookie)

		_, duplicate := seen[cookie.Value]
		assert.False(t, duplicate, "session identifiers must be unique")
		seen[cookie.Value] = struct{}{}
	}
}
