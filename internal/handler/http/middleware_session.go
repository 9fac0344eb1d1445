package http

import (
	"context"
	"net/http"

	"github.com/pollivu/pollivu/internal/logger"
	"github.com/pollivu/pollivu/internal/token"
	"github.com/pollivu/pollivu/internal/utils"
)

// sessionCookieName carries the anonymous voter session identifier. The
// cookie value itself is never stored server-side; votes record only a
// hash derived from it per poll.
const sessionCookieName = "pollivu_session"

// sessionCookieMaxAge keeps the anonymous identity stable for a year so a
// returning voter is still recognized as having voted.
const sessionCookieMaxAge = 365 * 24 * 60 * 60

// withSession guarantees every poll request carries an anonymous session
// identifier. An existing cookie is reused as-is; first-time visitors get
// a fresh random identifier set on the response. The identifier is placed
// in the request context under [utils.SessionIDCtxKey].
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string

		if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
			sessionID = cookie.Value
		} else {
			generated, err := token.NewSessionID()
			if err != nil {
				logger.FromRequest(r).Err(err).Msg("session identifier generation failed")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			sessionID = generated

			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookieName,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   sessionCookieMaxAge,
				HttpOnly: true,
				Secure:   h.cfg.CookieSecure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), utils.SessionIDCtxKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
