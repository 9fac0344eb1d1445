package http

import (
	"net/http"

	"github.com/pollivu/pollivu/internal/logger"
	"github.com/pollivu/pollivu/internal/service"
	"github.com/pollivu/pollivu/internal/utils"
)

// creatorTokenHeader carries the anonymous creator credential. The server
// never stores the raw value; it is hashed and compared per request.
const creatorTokenHeader = "X-Creator-Token"

// actorFromRequest assembles the authorization material presented with a
// request: the creator token header (if any) and the authenticated account
// ID placed in the context by the auth middleware (if any). Either, both or
// neither may be present; the service layer decides what each operation
// requires.
func actorFromRequest(r *http.Request) service.Actor {
	actor := service.Actor{
		CreatorToken: r.Header.Get(creatorTokenHeader),
	}

	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		actor.UserID = &userID
	}

	return actor
}

// respondServiceError maps a service-layer error to its HTTP status and
// user-visible message. The full error is logged with the request-scoped
// logger; the response body carries only the sentinel text (4xx) or the
// bare status text (5xx), never internal detail.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, logMsg string) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Msg(logMsg)
	} else {
		log.Warn().Err(err).Msg(logMsg)
	}

	http.Error(w, messageFromError(err, status), status)
}
