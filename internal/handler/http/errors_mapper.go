package http

import (
	"errors"
	"net/http"

	"github.com/pollivu/pollivu/internal/crypto"
	"github.com/pollivu/pollivu/internal/service"
	"github.com/pollivu/pollivu/internal/store"
	"github.com/pollivu/pollivu/internal/validators"
)

// errorStatusMap translates service and storage sentinels into HTTP status
// codes. Anything not listed here is an internal failure: logged in full
// server-side, surfaced as a bare 500 with no detail.
var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrInvalidPollID:           http.StatusBadRequest,
	service.ErrPollInactive:            http.StatusForbidden,
	service.ErrInvalidOption:           http.StatusBadRequest,
	service.ErrAlreadyVoted:            http.StatusConflict,
	service.ErrNotAuthorized:           http.StatusForbidden,
	service.ErrTooManyOptions:          http.StatusBadRequest,
	service.ErrDuplicateOption:         http.StatusConflict,

	validators.ErrEmptyQuestion:     http.StatusBadRequest,
	validators.ErrQuestionTooLong:   http.StatusBadRequest,
	validators.ErrTooFewOptions:     http.StatusBadRequest,
	validators.ErrTooManyOptions:    http.StatusBadRequest,
	validators.ErrEmptyOption:       http.StatusBadRequest,
	validators.ErrOptionTooLong:     http.StatusBadRequest,
	validators.ErrDuplicateOptions:  http.StatusBadRequest,
	validators.ErrInvalidExpiration: http.StatusBadRequest,

	store.ErrEmailAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:     http.StatusNotFound,
	store.ErrPollNotFound:       http.StatusNotFound,
	store.ErrOptionNotFound:     http.StatusNotFound,
	store.ErrVoteNotFound:       http.StatusNotFound,
	store.ErrAlreadyVoted:       http.StatusConflict,
	store.ErrTooFewOptions:      http.StatusBadRequest,

	// Tamper or wrong key: deliberately opaque to the caller.
	crypto.ErrDecryptionFailed: http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError renders the user-visible failure text for err: the
// sentinel's own message for the expected 4xx outcomes, the bare status
// text otherwise, so internal detail never leaks into a response body.
func messageFromError(err error, status int) string {
	if status >= http.StatusInternalServerError {
		return http.StatusText(status)
	}

	for target := range errorStatusMap {
		if errors.Is(err, target) {
			return target.Error()
		}
	}

	return http.StatusText(status)
}
