package service

import "errors"

// Sentinel errors returned by the service layer. The HTTP layer maps them to
// status codes with [errors.Is], and their texts double as the user-visible
// failure messages, so they state the reason without internal detail.
var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials covers every login failure: unknown email,
	// wrong password, disabled account. The cases are deliberately
	// indistinguishable so that the endpoint does not confirm whether an
	// email is registered.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrTokenCreationFailed     = errors.New("token creation ended with error")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrInvalidPollID rejects identifiers that do not match the poll ID
	// format before they ever reach a query.
	ErrInvalidPollID = errors.New("invalid poll ID format")

	// ErrPollInactive is returned when a vote targets a closed or expired
	// poll. Both states read the same from the outside.
	ErrPollInactive = errors.New("poll is no longer active")

	// ErrInvalidOption is returned when the chosen option does not belong
	// to the poll being voted on.
	ErrInvalidOption = errors.New("invalid option")

	// ErrAlreadyVoted is returned when the voter already holds a ballot and
	// the poll does not allow vote changes.
	ErrAlreadyVoted = errors.New("you have already voted")

	// ErrNotAuthorized is returned when an administrative call presents
	// neither a matching creator token nor the owning account.
	ErrNotAuthorized = errors.New("not authorized to manage this poll")

	// ErrTooManyOptions rejects an option append that would exceed the
	// per-poll maximum.
	ErrTooManyOptions = errors.New("maximum number of options reached")

	// ErrDuplicateOption rejects an option whose label already exists on
	// the poll, compared case-insensitively.
	ErrDuplicateOption = errors.New("option already exists")
)
