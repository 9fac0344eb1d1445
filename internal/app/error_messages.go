// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Pollivu Authors

// Package app contains shared application-layer constants used across the
// pollivu server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded
	// as JSON.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgInvalidDataProvided is returned when a request decodes but fails
	// basic validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidEmailPassword is returned when the supplied email/password
	// combination does not match any account. Unknown email and wrong
	// password read identically on purpose.
	MsgInvalidEmailPassword = "invalid email or password"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgPollNotFound is returned when a request targets a poll ID that
	// does not exist.
	MsgPollNotFound = "poll not found"

	// MsgNotAuthorized is returned when a poll management call presents
	// neither a matching creator token nor the owning account.
	MsgNotAuthorized = "not authorized to manage this poll"

	// MsgNoUserIDProvided is returned when a handler requires an account ID
	// (extracted from the JWT claim) but none is present in the request
	// context.
	MsgNoUserIDProvided = "no user ID provided"

	// MsgNoSessionProvided is returned when a vote arrives without the
	// anonymous session the middleware normally issues.
	MsgNoSessionProvided = "no voter session provided"
)
