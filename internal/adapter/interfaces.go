// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Pollivu Authors

// Package adapter provides transport-layer abstractions for communicating with
// the Pollivu server.
//
// The primary abstraction is [PollAPI], which decouples the pollctl command
// layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPPollAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrConflict] for 409, [ErrForbidden] for 403).
package adapter

import (
	"context"

	"github.com/pollivu/pollivu/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/poll_api_mock.go -package=mock

// PollAPI defines transport-agnostic communication with the Pollivu server.
// Implementations are responsible for serialisation, voter-session cookie
// management, creator-token header management, and mapping transport-level
// errors to the sentinel values defined in this package.
type PollAPI interface {
	// SetSessionID stores the anonymous voter session identifier that will be
	// sent as the session cookie on all subsequent requests. The server
	// derives the per-poll voter token from it, so the same session must be
	// reused across invocations for vote recognition to work.
	SetSessionID(id string)

	// SessionID returns the session identifier currently held by the adapter,
	// or an empty string if none has been set yet.
	SessionID() string

	// CreatePoll sends a poll-creation request to the server. The response is
	// the only moment the raw creator token is ever visible; callers must
	// persist it immediately or lose creator access to the poll.
	CreatePoll(ctx context.Context, input models.CreatePollInput) (models.CreatePollResponse, error)

	// GetPoll fetches one poll together with this session's voting state.
	GetPoll(ctx context.Context, pollID string) (models.PollView, error)

	// Vote casts or changes a ballot on the poll using the current session.
	// Returns [ErrConflict] (wrapped) when the poll forbids vote changes and
	// this session already holds a ballot.
	Vote(ctx context.Context, pollID string, optionID int64) (models.VoteOutcome, error)

	// Results fetches the per-option tallies of a poll.
	Results(ctx context.Context, pollID string) ([]models.OptionResult, error)

	// LiveStats fetches the compact payload live result pages poll on an
	// interval: totals, activity flag and per-option tallies in one call.
	LiveStats(ctx context.Context, pollID string) (models.LiveStats, error)

	// Status fetches the lightweight open/closed/expired state of a poll.
	Status(ctx context.Context, pollID string) (models.PollStatus, error)

	// Close stops voting on the poll. Requires the creator token issued at
	// creation time; returns [ErrForbidden] (wrapped) when it does not match.
	Close(ctx context.Context, pollID, creatorToken string) error

	// Reopen resumes voting on a closed poll. Requires the creator token.
	Reopen(ctx context.Context, pollID, creatorToken string) error

	// Delete removes the poll with its options and votes. Requires the
	// creator token.
	Delete(ctx context.Context, pollID, creatorToken string) error

	// ServerVersion fetches the server build information.
	ServerVersion(ctx context.Context) (models.ServerVersion, error)
}
