package models

import "time"

// CreatePollInput is the explicit, typed poll-creation boundary between
// the transport layer and the voting core. Every field the original web
// form carried is a named field here; nothing is read from loose maps.
type CreatePollInput struct {
	// Question is the poll question, 1-500 characters after
	// sanitization.
	Question string `json:"question"`

	// Options are the choice labels, 2-10 entries of 1-200 characters,
	// duplicates rejected case-insensitively.
	Options []string `json:"options"`

	// Expiration selects the poll lifetime: one of "1h", "6h", "24h",
	// "7d", "30d" or "never".
	Expiration string `json:"expiration"`

	AllowVoteChange         bool `json:"allow_vote_change"`
	ShowResultsBeforeVoting bool `json:"show_results_before_voting"`
	IsPublic                bool `json:"is_public"`

	// Encrypt stores the question and option labels encrypted at rest.
	Encrypt bool `json:"encrypt"`

	// OwnerID is set by the handler from the authenticated session,
	// nil for anonymous creators. Never taken from the request body.
	OwnerID *int64 `json:"-"`
}

// EditPollInput updates poll settings. Owner-only operation.
type EditPollInput struct {
	Question                string `json:"question"`
	AllowVoteChange         bool   `json:"allow_vote_change"`
	ShowResultsBeforeVoting bool   `json:"show_results_before_voting"`
	IsPublic                bool   `json:"is_public"`
	ShareResultsChart       bool   `json:"share_results_chart"`
	ShareResultsList        bool   `json:"share_results_list"`
	ShareInsights           bool   `json:"share_insights"`

	// Expiration accepts the creation choices plus "current", which
	// keeps the existing deadline untouched.
	Expiration string `json:"expiration"`
}

// VoteRequest selects an option on a poll. The voter's identity comes
// from the anonymous session cookie, never from the body.
type VoteRequest struct {
	OptionID int64 `json:"option_id"`
}

// AddOptionRequest appends a choice to an existing poll.
type AddOptionRequest struct {
	OptionText string `json:"option_text"`
}

// RegisterRequest creates an account.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
}

// LoginRequest authenticates an account.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PollFilter narrows poll listing queries. Zero-valued fields are ignored,
// so the empty filter lists everything.
type PollFilter struct {
	// OwnerID restricts the listing to polls owned by this account.
	OwnerID *int64

	// PublicOnly keeps only polls flagged public.
	PublicOnly bool

	// ActiveAt keeps only polls open and unexpired at the given instant.
	ActiveAt *time.Time

	// Limit and Offset page through the result set. A zero Limit means
	// no limit.
	Limit  uint64
	Offset uint64
}

// PollCounts summarizes the poll table for monitoring.
type PollCounts struct {
	Total  int64
	Active int64
}
