// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Pollivu Authors

package models

import (
	"math"
	"time"
)

// Poll is the central aggregate of the voting domain. A poll owns its
// options and votes; deleting a poll cascades to both.
//
// The identifier is an opaque URL-safe string generated from a CSPRNG at
// creation time. It doubles as the share link, so its unguessability is
// the only access control for unlisted polls.
//
// Closed and expired are distinct: IsClosed is an explicit, reversible
// creator action stored in the database, while expiration is derived from
// ExpiresAt against the current clock on every access and is never stored.
type Poll struct {
	// ID is the URL-safe poll identifier (16 characters at creation,
	// 8-32 accepted on lookup).
	ID string `json:"id"`

	// Question is the poll question in plaintext. Empty when the poll
	// was created with at-rest encryption enabled.
	Question string `json:"question"`

	// QuestionEncrypted holds the encrypted question blob when
	// IsEncrypted is set, empty otherwise.
	QuestionEncrypted string `json:"-"`

	// CreatedAt is the poll creation timestamp (UTC).
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is the optional expiration deadline. Nil means the poll
	// never expires.
	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	// AllowVoteChange permits a voter to reassign their vote to another
	// option while the poll is active.
	AllowVoteChange bool `json:"allow_vote_change"`

	// ShowResultsBeforeVoting lets visitors see results without having
	// voted first.
	ShowResultsBeforeVoting bool `json:"show_results_before_voting"`

	// IsClosed marks the poll as closed by its creator.
	IsClosed bool `json:"is_closed"`

	// IsPublic marks the poll as listable. Private polls are unlisted,
	// not hidden: anyone holding the ID can still view and vote.
	IsPublic bool `json:"is_public"`

	// IsEncrypted indicates the question and options are stored
	// encrypted at rest.
	IsEncrypted bool `json:"is_encrypted"`

	// ShareResultsChart and ShareResultsList control which result
	// representations are offered to non-creators.
	ShareResultsChart bool `json:"share_results_chart"`
	ShareResultsList  bool `json:"share_results_list"`

	// ShareInsights controls access to the analytics endpoint for
	// non-creators. ShareUnset (legacy polls) behaves as shared.
	ShareInsights SharePref `json:"share_insights"`

	// CreatorTokenHash is the SHA-256 hex digest of the creator token.
	// The raw token is handed out once at creation and never stored.
	CreatorTokenHash string `json:"-"`

	// TotalVotes is the aggregate vote counter. Always equals the sum
	// of the option counters.
	TotalVotes int64 `json:"total_votes"`

	// OwnerID is the account that created the poll, nil for polls
	// created anonymously.
	OwnerID *int64 `json:"-"`

	// Options are the poll's choices ordered by display order. Loaded
	// by the persistence layer, not always populated.
	Options []PollOption `json:"options,omitempty"`
}

// TableName returns the name of the database table
// associated with the Poll model.
func (p Poll) TableName() string {
	return "polls"
}

// IsExpired reports whether the poll's deadline has passed at the given
// instant. Polls without a deadline never expire.
func (p *Poll) IsExpired(now time.Time) bool {
	if p.ExpiresAt == nil {
		return false
	}
	return now.After(*p.ExpiresAt)
}

// IsActive reports whether the poll accepts votes at the given instant:
// not closed and not expired.
func (p *Poll) IsActive(now time.Time) bool {
	return !p.IsClosed && !p.IsExpired(now)
}

// OptionByID returns the option with the given ID. The second return value
// is false when no such option belongs to this poll.
func (p *Poll) OptionByID(id int64) (PollOption, bool) {
	for _, opt := range p.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return PollOption{}, false
}

// PollOption is a single choice belonging to exactly one poll.
type PollOption struct {
	ID     int64  `json:"id"`
	PollID string `json:"-"`

	// OptionText is the choice label in plaintext, empty when stored
	// encrypted.
	OptionText string `json:"option_text"`

	// OptionEncrypted holds the encrypted label for encrypted polls.
	OptionEncrypted string `json:"-"`

	// VoteCount never goes below zero, even under concurrent
	// vote-change races.
	VoteCount int64 `json:"vote_count"`

	// DisplayOrder is an ordering hint. Not required to be contiguous.
	DisplayOrder int `json:"display_order"`
}

// TableName returns the name of the database table
// associated with the PollOption model.
func (o PollOption) TableName() string {
	return "poll_options"
}

// Percentage returns the option's share of the given vote total, rounded
// to one decimal place. Zero totals yield zero.
func (o *PollOption) Percentage(totalVotes int64) float64 {
	if totalVotes == 0 {
		return 0
	}
	return math.Round(float64(o.VoteCount)/float64(totalVotes)*1000) / 10
}
