package store

import (
	"context"
	"time"

	"github.com/pollivu/pollivu/models"
)

// PollRepository persists polls and their options.
type PollRepository interface {
	// CreatePoll inserts the poll and all its options in one transaction
	// and returns the poll with server-assigned option IDs.
	CreatePoll(ctx context.Context, poll models.Poll) (models.Poll, error)

	// GetPoll loads a poll with its options ordered by display order.
	// Returns ErrPollNotFound when no such poll exists.
	GetPoll(ctx context.Context, pollID string) (models.Poll, error)

	// ListPolls returns polls matching the filter, newest first, without
	// their options.
	ListPolls(ctx context.Context, filter models.PollFilter) ([]models.Poll, error)

	// UpdatePollSettings persists question, flags, share preferences and
	// the expiration deadline.
	UpdatePollSettings(ctx context.Context, poll models.Poll) error

	// SetClosed updates the closed flag together with the expiration
	// deadline. Reopening an expired poll passes a nil deadline to clear it.
	SetClosed(ctx context.Context, pollID string, closed bool, expiresAt *time.Time) error

	// SetPublic updates the public listing flag.
	SetPublic(ctx context.Context, pollID string, public bool) error

	// DeletePoll removes the poll; options and votes go with it.
	DeletePoll(ctx context.Context, pollID string) error

	// AddOption appends one option and returns it with its assigned ID.
	AddOption(ctx context.Context, option models.PollOption) (models.PollOption, error)

	// DeleteOption removes an option, its votes, and deducts its vote
	// count from the poll total, floored at zero.
	DeleteOption(ctx context.Context, pollID string, optionID int64) error

	// DeleteExpired removes every poll whose deadline passed before now
	// and reports how many were swept.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)

	// CountPolls reports total and currently active poll counts.
	CountPolls(ctx context.Context, now time.Time) (models.PollCounts, error)
}

// VoteRepository persists ballots and keeps the denormalized counters on
// poll_options and polls in step with them.
type VoteRepository interface {
	// GetVote returns the ballot held by the voter on the poll.
	// Returns ErrVoteNotFound when the voter has not voted.
	GetVote(ctx context.Context, pollID, voterTokenHash string) (models.Vote, error)

	// CastVote records a first ballot: the vote row, the option counter
	// and the poll total all change in one transaction. A duplicate voter
	// token on the poll yields ErrAlreadyVoted.
	CastVote(ctx context.Context, vote models.Vote) (models.Vote, error)

	// ChangeVote moves an existing ballot to another option: the old
	// option counter drops (floored at zero), the new one rises, and the
	// poll total stays untouched, all in one transaction.
	ChangeVote(ctx context.Context, vote models.Vote, previousOptionID int64) error

	// VoteTimeline buckets the poll's ballots per hour of submission.
	VoteTimeline(ctx context.Context, pollID string) ([]models.TimelineBucket, error)
}

// UserRepository persists optional creator accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error
}
