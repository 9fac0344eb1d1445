package service

import (
	"context"

	"github.com/pollivu/pollivu/models"
)

// Actor identifies who is performing an administrative call: an anonymous
// creator presenting the raw creator token, an authenticated account, or
// both. The zero value is an unprivileged caller.
type Actor struct {
	// CreatorToken is the raw credential handed out at poll creation,
	// as presented by the caller. Empty when none was presented.
	CreatorToken string

	// UserID is the authenticated account, nil for anonymous callers.
	UserID *int64
}

// PollService manages the poll lifecycle: creation, settings, option
// management, and the creator-or-owner administrative actions.
type PollService interface {
	// CreatePoll creates a poll with its options and returns it together
	// with the raw creator token and the shareable URL. The token appears
	// in this response exactly once; only its hash is stored.
	CreatePoll(ctx context.Context, input models.CreatePollInput) (models.CreatePollResponse, error)

	// GetPoll loads a poll with its options, decrypting stored content
	// when the poll is encrypted at rest.
	GetPoll(ctx context.Context, pollID string) (models.Poll, error)

	// ListPolls returns polls matching the filter, newest first.
	ListPolls(ctx context.Context, filter models.PollFilter) ([]models.Poll, error)

	// EditPoll updates question, flags, sharing preferences and the
	// expiration deadline. Owner only.
	EditPoll(ctx context.Context, pollID string, actor Actor, input models.EditPollInput) (models.Poll, error)

	// AddOption appends a choice with the next display order. Owner only.
	AddOption(ctx context.Context, pollID string, actor Actor, optionText string) (models.PollOption, error)

	// DeleteOption removes a choice and its votes, deducting its count
	// from the poll total. Owner only.
	DeleteOption(ctx context.Context, pollID string, actor Actor, optionID int64) error

	// TogglePublic flips the public listing flag and returns the new
	// state. Owner only.
	TogglePublic(ctx context.Context, pollID string, actor Actor) (bool, error)

	// ClosePoll stops the poll from accepting votes. Creator or owner.
	ClosePoll(ctx context.Context, pollID string, actor Actor) error

	// ReopenPoll resumes voting; when the poll already expired, the
	// deadline is cleared so the poll actually becomes active again.
	// Creator or owner.
	ReopenPoll(ctx context.Context, pollID string, actor Actor) error

	// DeletePoll removes the poll with its options and votes. Creator
	// or owner.
	DeletePoll(ctx context.Context, pollID string, actor Actor) error

	// IsCreator reports whether presentedToken is the poll's creator
	// credential.
	IsCreator(poll models.Poll, presentedToken string) bool
}

// VotingService is the vote-casting protocol.
type VotingService interface {
	// CastVote records, changes, or refuses a ballot for the anonymous
	// session on the poll and returns the updated per-option results.
	CastVote(ctx context.Context, pollID string, optionID int64, sessionID string) (models.VoteOutcome, error)
}

// StatsService serves the read side: per-visitor poll views, live results,
// analytics and exports.
type StatsService interface {
	// View returns the poll as seen by one visitor, including whether
	// their anonymous session already voted and for which option.
	View(ctx context.Context, pollID, sessionID string, actor Actor) (models.PollView, error)

	// Results returns per-option counts and percentages.
	Results(ctx context.Context, pollID string) ([]models.OptionResult, error)

	// LiveStats returns the periodic payload for live result pages.
	LiveStats(ctx context.Context, pollID string) (models.LiveStats, error)

	// Status returns the lightweight activity snapshot of a poll.
	Status(ctx context.Context, pollID string) (models.PollStatus, error)

	// Analytics returns the hourly vote timeline and word-cloud weights.
	// Open to everyone while insights are shared, otherwise restricted
	// to the creator or owner.
	Analytics(ctx context.Context, pollID string, actor Actor) (models.PollAnalytics, error)

	// ExportCSV renders the poll results as a CSV document. Creator or
	// owner only.
	ExportCSV(ctx context.Context, pollID string, actor Actor) ([]byte, error)
}

// AuthService manages optional creator accounts and their session tokens.
type AuthService interface {
	RegisterUser(ctx context.Context, input models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, input models.LoginRequest) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.SessionToken, error)
	ParseToken(ctx context.Context, tokenString string) (models.SessionToken, error)
}

// PollServiceWrapper defines middleware composition for PollService.
// Implementations wrap an existing PollService to add behavior such as
// validating or logging.
type PollServiceWrapper interface {
	Wrap(PollService) PollService // returns a decorated PollService applying additional behavior
}
