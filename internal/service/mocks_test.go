package service

import (
	"context"
	"testing"
	"time"

	"github.com/pollivu/pollivu/internal/crypto"
	"github.com/pollivu/pollivu/internal/logger"
	"github.com/pollivu/pollivu/internal/token"
	"github.com/pollivu/pollivu/models"
)

// ─────────────────────────────────────────────
// Repository mocks
// ─────────────────────────────────────────────

type mockPollRepository struct {
	createPollFn         func(ctx context.Context, poll models.Poll) (models.Poll, error)
	getPollFn            func(ctx context.Context, pollID string) (models.Poll, error)
	listPollsFn          func(ctx context.Context, filter models.PollFilter) ([]models.Poll, error)
	updatePollSettingsFn func(ctx context.Context, poll models.Poll) error
	setClosedFn          func(ctx context.Context, pollID string, closed bool, expiresAt *time.Time) error
	setPublicFn          func(ctx context.Context, pollID string, public bool) error
	deletePollFn         func(ctx context.Context, pollID string) error
	addOptionFn          func(ctx context.Context, option models.PollOption) (models.PollOption, error)
	deleteOptionFn       func(ctx context.Context, pollID string, optionID int64) error
	deleteExpiredFn      func(ctx context.Context, now time.Time) (int64, error)
	countPollsFn         func(ctx context.Context, now time.Time) (models.PollCounts, error)
}

func (m *mockPollRepository) CreatePoll(ctx context.Context, poll models.Poll) (models.Poll, error) {
	if m.createPollFn != nil {
		return m.createPollFn(ctx, poll)
	}
	return poll, nil
}
func (m *mockPollRepository) GetPoll(ctx context.Context, pollID string) (models.Poll, error) {
	if m.getPollFn != nil {
		return m.getPollFn(ctx, pollID)
	}
	return models.Poll{}, nil
}
func (m *mockPollRepository) ListPolls(ctx context.Context, filter models.PollFilter) ([]models.Poll, error) {
	if m.listPollsFn != nil {
		return m.listPollsFn(ctx, filter)
	}
	return nil, nil
}
func (m *mockPollRepository) UpdatePollSettings(ctx context.Context, poll models.Poll) error {
	if m.updatePollSettingsFn != nil {
		return m.updatePollSettingsFn(ctx, poll)
	}
	return nil
}
func (m *mockPollRepository) SetClosed(ctx context.Context, pollID string, closed bool, expiresAt *time.Time) error {
	if m.setClosedFn != nil {
		return m.setClosedFn(ctx, pollID, closed, expiresAt)
	}
	return nil
}
func (m *mockPollRepository) SetPublic(ctx context.Context, pollID string, public bool) error {
	if m.setPublicFn != nil {
		return m.setPublicFn(ctx, pollID, public)
	}
	return nil
}
func (m *mockPollRepository) DeletePoll(ctx context.Context, pollID string) error {
	if m.deletePollFn != nil {
		return m.deletePollFn(ctx, pollID)
	}
	return nil
}
func (m *mockPollRepository) AddOption(ctx context.Context, option models.PollOption) (models.PollOption, error) {
	if m.addOptionFn != nil {
		return m.addOptionFn(ctx, option)
	}
	return option, nil
}
func (m *mockPollRepository) DeleteOption(ctx context.Context, pollID string, optionID int64) error {
	if m.deleteOptionFn != nil {
		return m.deleteOptionFn(ctx, pollID, optionID)
	}
	return nil
}
func (m *mockPollRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx, now)
	}
	return 0, nil
}
func (m *mockPollRepository) CountPolls(ctx context.Context, now time.Time) (models.PollCounts, error) {
	if m.countPollsFn != nil {
		return m.countPollsFn(ctx, now)
	}
	return models.PollCounts{}, nil
}

type mockVoteRepository struct {
	getVoteFn      func(ctx context.Context, pollID, voterTokenHash string) (models.Vote, error)
	castVoteFn     func(ctx context.Context, vote models.Vote) (models.Vote, error)
	changeVoteFn   func(ctx context.Context, vote models.Vote, previousOptionID int64) error
	voteTimelineFn func(ctx context.Context, pollID string) ([]models.TimelineBucket, error)
}

func (m *mockVoteRepository) GetVote(ctx context.Context, pollID, voterTokenHash string) (models.Vote, error) {
	if m.getVoteFn != nil {
		return m.getVoteFn(ctx, pollID, voterTokenHash)
	}
	return models.Vote{}, nil
}
func (m *mockVoteRepository) CastVote(ctx context.Context, vote models.Vote) (models.Vote, error) {
	if m.castVoteFn != nil {
		return m.castVoteFn(ctx, vote)
	}
	return vote, nil
}
func (m *mockVoteRepository) ChangeVote(ctx context.Context, vote models.Vote, previousOptionID int64) error {
	if m.changeVoteFn != nil {
		return m.changeVoteFn(ctx, vote, previousOptionID)
	}
	return nil
}
func (m *mockVoteRepository) VoteTimeline(ctx context.Context, pollID string) ([]models.TimelineBucket, error) {
	if m.voteTimelineFn != nil {
		return m.voteTimelineFn(ctx, pollID)
	}
	return nil, nil
}

type mockUserRepository struct {
	createUserFn      func(ctx context.Context, user models.User) (models.User, error)
	findUserByEmailFn func(ctx context.Context, email string) (models.User, error)
	updateLastLoginFn func(ctx context.Context, userID int64, at time.Time) error
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	user.UserID = 1
	return user, nil
}
func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findUserByEmailFn != nil {
		return m.findUserByEmailFn(ctx, email)
	}
	return models.User{}, nil
}
func (m *mockUserRepository) UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error {
	if m.updateLastLoginFn != nil {
		return m.updateLastLoginFn(ctx, userID, at)
	}
	return nil
}

// ─────────────────────────────────────────────
// Fixtures
// ─────────────────────────────────────────────

const (
	testPollID       = "abcdef1234567890"
	testCreatorToken = "creator-token-value"
	testSessionID    = "session-id-value"
)

// testPoll is an open, unexpired poll with two options and three votes.
func testPoll() models.Poll {
	return models.Poll{
		ID:                testPollID,
		Question:          "Favorite language?",
		CreatedAt:         time.Now().UTC().Add(-time.Hour),
		IsPublic:          true,
		ShareResultsChart: true,
		ShareResultsList:  true,
		CreatorTokenHash:  token.HashForStorage(testCreatorToken),
		TotalVotes:        3,
		Options: []models.PollOption{
			{ID: 1, PollID: testPollID, OptionText: "Go", VoteCount: 2, DisplayOrder: 0},
			{ID: 2, PollID: testPollID, OptionText: "Rust", VoteCount: 1, DisplayOrder: 1},
		},
	}
}

func testEngine(t *testing.T) crypto.Engine {
	t.Helper()

	engine, err := crypto.NewEngine("test-secret-key", "test-salt", crypto.NewKeyCache(4), logger.Nop())
	if err != nil {
		t.Fatalf("engine construction failed: %v", err)
	}
	return engine
}

func int64Ptr(v int64) *int64 {
	return &v
}
