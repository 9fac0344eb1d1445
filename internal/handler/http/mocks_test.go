package http

import (
	"context"
	"time"

	"github.com/pollivu/pollivu/internal/config"
	"github.com/pollivu/pollivu/internal/logger"
	"github.com/pollivu/pollivu/internal/metrics"
	"github.com/pollivu/pollivu/internal/service"
	"github.com/pollivu/pollivu/models"
)

// Function-field mocks for the service interfaces. Each test overrides just
// the methods it expects to be called; an unexpected call panics on the nil
// function field, which is exactly the failure we want.

type mockAuthService struct {
	registerUserFn func(ctx context.Context, input models.RegisterRequest) (models.User, error)
	loginFn        func(ctx context.Context, input models.LoginRequest) (models.User, error)
	createTokenFn  func(ctx context.Context, user models.User) (models.SessionToken, error)
	parseTokenFn   func(ctx context.Context, tokenString string) (models.SessionToken, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, input models.RegisterRequest) (models.User, error) {
	return m.registerUserFn(ctx, input)
}

func (m *mockAuthService) Login(ctx context.Context, input models.LoginRequest) (models.User, error) {
	return m.loginFn(ctx, input)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.SessionToken, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.SessionToken, error) {
	return m.parseTokenFn(ctx, tokenString)
}

type mockPollService struct {
	createPollFn   func(ctx context.Context, input models.CreatePollInput) (models.CreatePollResponse, error)
	getPollFn      func(ctx context.Context, pollID string) (models.Poll, error)
	listPollsFn    func(ctx context.Context, filter models.PollFilter) ([]models.Poll, error)
	editPollFn     func(ctx context.Context, pollID string, actor service.Actor, input models.EditPollInput) (models.Poll, error)
	addOptionFn    func(ctx context.Context, pollID string, actor service.Actor, optionText string) (models.PollOption, error)
	deleteOptionFn func(ctx context.Context, pollID string, actor service.Actor, optionID int64) error
	togglePublicFn func(ctx context.Context, pollID string, actor service.Actor) (bool, error)
	closePollFn    func(ctx context.Context, pollID string, actor service.Actor) error
	reopenPollFn   func(ctx context.Context, pollID string, actor service.Actor) error
	deletePollFn   func(ctx context.Context, pollID string, actor service.Actor) error
	isCreatorFn    func(poll models.Poll, presentedToken string) bool
}

func (m *mockPollService) CreatePoll(ctx context.Context, input models.CreatePollInput) (models.CreatePollResponse, error) {
	return m.createPollFn(ctx, input)
}

func (m *mockPollService) GetPoll(ctx context.Context, pollID string) (models.Poll, error) {
	return m.getPollFn(ctx, pollID)
}

func (m *mockPollService) ListPolls(ctx context.Context, filter models.PollFilter) ([]models.Poll, error) {
	return m.listPollsFn(ctx, filter)
}

func (m *mockPollService) EditPoll(ctx context.Context, pollID string, actor service.Actor, input models.EditPollInput) (models.Poll, error) {
	return m.editPollFn(ctx, pollID, actor, input)
}

func (m *mockPollService) AddOption(ctx context.Context, pollID string, actor service.Actor, optionText string) (models.PollOption, error) {
	return m.addOptionFn(ctx, pollID, actor, optionText)
}

func (m *mockPollService) DeleteOption(ctx context.Context, pollID string, actor service.Actor, optionID int64) error {
	return m.deleteOptionFn(ctx, pollID, actor, optionID)
}

func (m *mockPollService) TogglePublic(ctx context.Context, pollID string, actor service.Actor) (bool, error) {
	return m.togglePublicFn(ctx, pollID, actor)
}

func (m *mockPollService) ClosePoll(ctx context.Context, pollID string, actor service.Actor) error {
	return m.closePollFn(ctx, pollID, actor)
}

func (m *mockPollService) ReopenPoll(ctx context.Context, pollID string, actor service.Actor) error {
	return m.reopenPollFn(ctx, pollID, actor)
}

func (m *mockPollService) DeletePoll(ctx context.Context, pollID string, actor service.Actor) error {
	return m.deletePollFn(ctx, pollID, actor)
}

func (m *mockPollService) IsCreator(poll models.Poll, presentedToken string) bool {
	return m.isCreatorFn(poll, presentedToken)
}

type mockVotingService struct {
	castVoteFn func(ctx context.Context, pollID string, optionID int64, sessionID string) (models.VoteOutcome, error)
}

func (m *mockVotingService) CastVote(ctx context.Context, pollID string, optionID int64, sessionID string) (models.VoteOutcome, error) {
	return m.castVoteFn(ctx, pollID, optionID, sessionID)
}

type mockStatsService struct {
	viewFn      func(ctx context.Context, pollID, sessionID string, actor service.Actor) (models.PollView, error)
	resultsFn   func(ctx context.Context, pollID string) ([]models.OptionResult, error)
	liveStatsFn func(ctx context.Context, pollID string) (models.LiveStats, error)
	statusFn    func(ctx context.Context, pollID string) (models.PollStatus, error)
	analyticsFn func(ctx context.Context, pollID string, actor service.Actor) (models.PollAnalytics, error)
	exportCSVFn func(ctx context.Context, pollID string, actor service.Actor) ([]byte, error)
}

func (m *mockStatsService) View(ctx context.Context, pollID, sessionID string, actor service.Actor) (models.PollView, error) {
	return m.viewFn(ctx, pollID, sessionID, actor)
}

func (m *mockStatsService) Results(ctx context.Context, pollID string) ([]models.OptionResult, error) {
	return m.resultsFn(ctx, pollID)
}

func (m *mockStatsService) LiveStats(ctx context.Context, pollID string) (models.LiveStats, error) {
	return m.liveStatsFn(ctx, pollID)
}

func (m *mockStatsService) Status(ctx context.Context, pollID string) (models.PollStatus, error) {
	return m.statusFn(ctx, pollID)
}

func (m *mockStatsService) Analytics(ctx context.Context, pollID string, actor service.Actor) (models.PollAnalytics, error) {
	return m.analyticsFn(ctx, pollID, actor)
}

func (m *mockStatsService) ExportCSV(ctx context.Context, pollID string, actor service.Actor) ([]byte, error) {
	return m.exportCSVFn(ctx, pollID, actor)
}

// newTestHandler assembles a Handler around the given services with a fresh
// metrics registry and a no-op logger.
func newTestHandler(svcs *service.Services) *Handler {
	return NewHandler(svcs, metrics.New(), config.Server{}, models.NewAppBuildInfo("test-version", "", ""), logger.Nop())
}

// Shared fixtures.

const testPollID = "abcdef1234567890"

func testPoll() models.Poll {
	return models.Poll{
		ID:       testPollID,
		Question: "Tabs or spaces?",
		Options: []models.PollOption{
			{ID: 1, PollID: testPollID, OptionText: "Tabs", VoteCount: 3, DisplayOrder: 0},
			{ID: 2, PollID: testPollID, OptionText: "Spaces", VoteCount: 1, DisplayOrder: 1},
		},
		TotalVotes: 4,
		CreatedAt:  time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func testPollPtr() *models.Poll {
	p := testPoll()
	return &p
}

func int64Ptr(v int64) *int64 { return &v }
