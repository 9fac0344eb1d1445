package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pollivu/pollivu/internal/validators"
	"github.com/pollivu/pollivu/models"
)

// ─────────────────────────────────────────────
// Mocks
// ─────────────────────────────────────────────

type mockInnerPollService struct {
	PollService

	createPollFn func(ctx context.Context, input models.CreatePollInput) (models.CreatePollResponse, error)
	editPollFn   func(ctx context.Context, pollID string, actor Actor, input models.EditPollInput) (models.Poll, error)
	addOptionFn  func(ctx context.Context, pollID string, actor Actor, optionText string) (models.PollOption, error)
}

func (m *mockInnerPollService) CreatePoll(ctx context.Context, input models.CreatePollInput) (models.CreatePollResponse, error) {
	if m.createPollFn != nil {
		return m.createPollFn(ctx, input)
	}
	return models.CreatePollResponse{}, nil
}
func (m *mockInnerPollService) EditPoll(ctx context.Context, pollID string, actor Actor, input models.EditPollInput) (models.Poll, error) {
	if m.editPollFn != nil {
		return m.editPollFn(ctx, pollID, actor, input)
	}
	return models.Poll{}, nil
}
func (m *mockInnerPollService) AddOption(ctx context.Context, pollID string, actor Actor, optionText string) (models.PollOption, error) {
	if m.addOptionFn != nil {
		return m.addOptionFn(ctx, pollID, actor, optionText)
	}
	return models.PollOption{}, nil
}

type mockValidator struct {
	validateFn func(ctx context.Context, i any, fields ...string) error
}

func (m *mockValidator) Validate(ctx context.Context, i any, fields ...string) error {
	if m.validateFn != nil {
		return m.validateFn(ctx, i, fields...)
	}
	return nil
}

// ─────────────────────────────────────────────
// CreatePoll
// ─────────────────────────────────────────────

func TestValidation_CreatePoll_SanitizesBeforeInner(t *testing.T) {
	var got models.CreatePollInput
	inner := &mockInnerPollService{
		createPollFn: func(ctx context.Context, input models.CreatePollInput) (models.CreatePollResponse, error) {
			got = input
			return models.CreatePollResponse{}, nil
		},
	}
	svc := NewPollValidationService().Wrap(inner)

	_, err := svc.CreatePoll(context.Background(), models.CreatePollInput{
		Question:   "  What's   for\nlunch?  ",
		Options:    []string{" Pizza ", "", "  ", "Sushi\tplease"},
		Expiration: "never",
	})
	require.NoError(t, err)

	assert.Equal(t, "What's for lunch?", got.Question)
	assert.Equal(t, []string{"Pizza", "Sushi please"}, got.Options)
}

func TestValidation_CreatePoll_RejectsInvalidInput(t *testing.T) {
	inner := &mockInnerPollService{
		createPollFn: func(ctx context.Context, input models.CreatePollInput) (models.CreatePollResponse, error) {
			t.Fatal("inner service must not run for invalid input")
			return models.CreatePollResponse{}, nil
		},
	}
	svc := NewPollValidationService().Wrap(inner)

	// One option left after blanks are dropped.
	_, err := svc.CreatePoll(context.Background(), models.CreatePollInput{
		Question:   "Q?",
		Options:    []string{"A", "   "},
		Expiration: "never",
	})
	assert.ErrorIs(t, err, validators.ErrTooFewOptions)

	_, err = svc.CreatePoll(context.Background(), models.CreatePollInput{
		Question:   "",
		Options:    []string{"A", "B"},
		Expiration: "never",
	})
	assert.ErrorIs(t, err, validators.ErrEmptyQuestion)

	_, err = svc.CreatePoll(context.Background(), models.CreatePollInput{
		Question:   "Q?",
		Options:    []string{"A", "B"},
		Expiration: "eventually",
	})
	assert.ErrorIs(t, err, validators.ErrInvalidExpiration)
}

// ─────────────────────────────────────────────
// EditPoll / AddOption
// ─────────────────────────────────────────────

func TestValidation_EditPoll_AllowsCurrentExpiration(t *testing.T) {
	inner := &mockInnerPollService{
		editPollFn: func(ctx context.Context, pollID string, actor Actor, input models.EditPollInput) (models.Poll, error) {
			return models.Poll{ID: pollID, Question: input.Question}, nil
		},
	}
	svc := NewPollValidationService().Wrap(inner)

	poll, err := svc.EditPoll(context.Background(), testPollID, ownerActor(1), models.EditPollInput{
		Question:   "  Edited?  ",
		Expiration: models.ExpirationKeepCurrent,
	})
	require.NoError(t, err)
	assert.Equal(t, "Edited?", poll.Question)
}

func TestValidation_AddOption_RejectsOverlongLabel(t *testing.T) {
	svc := NewPollValidationService().Wrap(&mockInnerPollService{})

	_, err := svc.AddOption(context.Background(), testPollID, ownerActor(1), strings.Repeat("x", models.MaxOptionLength+1))
	assert.ErrorIs(t, err, validators.ErrOptionTooLong)
}

func TestValidation_AddOption_SanitizesLabel(t *testing.T) {
	var got string
	inner := &mockInnerPollService{
		addOptionFn: func(ctx context.Context, pollID string, actor Actor, optionText string) (models.PollOption, error) {
			got = optionText
			return models.PollOption{OptionText: optionText}, nil
		},
	}
	svc := NewPollValidationService().Wrap(inner)

	_, err := svc.AddOption(context.Background(), testPollID, ownerActor(1), "  Extra\x00  choice ")
	require.NoError(t, err)
	assert.Equal(t, "Extra choice", got)
}

// ─────────────────────────────────────────────
// Custom validator wiring
// ─────────────────────────────────────────────

func TestValidation_ValidatorErrorsWrap(t *testing.T) {
	errValidation := errors.New("validation failed")
	svc := (&PollValidationService{
		validator: &mockValidator{
			validateFn: func(ctx context.Context, i any, fields ...string) error {
				return errValidation
			},
		},
	}).Wrap(&mockInnerPollService{})

	_, err := svc.CreatePoll(context.Background(), models.CreatePollInput{
		Question:   "Q?",
		Options:    []string{"A", "B"},
		Expiration: "never",
	})
	assert.ErrorIs(t, err, errValidation)
}
