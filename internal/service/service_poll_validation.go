package service

import (
	"context"
	"fmt"

	"github.com/pollivu/pollivu/internal/validators"
	"github.com/pollivu/pollivu/models"
)

// PollValidationService decorates a PollService with input sanitization and
// validation. Write requests are normalised (trimmed, whitespace collapsed,
// control characters stripped) and checked against the content rules before
// they reach the inner service; read and administrative calls pass through.
type PollValidationService struct {
	inner     PollService
	validator validators.Validator
}

func NewPollValidationService() PollServiceWrapper {
	return &PollValidationService{
		validator: validators.NewPollInputValidator(),
	}
}

func (v *PollValidationService) CreatePoll(ctx context.Context, input models.CreatePollInput) (models.CreatePollResponse, error) {
	input.Question = validators.SanitizeText(input.Question)
	input.Options = sanitizeOptions(input.Options)

	if err := v.validator.Validate(ctx, input); err != nil {
		return models.CreatePollResponse{}, fmt.Errorf("error during poll validation before creation: %w", err)
	}

	return v.inner.CreatePoll(ctx, input)
}

func (v *PollValidationService) EditPoll(ctx context.Context, pollID string, actor Actor, input models.EditPollInput) (models.Poll, error) {
	input.Question = validators.SanitizeText(input.Question)

	if err := v.validator.Validate(ctx, input); err != nil {
		return models.Poll{}, fmt.Errorf("error during poll validation before edit: %w", err)
	}

	return v.inner.EditPoll(ctx, pollID, actor, input)
}

func (v *PollValidationService) AddOption(ctx context.Context, pollID string, actor Actor, optionText string) (models.PollOption, error) {
	optionText = validators.SanitizeText(optionText)

	if err := v.validator.Validate(ctx, models.AddOptionRequest{OptionText: optionText}); err != nil {
		return models.PollOption{}, fmt.Errorf("error during option validation before append: %w", err)
	}

	return v.inner.AddOption(ctx, pollID, actor, optionText)
}

func (v *PollValidationService) GetPoll(ctx context.Context, pollID string) (models.Poll, error) {
	return v.inner.GetPoll(ctx, pollID)
}

func (v *PollValidationService) ListPolls(ctx context.Context, filter models.PollFilter) ([]models.Poll, error) {
	return v.inner.ListPolls(ctx, filter)
}

func (v *PollValidationService) DeleteOption(ctx context.Context, pollID string, actor Actor, optionID int64) error {
	return v.inner.DeleteOption(ctx, pollID, actor, optionID)
}

func (v *PollValidationService) TogglePublic(ctx context.Context, pollID string, actor Actor) (bool, error) {
	return v.inner.TogglePublic(ctx, pollID, actor)
}

func (v *PollValidationService) ClosePoll(ctx context.Context, pollID string, actor Actor) error {
	return v.inner.ClosePoll(ctx, pollID, actor)
}

func (v *PollValidationService) ReopenPoll(ctx context.Context, pollID string, actor Actor) error {
	return v.inner.ReopenPoll(ctx, pollID, actor)
}

func (v *PollValidationService) DeletePoll(ctx context.Context, pollID string, actor Actor) error {
	return v.inner.DeletePoll(ctx, pollID, actor)
}

func (v *PollValidationService) IsCreator(poll models.Poll, presentedToken string) bool {
	return v.inner.IsCreator(poll, presentedToken)
}

func (v *PollValidationService) Wrap(wrapped PollService) PollService {
	v.inner = wrapped
	return v
}

// sanitizeOptions normalises every label and drops the ones that sanitize
// to nothing; blank entries are skipped rather than rejected.
func sanitizeOptions(options []string) []string {
	sanitized := make([]string, 0, len(options))
	for _, option := range options {
		option = validators.SanitizeText(option)
		if option != "" {
			sanitized = append(sanitized, option)
		}
	}

	return sanitized
}
