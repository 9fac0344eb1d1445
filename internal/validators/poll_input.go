package validators

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pollivu/pollivu/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	// FieldQuestion targets the poll question text.
	FieldQuestion = "question"

	// FieldOptions targets the option label list of a creation request.
	FieldOptions = "options"

	// FieldExpiration targets the poll lifetime choice.
	FieldExpiration = "expiration"
)

// PollInputValidator enforces the content rules on poll write requests:
// question and option length bounds, the option count window, uniqueness of
// labels, and membership of the expiration choice. Inputs are expected to be
// sanitized (see SanitizeText) before validation, so every length check runs
// against what would actually be stored.
type PollInputValidator struct {
}

func NewPollInputValidator() Validator {
	return &PollInputValidator{}
}

func (v *PollInputValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CreatePollInput:
		return v.validateCreatePollInput(ctx, value, fields...)
	case *models.CreatePollInput:
		return v.validateCreatePollInput(ctx, *value, fields...)

	case models.EditPollInput:
		return v.validateEditPollInput(ctx, value, fields...)
	case *models.EditPollInput:
		return v.validateEditPollInput(ctx, *value, fields...)

	case models.AddOptionRequest:
		return validateOptionText(value.OptionText)
	case *models.AddOptionRequest:
		return validateOptionText(value.OptionText)

	default:
		return ErrUnsupportedType
	}
}

func (v *PollInputValidator) validateCreatePollInput(_ context.Context, input models.CreatePollInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldQuestion, FieldOptions, FieldExpiration}
	}

	for _, field := range fields {
		switch field {
		case FieldQuestion:
			if err := validateQuestion(input.Question); err != nil {
				return err
			}
		case FieldOptions:
			if err := validateOptions(input.Options); err != nil {
				return err
			}
		case FieldExpiration:
			if err := validateExpiration(input.Expiration, false); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%q: %w", field, ErrUnknownField)
		}
	}

	return nil
}

func (v *PollInputValidator) validateEditPollInput(_ context.Context, input models.EditPollInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldQuestion, FieldExpiration}
	}

	for _, field := range fields {
		switch field {
		case FieldQuestion:
			if err := validateQuestion(input.Question); err != nil {
				return err
			}
		case FieldExpiration:
			// Edits may keep the current deadline.
			if err := validateExpiration(input.Expiration, true); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%q: %w", field, ErrUnknownField)
		}
	}

	return nil
}

func validateQuestion(question string) error {
	if question == "" {
		return ErrEmptyQuestion
	}
	if utf8.RuneCountInString(question) > models.MaxQuestionLength {
		return fmt.Errorf("%w (%d characters)", ErrQuestionTooLong, models.MaxQuestionLength)
	}

	return nil
}

func validateOptions(options []string) error {
	if len(options) < models.MinPollOptions {
		return ErrTooFewOptions
	}
	if len(options) > models.MaxPollOptions {
		return fmt.Errorf("%w (%d allowed)", ErrTooManyOptions, models.MaxPollOptions)
	}

	seen := make(map[string]struct{}, len(options))
	for _, option := range options {
		if err := validateOptionText(option); err != nil {
			return err
		}

		key := strings.ToLower(option)
		if _, dup := seen[key]; dup {
			return ErrDuplicateOptions
		}
		seen[key] = struct{}{}
	}

	return nil
}

func validateOptionText(option string) error {
	if option == "" {
		return ErrEmptyOption
	}
	if utf8.RuneCountInString(option) > models.MaxOptionLength {
		return fmt.Errorf("%w (%d characters)", ErrOptionTooLong, models.MaxOptionLength)
	}

	return nil
}

func validateExpiration(choice string, allowCurrent bool) error {
	if allowCurrent && choice == models.ExpirationKeepCurrent {
		return nil
	}
	if !slices.Contains(models.ExpirationChoices, choice) {
		return fmt.Errorf("%w: %q", ErrInvalidExpiration, choice)
	}

	return nil
}

// SanitizeText normalizes user-entered text: non-whitespace control
// characters are stripped, whitespace runs (including newlines and tabs)
// collapse to a single space, and the result carries no leading or trailing
// whitespace.
func SanitizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	pendingSpace := false
	for _, r := range s {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			continue
		}
		if unicode.IsSpace(r) {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}

	return b.String()
}
