package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyQuestion     = errors.New("question is required")
	ErrQuestionTooLong   = errors.New("question exceeds the maximum length")
	ErrTooFewOptions     = errors.New("at least two options are required")
	ErrTooManyOptions    = errors.New("too many options")
	ErrEmptyOption       = errors.New("option text is required")
	ErrOptionTooLong     = errors.New("option exceeds the maximum length")
	ErrDuplicateOptions  = errors.New("all options must be unique")
	ErrInvalidExpiration = errors.New("invalid expiration choice")
)
