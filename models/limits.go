package models

// Content limits enforced on every write path. Validation, storage and the
// option management operations all reference these, so they live next to
// the types they constrain.
const (
	// MinPollOptions is the smallest number of options a poll may hold.
	MinPollOptions = 2

	// MaxPollOptions is the largest number of options a poll may hold.
	MaxPollOptions = 10

	// MaxQuestionLength bounds the poll question, in runes, after
	// sanitization.
	MaxQuestionLength = 500

	// MaxOptionLength bounds each option label, in runes, after
	// sanitization.
	MaxOptionLength = 200
)

// ExpirationKeepCurrent is the extra lifetime choice accepted when editing
// a poll: it leaves the existing deadline untouched.
const ExpirationKeepCurrent = "current"

// ExpirationChoices lists the accepted poll lifetime selections.
var ExpirationChoices = []string{"never", "1h", "6h", "24h", "7d", "30d"}
