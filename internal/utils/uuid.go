package utils

import "github.com/google/uuid"

// TraceIDGenerator produces trace identifiers for request logging.
// Time-ordered v7 UUIDs keep log queries over trace IDs roughly
// chronological; v4 is the fallback when v7 generation fails.
type TraceIDGenerator struct {
}

func NewTraceIDGenerator() *TraceIDGenerator {
	return &TraceIDGenerator{}
}

func (g *TraceIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
