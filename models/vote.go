package models

import "time"

// Vote records that some anonymous voter chose an option on a poll.
//
// The voter is identified only by VoterTokenHash, the SHA-256 hex digest
// of a token derived from the anonymous session and the poll ID. Neither
// the session identifier nor any other identifying value is stored. The
// database enforces at most one row per (poll_id, voter_token_hash); that
// constraint, not application sequencing, is what prevents duplicate
// votes from concurrent requests.
type Vote struct {
	ID             int64     `json:"-"`
	PollID         string    `json:"poll_id"`
	VoterTokenHash string    `json:"-"`
	OptionID       int64     `json:"option_id"`
	VotedAt        time.Time `json:"voted_at"`
}

// TableName returns the name of the database table
// associated with the Vote model.
func (v Vote) TableName() string {
	return "votes"
}
