package models

import "time"

// PollCredential is the locally kept record of a poll created through
// pollctl: the poll coordinates plus the raw creator token, which the
// server hands out exactly once and never stores.
type PollCredential struct {
	// PollID identifies the poll on the server.
	PollID string `json:"poll_id"`

	// Question is kept for listing; it is display data, not authority.
	Question string `json:"question"`

	// ShareURL is the public link to the poll.
	ShareURL string `json:"share_url"`

	// CreatorToken is the raw management credential. Anyone holding it can
	// close, reopen or delete the poll, so the store keeps it with
	// restrictive file permissions.
	CreatorToken string `json:"creator_token"`

	// CreatedAt is when the credential was saved locally.
	CreatedAt time.Time `json:"created_at"`
}
