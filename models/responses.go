package models

// OptionResult is the per-option slice of a poll's live results.
type OptionResult struct {
	ID         int64   `json:"id"`
	OptionText string  `json:"option_text"`
	VoteCount  int64   `json:"vote_count"`
	Percentage float64 `json:"percentage"`
}

// VoteOutcome is returned by a successful vote cast or change so the
// caller can render live results without a second query.
type VoteOutcome struct {
	Message       string         `json:"message"`
	VotedOptionID int64          `json:"voted_option_id"`
	TotalVotes    int64          `json:"total_votes"`
	Results       []OptionResult `json:"results"`
}

// CreatePollResponse carries the new poll together with the creator
// token. The token appears exactly once, here; the server keeps only its
// hash and cannot reproduce it.
type CreatePollResponse struct {
	Poll         *Poll  `json:"poll"`
	CreatorToken string `json:"creator_token"`
	ShareURL     string `json:"share_url"`
}

// PollView is the poll as seen by one visitor: the poll itself plus the
// visitor's own voting state, derived from their anonymous session.
type PollView struct {
	Poll          *Poll `json:"poll"`
	HasVoted      bool  `json:"has_voted"`
	VotedOptionID int64 `json:"voted_option_id,omitempty"`
	IsCreator     bool  `json:"is_creator"`
}

// PollStatus is the lightweight polling payload for live pages.
type PollStatus struct {
	IsActive   bool  `json:"is_active"`
	IsClosed   bool  `json:"is_closed"`
	IsExpired  bool  `json:"is_expired"`
	TotalVotes int64 `json:"total_votes"`
}

// LiveStats is the periodic results payload for live result pages.
type LiveStats struct {
	PollID     string         `json:"poll_id"`
	TotalVotes int64          `json:"total_votes"`
	IsActive   bool           `json:"is_active"`
	Results    []OptionResult `json:"results"`
}

// TimelineBucket is one hour of voting activity.
type TimelineBucket struct {
	Time  string `json:"time"`
	Count int64  `json:"count"`
}

// WordCloudEntry weights an option label by its vote count.
type WordCloudEntry struct {
	Text   string `json:"text"`
	Weight int64  `json:"weight"`
}

// PollAnalytics aggregates voting activity for the insights view.
type PollAnalytics struct {
	Timeline  []TimelineBucket `json:"timeline"`
	WordCloud []WordCloudEntry `json:"word_cloud"`
}

// ServerVersion is the build information served by the version endpoint.
type ServerVersion struct {
	Version     string `json:"version"`
	BuildDate   string `json:"build_date"`
	BuildCommit string `json:"build_commit"`
}

// AuthResponse carries the signed session token after register or login.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
