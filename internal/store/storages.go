package store

import "github.com/pollivu/pollivu/internal/logger"

// Storages bundles every repository behind one handle for the service layer.
type Storages struct {
	PollRepository PollRepository
	VoteRepository VoteRepository
	UserRepository UserRepository
}

// NewStorages wires all repositories onto the shared database connection.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		PollRepository: NewPollRepository(db, log),
		VoteRepository: NewVoteRepository(db, log),
		UserRepository: NewUserRepository(db, log),
	}
}
