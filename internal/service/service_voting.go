// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Pollivu Authors

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pollivu/pollivu/internal/crypto"
	"github.com/pollivu/pollivu/internal/logger"
	"github.com/pollivu/pollivu/internal/store"
	"github.com/pollivu/pollivu/internal/token"
	"github.com/pollivu/pollivu/models"
)

// Outcome messages returned with successful ballots. Exported so transport
// layers can tell the three outcomes apart without a second result field.
const (
	MsgVoteRecorded = "Vote recorded"
	MsgVoteChanged  = "Vote changed successfully"
	MsgVoteKept     = "You have already voted for this option"
)

// votingService is the concrete implementation of VotingService: the
// protocol that turns an anonymous session into a per-poll ballot while
// keeping the one-vote-per-voter invariant.
type votingService struct {
	pollRepository store.PollRepository
	voteRepository store.VoteRepository
	engine         crypto.Engine
	logger         *logger.Logger
}

// NewVotingService constructs a VotingService. The returned service is safe
// for concurrent use.
func NewVotingService(pollRepository store.PollRepository, voteRepository store.VoteRepository, engine crypto.Engine, logger *logger.Logger) VotingService {
	return &votingService{
		pollRepository: pollRepository,
		voteRepository: voteRepository,
		engine:         engine,
		logger:         logger,
	}
}

// CastVote runs the voting protocol for one anonymous session on one poll:
//
//  1. Refuse when the poll is closed or expired (ErrPollInactive).
//  2. Refuse options that do not belong to this poll (ErrInvalidOption).
//  3. Derive the voter token from (sessionID, pollID) and hash it; the raw
//     session identifier never reaches storage.
//  4. First ballot: insert the vote and bump the option and poll counters
//     in one transaction. Existing ballot: a repeat of the same option is a
//     no-op success; a different option either moves the ballot (when the
//     poll allows changes — poll total unchanged) or fails with
//     ErrAlreadyVoted.
//
// The real duplicate guard is the (poll_id, voter_token_hash) uniqueness
// constraint: when two first ballots race, the loser's unique violation
// comes back as ErrAlreadyVoted no matter what the earlier lookup said.
//
// On success the updated per-option results are returned so the caller can
// render live results without another round trip.
func (v *votingService) CastVote(ctx context.Context, pollID string, optionID int64, sessionID string) (models.VoteOutcome, error) {
	log := logger.FromContext(ctx)

	poll, err := loadPoll(ctx, v.pollRepository, v.engine, pollID)
	if err != nil {
		return models.VoteOutcome{}, err
	}

	if !poll.IsActive(time.Now().UTC()) {
		return models.VoteOutcome{}, ErrPollInactive
	}

	if _, ok := poll.OptionByID(optionID); !ok {
		return models.VoteOutcome{}, ErrInvalidOption
	}

	voterHash := token.HashForStorage(token.DeriveVoterToken(sessionID, pollID))
	vote := models.Vote{
		PollID:         pollID,
		VoterTokenHash: voterHash,
		OptionID:       optionID,
		// The repository writes voted_at explicitly, so the timestamp has
		// to be set here; the column default only covers bare inserts.
		VotedAt: time.Now().UTC(),
	}

	existing, err := v.voteRepository.GetVote(ctx, pollID, voterHash)
	switch {
	case err == nil:
		if existing.OptionID == optionID {
			// Same option again: nothing to change, current results back.
			return v.outcome(ctx, pollID, optionID, MsgVoteKept)
		}

		if !poll.AllowVoteChange {
			return models.VoteOutcome{}, ErrAlreadyVoted
		}

		if err := v.voteRepository.ChangeVote(ctx, vote, existing.OptionID); err != nil {
			log.Err(err).Str("poll_id", pollID).Msg("ballot change failed")
			return models.VoteOutcome{}, fmt.Errorf("ballot change failed: %w", err)
		}

		log.Info().
			Str("poll_id", pollID).
			Int64("from_option", existing.OptionID).
			Int64("to_option", optionID).
			Msg("vote changed")
		return v.outcome(ctx, pollID, optionID, MsgVoteChanged)

	case errors.Is(err, store.ErrVoteNotFound):
		if _, err := v.voteRepository.CastVote(ctx, vote); err != nil {
			if errors.Is(err, store.ErrAlreadyVoted) {
				// Lost a race against another request from the same
				// voter; the constraint, not the lookup, decides.
				return models.VoteOutcome{}, ErrAlreadyVoted
			}
			if errors.Is(err, store.ErrOptionNotFound) {
				return models.VoteOutcome{}, ErrInvalidOption
			}
			log.Err(err).Str("poll_id", pollID).Msg("ballot insert failed")
			return models.VoteOutcome{}, fmt.Errorf("ballot insert failed: %w", err)
		}

		log.Info().Str("poll_id", pollID).Int64("option_id", optionID).Msg("new vote recorded")
		return v.outcome(ctx, pollID, optionID, MsgVoteRecorded)

	default:
		log.Err(err).Str("poll_id", pollID).Msg("ballot lookup failed")
		return models.VoteOutcome{}, fmt.Errorf("ballot lookup failed: %w", err)
	}
}

// outcome reloads the poll so the returned counters include the ballot that
// was just written, then renders the per-option results.
func (v *votingService) outcome(ctx context.Context, pollID string, votedOptionID int64, message string) (models.VoteOutcome, error) {
	poll, err := loadPoll(ctx, v.pollRepository, v.engine, pollID)
	if err != nil {
		return models.VoteOutcome{}, err
	}

	return models.VoteOutcome{
		Message:       message,
		VotedOptionID: votedOptionID,
		TotalVotes:    poll.TotalVotes,
		Results:       optionResults(poll),
	}, nil
}
