// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Pollivu Authors

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/pollivu/pollivu/internal/logger"
	"github.com/pollivu/pollivu/models"
)

// voteTxAttempts bounds how many times a ballot transaction is retried when
// the database reports a transient failure (deadlock, serialization).
const voteTxAttempts = 3

// voteRepository is the PostgreSQL-backed implementation of [VoteRepository].
// It owns the "votes" table and the denormalized counters that mirror it.
type voteRepository struct {
	*DB
	logger *logger.Logger
}

// NewVoteRepository constructs a [VoteRepository] backed by the provided
// database connection and logger.
func NewVoteRepository(db *DB, logger *logger.Logger) VoteRepository {
	logger.Debug().Msg("creating vote repository")
	return &voteRepository{
		DB:     db,
		logger: logger,
	}
}

// GetVote returns the ballot held by voterTokenHash on the poll.
//
// Returns [ErrVoteNotFound] when the voter has not voted yet.
func (v *voteRepository) GetVote(ctx context.Context, pollID, voterTokenHash string) (models.Vote, error) {
	log := logger.FromContext(ctx)

	var vote models.Vote
	scanErr := v.DB.QueryRowContext(ctx, getVoteByVoter, pollID, voterTokenHash).Scan(
		&vote.ID,
		&vote.PollID,
		&vote.VoterTokenHash,
		&vote.OptionID,
		&vote.VotedAt,
	)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.Vote{}, ErrVoteNotFound
		}

		log.Err(scanErr).
			Str("func", "voteRepository.GetVote").
			Str("poll_id", pollID).
			Msg("failed to scan vote row")
		return models.Vote{}, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
	}

	return vote, nil
}

// CastVote records a first ballot. The vote row insert, the option counter
// increment and the poll total increment land in one transaction; either
// all three happen or none do.
//
// Concurrent ballots can deadlock on the counter rows, so the transaction
// is retried up to [voteTxAttempts] times when the error classifier deems
// the failure transient.
//
// Returns [ErrAlreadyVoted] when the voter already holds a ballot on the
// poll, and [ErrOptionNotFound] when the option does not belong to it.
func (v *voteRepository) CastVote(ctx context.Context, vote models.Vote) (models.Vote, error) {
	log := logger.FromContext(ctx)

	var saved models.Vote
	var err error

	for attempt := 1; attempt <= voteTxAttempts; attempt++ {
		saved, err = v.castVoteOnce(ctx, vote)
		if err == nil || v.errorClassificator.Classify(err) != Retryable {
			return saved, err
		}

		log.Warn().
			Str("func", "voteRepository.CastVote").
			Str("poll_id", vote.PollID).
			Int("attempt", attempt).
			Msg("retrying ballot transaction after transient database error")
	}

	return saved, err
}

func (v *voteRepository) castVoteOnce(ctx context.Context, vote models.Vote) (models.Vote, error) {
	log := logger.FromContext(ctx)

	tx, err := v.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "voteRepository.castVoteOnce").
			Str("poll_id", vote.PollID).
			Msg("failed to begin transaction")
		return models.Vote{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	scanErr := tx.QueryRowContext(ctx, insertVote,
		vote.PollID,
		vote.VoterTokenHash,
		vote.OptionID,
		vote.VotedAt,
	).Scan(&vote.ID)
	if scanErr != nil {
		switch postgresError(scanErr) {
		case pgerrcode.UniqueViolation:
			return models.Vote{}, ErrAlreadyVoted
		case pgerrcode.ForeignKeyViolation:
			return models.Vote{}, ErrOptionNotFound
		}

		log.Err(scanErr).
			Str("func", "voteRepository.castVoteOnce").
			Str("poll_id", vote.PollID).
			Msg("failed to insert ballot")
		return models.Vote{}, fmt.Errorf("%w: %w", ErrExecutingStatement, scanErr)
	}

	res, execErr := tx.ExecContext(ctx, incrementOptionCount, vote.PollID, vote.OptionID)
	if execErr != nil {
		log.Err(execErr).
			Str("func", "voteRepository.castVoteOnce").
			Str("poll_id", vote.PollID).
			Int64("option_id", vote.OptionID).
			Msg("failed to increment option counter")
		return models.Vote{}, fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return models.Vote{}, ErrOptionNotFound
	}

	res, execErr = tx.ExecContext(ctx, incrementPollTotal, vote.PollID)
	if execErr != nil {
		log.Err(execErr).
			Str("func", "voteRepository.castVoteOnce").
			Str("poll_id", vote.PollID).
			Msg("failed to increment poll total")
		return models.Vote{}, fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return models.Vote{}, ErrPollNotFound
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "voteRepository.castVoteOnce").
			Str("poll_id", vote.PollID).
			Msg("failed to commit transaction")
		return models.Vote{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return vote, nil
}

// ChangeVote moves an existing ballot to a different option. The ballot row
// update, the old counter decrement (floored at zero) and the new counter
// increment land in one transaction. The poll total is left untouched: one
// voter, one counted ballot, before and after.
//
// Retried like [CastVote] on transient database failures.
func (v *voteRepository) ChangeVote(ctx context.Context, vote models.Vote, previousOptionID int64) error {
	log := logger.FromContext(ctx)

	var err error

	for attempt := 1; attempt <= voteTxAttempts; attempt++ {
		err = v.changeVoteOnce(ctx, vote, previousOptionID)
		if err == nil || v.errorClassificator.Classify(err) != Retryable {
			return err
		}

		log.Warn().
			Str("func", "voteRepository.ChangeVote").
			Str("poll_id", vote.PollID).
			Int("attempt", attempt).
			Msg("retrying ballot transaction after transient database error")
	}

	return err
}

func (v *voteRepository) changeVoteOnce(ctx context.Context, vote models.Vote, previousOptionID int64) error {
	log := logger.FromContext(ctx)

	tx, err := v.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "voteRepository.changeVoteOnce").
			Str("poll_id", vote.PollID).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	res, execErr := tx.ExecContext(ctx, reassignVote,
		vote.PollID,
		vote.VoterTokenHash,
		vote.OptionID,
		vote.VotedAt,
	)
	if execErr != nil {
		if postgresError(execErr) == pgerrcode.ForeignKeyViolation {
			return ErrOptionNotFound
		}

		log.Err(execErr).
			Str("func", "voteRepository.changeVoteOnce").
			Str("poll_id", vote.PollID).
			Msg("failed to reassign ballot")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrVoteNotFound
	}

	res, execErr = tx.ExecContext(ctx, decrementOptionCount, vote.PollID, previousOptionID)
	if execErr != nil {
		log.Err(execErr).
			Str("func", "voteRepository.changeVoteOnce").
			Str("poll_id", vote.PollID).
			Int64("option_id", previousOptionID).
			Msg("failed to decrement previous option counter")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrOptionNotFound
	}

	res, execErr = tx.ExecContext(ctx, incrementOptionCount, vote.PollID, vote.OptionID)
	if execErr != nil {
		log.Err(execErr).
			Str("func", "voteRepository.changeVoteOnce").
			Str("poll_id", vote.PollID).
			Int64("option_id", vote.OptionID).
			Msg("failed to increment new option counter")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrOptionNotFound
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "voteRepository.changeVoteOnce").
			Str("poll_id", vote.PollID).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return nil
}

// VoteTimeline buckets the poll's ballots per submission hour, oldest first.
func (v *voteRepository) VoteTimeline(ctx context.Context, pollID string) ([]models.TimelineBucket, error) {
	log := logger.FromContext(ctx)

	query, args, buildErr := buildVoteTimelineQuery(pollID)
	if buildErr != nil {
		log.Err(buildErr).
			Str("func", "voteRepository.VoteTimeline").
			Str("poll_id", pollID).
			Msg("failed to build timeline query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
	}

	rows, queryErr := v.DB.QueryContext(ctx, query, args...)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "voteRepository.VoteTimeline").
			Str("poll_id", pollID).
			Msg("failed to execute timeline query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	timeline := make([]models.TimelineBucket, 0, 24)

	for rows.Next() {
		var bucket models.TimelineBucket

		if scanErr := rows.Scan(&bucket.Time, &bucket.Count); scanErr != nil {
			log.Err(scanErr).
				Str("func", "voteRepository.VoteTimeline").
				Str("poll_id", pollID).
				Msg("failed to scan timeline row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		timeline = append(timeline, bucket)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "voteRepository.VoteTimeline").
			Str("poll_id", pollID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return timeline, nil
}
