// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Pollivu Authors

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"

	"github.com/pollivu/pollivu/internal/logger"
	"github.com/pollivu/pollivu/models"
)

// pollRepository is the PostgreSQL-backed implementation of [PollRepository].
// It owns the "polls" and "poll_options" tables.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (poll_id, option_id, affected counts).
type pollRepository struct {
	*DB
	logger *logger.Logger
}

// NewPollRepository constructs a [PollRepository] backed by the provided
// database connection and logger.
func NewPollRepository(db *DB, logger *logger.Logger) PollRepository {
	logger.Debug().Msg("creating poll repository")
	return &pollRepository{
		DB:     db,
		logger: logger,
	}
}

// CreatePoll inserts the poll row and every option row in one transaction.
// Option IDs assigned by the database are written back into the returned
// poll, in the same order the options were given.
func (p *pollRepository) CreatePoll(ctx context.Context, poll models.Poll) (models.Poll, error) {
	log := logger.FromContext(ctx)

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "pollRepository.CreatePoll").
			Str("poll_id", poll.ID).
			Msg("failed to begin transaction")
		return models.Poll{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	res, execErr := tx.ExecContext(ctx, createPoll,
		poll.ID,
		poll.Question,
		nullIfEmpty(poll.QuestionEncrypted),
		poll.CreatedAt,
		poll.ExpiresAt,
		poll.AllowVoteChange,
		poll.ShowResultsBeforeVoting,
		poll.IsClosed,
		poll.IsPublic,
		poll.IsEncrypted,
		poll.ShareResultsChart,
		poll.ShareResultsList,
		poll.ShareInsights,
		poll.CreatorTokenHash,
		poll.TotalVotes,
		poll.OwnerID,
	)
	if execErr != nil {
		log.Err(execErr).
			Str("func", "pollRepository.CreatePoll").
			Str("poll_id", poll.ID).
			Msg("failed to insert poll")

		if postgresError(execErr) == pgerrcode.UniqueViolation {
			return models.Poll{}, fmt.Errorf("%w: poll id collision: %w", ErrPollNotSaved, execErr)
		}
		return models.Poll{}, fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		log.Error().
			Str("func", "pollRepository.CreatePoll").
			Str("poll_id", poll.ID).
			Msg("poll insert affected no rows")
		return models.Poll{}, ErrPollNotSaved
	}

	for i := range poll.Options {
		opt := &poll.Options[i]
		opt.PollID = poll.ID

		scanErr := tx.QueryRowContext(ctx, createPollOption,
			poll.ID,
			opt.OptionText,
			nullIfEmpty(opt.OptionEncrypted),
			opt.VoteCount,
			opt.DisplayOrder,
		).Scan(&opt.ID)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "pollRepository.CreatePoll").
				Str("poll_id", poll.ID).
				Int("option_index", i).
				Msg("failed to insert poll option")
			return models.Poll{}, fmt.Errorf("%w: %w", ErrExecutingStatement, scanErr)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "pollRepository.CreatePoll").
			Str("poll_id", poll.ID).
			Msg("failed to commit transaction")
		return models.Poll{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return poll, nil
}

// GetPoll loads the poll row and its options ordered by display order.
//
// Returns [ErrPollNotFound] when no row matches the ID.
func (p *pollRepository) GetPoll(ctx context.Context, pollID string) (models.Poll, error) {
	log := logger.FromContext(ctx)

	var poll models.Poll
	var questionEncrypted sql.NullString

	row := p.DB.QueryRowContext(ctx, getPollByID, pollID)
	scanErr := row.Scan(
		&poll.ID,
		&poll.Question,
		&questionEncrypted,
		&poll.CreatedAt,
		&poll.ExpiresAt,
		&poll.AllowVoteChange,
		&poll.ShowResultsBeforeVoting,
		&poll.IsClosed,
		&poll.IsPublic,
		&poll.IsEncrypted,
		&poll.ShareResultsChart,
		&poll.ShareResultsList,
		&poll.ShareInsights,
		&poll.CreatorTokenHash,
		&poll.TotalVotes,
		&poll.OwnerID,
	)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.Poll{}, ErrPollNotFound
		}

		log.Err(scanErr).
			Str("func", "pollRepository.GetPoll").
			Str("poll_id", pollID).
			Msg("failed to scan poll row")
		return models.Poll{}, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
	}
	poll.QuestionEncrypted = questionEncrypted.String

	options, optErr := p.getOptions(ctx, pollID)
	if optErr != nil {
		return models.Poll{}, optErr
	}
	poll.Options = options

	return poll, nil
}

func (p *pollRepository) getOptions(ctx context.Context, pollID string) ([]models.PollOption, error) {
	log := logger.FromContext(ctx)

	rows, queryErr := p.DB.QueryContext(ctx, getPollOptions, pollID)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "pollRepository.getOptions").
			Str("poll_id", pollID).
			Msg("failed to execute query for poll options")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	options := make([]models.PollOption, 0, models.MaxPollOptions)

	for rows.Next() {
		var opt models.PollOption
		var optionEncrypted sql.NullString

		scanErr := rows.Scan(
			&opt.ID,
			&opt.PollID,
			&opt.OptionText,
			&optionEncrypted,
			&opt.VoteCount,
			&opt.DisplayOrder,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "pollRepository.getOptions").
				Str("poll_id", pollID).
				Msg("failed to scan poll option row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		opt.OptionEncrypted = optionEncrypted.String

		options = append(options, opt)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "pollRepository.getOptions").
			Str("poll_id", pollID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return options, nil
}

// ListPolls returns polls matching the filter, newest first. Options are not
// loaded; listings only need the poll rows.
func (p *pollRepository) ListPolls(ctx context.Context, filter models.PollFilter) ([]models.Poll, error) {
	log := logger.FromContext(ctx)

	query, args, buildErr := buildListPollsQuery(filter)
	if buildErr != nil {
		log.Err(buildErr).
			Str("func", "pollRepository.ListPolls").
			Msg("failed to build listing query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
	}

	rows, queryErr := p.DB.QueryContext(ctx, query, args...)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "pollRepository.ListPolls").
			Msg("failed to execute listing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	polls := make([]models.Poll, 0, 20)

	for rows.Next() {
		var poll models.Poll
		var questionEncrypted sql.NullString

		scanErr := rows.Scan(
			&poll.ID,
			&poll.Question,
			&questionEncrypted,
			&poll.CreatedAt,
			&poll.ExpiresAt,
			&poll.AllowVoteChange,
			&poll.ShowResultsBeforeVoting,
			&poll.IsClosed,
			&poll.IsPublic,
			&poll.IsEncrypted,
			&poll.ShareResultsChart,
			&poll.ShareResultsList,
			&poll.ShareInsights,
			&poll.CreatorTokenHash,
			&poll.TotalVotes,
			&poll.OwnerID,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "pollRepository.ListPolls").
				Msg("failed to scan poll row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		poll.QuestionEncrypted = questionEncrypted.String

		polls = append(polls, poll)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "pollRepository.ListPolls").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return polls, nil
}

// UpdatePollSettings persists the editable poll fields: question and its
// encrypted form, behavior flags, share preferences and the deadline.
func (p *pollRepository) UpdatePollSettings(ctx context.Context, poll models.Poll) error {
	log := logger.FromContext(ctx)

	res, execErr := p.DB.ExecContext(ctx, updatePollSettings,
		poll.ID,
		poll.Question,
		nullIfEmpty(poll.QuestionEncrypted),
		poll.AllowVoteChange,
		poll.ShowResultsBeforeVoting,
		poll.IsPublic,
		poll.ShareResultsChart,
		poll.ShareResultsList,
		poll.ShareInsights,
		poll.ExpiresAt,
	)
	if execErr != nil {
		log.Err(execErr).
			Str("func", "pollRepository.UpdatePollSettings").
			Str("poll_id", poll.ID).
			Msg("failed to update poll settings")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrPollNotFound
	}

	return nil
}

// SetClosed flips the closed flag and writes the deadline in the same
// statement, so reopening an expired poll clears both atomically.
func (p *pollRepository) SetClosed(ctx context.Context, pollID string, closed bool, expiresAt *time.Time) error {
	log := logger.FromContext(ctx)

	res, execErr := p.DB.ExecContext(ctx, setPollClosed, pollID, closed, expiresAt)
	if execErr != nil {
		log.Err(execErr).
			Str("func", "pollRepository.SetClosed").
			Str("poll_id", pollID).
			Bool("closed", closed).
			Msg("failed to update closed flag")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrPollNotFound
	}

	return nil
}

// SetPublic flips the public listing flag.
func (p *pollRepository) SetPublic(ctx context.Context, pollID string, public bool) error {
	log := logger.FromContext(ctx)

	res, execErr := p.DB.ExecContext(ctx, setPollPublic, pollID, public)
	if execErr != nil {
		log.Err(execErr).
			Str("func", "pollRepository.SetPublic").
			Str("poll_id", pollID).
			Bool("public", public).
			Msg("failed to update public flag")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrPollNotFound
	}

	return nil
}

// DeletePoll removes the poll row. Options and votes are removed by the
// ON DELETE CASCADE constraints.
func (p *pollRepository) DeletePoll(ctx context.Context, pollID string) error {
	log := logger.FromContext(ctx)

	res, execErr := p.DB.ExecContext(ctx, deletePollByID, pollID)
	if execErr != nil {
		log.Err(execErr).
			Str("func", "pollRepository.DeletePoll").
			Str("poll_id", pollID).
			Msg("failed to delete poll")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrPollNotFound
	}

	log.Info().
		Str("func", "pollRepository.DeletePoll").
		Str("poll_id", pollID).
		Msg("poll deleted")

	return nil
}

// AddOption appends one option row and returns it with the assigned ID.
func (p *pollRepository) AddOption(ctx context.Context, option models.PollOption) (models.PollOption, error) {
	log := logger.FromContext(ctx)

	scanErr := p.DB.QueryRowContext(ctx, createPollOption,
		option.PollID,
		option.OptionText,
		nullIfEmpty(option.OptionEncrypted),
		option.VoteCount,
		option.DisplayOrder,
	).Scan(&option.ID)
	if scanErr != nil {
		log.Err(scanErr).
			Str("func", "pollRepository.AddOption").
			Str("poll_id", option.PollID).
			Msg("failed to insert option")

		if postgresError(scanErr) == pgerrcode.ForeignKeyViolation {
			return models.PollOption{}, ErrPollNotFound
		}
		return models.PollOption{}, fmt.Errorf("%w: %w", ErrExecutingStatement, scanErr)
	}

	return option, nil
}

// DeleteOption removes one option inside a transaction:
//
//  1. Lock the option row and read its vote count.
//  2. Refuse if the poll would drop below the option floor.
//  3. Deduct the option's votes from the poll total, floored at zero.
//  4. Delete the ballots referencing the option, then the option itself.
//
// Returns [ErrOptionNotFound] when the option does not exist or belongs to
// another poll, and [ErrTooFewOptions] when the floor would be violated.
func (p *pollRepository) DeleteOption(ctx context.Context, pollID string, optionID int64) error {
	log := logger.FromContext(ctx)

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "pollRepository.DeleteOption").
			Str("poll_id", pollID).
			Int64("option_id", optionID).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var voteCount int64
	if scanErr := tx.QueryRowContext(ctx, getOptionVoteCount, pollID, optionID).Scan(&voteCount); scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return ErrOptionNotFound
		}

		log.Err(scanErr).
			Str("func", "pollRepository.DeleteOption").
			Str("poll_id", pollID).
			Int64("option_id", optionID).
			Msg("failed to read option vote count")
		return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
	}

	var optionCount int64
	if scanErr := tx.QueryRowContext(ctx, countPollOptions, pollID).Scan(&optionCount); scanErr != nil {
		log.Err(scanErr).
			Str("func", "pollRepository.DeleteOption").
			Str("poll_id", pollID).
			Msg("failed to count poll options")
		return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
	}
	if optionCount <= models.MinPollOptions {
		return ErrTooFewOptions
	}

	if _, execErr := tx.ExecContext(ctx, deductPollTotal, pollID, voteCount); execErr != nil {
		log.Err(execErr).
			Str("func", "pollRepository.DeleteOption").
			Str("poll_id", pollID).
			Int64("deducted", voteCount).
			Msg("failed to deduct poll total")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
	}

	if _, execErr := tx.ExecContext(ctx, deleteOptionVotes, pollID, optionID); execErr != nil {
		log.Err(execErr).
			Str("func", "pollRepository.DeleteOption").
			Str("poll_id", pollID).
			Int64("option_id", optionID).
			Msg("failed to delete option ballots")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
	}

	if _, execErr := tx.ExecContext(ctx, deletePollOption, pollID, optionID); execErr != nil {
		log.Err(execErr).
			Str("func", "pollRepository.DeleteOption").
			Str("poll_id", pollID).
			Int64("option_id", optionID).
			Msg("failed to delete option")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "pollRepository.DeleteOption").
			Str("poll_id", pollID).
			Int64("option_id", optionID).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	log.Info().
		Str("func", "pollRepository.DeleteOption").
		Str("poll_id", pollID).
		Int64("option_id", optionID).
		Int64("deducted", voteCount).
		Msg("option deleted")

	return nil
}

// DeleteExpired sweeps every poll whose deadline passed before now.
func (p *pollRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	res, execErr := p.DB.ExecContext(ctx, deleteExpiredPolls, now)
	if execErr != nil {
		log.Err(execErr).
			Str("func", "pollRepository.DeleteExpired").
			Msg("failed to delete expired polls")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
	}

	affected, _ := res.RowsAffected()
	return affected, nil
}

// CountPolls reports total and active poll counts for monitoring.
func (p *pollRepository) CountPolls(ctx context.Context, now time.Time) (models.PollCounts, error) {
	log := logger.FromContext(ctx)

	var counts models.PollCounts

	if scanErr := p.DB.QueryRowContext(ctx, countAllPolls).Scan(&counts.Total); scanErr != nil {
		log.Err(scanErr).
			Str("func", "pollRepository.CountPolls").
			Msg("failed to count polls")
		return models.PollCounts{}, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
	}

	if scanErr := p.DB.QueryRowContext(ctx, countActivePolls, now).Scan(&counts.Active); scanErr != nil {
		log.Err(scanErr).
			Str("func", "pollRepository.CountPolls").
			Msg("failed to count active polls")
		return models.PollCounts{}, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
	}

	return counts, nil
}

// nullIfEmpty converts an empty string into a SQL NULL parameter.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}

	return s
}
