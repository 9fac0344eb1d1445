// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Pollivu Authors

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pollivu/pollivu/internal/config"
	"github.com/pollivu/pollivu/internal/crypto"
	"github.com/pollivu/pollivu/internal/logger"
	"github.com/pollivu/pollivu/internal/store"
	"github.com/pollivu/pollivu/internal/token"
	"github.com/pollivu/pollivu/models"
)

// expirationChoices maps the accepted lifetime choices to durations added
// to the creation (or edit) time. The zero duration marks choices that
// clear the deadline.
var expirationChoices = map[string]time.Duration{
	"never": 0,
	"1h":    time.Hour,
	"6h":    6 * time.Hour,
	"24h":   24 * time.Hour,
	"7d":    7 * 24 * time.Hour,
	"30d":   30 * 24 * time.Hour,
}

// pollService is the concrete implementation of PollService. It owns the
// poll lifecycle: identifier and credential generation, content encryption
// at rest, and the authorization rules for administrative actions.
type pollService struct {
	pollRepository store.PollRepository

	// engine encrypts and decrypts poll content for polls created with
	// the encrypt flag.
	engine crypto.Engine

	// shareURLBase is prepended to "/poll/{id}" when building share
	// links. Empty produces a relative link.
	shareURLBase string

	logger *logger.Logger
}

// NewPollService constructs a PollService backed by the given repository and
// encryption engine. The returned service is safe for concurrent use.
func NewPollService(pollRepository store.PollRepository, engine crypto.Engine, cfg config.App, logger *logger.Logger) PollService {
	return &pollService{
		pollRepository: pollRepository,
		engine:         engine,
		shareURLBase:   strings.TrimRight(cfg.ShareURLBase, "/"),
		logger:         logger,
	}
}

// CreatePoll generates the poll identifier and the creator credential,
// computes the expiration deadline from the lifetime choice, and persists
// the poll with its options in one transaction.
//
// Only the SHA-256 hash of the creator token is stored; the raw token is
// returned to the caller exactly once in the response. When input.Encrypt
// is set, the question and option labels are sealed before they reach the
// repository and the plaintext columns stay empty.
func (s *pollService) CreatePoll(ctx context.Context, input models.CreatePollInput) (models.CreatePollResponse, error) {
	log := logger.FromContext(ctx)

	pollID, err := token.NewPollID()
	if err != nil {
		log.Err(err).Msg("poll ID generation failed")
		return models.CreatePollResponse{}, fmt.Errorf("poll ID generation failed: %w", err)
	}

	creatorToken, err := token.NewCreatorToken()
	if err != nil {
		log.Err(err).Msg("creator token generation failed")
		return models.CreatePollResponse{}, fmt.Errorf("creator token generation failed: %w", err)
	}

	now := time.Now().UTC()
	expiresAt, ok := expirationDeadline(input.Expiration, now)
	if !ok {
		return models.CreatePollResponse{}, fmt.Errorf("%w: unknown expiration choice %q", ErrInvalidDataProvided, input.Expiration)
	}

	poll := models.Poll{
		ID:                      pollID,
		Question:                input.Question,
		CreatedAt:               now,
		ExpiresAt:               expiresAt,
		AllowVoteChange:         input.AllowVoteChange,
		ShowResultsBeforeVoting: input.ShowResultsBeforeVoting,
		IsPublic:                input.IsPublic,
		ShareResultsChart:       true,
		ShareResultsList:        true,
		ShareInsights:           models.ShareShared,
		CreatorTokenHash:        token.HashForStorage(creatorToken),
		OwnerID:                 input.OwnerID,
	}
	for i, optionText := range input.Options {
		poll.Options = append(poll.Options, models.PollOption{
			PollID:       pollID,
			OptionText:   optionText,
			DisplayOrder: i,
		})
	}

	if input.Encrypt {
		if err := encryptPollContent(s.engine, &poll); err != nil {
			log.Err(err).Str("poll_id", pollID).Msg("poll content encryption failed")
			return models.CreatePollResponse{}, fmt.Errorf("poll content encryption failed: %w", err)
		}
	}

	saved, err := s.pollRepository.CreatePoll(ctx, poll)
	if err != nil {
		log.Err(err).Str("poll_id", pollID).Msg("poll creation ended with error")
		return models.CreatePollResponse{}, fmt.Errorf("poll creation ended with error: %w", err)
	}

	if err := decryptPollContent(s.engine, &saved); err != nil {
		log.Err(err).Str("poll_id", pollID).Msg("poll content decryption failed")
		return models.CreatePollResponse{}, fmt.Errorf("poll content decryption failed: %w", err)
	}

	owner := "anonymous"
	if input.OwnerID != nil {
		owner = fmt.Sprintf("%d", *input.OwnerID)
	}
	log.Info().Str("poll_id", saved.ID).Str("owner", owner).Msg("poll created")

	return models.CreatePollResponse{
		Poll:         &saved,
		CreatorToken: creatorToken,
		ShareURL:     s.shareURLBase + "/poll/" + saved.ID,
	}, nil
}

// GetPoll loads a poll with its options and restores plaintext content for
// encrypted polls.
//
// Returns ErrInvalidPollID for malformed identifiers, a wrapped
// store.ErrPollNotFound when no such poll exists, and a wrapped
// crypto.ErrDecryptionFailed when stored content cannot be opened.
func (s *pollService) GetPoll(ctx context.Context, pollID string) (models.Poll, error) {
	return loadPoll(ctx, s.pollRepository, s.engine, pollID)
}

// ListPolls returns polls matching the filter, newest first, with encrypted
// questions restored to plaintext for rendering.
func (s *pollService) ListPolls(ctx context.Context, filter models.PollFilter) ([]models.Poll, error) {
	log := logger.FromContext(ctx)

	polls, err := s.pollRepository.ListPolls(ctx, filter)
	if err != nil {
		log.Err(err).Msg("poll listing failed")
		return nil, fmt.Errorf("poll listing failed: %w", err)
	}

	for i := range polls {
		if err := decryptPollContent(s.engine, &polls[i]); err != nil {
			log.Err(err).Str("poll_id", polls[i].ID).Msg("poll content decryption failed")
			return nil, fmt.Errorf("poll content decryption failed: %w", err)
		}
	}

	return polls, nil
}

// EditPoll updates the question, behavioral flags, sharing preferences, and
// the expiration deadline. Owner only; anonymous creator tokens cannot edit.
//
// The special choice "current" keeps the existing deadline. Any other choice
// recomputes the deadline from the edit time, and "never" clears it.
func (s *pollService) EditPoll(ctx context.Context, pollID string, actor Actor, input models.EditPollInput) (models.Poll, error) {
	log := logger.FromContext(ctx)

	poll, err := s.GetPoll(ctx, pollID)
	if err != nil {
		return models.Poll{}, err
	}
	if err := authorizeOwner(poll, actor); err != nil {
		return models.Poll{}, err
	}

	poll.Question = input.Question
	poll.AllowVoteChange = input.AllowVoteChange
	poll.ShowResultsBeforeVoting = input.ShowResultsBeforeVoting
	poll.IsPublic = input.IsPublic
	poll.ShareResultsChart = input.ShareResultsChart
	poll.ShareResultsList = input.ShareResultsList
	poll.ShareInsights = models.SharePrefFromBool(input.ShareInsights)

	if input.Expiration != models.ExpirationKeepCurrent {
		expiresAt, ok := expirationDeadline(input.Expiration, time.Now().UTC())
		if !ok {
			return models.Poll{}, fmt.Errorf("%w: unknown expiration choice %q", ErrInvalidDataProvided, input.Expiration)
		}
		poll.ExpiresAt = expiresAt
	}

	stored := poll
	if poll.IsEncrypted {
		blob, err := s.engine.Encrypt(poll.Question)
		if err != nil {
			log.Err(err).Str("poll_id", poll.ID).Msg("poll content encryption failed")
			return models.Poll{}, fmt.Errorf("poll content encryption failed: %w", err)
		}
		stored.QuestionEncrypted = blob
		stored.Question = ""
	}

	if err := s.pollRepository.UpdatePollSettings(ctx, stored); err != nil {
		log.Err(err).Str("poll_id", poll.ID).Msg("poll settings update failed")
		return models.Poll{}, fmt.Errorf("poll settings update failed: %w", err)
	}

	log.Info().Str("poll_id", poll.ID).Msg("poll edited")
	return poll, nil
}

// AddOption appends a choice to the poll with the next display order.
// Owner only.
//
// Returns ErrTooManyOptions at the per-poll maximum and ErrDuplicateOption
// when the label already exists, compared case-insensitively against the
// decrypted labels.
func (s *pollService) AddOption(ctx context.Context, pollID string, actor Actor, optionText string) (models.PollOption, error) {
	log := logger.FromContext(ctx)

	poll, err := s.GetPoll(ctx, pollID)
	if err != nil {
		return models.PollOption{}, err
	}
	if err := authorizeOwner(poll, actor); err != nil {
		return models.PollOption{}, err
	}

	if len(poll.Options) >= models.MaxPollOptions {
		return models.PollOption{}, ErrTooManyOptions
	}

	maxOrder := 0
	for _, opt := range poll.Options {
		if strings.EqualFold(opt.OptionText, optionText) {
			return models.PollOption{}, ErrDuplicateOption
		}
		if opt.DisplayOrder > maxOrder {
			maxOrder = opt.DisplayOrder
		}
	}

	option := models.PollOption{
		PollID:       poll.ID,
		OptionText:   optionText,
		DisplayOrder: maxOrder + 1,
	}
	if poll.IsEncrypted {
		blob, err := s.engine.Encrypt(optionText)
		if err != nil {
			log.Err(err).Str("poll_id", poll.ID).Msg("option encryption failed")
			return models.PollOption{}, fmt.Errorf("option encryption failed: %w", err)
		}
		option.OptionEncrypted = blob
		option.OptionText = ""
	}

	saved, err := s.pollRepository.AddOption(ctx, option)
	if err != nil {
		log.Err(err).Str("poll_id", poll.ID).Msg("option append failed")
		return models.PollOption{}, fmt.Errorf("option append failed: %w", err)
	}
	saved.OptionText = optionText

	log.Info().Str("poll_id", poll.ID).Int64("option_id", saved.ID).Msg("poll option added")
	return saved, nil
}

// DeleteOption removes a choice together with its votes and deducts its
// count from the poll total. Owner only.
//
// The repository refuses the delete when it would leave the poll with fewer
// than the minimum number of options (store.ErrTooFewOptions).
func (s *pollService) DeleteOption(ctx context.Context, pollID string, actor Actor, optionID int64) error {
	log := logger.FromContext(ctx)

	poll, err := s.GetPoll(ctx, pollID)
	if err != nil {
		return err
	}
	if err := authorizeOwner(poll, actor); err != nil {
		return err
	}

	if err := s.pollRepository.DeleteOption(ctx, poll.ID, optionID); err != nil {
		log.Err(err).Str("poll_id", poll.ID).Int64("option_id", optionID).Msg("option delete failed")
		return fmt.Errorf("option delete failed: %w", err)
	}

	log.Info().Str("poll_id", poll.ID).Int64("option_id", optionID).Msg("poll option deleted")
	return nil
}

// TogglePublic flips the public listing flag and returns the new state.
// Owner only.
func (s *pollService) TogglePublic(ctx context.Context, pollID string, actor Actor) (bool, error) {
	log := logger.FromContext(ctx)

	poll, err := s.GetPoll(ctx, pollID)
	if err != nil {
		return false, err
	}
	if err := authorizeOwner(poll, actor); err != nil {
		return false, err
	}

	public := !poll.IsPublic
	if err := s.pollRepository.SetPublic(ctx, poll.ID, public); err != nil {
		log.Err(err).Str("poll_id", poll.ID).Msg("public flag update failed")
		return false, fmt.Errorf("public flag update failed: %w", err)
	}

	return public, nil
}

// ClosePoll stops the poll from accepting votes, keeping the expiration
// deadline as it is. Creator or owner.
func (s *pollService) ClosePoll(ctx context.Context, pollID string, actor Actor) error {
	log := logger.FromContext(ctx)

	poll, err := s.GetPoll(ctx, pollID)
	if err != nil {
		return err
	}
	if err := authorizeAdmin(poll, actor); err != nil {
		return err
	}

	if err := s.pollRepository.SetClosed(ctx, poll.ID, true, poll.ExpiresAt); err != nil {
		log.Err(err).Str("poll_id", poll.ID).Msg("poll close failed")
		return fmt.Errorf("poll close failed: %w", err)
	}

	log.Info().Str("poll_id", poll.ID).Msg("poll closed")
	return nil
}

// ReopenPoll resumes voting. A poll whose deadline already passed gets the
// deadline cleared in the same update, otherwise reopening would produce a
// poll that is open and still expired. Creator or owner.
func (s *pollService) ReopenPoll(ctx context.Context, pollID string, actor Actor) error {
	log := logger.FromContext(ctx)

	poll, err := s.GetPoll(ctx, pollID)
	if err != nil {
		return err
	}
	if err := authorizeAdmin(poll, actor); err != nil {
		return err
	}

	expiresAt := poll.ExpiresAt
	if poll.IsExpired(time.Now().UTC()) {
		expiresAt = nil
	}

	if err := s.pollRepository.SetClosed(ctx, poll.ID, false, expiresAt); err != nil {
		log.Err(err).Str("poll_id", poll.ID).Msg("poll reopen failed")
		return fmt.Errorf("poll reopen failed: %w", err)
	}

	log.Info().Str("poll_id", poll.ID).Msg("poll reopened")
	return nil
}

// DeletePoll removes the poll; options and votes cascade with it. Creator
// or owner.
func (s *pollService) DeletePoll(ctx context.Context, pollID string, actor Actor) error {
	log := logger.FromContext(ctx)

	poll, err := s.GetPoll(ctx, pollID)
	if err != nil {
		return err
	}
	if err := authorizeAdmin(poll, actor); err != nil {
		return err
	}

	if err := s.pollRepository.DeletePoll(ctx, poll.ID); err != nil {
		log.Err(err).Str("poll_id", poll.ID).Msg("poll delete failed")
		return fmt.Errorf("poll delete failed: %w", err)
	}

	log.Info().Str("poll_id", poll.ID).Msg("poll deleted")
	return nil
}

// IsCreator reports whether presentedToken is the poll's creator credential:
// non-empty and hashing to the stored creator token hash.
func (s *pollService) IsCreator(poll models.Poll, presentedToken string) bool {
	return isCreator(poll, presentedToken)
}

// ─────────────────────────────────────────────────────────────────────────────
// Shared helpers used across the poll, voting and stats services.
// ─────────────────────────────────────────────────────────────────────────────

// expirationDeadline resolves a lifetime choice against now. The second
// return value is false for unknown choices.
func expirationDeadline(choice string, now time.Time) (*time.Time, bool) {
	d, ok := expirationChoices[choice]
	if !ok {
		return nil, false
	}
	if d == 0 {
		return nil, true
	}

	deadline := now.Add(d)
	return &deadline, true
}

// loadPoll validates the identifier, loads the poll with its options, and
// restores plaintext content for encrypted polls.
func loadPoll(ctx context.Context, repo store.PollRepository, engine crypto.Engine, pollID string) (models.Poll, error) {
	log := logger.FromContext(ctx)

	if !token.ValidPollID(pollID) {
		return models.Poll{}, ErrInvalidPollID
	}

	poll, err := repo.GetPoll(ctx, pollID)
	if err != nil {
		log.Err(err).Str("poll_id", pollID).Msg("poll lookup failed")
		return models.Poll{}, fmt.Errorf("poll lookup failed: %w", err)
	}

	if err := decryptPollContent(engine, &poll); err != nil {
		log.Err(err).Str("poll_id", pollID).Msg("poll content decryption failed")
		return models.Poll{}, fmt.Errorf("poll content decryption failed: %w", err)
	}

	return poll, nil
}

// encryptPollContent seals the question and option labels into their
// encrypted columns and empties the plaintext ones. Marks the poll
// encrypted.
func encryptPollContent(engine crypto.Engine, poll *models.Poll) error {
	blob, err := engine.Encrypt(poll.Question)
	if err != nil {
		return err
	}
	poll.QuestionEncrypted = blob
	poll.Question = ""

	for i := range poll.Options {
		blob, err := engine.Encrypt(poll.Options[i].OptionText)
		if err != nil {
			return err
		}
		poll.Options[i].OptionEncrypted = blob
		poll.Options[i].OptionText = ""
	}

	poll.IsEncrypted = true
	return nil
}

// decryptPollContent restores plaintext question and option labels on an
// encrypted poll so callers can render it. Polls stored in plaintext pass
// through untouched. Decryption failures surface to the caller; there is no
// silent fallback to the stored blob.
func decryptPollContent(engine crypto.Engine, poll *models.Poll) error {
	if !poll.IsEncrypted {
		return nil
	}

	question, err := engine.Decrypt(poll.QuestionEncrypted)
	if err != nil {
		return err
	}
	poll.Question = question

	for i := range poll.Options {
		label, err := engine.Decrypt(poll.Options[i].OptionEncrypted)
		if err != nil {
			return err
		}
		poll.Options[i].OptionText = label
	}

	return nil
}

// optionResults renders per-option counts and percentages in display order.
func optionResults(poll models.Poll) []models.OptionResult {
	results := make([]models.OptionResult, 0, len(poll.Options))
	for _, opt := range poll.Options {
		results = append(results, models.OptionResult{
			ID:         opt.ID,
			OptionText: opt.OptionText,
			VoteCount:  opt.VoteCount,
			Percentage: opt.Percentage(poll.TotalVotes),
		})
	}

	return results
}

// isCreator reports whether presentedToken hashes to the poll's stored
// creator token hash. Empty tokens never match.
func isCreator(poll models.Poll, presentedToken string) bool {
	if presentedToken == "" || poll.CreatorTokenHash == "" {
		return false
	}

	return token.HashForStorage(presentedToken) == poll.CreatorTokenHash
}

// authorizeAdmin admits the poll's owner or the holder of the creator
// token. Used by close, reopen and delete.
func authorizeAdmin(poll models.Poll, actor Actor) error {
	if actor.UserID != nil && poll.OwnerID != nil && *actor.UserID == *poll.OwnerID {
		return nil
	}
	if isCreator(poll, actor.CreatorToken) {
		return nil
	}

	return ErrNotAuthorized
}

// authorizeOwner admits only the poll's owning account. Anonymous creator
// tokens cannot pass; polls without an owner have no one who can.
func authorizeOwner(poll models.Poll, actor Actor) error {
	if actor.UserID != nil && poll.OwnerID != nil && *actor.UserID == *poll.OwnerID {
		return nil
	}

	return ErrNotAuthorized
}
