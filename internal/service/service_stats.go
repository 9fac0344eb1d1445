// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Pollivu Authors

package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/pollivu/pollivu/internal/crypto"
	"github.com/pollivu/pollivu/internal/logger"
	"github.com/pollivu/pollivu/internal/store"
	"github.com/pollivu/pollivu/internal/token"
	"github.com/pollivu/pollivu/models"
)

// statsService is the concrete implementation of StatsService: the read
// side of the voting domain. It never mutates anything.
type statsService struct {
	pollRepository store.PollRepository
	voteRepository store.VoteRepository
	engine         crypto.Engine
	logger         *logger.Logger
}

// NewStatsService constructs a StatsService. The returned service is safe
// for concurrent use.
func NewStatsService(pollRepository store.PollRepository, voteRepository store.VoteRepository, engine crypto.Engine, logger *logger.Logger) StatsService {
	return &statsService{
		pollRepository: pollRepository,
		voteRepository: voteRepository,
		engine:         engine,
		logger:         logger,
	}
}

// View assembles the poll as one visitor sees it: the poll itself, whether
// the visitor's anonymous session already voted and for which option, and
// whether the visitor holds creator rights.
func (s *statsService) View(ctx context.Context, pollID, sessionID string, actor Actor) (models.PollView, error) {
	log := logger.FromContext(ctx)

	poll, err := loadPoll(ctx, s.pollRepository, s.engine, pollID)
	if err != nil {
		return models.PollView{}, err
	}

	view := models.PollView{Poll: &poll}

	voterHash := token.HashForStorage(token.DeriveVoterToken(sessionID, pollID))
	vote, err := s.voteRepository.GetVote(ctx, pollID, voterHash)
	switch {
	case err == nil:
		view.HasVoted = true
		view.VotedOptionID = vote.OptionID
	case errors.Is(err, store.ErrVoteNotFound):
		// Not voted yet.
	default:
		log.Err(err).Str("poll_id", pollID).Msg("ballot lookup failed")
		return models.PollView{}, fmt.Errorf("ballot lookup failed: %w", err)
	}

	view.IsCreator = authorizeAdmin(poll, actor) == nil

	return view, nil
}

// Results returns per-option counts and percentages in display order.
func (s *statsService) Results(ctx context.Context, pollID string) ([]models.OptionResult, error) {
	poll, err := loadPoll(ctx, s.pollRepository, s.engine, pollID)
	if err != nil {
		return nil, err
	}

	return optionResults(poll), nil
}

// LiveStats returns the periodic payload consumed by live result pages.
func (s *statsService) LiveStats(ctx context.Context, pollID string) (models.LiveStats, error) {
	poll, err := loadPoll(ctx, s.pollRepository, s.engine, pollID)
	if err != nil {
		return models.LiveStats{}, err
	}

	return models.LiveStats{
		PollID:     poll.ID,
		TotalVotes: poll.TotalVotes,
		IsActive:   poll.IsActive(time.Now().UTC()),
		Results:    optionResults(poll),
	}, nil
}

// Status returns the lightweight activity snapshot: active, closed and
// expired flags plus the running total.
func (s *statsService) Status(ctx context.Context, pollID string) (models.PollStatus, error) {
	poll, err := loadPoll(ctx, s.pollRepository, s.engine, pollID)
	if err != nil {
		return models.PollStatus{}, err
	}

	now := time.Now().UTC()
	return models.PollStatus{
		IsActive:   poll.IsActive(now),
		IsClosed:   poll.IsClosed,
		IsExpired:  poll.IsExpired(now),
		TotalVotes: poll.TotalVotes,
	}, nil
}

// Analytics returns the hourly vote timeline and the word-cloud weights.
//
// Creators and owners always pass; everyone else is admitted only while the
// poll's insights preference is Shared or Unset (polls older than the
// preference default to shared). The timeline query is skipped for polls
// without votes, and the word cloud carries only options with at least one
// vote.
func (s *statsService) Analytics(ctx context.Context, pollID string, actor Actor) (models.PollAnalytics, error) {
	log := logger.FromContext(ctx)

	poll, err := loadPoll(ctx, s.pollRepository, s.engine, pollID)
	if err != nil {
		return models.PollAnalytics{}, err
	}

	if authorizeAdmin(poll, actor) != nil && !poll.ShareInsights.Allowed() {
		return models.PollAnalytics{}, ErrNotAuthorized
	}

	analytics := models.PollAnalytics{
		Timeline:  []models.TimelineBucket{},
		WordCloud: []models.WordCloudEntry{},
	}

	if poll.TotalVotes > 0 {
		timeline, err := s.voteRepository.VoteTimeline(ctx, pollID)
		if err != nil {
			log.Err(err).Str("poll_id", pollID).Msg("vote timeline query failed")
			return models.PollAnalytics{}, fmt.Errorf("vote timeline query failed: %w", err)
		}
		analytics.Timeline = timeline
	}

	for _, opt := range poll.Options {
		if opt.VoteCount > 0 {
			analytics.WordCloud = append(analytics.WordCloud, models.WordCloudEntry{
				Text:   opt.OptionText,
				Weight: opt.VoteCount,
			})
		}
	}

	return analytics, nil
}

// ExportCSV renders the poll results as a CSV document. Creator or owner
// only; results exports leave the building, so the share preferences do not
// apply and the caller must hold admin rights.
func (s *statsService) ExportCSV(ctx context.Context, pollID string, actor Actor) ([]byte, error) {
	log := logger.FromContext(ctx)

	poll, err := loadPoll(ctx, s.pollRepository, s.engine, pollID)
	if err != nil {
		return nil, err
	}

	if err := authorizeAdmin(poll, actor); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{"Pollivu Export"},
		{"Question", poll.Question},
		{"Total Votes", strconv.FormatInt(poll.TotalVotes, 10)},
		{},
		{"Option", "Votes", "Percentage"},
	}
	for _, opt := range poll.Options {
		rows = append(rows, []string{
			opt.OptionText,
			strconv.FormatInt(opt.VoteCount, 10),
			strconv.FormatFloat(opt.Percentage(poll.TotalVotes), 'f', 1, 64) + "%",
		})
	}

	if err := w.WriteAll(rows); err != nil {
		log.Err(err).Str("poll_id", pollID).Msg("csv rendering failed")
		return nil, fmt.Errorf("csv rendering failed: %w", err)
	}

	return buf.Bytes(), nil
}
