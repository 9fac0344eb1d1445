// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Pollivu Authors

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pollivu/pollivu/internal/service"
	"github.com/pollivu/pollivu/internal/store"
	"github.com/pollivu/pollivu/models"
)

func newStatsHandler(stats service.StatsService) *Handler {
	return newTestHandler(&service.Services{StatsService: stats})
}

// ─────────────────────────────────────────────
// getResults
// ─────────────────────────────────────────────

func TestGetResults_Success(t *testing.T) {
	stats := &mockStatsService{
		resultsFn: func(_ context.Context, pollID string) ([]models.OptionResult, error) {
			assert.Equal(t, testPollID, pollID)
			return []models.OptionResult{
				{ID: 1, OptionText: "Tabs", VoteCount: 3, Percentage: 75},
				{ID: 2, OptionText: "Spaces", VoteCount: 1, Percentage: 25},
			}, nil
		},
	}

	h := newStatsHandler(stats)
	req := withPollID(httptest.NewRequest(http.MethodGet, "/api/poll/"+testPollID+"/results", nil), testPollID)
	rec := httptest.NewRecorder()

	h.getResults(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var results []models.OptionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 2)
	assert.Equal(t, float64(75), results[0].Percentage)
}

func TestGetResults_PollNotFound(t *testing.T) {
	stats := &mockStatsService{
		resultsFn: func(context.Context, string) ([]models.OptionResult, error) {
			return nil, store.ErrPollNotFound
		},
	}

	h := newStatsHandler(stats)
	req := withPollID(httptest.NewRequest(http.MethodGet, "/api/poll/missing/results", nil), "missing")
	rec := httptest.NewRecorder()

	h.getResults(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// getLiveStats / getStatus
// ─────────────────────────────────────────────

func TestGetLiveStats_Success(t *testing.T) {
	stats := &mockStatsService{
		liveStatsFn: func(context.Context, string) (models.LiveStats, error) {
			return models.LiveStats{PollID: testPollID, TotalVotes: 4, IsActive: true}, nil
		},
	}

	h := newStatsHandler(stats)
	req := withPollID(httptest.NewRequest(http.MethodGet, "/api/poll/"+testPollID+"/live_stats", nil), testPollID)
	rec := httptest.NewRecorder()

	h.getLiveStats(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var live models.LiveStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &live))
	assert.Equal(t, testPollID, live.PollID)
	assert.True(t, live.IsActive)
}

func TestGetStatus_Success(t *testing.T) {
	stats := &mockStatsService{
		statusFn: func(context.Context, string) (models.PollStatus, error) {
			return models.PollStatus{IsActive: false, IsClosed: true, TotalVotes: 4}, nil
		},
	}

	h := newStatsHandler(stats)
	req := withPollID(httptest.NewRequest(http.MethodGet, "/api/poll/"+testPollID+"/status", nil), testPollID)
	rec := httptest.NewRecorder()

	h.getStatus(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var status models.PollStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status.IsClosed)
}

// ─────────────────────────────────────────────
// getAnalytics
// ─────────────────────────────────────────────

func TestGetAnalytics_Success(t *testing.T) {
	stats := &mockStatsService{
		analyticsFn: func(_ context.Context, _ string, actor service.Actor) (models.PollAnalytics, error) {
			assert.Equal(t, "creator-token", actor.CreatorToken)
			return models.PollAnalytics{
				Timeline:  []models.TimelineBucket{{Time: "2026-08-01T12:00", Count: 4}},
				WordCloud: []models.WordCloudEntry{{Text: "Tabs", Weight: 3}},
			}, nil
		},
	}

	h := newStatsHandler(stats)
	req := withPollID(httptest.NewRequest(http.MethodGet, "/api/poll/"+testPollID+"/analytics", nil), testPollID)
	req.Header.Set(creatorTokenHeader, "creator-token")
	rec := httptest.NewRecorder()

	h.getAnalytics(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var analytics models.PollAnalytics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analytics))
	require.Len(t, analytics.Timeline, 1)
	assert.Equal(t, int64(4), analytics.Timeline[0].Count)
}

func TestGetAnalytics_PrivateInsights(t *testing.T) {
	stats := &mockStatsService{
		analyticsFn: func(context.Context, string, service.Actor) (models.PollAnalytics, error) {
			return models.PollAnalytics{}, service.ErrNotAuthorized
		},
	}

	h := newStatsHandler(stats)
	req := withPollID(httptest.NewRequest(http.MethodGet, "/api/poll/"+testPollID+"/analytics", nil), testPollID)
	rec := httptest.NewRecorder()

	h.getAnalytics(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// ─────────────────────────────────────────────
// exportCSV
// ─────────────────────────────────────────────

func TestExportCSV_Success(t *testing.T) {
	const doc = "option,votes,percentage\nTabs,3,75.0\nSpaces,1,25.0\n"

	stats := &mockStatsService{
		exportCSVFn: func(context.Context, string, service.Actor) ([]byte, error) {
			return []byte(doc), nil
		},
	}

	h := newStatsHandler(stats)
	req := withPollID(httptest.NewRequest(http.MethodGet, "/api/poll/"+testPollID+"/export/csv", nil), testPollID)
	rec := httptest.NewRecorder()

	h.exportCSV(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, doc, rec.Body.String())
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "poll_"+testPollID+".csv")
}

func TestExportCSV_NotAuthorized(t *testing.T) {
	stats := &mockStatsService{
		exportCSVFn: func(context.Context, string, service.Actor) ([]byte, error) {
			return nil, service.ErrNotAuthorized
		},
	}

	h := newStatsHandler(stats)
	req := withPollID(httptest.NewRequest(http.MethodGet, "/api/poll/"+testPollID+"/export/csv", nil), testPollID)
	rec := httptest.NewRecorder()

	h.exportCSV(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
