// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Pollivu Authors

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/pollivu/pollivu/internal/config"
	"github.com/pollivu/pollivu/internal/logger"
	"github.com/pollivu/pollivu/models"
)

// sessionCookieName must match the cookie the server issues; the adapter
// presents the stored session ID under the same name so the server derives
// the same voter token.
const sessionCookieName = "pollivu_session"

// creatorTokenHeader carries the raw creator credential on management
// requests. The server hashes it per request and never stores the raw value.
const creatorTokenHeader = "X-Creator-Token"

type httpPollAdapter struct {
	client *resty.Client

	mu        sync.RWMutex
	sessionID string

	logger *logger.Logger
}

// NewHTTPPollAdapter constructs an HTTP/REST implementation of [PollAPI].
// It normalises and validates the base URL from cfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and
// request timeout.
//
// Returns an error if cfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPPollAdapter(cfg config.ClientAdapter, logger *logger.Logger) (PollAPI, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &httpPollAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetSessionID implements [PollAPI]. It stores id (whitespace-trimmed) for
// use as the session cookie on all subsequent requests.
func (h *httpPollAdapter) SetSessionID(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessionID = strings.TrimSpace(id)
}

// SessionID implements [PollAPI]. It returns the session identifier
// currently held by the adapter, or an empty string if none has been set.
func (h *httpPollAdapter) SessionID() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sessionID
}

// CreatePoll implements [PollAPI]. It POSTs the poll definition to
// POST /api/poll and decodes the created poll, share URL and one-time
// creator token from the response.
func (h *httpPollAdapter) CreatePoll(ctx context.Context, input models.CreatePollInput) (models.CreatePollResponse, error) {
	var created models.CreatePollResponse

	resp, err := h.sessionRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(input).
		SetResult(&created).
		Post("/api/poll")
	if err != nil {
		return models.CreatePollResponse{}, fmt.Errorf("create poll request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CreatePollResponse{}, err
	}

	return created, nil
}

// GetPoll implements [PollAPI]. It GETs /api/poll/{pollID} and decodes the
// poll together with this session's voting state.
func (h *httpPollAdapter) GetPoll(ctx context.Context, pollID string) (models.PollView, error) {
	var view models.PollView

	resp, err := h.sessionRequest(ctx).
		SetResult(&view).
		Get("/api/poll/" + url.PathEscape(pollID))
	if err != nil {
		return models.PollView{}, fmt.Errorf("get poll request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PollView{}, err
	}

	return view, nil
}

// Vote implements [PollAPI]. It POSTs the option choice to
// POST /api/poll/{pollID}/vote under the current session cookie and decodes
// the outcome with fresh results. Returns [ErrConflict] (wrapped) on HTTP 409
// when the poll forbids changing an existing ballot.
func (h *httpPollAdapter) Vote(ctx context.Context, pollID string, optionID int64) (models.VoteOutcome, error) {
	var outcome models.VoteOutcome

	resp, err := h.sessionRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.VoteRequest{OptionID: optionID}).
		SetResult(&outcome).
		Post("/api/poll/" + url.PathEscape(pollID) + "/vote")
	if err != nil {
		return models.VoteOutcome{}, fmt.Errorf("vote request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VoteOutcome{}, err
	}

	return outcome, nil
}

// Results implements [PollAPI]. It GETs /api/poll/{pollID}/results and
// decodes the per-option tallies.
func (h *httpPollAdapter) Results(ctx context.Context, pollID string) ([]models.OptionResult, error) {
	resp, err := h.sessionRequest(ctx).
		Get("/api/poll/" + url.PathEscape(pollID) + "/results")
	if err != nil {
		return nil, fmt.Errorf("results request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var results []models.OptionResult
	if err = json.Unmarshal(resp.Body(), &results); err != nil {
		return nil, fmt.Errorf("decode results response: %w", err)
	}

	return results, nil
}

// LiveStats implements [PollAPI]. It GETs /api/poll/{pollID}/live_stats.
func (h *httpPollAdapter) LiveStats(ctx context.Context, pollID string) (models.LiveStats, error) {
	var stats models.LiveStats

	resp, err := h.sessionRequest(ctx).
		SetResult(&stats).
		Get("/api/poll/" + url.PathEscape(pollID) + "/live_stats")
	if err != nil {
		return models.LiveStats{}, fmt.Errorf("live stats request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LiveStats{}, err
	}

	return stats, nil
}

// Status implements [PollAPI]. It GETs /api/poll/{pollID}/status.
func (h *httpPollAdapter) Status(ctx context.Context, pollID string) (models.PollStatus, error) {
	var status models.PollStatus

	resp, err := h.sessionRequest(ctx).
		SetResult(&status).
		Get("/api/poll/" + url.PathEscape(pollID) + "/status")
	if err != nil {
		return models.PollStatus{}, fmt.Errorf("status request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PollStatus{}, err
	}

	return status, nil
}

// Close implements [PollAPI]. It POSTs to /api/poll/{pollID}/close with the
// creator token header. Returns [ErrForbidden] (wrapped) on HTTP 403.
func (h *httpPollAdapter) Close(ctx context.Context, pollID, creatorToken string) error {
	resp, err := h.creatorRequest(ctx, creatorToken).
		Post("/api/poll/" + url.PathEscape(pollID) + "/close")
	if err != nil {
		return fmt.Errorf("close poll request: %w", err)
	}

	return mapHTTPError(resp)
}

// Reopen implements [PollAPI]. It POSTs to /api/poll/{pollID}/reopen with
// the creator token header.
func (h *httpPollAdapter) Reopen(ctx context.Context, pollID, creatorToken string) error {
	resp, err := h.creatorRequest(ctx, creatorToken).
		Post("/api/poll/" + url.PathEscape(pollID) + "/reopen")
	if err != nil {
		return fmt.Errorf("reopen poll request: %w", err)
	}

	return mapHTTPError(resp)
}

// Delete implements [PollAPI]. It sends DELETE /api/poll/{pollID} with the
// creator token header. Options and votes cascade server-side.
func (h *httpPollAdapter) Delete(ctx context.Context, pollID, creatorToken string) error {
	resp, err := h.creatorRequest(ctx, creatorToken).
		Delete("/api/poll/" + url.PathEscape(pollID))
	if err != nil {
		return fmt.Errorf("delete poll request: %w", err)
	}

	return mapHTTPError(resp)
}

// ServerVersion implements [PollAPI]. It GETs /api/server/version.
func (h *httpPollAdapter) ServerVersion(ctx context.Context) (models.ServerVersion, error) {
	var version models.ServerVersion

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&version).
		Get("/api/server/version")
	if err != nil {
		return models.ServerVersion{}, fmt.Errorf("server version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ServerVersion{}, err
	}

	return version, nil
}

func (h *httpPollAdapter) sessionRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if id := h.SessionID(); id != "" {
		req.SetCookie(&http.Cookie{Name: sessionCookieName, Value: id})
	}
	return req
}

func (h *httpPollAdapter) creatorRequest(ctx context.Context, creatorToken string) *resty.Request {
	req := h.sessionRequest(ctx)
	if token := strings.TrimSpace(creatorToken); token != "" {
		req.SetHeader(creatorTokenHeader, token)
	}
	return req
}
