// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Pollivu Authors

package workers

import (
	"context"
	"time"

	"github.com/pollivu/pollivu/internal/logger"
	"github.com/pollivu/pollivu/internal/metrics"
	"github.com/pollivu/pollivu/internal/store"
)

// cleanupWorker periodically removes polls whose expiration deadline has
// passed and refreshes the poll-count gauges. Votes and options go with the
// poll through the storage cascade.
type cleanupWorker struct {
	interval time.Duration
	polls    store.PollRepository
	metrics  *metrics.Metrics
	logger   *logger.Logger

	stop chan struct{}
	done chan struct{}
}

func newCleanupWorker(interval time.Duration, polls store.PollRepository, m *metrics.Metrics, logger *logger.Logger) *cleanupWorker {
	return &cleanupWorker{
		interval: interval,
		polls:    polls,
		metrics:  m,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run starts the sweep loop in its own goroutine. A sweep fires immediately
// on start so a restart does not wait a full interval to catch up.
func (w *cleanupWorker) Run() {
	go func() {
		defer close(w.done)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.sweep()
		for {
			select {
			case <-ticker.C:
				w.sweep()
			case <-w.stop:
				return
			}
		}
	}()
}

// Stop terminates the loop and waits until the in-flight sweep finished.
func (w *cleanupWorker) Stop() {
	close(w.stop)
	<-w.done
}

func (w *cleanupWorker) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), w.interval)
	defer cancel()

	now := time.Now().UTC()

	swept, err := w.polls.DeleteExpired(ctx, now)
	if err != nil {
		w.logger.Err(err).Msg("expired poll sweep failed")
		return
	}
	if swept > 0 {
		w.metrics.PollsSwept.Add(float64(swept))
		w.logger.Info().Int64("swept", swept).Msg("expired polls removed")
	}

	counts, err := w.polls.CountPolls(ctx, now)
	if err != nil {
		w.logger.Err(err).Msg("poll count refresh failed")
		return
	}
	w.metrics.PollsTotal.Set(float64(counts.Total))
	w.metrics.PollsActive.Set(float64(counts.Active))
}
