package workers

import (
	"github.com/pollivu/pollivu/internal/config"
	"github.com/pollivu/pollivu/internal/logger"
	"github.com/pollivu/pollivu/internal/metrics"
	"github.com/pollivu/pollivu/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles the background workers enabled by the configuration.
// A zero CleanupInterval leaves the expired-poll sweeper out.
func NewWorkers(cfg config.Workers, polls store.PollRepository, m *metrics.Metrics, logger *logger.Logger) *Workers {
	ws := &Workers{}

	if cfg.CleanupInterval > 0 {
		ws.workers = append(ws.workers, newCleanupWorker(cfg.CleanupInterval, polls, m, logger))
	}

	return ws
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

func (w *Workers) Stop() {
	for _, worker := range w.workers {
		worker.Stop()
	}
}
