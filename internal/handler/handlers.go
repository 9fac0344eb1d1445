package handler

import (
	"github.com/pollivu/pollivu/internal/config"
	"github.com/pollivu/pollivu/internal/handler/http"
	"github.com/pollivu/pollivu/internal/logger"
	"github.com/pollivu/pollivu/internal/metrics"
	"github.com/pollivu/pollivu/internal/service"
	"github.com/pollivu/pollivu/models"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, m *metrics.Metrics, cfg config.Server, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, m, cfg, buildInfo, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
