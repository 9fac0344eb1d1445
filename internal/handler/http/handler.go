package http

import (
	"github.com/pollivu/pollivu/internal/config"
	"github.com/pollivu/pollivu/internal/logger"
	"github.com/pollivu/pollivu/internal/metrics"
	"github.com/pollivu/pollivu/internal/service"
	"github.com/pollivu/pollivu/models"
)

type Handler struct {
	services  *service.Services
	metrics   *metrics.Metrics
	cfg       config.Server
	buildInfo models.AppBuildInfo

	logger *logger.Logger
}

func NewHandler(services *service.Services, m *metrics.Metrics, cfg config.Server, buildInfo models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		metrics:   m,
		cfg:       cfg,
		buildInfo: buildInfo,
		logger:    logger,
	}
}
