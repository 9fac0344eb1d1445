package service

import (
	"github.com/pollivu/pollivu/internal/config"
	"github.com/pollivu/pollivu/internal/crypto"
	"github.com/pollivu/pollivu/internal/logger"
	"github.com/pollivu/pollivu/internal/store"
)

type Services struct {
	AuthService   AuthService
	PollService   PollService
	VotingService VotingService
	StatsService  StatsService
}

func NewServices(storages *store.Storages, engine crypto.Engine, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	pollService := NewPollValidationService().Wrap(
		NewPollService(storages.PollRepository, engine, cfg.App, logger),
	)

	return &Services{
		AuthService:   NewAuthService(storages.UserRepository, cfg.Auth, logger),
		PollService:   pollService,
		VotingService: NewVotingService(storages.PollRepository, storages.VoteRepository, engine, logger),
		StatsService:  NewStatsService(storages.PollRepository, storages.VoteRepository, engine, logger),
	}
}
