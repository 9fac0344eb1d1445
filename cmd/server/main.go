package main

import (
	"context"
	"fmt"

	"github.com/pollivu/pollivu/internal/config"
	"github.com/pollivu/pollivu/internal/crypto"
	"github.com/pollivu/pollivu/internal/handler"
	"github.com/pollivu/pollivu/internal/logger"
	"github.com/pollivu/pollivu/internal/metrics"
	"github.com/pollivu/pollivu/internal/server"
	"github.com/pollivu/pollivu/internal/service"
	"github.com/pollivu/pollivu/internal/store"
	"github.com/pollivu/pollivu/internal/workers"
	"github.com/pollivu/pollivu/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	log := logger.NewLogger("pollivu-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	keyCache := crypto.NewKeyCache(cfg.App.KeyCacheSize)
	engine, err := crypto.NewEngine(cfg.App.SecretKey, cfg.Salt, keyCache, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating encryption engine")
	}

	db, err := store.NewConnectPostgres(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error migrating database schema")
	}

	storages := store.NewStorages(db, log)
	m := metrics.New()
	services := service.NewServices(storages, engine, *cfg, log)

	handlers, err := handler.NewHandlers(services, m, cfg.Server, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	background := workers.NewWorkers(cfg.Workers, storages.PollRepository, m, log)
	background.Run()
	defer background.Stop()

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
