package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pollivu/pollivu/internal/adapter"
	"github.com/pollivu/pollivu/internal/client"
	"github.com/pollivu/pollivu/internal/config"
	"github.com/pollivu/pollivu/internal/logger"
	"github.com/pollivu/pollivu/internal/store"
	"github.com/pollivu/pollivu/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewClientLogger("pollctl")

	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	api, err := adapter.NewHTTPPollAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	storages, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local credential store")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	app := client.NewApp(api, storages.Credentials, buildInfo, os.Stdout, log)

	if err = app.Run(ctx, os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("pollctl error")
	}
}
