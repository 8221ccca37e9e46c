package main

import (
	"context"
	"fmt"

	"github.com/sweebapp/sweebguard/internal/config"
	myHTTP "github.com/sweebapp/sweebguard/internal/handler/http"
	"github.com/sweebapp/sweebguard/internal/logger"
	"github.com/sweebapp/sweebguard/internal/server"
	"github.com/sweebapp/sweebguard/internal/service"
	"github.com/sweebapp/sweebguard/internal/store"
	"github.com/sweebapp/sweebguard/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("sweebguard-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	services := service.NewServices(storages, cfg, log)

	handler := myHTTP.NewHandler(services, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	backgroundWorkers := workers.NewWorkers(storages, cfg.Workers, log)
	backgroundWorkers.Run()

	srv.RunServer()

	backgroundWorkers.Stop()

	if storages.EventBuffer != nil {
		if err := storages.EventBuffer.Close(); err != nil {
			log.Err(err).Msg("error closing event buffer")
		}
	}
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
