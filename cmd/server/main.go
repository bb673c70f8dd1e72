// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/fia-offline-sync/internal/config"
	"github.com/MKhiriev/fia-offline-sync/internal/handler"
	"github.com/MKhiriev/fia-offline-sync/internal/logger"
	"github.com/MKhiriev/fia-offline-sync/internal/server"
	"github.com/MKhiriev/fia-offline-sync/internal/service"
	"github.com/MKhiriev/fia-offline-sync/internal/store"
	"github.com/MKhiriev/fia-offline-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewBuildInfo(buildVersion, buildDate, buildCommit)

	cfg, err := config.GetServerConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger("fia-server", "info").Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.Version
	}

	log := logger.NewLogger("fia-server", cfg.App.LogLevel)

	if cfg.IssueToken != "" {
		token, err := service.NewAuthService(cfg.App, log).CreateToken(context.Background(), cfg.IssueToken)
		if err != nil {
			log.Fatal().Err(err).Msg("error issuing session token")
		}
		fmt.Println(token)
		return
	}

	fmt.Print(buildInfo.String())

	storages, err := store.NewStorages(context.Background(), cfg.DSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
