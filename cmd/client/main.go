// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/fia-offline-sync/internal/client"
	"github.com/MKhiriev/fia-offline-sync/internal/config"
	"github.com/MKhiriev/fia-offline-sync/internal/logger"
	"github.com/MKhiriev/fia-offline-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo.String())

	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger("fia-client", "info").Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.Version
	}

	// The dashboard owns the terminal, so logs go to a file.
	log := logger.NewClientLogger("fia-client", cfg.App.LogLevel, cfg.App.LogFile)

	ctx := context.Background()
	app, err := client.NewApp(ctx, cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}
