package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/account-keeper/internal/adapter"
	"github.com/MKhiriev/account-keeper/internal/client"
	"github.com/MKhiriev/account-keeper/internal/config"
	"github.com/MKhiriev/account-keeper/internal/logger"
	"github.com/MKhiriev/account-keeper/internal/service"
	"github.com/MKhiriev/account-keeper/internal/tui"
	"github.com/MKhiriev/account-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Printf("Build version: %s\n", buildInfo.Version)
	fmt.Printf("Build date: %s\n", buildInfo.Date)
	fmt.Printf("Build commit: %s\n", buildInfo.Commit)

	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewClientLogger("account-keeper-client", cfg.Log.File, cfg.Log.Level)
	log.Info().Str("build", buildInfo.String()).Str("server", cfg.Adapter.HTTPAddress).Msg("starting client")

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	services := service.NewClientServices(serverAdapter, cfg.Workers, nil, log)
	ui := tui.New(services, buildInfo, log)

	app := client.NewApp(services, ui, log)
	if err = app.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}
