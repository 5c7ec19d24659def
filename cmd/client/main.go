package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-blog-sync/internal/adapter"
	"github.com/MKhiriev/go-blog-sync/internal/client"
	"github.com/MKhiriev/go-blog-sync/internal/config"
	"github.com/MKhiriev/go-blog-sync/internal/connectivity"
	"github.com/MKhiriev/go-blog-sync/internal/identity"
	"github.com/MKhiriev/go-blog-sync/internal/logger"
	"github.com/MKhiriev/go-blog-sync/internal/service"
	"github.com/MKhiriev/go-blog-sync/internal/store"
	"github.com/MKhiriev/go-blog-sync/internal/tui"
	"github.com/MKhiriev/go-blog-sync/internal/workers"
	"github.com/MKhiriev/go-blog-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	cfg, err := config.GetClientConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewClientLogger("blog-client", cfg.App.LogFile)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer storages.Close()

	gateway, err := adapter.NewHTTPGateway(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create remote gateway")
	}

	session, err := identity.NewSession(cfg.App.Token, cfg.App.AuthorEmail)
	if err != nil {
		log.Fatal().Err(err).Msg("create session")
	}
	gateway.SetToken(session.Token())

	pingCtx, cancelPing := context.WithTimeout(ctx, cfg.Adapter.RequestTimeout)
	online := gateway.Ping(pingCtx) == nil
	cancelPing()
	log.Info().Bool("online", online).Msg("initial connectivity")

	monitor := connectivity.NewMonitor(online)
	services := service.NewClientServices(gateway, storages.Cache, monitor, session, log)

	jobs := workers.NewWorkers(
		workers.NewConnectivityProbe(gateway, monitor, cfg.Workers, cfg.Adapter.RequestTimeout, log),
		workers.NewResyncJob(services.SyncTargets, cfg.Workers, log),
	)

	ui := tui.New(services, session, buildInfo, log)

	app := client.NewApp(services, ui, jobs, log)
	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("client run error")
		os.Exit(1)
	}
}
