// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/fia-offline-sync/internal/adapter"
	"github.com/MKhiriev/fia-offline-sync/internal/config"
	"github.com/MKhiriev/fia-offline-sync/internal/handler/proxy"
	"github.com/MKhiriev/fia-offline-sync/internal/logger"
	"github.com/MKhiriev/fia-offline-sync/internal/netstate"
	"github.com/MKhiriev/fia-offline-sync/internal/requestcache"
	"github.com/MKhiriev/fia-offline-sync/internal/server"
	"github.com/MKhiriev/fia-offline-sync/internal/service"
	"github.com/MKhiriev/fia-offline-sync/internal/store"
	"github.com/MKhiriev/fia-offline-sync/internal/tui"
	"github.com/MKhiriev/fia-offline-sync/internal/workers"
	"github.com/MKhiriev/fia-offline-sync/models"
)

type App struct {
	storages *store.ClientStorages
	cache    *requestcache.Worker
	monitor  *netstate.Monitor
	services *service.ClientServices
	workers  *workers.Workers
	proxy    server.Server
	ui       UI

	logger *logger.Logger
}

// NewApp builds the whole client. Only a broken request cache database or
// invalid addresses are fatal; an unreachable origin leaves the cache
// uninstalled and a broken local store switches the coordinator to
// online-only mode.
func NewApp(ctx context.Context, cfg *config.ClientConfig, buildInfo models.BuildInfo, log *logger.Logger) (*App, error) {
	return newApp(ctx, cfg, http.DefaultTransport, buildInfo, log)
}

func newApp(ctx context.Context, cfg *config.ClientConfig, transport http.RoundTripper, buildInfo models.BuildInfo, log *logger.Logger) (app *App, err error) {
	storages, localErr, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreatingStorages, err)
	}
	defer func() {
		if err != nil {
			if closeErr := storages.Close(); closeErr != nil {
				log.Err(closeErr).Str("func", "NewApp").Msg("failed to close storages")
			}
		}
	}()

	cache, err := requestcache.NewWorker(requestcache.OptionsFromConfig(cfg), storages.Worker, transport, log.WithComponent("request-cache"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreatingRequestCache, err)
	}
	if installErr := cache.Install(ctx); installErr != nil {
		log.Warn().Err(installErr).Str("func", "NewApp").Str("version", cache.Version()).
			Msg("request cache not installed, requests go straight to the network")
	}
	if restoreErr := cache.Sync().Restore(ctx); restoreErr != nil {
		log.Warn().Err(restoreErr).Str("func", "NewApp").Msg("queued requests of the previous run wait for the next registration")
	}

	remote, err := adapter.NewHTTPRemoteAdapter(cfg.Adapter, cfg.App, cache, log.WithComponent("adapter"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreatingAdapter, err)
	}

	pinger, err := netstate.NewHTTPPinger(cfg.Adapter.HTTPAddress, cfg.App.APIPrefix, cfg.Adapter.RequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreatingProber, err)
	}
	monitor := netstate.NewMonitor(false, log.WithComponent("netstate"))
	prober := netstate.NewProber(pinger, monitor, cfg.Workers.ProbeInterval, cfg.Adapter.RequestTimeout, log.WithComponent("prober"))
	online := prober.Probe(ctx)
	log.Info().Bool("online", online).Msg("initial reachability probe done")

	services := service.NewClientServices(ctx, storages.Local, localErr, remote, monitor, cfg.Workers, log.WithComponent("sync"))

	background := cache.Sync()
	if background.PeriodicSupported() {
		if err = background.RegisterPeriodic(requestcache.TagPeriodicData, cfg.Workers.PeriodicSyncInterval); err != nil {
			services.SyncService.Close()
			return nil, fmt.Errorf("%w: %w", ErrCreatingRequestCache, err)
		}
	}

	app = &App{
		storages: storages,
		cache:    cache,
		monitor:  monitor,
		services: services,
		workers: workers.NewWorkers(
			prober,
			background,
			newReconnectTrigger(monitor, background, cfg.Workers.ProbeInterval, log.WithComponent("reconnect")),
			services.SyncJob,
		),
		ui:     tui.New(services, buildInfo, log.WithComponent("tui")),
		logger: log,
	}

	if cfg.ProxyAddress != "" {
		origin := cfg.Adapter.OriginAddress
		if origin == "" {
			origin = cfg.Adapter.HTTPAddress
		}
		p, proxyErr := proxy.NewProxy(origin, cache, services.SyncService, log.WithComponent("proxy"))
		if proxyErr != nil {
			services.SyncService.Close()
			return nil, fmt.Errorf("%w: %w", ErrCreatingProxy, proxyErr)
		}
		app.proxy = server.NewHTTPServer(p.Init(), cfg.ProxyAddress, cfg.Adapter.RequestTimeout, log.WithComponent("proxy"))
	}

	return app, nil
}

// Run starts the background workers and the optional proxy, then blocks in
// the UI. Everything is stopped before Run returns.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.workers.Start(ctx)
	if a.proxy != nil {
		go a.proxy.RunServer()
	}

	err := a.ui.Run(ctx)
	a.shutdown()

	if err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}

func (a *App) shutdown() {
	a.logger.Info().Msg("shutting down client...")

	if a.proxy != nil {
		a.proxy.Shutdown()
	}
	a.workers.Stop()
	a.services.SyncService.Close()

	if err := a.storages.Close(); err != nil {
		a.logger.Err(err).Str("func", "App.shutdown").Msg("failed to close storages")
	}
}
