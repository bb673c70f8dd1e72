// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"

	"github.com/MKhiriev/fia-offline-sync/models"
)

type ClientApp struct {
	SessionToken string
	CacheVersion string
	APIPrefix    string
	Version      string
	LogLevel     string
	LogFile      string
}

// ClientAdapter holds the outbound transport settings.
type ClientAdapter struct {
	// HTTPAddress is the records API base URL.
	HTTPAddress string
	// OriginAddress is the base URL the request cache precaches from.
	OriginAddress  string
	RequestTimeout time.Duration
}

type ClientStorage struct {
	// LocalDSN is the SQLite file of the local durable store.
	LocalDSN string
	// WorkerDSN is the SQLite file of the request cache.
	WorkerDSN string
}

type ClientWorkers struct {
	SyncInterval         time.Duration
	ProbeInterval        time.Duration
	PeriodicSyncInterval time.Duration
	SyncTimeout          time.Duration
	DrainMode            models.DrainMode
	MaxConcurrentGroups  int
}

// ClientConfig is the client's view of [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
	// ProxyAddress enables the local offline proxy when non-empty.
	ProxyAddress string
}

// GetClientConfig loads the merged configuration and returns the validated
// client view.
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return NewClientConfig(cfg)
}

// NewClientConfig maps cfg to a [ClientConfig] and validates it.
func NewClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	mode, err := models.ParseDrainMode(cfg.Workers.DrainMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWorkerConfigs, err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			SessionToken: cfg.App.SessionToken,
			CacheVersion: cfg.App.CacheVersion,
			APIPrefix:    cfg.App.APIPrefix,
			Version:      cfg.App.Version,
			LogLevel:     cfg.App.LogLevel,
			LogFile:      cfg.App.LogFile,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			OriginAddress:  cfg.Adapter.OriginAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			LocalDSN:  cfg.Storage.Local.DSN,
			WorkerDSN: cfg.Storage.Worker.DSN,
		},
		Workers: ClientWorkers{
			SyncInterval:         cfg.Workers.SyncInterval,
			ProbeInterval:        cfg.Workers.ProbeInterval,
			PeriodicSyncInterval: cfg.Workers.PeriodicSyncInterval,
			SyncTimeout:          cfg.Workers.SyncTimeout,
			DrainMode:            mode,
			MaxConcurrentGroups:  cfg.Workers.MaxConcurrentGroups,
		},
		ProxyAddress: cfg.Server.ProxyAddress,
	}

	return clientCfg, clientCfg.validate()
}
