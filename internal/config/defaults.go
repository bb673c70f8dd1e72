// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/MKhiriev/fia-offline-sync/models"
)

// Defaults returns the values used for fields left empty by every source.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "fia-offline-sync",
			TokenDuration: 24 * time.Hour,
			CacheVersion:  "fia-global-v1",
			APIPrefix:     "/api",
			LogLevel:      "debug",
		},
		Storage: Storage{
			Local:  SQLite{DSN: "fia-local.db"},
			Worker: SQLite{DSN: "fia-worker.db"},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Adapter: Adapter{
			HTTPAddress:    "http://localhost:8080",
			RequestTimeout: 10 * time.Second,
		},
		Workers: Workers{
			SyncInterval:        30 * time.Second,
			ProbeInterval:       5 * time.Second,
			SyncTimeout:         30 * time.Second,
			DrainMode:           string(models.DrainPerGroup),
			MaxConcurrentGroups: len(models.AllStores()),
		},
	}
}
