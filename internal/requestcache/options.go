// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package requestcache

import (
	"time"

	"github.com/MKhiriev/fia-offline-sync/internal/config"
	"github.com/MKhiriev/fia-offline-sync/models"
)

const (
	// BackgroundSyncHeader opts a write request into the background queue.
	// Its value is the sync tag. An empty value means [TagPendingRequests].
	BackgroundSyncHeader = "X-Background-Sync"

	// CacheStatusHeader is set to "hit" on responses served from storage
	// and to "offline" on synthesized ones.
	CacheStatusHeader = models.CacheStatusHeader

	TagPendingRequests = "sync-pending-requests"
	TagPeriodicData    = "sync-data"

	DefaultOfflineURL = "/offline.html"

	offlineMessage = "You are offline and the request is not cached."
)

// DefaultManifest is the set of assets fetched on install.
var DefaultManifest = []string{
	"/",
	"/index.html",
	DefaultOfflineURL,
	"/src/index.css",
	"/src/main.tsx",
}

// Options configures a [Worker]. API requests that fail at transport level
// with no stored copy get a synthesized JSON body
// ({"error": ..., "offlineMode": true}) with status 503 and
// CacheStatusHeader set to "offline"; proxy consumers should check the
// status or the header rather than expect a 200.
type Options struct {
	// Version tags every stored response. Activation deletes every other
	// version.
	Version string
	// APIPrefix selects network-first handling by path prefix.
	APIPrefix string
	// Origin is the base URL the manifest is fetched from.
	Origin     string
	Manifest   []string
	OfflineURL string

	// SkipWaiting activates right after a successful install.
	SkipWaiting bool
	// PeriodicSyncSupported enables RegisterPeriodic.
	PeriodicSyncSupported bool

	FetchTimeout time.Duration
}

// OptionsFromConfig derives worker options from the client config.
// Periodic sync is supported only when an interval is configured.
func OptionsFromConfig(cfg *config.ClientConfig) Options {
	return Options{
		Version:               cfg.App.CacheVersion,
		APIPrefix:             cfg.App.APIPrefix,
		Origin:                cfg.Adapter.OriginAddress,
		Manifest:              DefaultManifest,
		OfflineURL:            DefaultOfflineURL,
		SkipWaiting:           true,
		PeriodicSyncSupported: cfg.Workers.PeriodicSyncInterval > 0,
		FetchTimeout:          cfg.Adapter.RequestTimeout,
	}
}

func (o Options) withDefaults() Options {
	if o.APIPrefix == "" {
		o.APIPrefix = "/api"
	}
	if o.OfflineURL == "" {
		o.OfflineURL = DefaultOfflineURL
	}
	if o.Manifest == nil {
		o.Manifest = DefaultManifest
	}
	return o
}
