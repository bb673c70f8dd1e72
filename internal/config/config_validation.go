// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net/url"
	"strings"
)

func (cfg *ServerConfig) validate() error {
	if cfg.IssueToken != "" {
		if cfg.App.TokenSignKey == "" || cfg.App.TokenDuration <= 0 {
			return ErrInvalidAppConfigs
		}
		return nil
	}

	if cfg.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.App.TokenIssuer == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	s := cfg.Storage
	if s.LocalDSN == "" || s.WorkerDSN == "" || s.LocalDSN == s.WorkerDSN ||
		strings.Contains(s.LocalDSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if !isHTTPURL(cfg.Adapter.HTTPAddress) || !isHTTPURL(cfg.Adapter.OriginAddress) ||
		cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	w := cfg.Workers
	if w.SyncInterval <= 0 || w.ProbeInterval <= 0 || w.SyncTimeout <= 0 ||
		w.PeriodicSyncInterval < 0 || w.MaxConcurrentGroups < 1 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.CacheVersion == "" || !strings.HasPrefix(cfg.App.APIPrefix, "/") {
		return ErrInvalidAppConfigs
	}

	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
