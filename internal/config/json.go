// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		SessionToken  string   `json:"session_token"`
		CacheVersion  string   `json:"cache_version"`
		APIPrefix     string   `json:"api_prefix"`
		Version       string   `json:"version"`
		LogLevel      string   `json:"log_level"`
		LogFile       string   `json:"log_file"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
		Local struct {
			DSN string `json:"dsn"`
		} `json:"local,omitempty"`
		Worker struct {
			DSN string `json:"dsn"`
		} `json:"worker,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		ProxyAddress   string   `json:"proxy_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		OriginAddress  string   `json:"origin_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		SyncInterval         Duration `json:"sync_interval"`
		ProbeInterval        Duration `json:"probe_interval"`
		PeriodicSyncInterval Duration `json:"periodic_sync_interval"`
		SyncTimeout          Duration `json:"sync_timeout"`
		DrainMode            string   `json:"drain_mode"`
		MaxConcurrentGroups  int      `json:"max_concurrent_groups"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var j StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&j); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  j.App.TokenSignKey,
			TokenIssuer:   j.App.TokenIssuer,
			TokenDuration: time.Duration(j.App.TokenDuration),
			SessionToken:  j.App.SessionToken,
			CacheVersion:  j.App.CacheVersion,
			APIPrefix:     j.App.APIPrefix,
			Version:       j.App.Version,
			LogLevel:      j.App.LogLevel,
			LogFile:       j.App.LogFile,
		},
		Storage: Storage{
			DB:     DB{DSN: j.Storage.DB.DSN},
			Local:  SQLite{DSN: j.Storage.Local.DSN},
			Worker: SQLite{DSN: j.Storage.Worker.DSN},
		},
		Server: Server{
			HTTPAddress:    j.Server.HTTPAddress,
			GRPCAddress:    j.Server.GRPCAddress,
			ProxyAddress:   j.Server.ProxyAddress,
			RequestTimeout: time.Duration(j.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    j.Adapter.HTTPAddress,
			OriginAddress:  j.Adapter.OriginAddress,
			RequestTimeout: time.Duration(j.Adapter.RequestTimeout),
		},
		Workers: Workers{
			SyncInterval:         time.Duration(j.Workers.SyncInterval),
			ProbeInterval:        time.Duration(j.Workers.ProbeInterval),
			PeriodicSyncInterval: time.Duration(j.Workers.PeriodicSyncInterval),
			SyncTimeout:          time.Duration(j.Workers.SyncTimeout),
			DrainMode:            j.Workers.DrainMode,
			MaxConcurrentGroups:  j.Workers.MaxConcurrentGroups,
		},
	}

	return cfg, nil
}

// Duration accepts "30s"-style strings and plain nanosecond numbers in JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
