// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

type ServerApp struct {
	TokenSignKey  string
	TokenIssuer   string
	TokenDuration time.Duration
	Version       string
	LogLevel      string
}

// ServerConfig is the records server's view of [StructuredConfig].
type ServerConfig struct {
	App ServerApp
	// DSN is the PostgreSQL connection string.
	DSN    string
	Server Server
	// IssueToken, when set, asks the binary to print a token and exit.
	IssueToken string
}

// GetServerConfig loads the merged configuration and returns the validated
// server view.
func GetServerConfig(args []string) (*ServerConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return NewServerConfig(cfg)
}

func NewServerConfig(cfg *StructuredConfig) (*ServerConfig, error) {
	serverCfg := &ServerConfig{
		App: ServerApp{
			TokenSignKey:  cfg.App.TokenSignKey,
			TokenIssuer:   cfg.App.TokenIssuer,
			TokenDuration: cfg.App.TokenDuration,
			Version:       cfg.App.Version,
			LogLevel:      cfg.App.LogLevel,
		},
		DSN:        cfg.Storage.DB.DSN,
		Server:     cfg.Server,
		IssueToken: cfg.IssueToken,
	}

	return serverCfg, serverCfg.validate()
}
