// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the merged configuration shared by both binaries.
//
// Struct tags:
//   - envPrefix: prefix applied to nested env lookups (caarlos0/env).
//   - env: variable name for scalar fields.
type StructuredConfig struct {
	App App `envPrefix:"APP_"`

	Storage Storage `envPrefix:"STORAGE_"`

	Server Server `envPrefix:"SERVER_"`

	// Adapter describes how the client reaches the records API.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional JSON config file.
	// Env: CONFIG, flags: -c, -config.
	JSONFilePath string `env:"CONFIG"`

	// IssueToken is flag-only: the server prints a session token for this
	// subject and exits.
	IssueToken string
}

// App holds settings that are not tied to a single transport or store.
type App struct {
	// TokenSignKey signs and verifies session JWTs (HS256). An empty key
	// disables session checks on the server.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// SessionToken is the JWT the client sends in the session cookie.
	// Env: APP_SESSION_TOKEN
	SessionToken string `env:"SESSION_TOKEN"`

	// CacheVersion names the request cache generation (e.g. "fia-global-v1").
	// Changing it makes activation drop every older generation.
	// Env: APP_CACHE_VERSION
	CacheVersion string `env:"CACHE_VERSION"`

	// APIPrefix selects the network-first strategy.
	// Env: APP_API_PREFIX
	APIPrefix string `env:"API_PREFIX"`

	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// LogFile is where the client writes its log. Empty means "logs" next
	// to the executable.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Storage groups every persistence backend.
type Storage struct {
	// DB is the server's PostgreSQL database.
	DB DB `envPrefix:"DB_"`

	// Local is the client's durable record store and outbox.
	Local SQLite `envPrefix:"LOCAL_"`

	// Worker holds the request cache and the background request queue.
	Worker SQLite `envPrefix:"WORKER_"`
}

type DB struct {
	// DSN is the PostgreSQL connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// SQLite points at a client-side SQLite file.
type SQLite struct {
	// Env: STORAGE_LOCAL_DSN, STORAGE_WORKER_DSN
	DSN string `env:"DSN"`
}

// Server holds listener settings.
type Server struct {
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// ProxyAddress is where the client exposes its offline proxy. Empty
	// disables the proxy.
	// Env: SERVER_PROXY_ADDRESS
	ProxyAddress string `env:"PROXY_ADDRESS"`

	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds outbound client settings.
type Adapter struct {
	// HTTPAddress is the base URL of the records API
	// (e.g. "http://localhost:8080").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// OriginAddress is the base URL static assets are precached from.
	// Defaults to HTTPAddress.
	// Env: ADAPTER_ORIGIN_ADDRESS
	OriginAddress string `env:"ORIGIN_ADDRESS"`

	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers configures the client's background jobs.
type Workers struct {
	// SyncInterval is the period of the retry sync job.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// ProbeInterval is the period of the reachability prober.
	// Env: WORKERS_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`

	// PeriodicSyncInterval enables periodic background sync when positive.
	// Env: WORKERS_PERIODIC_SYNC_INTERVAL
	PeriodicSyncInterval time.Duration `env:"PERIODIC_SYNC_INTERVAL"`

	// SyncTimeout bounds a single drain.
	// Env: WORKERS_SYNC_TIMEOUT
	SyncTimeout time.Duration `env:"SYNC_TIMEOUT"`

	// DrainMode is "per-group" or "all-or-nothing".
	// Env: WORKERS_DRAIN_MODE
	DrainMode string `env:"DRAIN_MODE"`

	// MaxConcurrentGroups limits how many stores are pushed at once.
	// Env: WORKERS_MAX_CONCURRENT_GROUPS
	MaxConcurrentGroups int `env:"MAX_CONCURRENT_GROUPS"`
}

// GetStructuredConfig loads and merges the configuration from args
// (normally os.Args[1:]), the environment and the optional JSON file, then
// fills defaults.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags(args).
		withEnv().
		withJSON().
		withDefaults().
		build()
}
