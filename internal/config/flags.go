// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
)

// NetAddress holds a host and port. It implements flag.Value.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses args into a StructuredConfig. Unset flags stay zero so
// they do not shadow other sources during the merge.
//
// Flags:
//
//	-a                       server address host:port
//	-grpc-address            gRPC health address host:port
//	-proxy-address           client offline proxy address host:port
//	-d                       PostgreSQL DSN
//	-local-dsn               client record store file
//	-worker-dsn              client request cache file
//	-c, -config              JSON config file
//	-token-sign-key          session signing key
//	-token-issuer            session token issuer
//	-token-duration          session token lifetime
//	-session-token           session token used by the client
//	-issue-token             print a session token for the subject and exit
//	-request-timeout         server request timeout
//	-adapter-address         records API base URL
//	-origin-address          static assets base URL
//	-adapter-timeout         client request timeout
//	-cache-version           request cache generation
//	-api-prefix              network-first path prefix
//	-sync-interval           retry sync period
//	-probe-interval          reachability probe period
//	-periodic-sync-interval  periodic background sync period, 0 disables
//	-sync-timeout            single drain timeout
//	-drain-mode              per-group or all-or-nothing
//	-max-concurrent-groups   stores pushed in parallel
//	-log-level               zerolog level
//	-log-file                client log file
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("fia", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var serverAddress, grpcAddress, proxyAddress NetAddress
	cfg := &StructuredConfig{}

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcAddress, "grpc-address", "gRPC address host:port")
	fs.Var(&proxyAddress, "proxy-address", "Offline proxy address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.Storage.Local.DSN, "local-dsn", "", "Local record store file")
	fs.StringVar(&cfg.Storage.Worker.DSN, "worker-dsn", "", "Request cache file")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "Token duration (e.g., 24h)")
	fs.StringVar(&cfg.App.SessionToken, "session-token", "", "Session token")
	fs.StringVar(&cfg.IssueToken, "issue-token", "", "Print a session token for the subject and exit")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Server request timeout")
	fs.StringVar(&cfg.Adapter.HTTPAddress, "adapter-address", "", "Records API base URL")
	fs.StringVar(&cfg.Adapter.OriginAddress, "origin-address", "", "Static assets base URL")
	fs.DurationVar(&cfg.Adapter.RequestTimeout, "adapter-timeout", 0, "Client request timeout")
	fs.StringVar(&cfg.App.CacheVersion, "cache-version", "", "Request cache version")
	fs.StringVar(&cfg.App.APIPrefix, "api-prefix", "", "Network-first path prefix")
	fs.DurationVar(&cfg.Workers.SyncInterval, "sync-interval", 0, "Retry sync period")
	fs.DurationVar(&cfg.Workers.ProbeInterval, "probe-interval", 0, "Reachability probe period")
	fs.DurationVar(&cfg.Workers.PeriodicSyncInterval, "periodic-sync-interval", 0, "Periodic background sync period")
	fs.DurationVar(&cfg.Workers.SyncTimeout, "sync-timeout", 0, "Drain timeout")
	fs.StringVar(&cfg.Workers.DrainMode, "drain-mode", "", "per-group or all-or-nothing")
	fs.IntVar(&cfg.Workers.MaxConcurrentGroups, "max-concurrent-groups", 0, "Stores pushed in parallel")
	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "Log level")
	fs.StringVar(&cfg.App.LogFile, "log-file", "", "Client log file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.Server.HTTPAddress = serverAddress.String()
	cfg.Server.GRPCAddress = grpcAddress.String()
	cfg.Server.ProxyAddress = proxyAddress.String()

	return cfg, nil
}

// String returns host:port, or "" when nothing was set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses host:port. The host must be "localhost", empty or an IP.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	if host != "localhost" && host != "" {
		if net.ParseIP(host) == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

