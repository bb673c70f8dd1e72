// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{name: "empty address", addr: NetAddress{}, expected: ""},
		{name: "localhost with port", addr: NetAddress{Host: "localhost", Port: 8080}, expected: "localhost:8080"},
		{name: "only port", addr: NetAddress{Port: 8080}, expected: ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectError  bool
		expectedAddr NetAddress
	}{
		{name: "valid localhost", input: "localhost:8080", expectedAddr: NetAddress{Host: "localhost", Port: 8080}},
		{name: "valid IPv4", input: "127.0.0.1:9090", expectedAddr: NetAddress{Host: "127.0.0.1", Port: 9090}},
		{name: "empty host", input: ":9090", expectedAddr: NetAddress{Port: 9090}},
		{name: "missing colon", input: "localhost8080", expectError: true},
		{name: "port not a number", input: "localhost:http", expectError: true},
		{name: "port out of range", input: "localhost:70000", expectError: true},
		{name: "hostname not ip", input: "example.com:80", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedAddr, addr)
		})
	}
}

func TestParseFlags_NoArgsLeavesZeroValues(t *testing.T) {
	cfg, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_ClientFlags(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-adapter-address", "http://10.0.0.1:8080",
		"-local-dsn", "/tmp/local.db",
		"-worker-dsn", "/tmp/worker.db",
		"-sync-interval", "15s",
		"-drain-mode", "all-or-nothing",
		"-max-concurrent-groups", "1",
		"-proxy-address", "localhost:3000",
		"-config", "/etc/fia.json",
	})
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.1:8080", cfg.Adapter.HTTPAddress)
	assert.Equal(t, "/tmp/local.db", cfg.Storage.Local.DSN)
	assert.Equal(t, "/tmp/worker.db", cfg.Storage.Worker.DSN)
	assert.Equal(t, 15*time.Second, cfg.Workers.SyncInterval)
	assert.Equal(t, "all-or-nothing", cfg.Workers.DrainMode)
	assert.Equal(t, 1, cfg.Workers.MaxConcurrentGroups)
	assert.Equal(t, "localhost:3000", cfg.Server.ProxyAddress)
	assert.Equal(t, "/etc/fia.json", cfg.JSONFilePath)
}

func TestParseFlags_ServerFlags(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-a", "127.0.0.1:8081",
		"-grpc-address", "127.0.0.1:9091",
		"-d", "postgres://u:p@localhost/db",
		"-token-sign-key", "secret",
		"-issue-token", "agent-7",
	})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8081", cfg.Server.HTTPAddress)
	assert.Equal(t, "127.0.0.1:9091", cfg.Server.GRPCAddress)
	assert.Equal(t, "postgres://u:p@localhost/db", cfg.Storage.DB.DSN)
	assert.Equal(t, "secret", cfg.App.TokenSignKey)
	assert.Equal(t, "agent-7", cfg.IssueToken)
}

func TestParseFlags_InvalidValue(t *testing.T) {
	_, err := parseFlags([]string{"-a", "not-an-address"})
	assert.Error(t, err)

	_, err = parseFlags([]string{"-unknown"})
	assert.Error(t, err)
}
