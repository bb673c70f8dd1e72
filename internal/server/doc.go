// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the transport servers: the records API over HTTP,
// the gRPC health service and, on the client, the offline proxy.
//
// It owns startup, signal handling and graceful shutdown of every enabled
// transport.
package server
