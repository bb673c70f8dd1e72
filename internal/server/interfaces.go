// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

// Server is the lifecycle shared by every transport server in this
// package.
type Server interface {
	// RunServer serves until shutdown is requested and blocks meanwhile.
	RunServer()

	// Shutdown gracefully stops the server.
	Shutdown()
}
