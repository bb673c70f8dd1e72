// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by the server and client views.
var (
	// ErrInvalidAdapterConfigs: missing or malformed API address or timeout.
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs: missing DSN, or client files that collide.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs: missing cache version, API prefix or issuer.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidWorkerConfigs: non-positive intervals or unknown drain mode.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidServerConfigs: missing listen address or request timeout.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)
