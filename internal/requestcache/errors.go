// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package requestcache

import "errors"

var (
	ErrInstallFailed           = errors.New("request cache install failed")
	ErrActivateFailed          = errors.New("request cache activate failed")
	ErrInvalidState            = errors.New("invalid request cache state")
	ErrPeriodicSyncUnsupported = errors.New("periodic background sync is not supported")
	ErrInvalidPeriodicInterval = errors.New("periodic sync interval must be positive")
)
