// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "errors"

var (
	ErrCreatingStorages     = errors.New("failed to open client storages")
	ErrCreatingRequestCache = errors.New("failed to create request cache")
	ErrCreatingAdapter      = errors.New("failed to create remote adapter")
	ErrCreatingProber       = errors.New("failed to create reachability prober")
	ErrCreatingProxy        = errors.New("failed to create offline proxy")
)
