// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by the storages. Callers match them with
// [errors.Is].
var (
	// ErrStorageUnavailable is returned when a database cannot be opened,
	// pinged or migrated. The client falls back to online-only mode.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrStorageWrite is returned when a write to the local durable store
	// fails.
	ErrStorageWrite = errors.New("storage write failed")

	// ErrRecordNotFound is returned by point lookups for an absent id.
	ErrRecordNotFound = errors.New("record not found")

	// ErrCacheMiss is returned when no cached response exists for a key.
	ErrCacheMiss = errors.New("cached response not found")
)

// Low-level database operation errors.
var (
	ErrBuildingSQLQuery = errors.New("error building sql query")

	ErrExecutingQuery = errors.New("error executing sql query")

	ErrBeginningTransaction = errors.New("failed to begin transaction")

	ErrCommitingTransaction = errors.New("failed to commit transaction")

	ErrExecutingStatement = errors.New("failed to execute statement")

	ErrScanningRow = errors.New("failed to scan row")

	ErrScanningRows = errors.New("failed to iterate rows")
)
