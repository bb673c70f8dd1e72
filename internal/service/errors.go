// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrInvalidDataProvided   = errors.New("invalid data provided")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrTokenCreationFailed     = errors.New("session token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("session token is expired or invalid")

	ErrValidationEmptyBatch    = errors.New("no records provided")
	ErrValidationEmptyRecordID = errors.New("record id is empty")
	ErrValidationNoIDsProvided = errors.New("no ids provided")

	// ErrValidationInvalidPayload is returned for a payload that is not a
	// JSON object or whose "id" differs from the record id.
	ErrValidationInvalidPayload = errors.New("record payload is invalid")
)

// Client-side coordinator errors.
var (
	// ErrWriteThroughFailed wraps a remote failure of an online write. The
	// local write has already succeeded and is kept.
	ErrWriteThroughFailed = errors.New("write-through to remote failed")
	// ErrOffline is returned by operations that need the remote API while
	// the coordinator is offline.
	ErrOffline = errors.New("remote api is offline")
	// ErrPendingChanges is returned by Refresh when the outbox still holds
	// entries for the store.
	ErrPendingChanges = errors.New("store has unsynced local changes")
	// ErrSessionRejected is returned when the remote refuses the session.
	ErrSessionRejected = errors.New("session rejected by remote")
	// ErrRejectedByRemote is returned for non-retryable 4xx answers.
	ErrRejectedByRemote = errors.New("request rejected by remote")
	// ErrRemoteUnavailable is returned for retryable remote failures.
	ErrRemoteUnavailable = errors.New("remote api unavailable")
	ErrLocalWriteFailed  = errors.New("local write failed")
)
