// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the remote records API on behalf of the sync
// coordinator.
//
// [RemoteAdapter] hides the protocol from the service layer. The HTTP
// implementation maps response statuses to the sentinel errors in errors.go
// so callers can use [errors.Is] and [IsRetryable] without looking at status
// codes.
package adapter

import (
	"context"

	"github.com/MKhiriev/fia-offline-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_adapter_mock.go -package=mock

// RemoteAdapter is the remote collection API of every record store.
type RemoteAdapter interface {
	// UpsertBatch replaces records by id on the remote, atomically per call.
	UpsertBatch(ctx context.Context, store models.StoreName, records []models.Record) error

	// DeleteBatch removes ids on the remote. Absent ids are not an error.
	DeleteBatch(ctx context.Context, store models.StoreName, ids []string) error

	FetchAll(ctx context.Context, store models.StoreName) ([]models.Record, error)

	// FetchByID returns an error wrapping [ErrNotFound] for an absent id.
	FetchByID(ctx context.Context, store models.StoreName, id string) (models.Record, error)

	// Ping checks that the API is reachable.
	Ping(ctx context.Context) error
}
