// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the business logic of both binaries.
//
// Server side: [RecordService] behind the records API, [AuthService] for
// session tokens and [AppInfoService]. Client side: the sync coordinator
// ([ClientSyncService]), its typed [Collection] views and the retry job.
package service

import (
	"context"

	"github.com/MKhiriev/fia-offline-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// RecordService serves the remote record collections.
type RecordService interface {
	// UpsertBatch replaces records by id, atomically per call. A repeated
	// id in one batch keeps its last occurrence.
	UpsertBatch(ctx context.Context, store models.StoreName, records []models.Record) (int, error)
	// DeleteBatch removes ids. Absent ids are not an error.
	DeleteBatch(ctx context.Context, store models.StoreName, ids []string) (int, error)
	GetAll(ctx context.Context, store models.StoreName) ([]models.Record, error)
	GetByID(ctx context.Context, store models.StoreName, id string) (models.Record, error)
	Health(ctx context.Context) error
}

type AuthService interface {
	CreateToken(ctx context.Context, subject string) (string, error)
	// ParseToken returns the subject of a valid token or
	// ErrTokenIsExpiredOrInvalid.
	ParseToken(ctx context.Context, token string) (string, error)
	// Enabled is false when no sign key is configured; the API is then open.
	Enabled() bool
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// RecordServiceWrapper decorates a RecordService, for example with
// validation.
type RecordServiceWrapper interface {
	Wrap(RecordService) RecordService
}
