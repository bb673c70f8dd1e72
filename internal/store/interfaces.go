// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/fia-offline-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// RecordRepository is the server-side persistence of every record store.
type RecordRepository interface {
	// UpsertBatch replaces records by primary key in one transaction. When
	// the batch repeats an id the last occurrence wins.
	UpsertBatch(ctx context.Context, store models.StoreName, records []models.Record) (int, error)
	// DeleteBatch removes ids. Absent ids are ignored.
	DeleteBatch(ctx context.Context, store models.StoreName, ids []string) (int, error)
	GetAll(ctx context.Context, store models.StoreName) ([]models.Record, error)
	GetByID(ctx context.Context, store models.StoreName, id string) (models.Record, error)
	Ping(ctx context.Context) error
}
