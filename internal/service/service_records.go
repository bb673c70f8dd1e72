// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/fia-offline-sync/internal/logger"
	"github.com/MKhiriev/fia-offline-sync/internal/store"
	"github.com/MKhiriev/fia-offline-sync/models"
)

type recordService struct {
	recordRepository store.RecordRepository

	logger *logger.Logger
}

func NewRecordService(recordRepository store.RecordRepository, logger *logger.Logger) RecordService {
	return &recordService{
		recordRepository: recordRepository,
		logger:           logger,
	}
}

func (r *recordService) UpsertBatch(ctx context.Context, storeName models.StoreName, records []models.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	return r.recordRepository.UpsertBatch(ctx, storeName, records)
}

func (r *recordService) DeleteBatch(ctx context.Context, storeName models.StoreName, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return r.recordRepository.DeleteBatch(ctx, storeName, ids)
}

func (r *recordService) GetAll(ctx context.Context, storeName models.StoreName) ([]models.Record, error) {
	return r.recordRepository.GetAll(ctx, storeName)
}

func (r *recordService) GetByID(ctx context.Context, storeName models.StoreName, id string) (models.Record, error) {
	return r.recordRepository.GetByID(ctx, storeName, id)
}

func (r *recordService) Health(ctx context.Context) error {
	return r.recordRepository.Ping(ctx)
}
