// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/fia-offline-sync/models"
)

// RecordValidationService rejects malformed requests before they reach the
// wrapped service.
type RecordValidationService struct {
	inner RecordService
}

func NewRecordValidationService() RecordServiceWrapper {
	return &RecordValidationService{}
}

func (v *RecordValidationService) Wrap(inner RecordService) RecordService {
	v.inner = inner
	return v
}

func (v *RecordValidationService) UpsertBatch(ctx context.Context, storeName models.StoreName, records []models.Record) (int, error) {
	if err := validateStore(storeName); err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, ErrValidationEmptyBatch
	}
	for i, r := range records {
		if r.ID == "" {
			return 0, fmt.Errorf("%w: record %d", ErrValidationEmptyRecordID, i)
		}
	}
	return v.inner.UpsertBatch(ctx, storeName, records)
}

func (v *RecordValidationService) DeleteBatch(ctx context.Context, storeName models.StoreName, ids []string) (int, error) {
	if err := validateStore(storeName); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, ErrValidationNoIDsProvided
	}
	for i, id := range ids {
		if id == "" {
			return 0, fmt.Errorf("%w: id %d", ErrValidationEmptyRecordID, i)
		}
	}
	return v.inner.DeleteBatch(ctx, storeName, ids)
}

func (v *RecordValidationService) GetAll(ctx context.Context, storeName models.StoreName) ([]models.Record, error) {
	if err := validateStore(storeName); err != nil {
		return nil, err
	}
	return v.inner.GetAll(ctx, storeName)
}

func (v *RecordValidationService) GetByID(ctx context.Context, storeName models.StoreName, id string) (models.Record, error) {
	if err := validateStore(storeName); err != nil {
		return models.Record{}, err
	}
	if id == "" {
		return models.Record{}, ErrValidationEmptyRecordID
	}
	return v.inner.GetByID(ctx, storeName, id)
}

func (v *RecordValidationService) Health(ctx context.Context) error {
	return v.inner.Health(ctx)
}

func validateStore(storeName models.StoreName) error {
	if !storeName.Valid() {
		return fmt.Errorf("%w: %q", models.ErrUnknownStore, storeName)
	}
	return nil
}
