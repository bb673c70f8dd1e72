// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/fia-offline-sync/models"
)

// Collection is a typed view of one store on top of a ClientSyncService.
//
//	txns := service.NewCollection[models.Transaction](svc)
//	_, err := txns.Add(ctx, models.Transaction{ID: "t1", Amount: 500})
type Collection[T models.TypedRecord] struct {
	svc   ClientSyncService
	store models.StoreName
}

func NewCollection[T models.TypedRecord](svc ClientSyncService) *Collection[T] {
	var zero T
	return &Collection[T]{svc: svc, store: zero.Store()}
}

func (c *Collection[T]) Store() models.StoreName {
	return c.store
}

func (c *Collection[T]) Add(ctx context.Context, v T) (T, error) {
	record, err := models.NewRecord(v)
	if err != nil {
		return v, err
	}
	_, err = c.svc.Add(ctx, c.store, record)
	return v, err
}

func (c *Collection[T]) Update(ctx context.Context, v T) (T, error) {
	record, err := models.NewRecord(v)
	if err != nil {
		return v, err
	}
	_, err = c.svc.Update(ctx, c.store, record)
	return v, err
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	return c.svc.Delete(ctx, c.store, id)
}

func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	records, err := c.svc.GetAll(ctx, c.store)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(records))
	for _, r := range records {
		v, err := models.DecodeRecord[T](r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	record, err := c.svc.GetByID(ctx, c.store, id)
	if err != nil {
		var zero T
		return zero, err
	}
	return models.DecodeRecord[T](record)
}
