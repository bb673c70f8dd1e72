// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/fia-offline-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalStorage is the client's durable record store: one keyed collection
// per [models.StoreName] plus the outbox of pending mutations.
//
// A successful write is visible to every subsequent read.
type LocalStorage interface {
	// Provision creates or upgrades the schema. Safe to call repeatedly.
	Provision(ctx context.Context) error

	// Put inserts or replaces the record with the same id.
	Put(ctx context.Context, store models.StoreName, record models.Record) error
	// GetAll returns the store's records in insertion order.
	GetAll(ctx context.Context, store models.StoreName) ([]models.Record, error)
	// GetByID returns [ErrRecordNotFound] when id is absent.
	GetByID(ctx context.Context, store models.StoreName, id string) (models.Record, error)
	// Delete removes id. Deleting an absent id succeeds.
	Delete(ctx context.Context, store models.StoreName, id string) error
	// ReplaceAll atomically swaps the store's content for records.
	ReplaceAll(ctx context.Context, store models.StoreName, records []models.Record) error

	CountOutbox(ctx context.Context) (int, error)
	EnqueueOutbox(ctx context.Context, entry models.OutboxEntry) error
	// DrainOutbox returns a snapshot of every entry, oldest first. It does
	// not remove anything.
	DrainOutbox(ctx context.Context) ([]models.OutboxEntry, error)
	// RemoveOutboxEntries deletes the given entries in one transaction.
	RemoveOutboxEntries(ctx context.Context, ids ...string) error

	// Reset clears every store and the outbox.
	Reset(ctx context.Context) error
	Close() error
}

// WorkerStorage persists the request cache and the background request
// queue. It is a separate database from [LocalStorage].
type WorkerStorage interface {
	PutResponse(ctx context.Context, resp models.CachedResponse) error
	// PutResponses stores every response or none of them.
	PutResponses(ctx context.Context, resps []models.CachedResponse) error
	// GetResponse returns [ErrCacheMiss] when nothing is stored for key.
	GetResponse(ctx context.Context, version, key string) (models.CachedResponse, error)
	Versions(ctx context.Context) ([]string, error)
	// DeleteVersionsExcept drops every cache generation but keep and
	// reports how many entries were removed.
	DeleteVersionsExcept(ctx context.Context, keep string) (int64, error)

	EnqueueRequest(ctx context.Context, req models.PendingRequest) error
	// PendingRequests lists queued requests for tag, oldest first. An empty
	// tag lists every request.
	PendingRequests(ctx context.Context, tag string) ([]models.PendingRequest, error)
	// PendingTags lists the distinct tags that still have queued requests.
	PendingTags(ctx context.Context) ([]string, error)
	RemoveRequest(ctx context.Context, id string) error
	CountRequests(ctx context.Context) (int, error)

	Close() error
}
