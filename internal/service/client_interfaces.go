// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/fia-offline-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// Connectivity is the online flag the coordinator follows. Its state is
// read once at construction; afterwards only the callbacks change the
// coordinator's view.
type Connectivity interface {
	Online() bool
	OnOnline(fn func()) (unsubscribe func())
	OnOffline(fn func()) (unsubscribe func())
}

// ClientSyncService is the sync coordinator: CRUD over the local stores
// that writes through to the remote API when online and queues into the
// outbox when not.
type ClientSyncService interface {
	// Add stores a new record. Online, it is also sent to the remote; a
	// remote failure is returned wrapped in ErrWriteThroughFailed and the
	// local copy is kept.
	Add(ctx context.Context, store models.StoreName, record models.Record) (models.Record, error)

	// Update replaces the record with the same id, with the same online and
	// offline behavior as Add.
	Update(ctx context.Context, store models.StoreName, record models.Record) (models.Record, error)

	// Delete removes id locally and on the remote (or queues the removal).
	Delete(ctx context.Context, store models.StoreName, id string) error

	GetAll(ctx context.Context, store models.StoreName) ([]models.Record, error)
	GetByID(ctx context.Context, store models.StoreName, id string) (models.Record, error)

	// PerformSync drains the outbox against the remote. It is a no-op while
	// offline or while another drain runs.
	PerformSync(ctx context.Context) error

	// Refresh replaces the local copy of store with the remote collection.
	Refresh(ctx context.Context, store models.StoreName) error

	State() models.SyncState

	// Subscribe delivers state snapshots after every change. Slow readers
	// only see the latest snapshot. The returned func unsubscribes and
	// closes the channel.
	Subscribe() (<-chan models.SyncState, func())

	// Close detaches from connectivity events and waits for background
	// drains to finish.
	Close()
}

// ClientSyncJob retries the drain on a ticker.
type ClientSyncJob interface {
	Start(ctx context.Context)
	Stop()
}
