// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/fia-offline-sync/internal/adapter"
	"github.com/MKhiriev/fia-offline-sync/internal/logger"
	"github.com/MKhiriev/fia-offline-sync/models"
)

// onlineOnlySyncService is the coordinator used when local storage is
// unavailable. Every call goes to the remote; nothing is queued.
type onlineOnlySyncService struct {
	adapter     adapter.RemoteAdapter
	hub         *stateHub
	unsubscribe []func()
	logger      *logger.Logger
}

// NewOnlineOnlySyncService builds the degraded coordinator. localErr is the
// storage failure that caused the degradation and is exposed as LastError.
func NewOnlineOnlySyncService(remote adapter.RemoteAdapter, conn Connectivity, localErr error, log *logger.Logger) ClientSyncService {
	s := &onlineOnlySyncService{
		adapter: remote,
		hub: newStateHub(models.SyncState{
			Online:     conn.Online(),
			OnlineOnly: true,
			LastError:  localErr,
		}),
		logger: log,
	}
	s.unsubscribe = append(s.unsubscribe,
		conn.OnOnline(func() { s.hub.update(func(st *models.SyncState) { st.Online = true }) }),
		conn.OnOffline(func() { s.hub.update(func(st *models.SyncState) { st.Online = false }) }),
	)

	log.Warn().Err(localErr).Str("func", "NewOnlineOnlySyncService").Msg("local storage unavailable, running online only")
	return s
}

func (s *onlineOnlySyncService) Add(ctx context.Context, storeName models.StoreName, record models.Record) (models.Record, error) {
	return record, s.upsert(ctx, storeName, record)
}

func (s *onlineOnlySyncService) Update(ctx context.Context, storeName models.StoreName, record models.Record) (models.Record, error) {
	return record, s.upsert(ctx, storeName, record)
}

func (s *onlineOnlySyncService) upsert(ctx context.Context, storeName models.StoreName, record models.Record) error {
	if err := validateRecord(storeName, record); err != nil {
		return err
	}
	if err := s.adapter.UpsertBatch(ctx, storeName, []models.Record{record}); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteThroughFailed, mapAdapterError(err))
	}
	return nil
}

func (s *onlineOnlySyncService) Delete(ctx context.Context, storeName models.StoreName, id string) error {
	if !storeName.Valid() {
		return fmt.Errorf("%w: %q", models.ErrUnknownStore, storeName)
	}
	if id == "" {
		return ErrValidationEmptyRecordID
	}
	if err := s.adapter.DeleteBatch(ctx, storeName, []string{id}); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteThroughFailed, mapAdapterError(err))
	}
	return nil
}

func (s *onlineOnlySyncService) GetAll(ctx context.Context, storeName models.StoreName) ([]models.Record, error) {
	if !storeName.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownStore, storeName)
	}
	records, err := s.adapter.FetchAll(ctx, storeName)
	if err != nil {
		return nil, mapAdapterError(err)
	}
	return records, nil
}

func (s *onlineOnlySyncService) GetByID(ctx context.Context, storeName models.StoreName, id string) (models.Record, error) {
	if !storeName.Valid() {
		return models.Record{}, fmt.Errorf("%w: %q", models.ErrUnknownStore, storeName)
	}
	record, err := s.adapter.FetchByID(ctx, storeName, id)
	if err != nil {
		return models.Record{}, mapAdapterError(err)
	}
	return record, nil
}

// PerformSync has nothing to drain.
func (s *onlineOnlySyncService) PerformSync(context.Context) error { return nil }

// Refresh has no local copy to refresh.
func (s *onlineOnlySyncService) Refresh(_ context.Context, storeName models.StoreName) error {
	if !storeName.Valid() {
		return fmt.Errorf("%w: %q", models.ErrUnknownStore, storeName)
	}
	return nil
}

func (s *onlineOnlySyncService) State() models.SyncState {
	return s.hub.snapshot()
}

func (s *onlineOnlySyncService) Subscribe() (<-chan models.SyncState, func()) {
	return s.hub.subscribe()
}

func (s *onlineOnlySyncService) Close() {
	for _, unsubscribe := range s.unsubscribe {
		unsubscribe()
	}
	s.hub.closeAll()
}
