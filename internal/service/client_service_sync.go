// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/fia-offline-sync/internal/adapter"
	"github.com/MKhiriev/fia-offline-sync/internal/config"
	"github.com/MKhiriev/fia-offline-sync/internal/logger"
	"github.com/MKhiriev/fia-offline-sync/internal/store"
	"github.com/MKhiriev/fia-offline-sync/models"
)

type clientSyncService struct {
	localStore store.LocalStorage
	adapter    adapter.RemoteAdapter

	drainMode   models.DrainMode
	maxGroups   int
	syncTimeout time.Duration

	hub     *stateHub
	syncing atomic.Bool

	clockMu   sync.Mutex
	lastStamp time.Time
	now       func() time.Time

	unsubscribe []func()
	bgCtx       context.Context
	bgCancel    context.CancelFunc
	bgWG        sync.WaitGroup

	logger *logger.Logger
}

// NewClientSyncService builds the coordinator over an available local
// store. The initial online flag is read from conn; later changes arrive
// through its callbacks. A transition to online with pending entries
// starts a drain in the background.
func NewClientSyncService(
	ctx context.Context,
	localStore store.LocalStorage,
	remote adapter.RemoteAdapter,
	conn Connectivity,
	cfg config.ClientWorkers,
	log *logger.Logger,
) ClientSyncService {
	return newClientSyncService(ctx, localStore, remote, conn, cfg, log)
}

func newClientSyncService(
	ctx context.Context,
	localStore store.LocalStorage,
	remote adapter.RemoteAdapter,
	conn Connectivity,
	cfg config.ClientWorkers,
	log *logger.Logger,
) *clientSyncService {
	drainMode := cfg.DrainMode
	if drainMode == "" {
		drainMode = models.DrainPerGroup
	}
	maxGroups := cfg.MaxConcurrentGroups
	if maxGroups < 1 {
		maxGroups = len(models.AllStores())
	}

	bgCtx, bgCancel := context.WithCancel(context.WithoutCancel(ctx))
	s := &clientSyncService{
		localStore:  localStore,
		adapter:     remote,
		drainMode:   drainMode,
		maxGroups:   maxGroups,
		syncTimeout: cfg.SyncTimeout,
		hub:         newStateHub(models.SyncState{Online: conn.Online()}),
		now:         time.Now,
		bgCtx:       bgCtx,
		bgCancel:    bgCancel,
		logger:      log,
	}

	s.refreshPending(ctx)
	s.unsubscribe = append(s.unsubscribe,
		conn.OnOnline(s.handleOnline),
		conn.OnOffline(s.handleOffline),
	)

	return s
}

func (s *clientSyncService) handleOnline() {
	state := s.hub.update(func(st *models.SyncState) { st.Online = true })
	s.logger.Info().Str("func", "clientSyncService.handleOnline").Int("pending", state.PendingCount).Msg("back online")

	if state.PendingCount == 0 {
		return
	}

	s.bgWG.Add(1)
	go func() {
		defer s.bgWG.Done()
		if err := s.PerformSync(s.bgCtx); err != nil {
			s.logger.Warn().Err(err).Str("func", "clientSyncService.handleOnline").Msg("drain after reconnect failed")
		}
	}()
}

func (s *clientSyncService) handleOffline() {
	s.hub.update(func(st *models.SyncState) { st.Online = false })
	s.logger.Info().Str("func", "clientSyncService.handleOffline").Msg("offline, writes will be queued")
}

func (s *clientSyncService) isOnline() bool {
	return s.hub.snapshot().Online
}

// stamp returns a strictly increasing time so outbox order follows call
// order even when the wall clock stalls or steps back.
func (s *clientSyncService) stamp() time.Time {
	s.clockMu.Lock()
	defer s.clockMu.Unlock()

	t := s.now()
	if !t.After(s.lastStamp) {
		t = s.lastStamp.Add(time.Nanosecond)
	}
	s.lastStamp = t
	return t
}

func (s *clientSyncService) Add(ctx context.Context, storeName models.StoreName, record models.Record) (models.Record, error) {
	return record, s.write(ctx, storeName, models.ActionCreate, record)
}

func (s *clientSyncService) Update(ctx context.Context, storeName models.StoreName, record models.Record) (models.Record, error) {
	return record, s.write(ctx, storeName, models.ActionUpdate, record)
}

func (s *clientSyncService) write(ctx context.Context, storeName models.StoreName, action models.Action, record models.Record) error {
	if err := validateRecord(storeName, record); err != nil {
		return err
	}

	if err := s.localStore.Put(ctx, storeName, record); err != nil {
		return fmt.Errorf("%w: %w", ErrLocalWriteFailed, err)
	}

	if !s.isOnline() {
		return s.enqueue(ctx, models.NewOutboxEntry(storeName, action, record, s.stamp()))
	}

	err := s.adapter.UpsertBatch(ctx, storeName, []models.Record{record})
	if err == nil {
		return nil
	}

	return s.writeThroughFailed(ctx, err, models.NewOutboxEntry(storeName, action, record, s.stamp()))
}

func (s *clientSyncService) Delete(ctx context.Context, storeName models.StoreName, id string) error {
	if !storeName.Valid() {
		return fmt.Errorf("%w: %q", models.ErrUnknownStore, storeName)
	}
	if id == "" {
		return ErrValidationEmptyRecordID
	}

	if err := s.localStore.Delete(ctx, storeName, id); err != nil {
		return fmt.Errorf("%w: %w", ErrLocalWriteFailed, err)
	}

	if !s.isOnline() {
		return s.enqueue(ctx, models.NewDeleteOutboxEntry(storeName, id, s.stamp()))
	}

	err := s.adapter.DeleteBatch(ctx, storeName, []string{id})
	if err == nil {
		return nil
	}

	return s.writeThroughFailed(ctx, err, models.NewDeleteOutboxEntry(storeName, id, s.stamp()))
}

// writeThroughFailed reports a remote failure of an online write. Retryable
// failures also queue the mutation so the next drain repairs the remote.
func (s *clientSyncService) writeThroughFailed(ctx context.Context, remoteErr error, entry models.OutboxEntry) error {
	mapped := mapAdapterError(remoteErr)
	s.logger.Warn().Err(remoteErr).Str("func", "clientSyncService.writeThroughFailed").
		Str("store", entry.Table.String()).Str("id", entry.Data.RecordID()).Msg("write-through failed")

	if adapter.IsRetryable(remoteErr) {
		if err := s.enqueue(ctx, entry); err != nil {
			return errors.Join(fmt.Errorf("%w: %w", ErrWriteThroughFailed, mapped), err)
		}
	}

	return fmt.Errorf("%w: %w", ErrWriteThroughFailed, mapped)
}

func (s *clientSyncService) enqueue(ctx context.Context, entry models.OutboxEntry) error {
	if err := s.localStore.EnqueueOutbox(ctx, entry); err != nil {
		return fmt.Errorf("%w: queue %s: %w", ErrLocalWriteFailed, entry.ID, err)
	}
	s.refreshPending(ctx)
	return nil
}

// refreshPending recomputes the counter from the outbox.
func (s *clientSyncService) refreshPending(ctx context.Context) {
	n, err := s.localStore.CountOutbox(ctx)
	if err != nil {
		s.logger.Err(err).Str("func", "clientSyncService.refreshPending").Msg("failed to count outbox")
		return
	}
	s.hub.update(func(st *models.SyncState) { st.PendingCount = n })
}

func (s *clientSyncService) GetAll(ctx context.Context, storeName models.StoreName) ([]models.Record, error) {
	if !storeName.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownStore, storeName)
	}
	return s.localStore.GetAll(ctx, storeName)
}

func (s *clientSyncService) GetByID(ctx context.Context, storeName models.StoreName, id string) (models.Record, error) {
	if !storeName.Valid() {
		return models.Record{}, fmt.Errorf("%w: %q", models.ErrUnknownStore, storeName)
	}
	return s.localStore.GetByID(ctx, storeName, id)
}

// Refresh pulls the remote collection into the local store. It refuses to
// overwrite a store that still has queued local changes.
func (s *clientSyncService) Refresh(ctx context.Context, storeName models.StoreName) error {
	if !storeName.Valid() {
		return fmt.Errorf("%w: %q", models.ErrUnknownStore, storeName)
	}
	if !s.isOnline() {
		return ErrOffline
	}

	entries, err := s.localStore.DrainOutbox(ctx)
	if err != nil {
		return fmt.Errorf("read outbox: %w", err)
	}
	for _, e := range entries {
		if e.Table == storeName {
			return fmt.Errorf("%w: %s", ErrPendingChanges, storeName)
		}
	}

	// only a live answer may replace the whole store
	records, err := s.adapter.FetchAll(adapter.WithFreshRead(ctx), storeName)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", storeName, mapAdapterError(err))
	}

	if err = s.localStore.ReplaceAll(ctx, storeName, records); err != nil {
		return fmt.Errorf("%w: %w", ErrLocalWriteFailed, err)
	}

	s.logger.Info().Str("func", "clientSyncService.Refresh").Str("store", storeName.String()).Int("records", len(records)).Msg("store refreshed")
	return nil
}

func (s *clientSyncService) State() models.SyncState {
	return s.hub.snapshot()
}

func (s *clientSyncService) Subscribe() (<-chan models.SyncState, func()) {
	return s.hub.subscribe()
}

func (s *clientSyncService) Close() {
	for _, unsubscribe := range s.unsubscribe {
		unsubscribe()
	}
	s.bgCancel()
	s.bgWG.Wait()
	s.hub.closeAll()
}

func validateRecord(storeName models.StoreName, record models.Record) error {
	if !storeName.Valid() {
		return fmt.Errorf("%w: %q", models.ErrUnknownStore, storeName)
	}
	if record.ID == "" {
		return ErrValidationEmptyRecordID
	}
	if len(record.Payload) == 0 {
		return nil
	}

	var parsed models.Record
	if err := parsed.UnmarshalJSON(record.Payload); err != nil {
		return fmt.Errorf("%w: %w", ErrValidationInvalidPayload, err)
	}
	if parsed.ID != record.ID {
		return fmt.Errorf("%w: payload id %q differs from record id %q", ErrValidationInvalidPayload, parsed.ID, record.ID)
	}
	return nil
}
