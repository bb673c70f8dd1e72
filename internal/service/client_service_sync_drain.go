// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/fia-offline-sync/models"
)

// storeBatch is the part of one drain that targets a single store.
type storeBatch struct {
	store   models.StoreName
	entries []models.OutboxEntry
}

// upserts returns every create/update payload in outbox order, leaving out
// records whose last queued action is a delete.
func (b storeBatch) upserts() []models.Record {
	last := b.lastPositions()
	records := make([]models.Record, 0, len(b.entries))
	for _, e := range b.entries {
		full, ok := e.Data.(models.FullRecord)
		if !ok || b.entries[last[full.Record.ID]].Action == models.ActionDelete {
			continue
		}
		records = append(records, full.Record)
	}
	return records
}

// deletes returns ids whose last queued action is a delete, ordered by that
// last action.
func (b storeBatch) deletes() []string {
	last := b.lastPositions()
	var ids []string
	for i, e := range b.entries {
		if e.Action == models.ActionDelete && last[e.Data.RecordID()] == i {
			ids = append(ids, e.Data.RecordID())
		}
	}
	return ids
}

// lastPositions maps every record id to the index of its latest entry.
func (b storeBatch) lastPositions() map[string]int {
	last := make(map[string]int, len(b.entries))
	for i, e := range b.entries {
		last[e.Data.RecordID()] = i
	}
	return last
}

func (b storeBatch) ids() []string {
	ids := make([]string, len(b.entries))
	for i, e := range b.entries {
		ids[i] = e.ID
	}
	return ids
}

// groupByStore splits entries per store, keeping outbox order inside each
// group and first-appearance order between groups.
func groupByStore(entries []models.OutboxEntry) []storeBatch {
	index := make(map[models.StoreName]int)
	var batches []storeBatch
	for _, e := range entries {
		i, ok := index[e.Table]
		if !ok {
			i = len(batches)
			index[e.Table] = i
			batches = append(batches, storeBatch{store: e.Table})
		}
		batches[i].entries = append(batches[i].entries, e)
	}
	return batches
}

// PerformSync drains the outbox: one upsert batch and at most one delete
// batch per store, stores in parallel. Entries are removed only after the
// remote confirmed them, per store or all at once depending on the drain
// mode.
func (s *clientSyncService) PerformSync(ctx context.Context) error {
	if !s.isOnline() {
		return nil
	}
	if !s.syncing.CompareAndSwap(false, true) {
		s.logger.Debug().Str("func", "clientSyncService.PerformSync").Msg("drain already running")
		return nil
	}
	defer s.syncing.Store(false)

	s.hub.update(func(st *models.SyncState) { st.Syncing = true })

	if s.syncTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.syncTimeout)
		defer cancel()
	}

	err := s.drain(ctx)
	s.finishSync(ctx, err)
	return err
}

func (s *clientSyncService) drain(ctx context.Context) error {
	entries, err := s.localStore.DrainOutbox(ctx)
	if err != nil {
		return fmt.Errorf("read outbox: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	batches := groupByStore(entries)
	s.logger.Info().Str("func", "clientSyncService.drain").Int("entries", len(entries)).Int("stores", len(batches)).
		Str("mode", string(s.drainMode)).Msg("draining outbox")

	var (
		mu        sync.Mutex
		confirmed []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxGroups)
	for _, batch := range batches {
		g.Go(func() error {
			if err := s.pushBatch(gctx, batch); err != nil {
				return fmt.Errorf("sync %s: %w", batch.store, err)
			}

			if s.drainMode == models.DrainAllOrNothing {
				mu.Lock()
				confirmed = append(confirmed, batch.ids()...)
				mu.Unlock()
				return nil
			}

			// The remote already has these; a sibling failure must not
			// cancel their removal.
			if err := s.localStore.RemoveOutboxEntries(context.WithoutCancel(gctx), batch.ids()...); err != nil {
				return fmt.Errorf("remove synced %s entries: %w", batch.store, err)
			}
			return nil
		})
	}

	if err = g.Wait(); err != nil {
		return err
	}

	if len(confirmed) > 0 {
		if err = s.localStore.RemoveOutboxEntries(context.WithoutCancel(ctx), confirmed...); err != nil {
			return fmt.Errorf("remove synced entries: %w", err)
		}
	}
	return nil
}

func (s *clientSyncService) pushBatch(ctx context.Context, batch storeBatch) error {
	if records := batch.upserts(); len(records) > 0 {
		if err := s.adapter.UpsertBatch(ctx, batch.store, records); err != nil {
			return mapAdapterError(err)
		}
	}
	if ids := batch.deletes(); len(ids) > 0 {
		if err := s.adapter.DeleteBatch(ctx, batch.store, ids); err != nil {
			return mapAdapterError(err)
		}
	}
	return nil
}

// finishSync records the outcome and recomputes the pending counter from
// the outbox, whatever happened.
func (s *clientSyncService) finishSync(ctx context.Context, err error) {
	n, countErr := s.localStore.CountOutbox(context.WithoutCancel(ctx))
	if countErr != nil {
		s.logger.Err(countErr).Str("func", "clientSyncService.finishSync").Msg("failed to count outbox")
	}

	if err != nil {
		s.logger.Err(err).Str("func", "clientSyncService.finishSync").Msg("drain failed")
	}

	now := s.now()
	s.hub.update(func(st *models.SyncState) {
		st.Syncing = false
		st.LastError = err
		if err == nil {
			st.LastSyncAt = &now
		}
		if countErr == nil {
			st.PendingCount = n
		}
	})
}
