// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/fia-offline-sync/internal/logger"
	"github.com/MKhiriev/fia-offline-sync/migrations"
	"github.com/MKhiriev/fia-offline-sync/models"
)

// LocalSQLiteStorage is the SQLite implementation of [LocalStorage].
type LocalSQLiteStorage struct {
	db     *DB
	logger *logger.Logger
	now    func() time.Time
}

// NewLocalStorage opens (and provisions) the local durable store at dsn.
// Every failure is wrapped with [ErrStorageUnavailable].
func NewLocalStorage(ctx context.Context, dsn string, log *logger.Logger) (*LocalSQLiteStorage, error) {
	db, err := NewConnectSQLite(ctx, dsn, migrations.Client, log)
	if err != nil {
		return nil, err
	}

	return newLocalStorage(db, log), nil
}

func newLocalStorage(db *DB, log *logger.Logger) *LocalSQLiteStorage {
	return &LocalSQLiteStorage{db: db, logger: log, now: time.Now}
}

func (s *LocalSQLiteStorage) Provision(ctx context.Context) error {
	if err := s.db.Migrate(); err != nil {
		s.logger.Err(err).Str("func", "LocalSQLiteStorage.Provision").Msg("failed to provision local store")
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return nil
}

func (s *LocalSQLiteStorage) Put(ctx context.Context, store models.StoreName, record models.Record) error {
	if record.ID == "" {
		return models.ErrEmptyRecordID
	}

	query, args, err := buildPutRecordQuery(store, record, s.now())
	if err != nil {
		return err
	}

	err = s.db.withRetry(ctx, func() error {
		_, execErr := s.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		s.logger.Err(err).
			Str("func", "LocalSQLiteStorage.Put").
			Str("store", store.String()).
			Str("id", record.ID).
			Msg("failed to put record")
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}

	return nil
}

func (s *LocalSQLiteStorage) GetAll(ctx context.Context, store models.StoreName) ([]models.Record, error) {
	query, args, err := buildSelectRecordsQuery(store)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Err(err).Str("func", "LocalSQLiteStorage.GetAll").Str("store", store.String()).Msg("failed to query records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.Record, 0)
	for rows.Next() {
		var (
			id      string
			payload string
		)
		if err = rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		records = append(records, models.Record{ID: id, Payload: json.RawMessage(payload)})
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

func (s *LocalSQLiteStorage) GetByID(ctx context.Context, store models.StoreName, id string) (models.Record, error) {
	query, args, err := buildSelectRecordQuery(store, id)
	if err != nil {
		return models.Record{}, err
	}

	var payload string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&id, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, ErrRecordNotFound
	}
	if err != nil {
		s.logger.Err(err).Str("func", "LocalSQLiteStorage.GetByID").Str("store", store.String()).Msg("failed to query record")
		return models.Record{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return models.Record{ID: id, Payload: json.RawMessage(payload)}, nil
}

func (s *LocalSQLiteStorage) Delete(ctx context.Context, store models.StoreName, id string) error {
	query, args, err := buildDeleteRecordQuery(store, id)
	if err != nil {
		return err
	}

	err = s.db.withRetry(ctx, func() error {
		_, execErr := s.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		s.logger.Err(err).Str("func", "LocalSQLiteStorage.Delete").Str("store", store.String()).Str("id", id).Msg("failed to delete record")
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}

	return nil
}

func (s *LocalSQLiteStorage) ReplaceAll(ctx context.Context, store models.StoreName, records []models.Record) error {
	clearQuery, _, err := buildClearStoreQuery(store)
	if err != nil {
		return err
	}

	at := s.now()
	err = s.db.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, clearQuery); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		for _, r := range records {
			query, args, err := buildPutRecordQuery(store, r, at)
			if err != nil {
				return err
			}
			if _, err = tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Err(err).Str("func", "LocalSQLiteStorage.ReplaceAll").Str("store", store.String()).Int("count", len(records)).Msg("failed to replace store")
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}

	return nil
}

func (s *LocalSQLiteStorage) CountOutbox(ctx context.Context) (int, error) {
	query, args, err := buildCountOutboxQuery()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var n int
	if err = s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return n, nil
}

func (s *LocalSQLiteStorage) EnqueueOutbox(ctx context.Context, entry models.OutboxEntry) error {
	query, args, err := buildEnqueueOutboxQuery(entry)
	if err != nil {
		return err
	}

	err = s.db.withRetry(ctx, func() error {
		_, execErr := s.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		s.logger.Err(err).
			Str("func", "LocalSQLiteStorage.EnqueueOutbox").
			Str("entry_id", entry.ID).
			Str("action", string(entry.Action)).
			Msg("failed to enqueue outbox entry")
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}

	return nil
}

// DrainOutbox returns the outbox in order. Rows that no longer decode are
// moved to the rejected table so they cannot block later drains.
func (s *LocalSQLiteStorage) DrainOutbox(ctx context.Context) ([]models.OutboxEntry, error) {
	entries, corrupt, err := s.readOutbox(ctx)
	if err != nil {
		return nil, err
	}

	if len(corrupt) > 0 {
		if err = s.rejectOutboxEntries(ctx, corrupt); err != nil {
			s.logger.Err(err).Str("func", "LocalSQLiteStorage.DrainOutbox").Int("count", len(corrupt)).Msg("failed to move corrupt outbox entries aside")
		}
	}

	return entries, nil
}

type rejectedEntry struct {
	id, store, action, data string
	createdAt               int64
	reason                  string
}

func (s *LocalSQLiteStorage) readOutbox(ctx context.Context) ([]models.OutboxEntry, []rejectedEntry, error) {
	query, args, err := buildDrainOutboxQuery()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Err(err).Str("func", "LocalSQLiteStorage.DrainOutbox").Msg("failed to query outbox")
		return nil, nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.OutboxEntry, 0)
	var corrupt []rejectedEntry
	for rows.Next() {
		var (
			id, store, action, data string
			createdAt               int64
		)
		if err = rows.Scan(&id, &store, &action, &data, &createdAt); err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		mutation, decodeErr := models.DecodeMutation(models.Action(action), []byte(data))
		if decodeErr != nil {
			s.logger.Err(decodeErr).Str("func", "LocalSQLiteStorage.DrainOutbox").Str("entry_id", id).Msg("corrupt outbox entry rejected")
			corrupt = append(corrupt, rejectedEntry{
				id: id, store: store, action: action, data: data,
				createdAt: createdAt, reason: decodeErr.Error(),
			})
			continue
		}

		entries = append(entries, models.OutboxEntry{
			ID:        id,
			Table:     models.StoreName(store),
			Action:    models.Action(action),
			Data:      mutation,
			Timestamp: time.Unix(0, createdAt),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, corrupt, nil
}

// rejectOutboxEntries must run after the outbox rows are closed: the
// database holds a single connection.
func (s *LocalSQLiteStorage) rejectOutboxEntries(ctx context.Context, rejected []rejectedEntry) error {
	now := s.now()
	return s.db.inTx(ctx, func(tx *sql.Tx) error {
		ids := make([]string, len(rejected))
		for i, r := range rejected {
			query, args, err := buildRejectOutboxQuery(r.id, r.store, r.action, r.data, r.createdAt, r.reason, now)
			if err != nil {
				return err
			}
			if _, err = tx.ExecContext(ctx, query, args...); err != nil {
				return err
			}
			ids[i] = r.id
		}

		query, args, err := buildRemoveOutboxQuery(ids)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, query, args...)
		return err
	})
}

// RejectedOutbox lists the ids of outbox entries moved aside as corrupt.
func (s *LocalSQLiteStorage) RejectedOutbox(ctx context.Context) ([]string, error) {
	query, args, err := buildRejectedOutboxQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return ids, nil
}

func (s *LocalSQLiteStorage) RemoveOutboxEntries(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := buildRemoveOutboxQuery(ids)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = s.db.inTx(ctx, func(tx *sql.Tx) error {
		_, execErr := tx.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		s.logger.Err(err).Str("func", "LocalSQLiteStorage.RemoveOutboxEntries").Int("count", len(ids)).Msg("failed to remove outbox entries")
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}

	return nil
}

func (s *LocalSQLiteStorage) Reset(ctx context.Context) error {
	err := s.db.inTx(ctx, func(tx *sql.Tx) error {
		for _, store := range models.AllStores() {
			query, _, err := buildClearStoreQuery(store)
			if err != nil {
				return err
			}
			if _, err = tx.ExecContext(ctx, query); err != nil {
				return err
			}
		}
		_, err := tx.ExecContext(ctx, "DELETE FROM "+outboxTable)
		return err
	})
	if err != nil {
		s.logger.Err(err).Str("func", "LocalSQLiteStorage.Reset").Msg("failed to reset local store")
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}

	s.logger.Info().Str("func", "LocalSQLiteStorage.Reset").Msg("local store cleared")
	return nil
}

func (s *LocalSQLiteStorage) Close() error {
	return s.db.Close()
}
