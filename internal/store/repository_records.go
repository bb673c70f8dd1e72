// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/fia-offline-sync/internal/logger"
	"github.com/MKhiriev/fia-offline-sync/models"
)

// recordRepository is the PostgreSQL-backed [RecordRepository]. Every
// store shares the "records" table, keyed by (store, id).
//
// Methods log through the request-scoped logger from [logger.FromContext].
type recordRepository struct {
	*DB
	logger *logger.Logger
}

func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	return &recordRepository{
		DB:     db,
		logger: logger,
	}
}

// UpsertBatch writes the whole batch in one transaction. Transient
// PostgreSQL failures are retried.
func (r *recordRepository) UpsertBatch(ctx context.Context, store models.StoreName, records []models.Record) (int, error) {
	log := logger.FromContext(ctx)

	if len(records) == 0 {
		return 0, nil
	}

	query, args, err := buildUpsertRecordsQuery(store, records)
	if err != nil {
		log.Err(err).Str("func", "recordRepository.UpsertBatch").Str("store", store.String()).Msg("failed to build query")
		return 0, err
	}

	var affected int64
	err = r.withRetry(ctx, func() error {
		return r.inTx(ctx, func(tx *sql.Tx) error {
			res, execErr := tx.ExecContext(ctx, query, args...)
			if execErr != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
			}
			affected, execErr = res.RowsAffected()
			return execErr
		})
	})
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.UpsertBatch").
			Str("store", store.String()).
			Int("count", len(records)).
			Str("pg_code", postgresError(err)).
			Msg("failed to upsert records")
		return 0, err
	}

	return int(affected), nil
}

func (r *recordRepository) DeleteBatch(ctx context.Context, store models.StoreName, ids []string) (int, error) {
	log := logger.FromContext(ctx)

	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := buildDeleteRecordsQuery(store, ids)
	if err != nil {
		return 0, err
	}

	var affected int64
	err = r.withRetry(ctx, func() error {
		res, execErr := r.ExecContext(ctx, query, args...)
		if execErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}
		affected, execErr = res.RowsAffected()
		return execErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.DeleteBatch").
			Str("store", store.String()).
			Int("count", len(ids)).
			Msg("failed to delete records")
		return 0, err
	}

	return int(affected), nil
}

func (r *recordRepository) GetAll(ctx context.Context, store models.StoreName) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectStoreRecordsQuery(store)
	if err != nil {
		return nil, err
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "recordRepository.GetAll").Str("store", store.String()).Msg("failed to query records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.Record, 0, 50)
	for rows.Next() {
		var id, payload string
		if err = rows.Scan(&id, &payload); err != nil {
			log.Err(err).Str("func", "recordRepository.GetAll").Msg("failed to scan record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		records = append(records, models.Record{ID: id, Payload: json.RawMessage(payload)})
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "recordRepository.GetAll").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

func (r *recordRepository) GetByID(ctx context.Context, store models.StoreName, id string) (models.Record, error) {
	query, args, err := buildSelectStoreRecordQuery(store, id)
	if err != nil {
		return models.Record{}, err
	}

	var payload string
	err = r.QueryRowContext(ctx, query, args...).Scan(&id, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, ErrRecordNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "recordRepository.GetByID").Str("store", store.String()).Msg("failed to query record")
		return models.Record{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return models.Record{ID: id, Payload: json.RawMessage(payload)}, nil
}

func (r *recordRepository) Ping(ctx context.Context) error {
	return r.PingContext(ctx)
}
