// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/fia-offline-sync/internal/logger"
	"github.com/MKhiriev/fia-offline-sync/migrations"
	"github.com/MKhiriev/fia-offline-sync/models"
)

// WorkerSQLiteStorage is the SQLite implementation of [WorkerStorage].
type WorkerSQLiteStorage struct {
	db     *DB
	logger *logger.Logger
}

// NewWorkerStorage opens the request cache database at dsn.
func NewWorkerStorage(ctx context.Context, dsn string, log *logger.Logger) (*WorkerSQLiteStorage, error) {
	db, err := NewConnectSQLite(ctx, dsn, migrations.Worker, log)
	if err != nil {
		return nil, err
	}

	return &WorkerSQLiteStorage{db: db, logger: log}, nil
}

func (w *WorkerSQLiteStorage) PutResponse(ctx context.Context, resp models.CachedResponse) error {
	return w.PutResponses(ctx, []models.CachedResponse{resp})
}

func (w *WorkerSQLiteStorage) PutResponses(ctx context.Context, resps []models.CachedResponse) error {
	err := w.db.inTx(ctx, func(tx *sql.Tx) error {
		for _, resp := range resps {
			header, err := json.Marshal(resp.Header)
			if err != nil {
				return fmt.Errorf("encode header of %s: %w", resp.URL, err)
			}

			query, args, err := buildPutResponseQuery(resp, header)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}
			if _, err = tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}
		return nil
	})
	if err != nil {
		w.logger.Err(err).Str("func", "WorkerSQLiteStorage.PutResponses").Int("count", len(resps)).Msg("failed to store responses")
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}

	return nil
}

func (w *WorkerSQLiteStorage) GetResponse(ctx context.Context, version, key string) (models.CachedResponse, error) {
	query, args, err := buildGetResponseQuery(version, key)
	if err != nil {
		return models.CachedResponse{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		resp     models.CachedResponse
		header   string
		storedAt int64
	)
	err = w.db.QueryRowContext(ctx, query, args...).
		Scan(&resp.Version, &resp.Key, &resp.Method, &resp.URL, &resp.StatusCode, &header, &resp.Body, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CachedResponse{}, ErrCacheMiss
	}
	if err != nil {
		return models.CachedResponse{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if resp.Header, err = decodeHeader(header); err != nil {
		return models.CachedResponse{}, err
	}
	resp.StoredAt = time.Unix(0, storedAt)

	return resp, nil
}

func (w *WorkerSQLiteStorage) Versions(ctx context.Context) ([]string, error) {
	query, args, err := buildVersionsQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := w.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var versions []string
	for rows.Next() {
		var v string
		if err = rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		versions = append(versions, v)
	}

	return versions, rows.Err()
}

func (w *WorkerSQLiteStorage) DeleteVersionsExcept(ctx context.Context, keep string) (int64, error) {
	query, args, err := buildDeleteVersionsExceptQuery(keep)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := w.db.ExecContext(ctx, query, args...)
	if err != nil {
		w.logger.Err(err).Str("func", "WorkerSQLiteStorage.DeleteVersionsExcept").Str("keep", keep).Msg("failed to delete old cache versions")
		return 0, fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}

	return res.RowsAffected()
}

func (w *WorkerSQLiteStorage) EnqueueRequest(ctx context.Context, req models.PendingRequest) error {
	header, err := json.Marshal(req.Header)
	if err != nil {
		return fmt.Errorf("encode header of %s: %w", req.URL, err)
	}

	query, args, err := buildEnqueueRequestQuery(req, header)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = w.db.withRetry(ctx, func() error {
		_, execErr := w.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		w.logger.Err(err).Str("func", "WorkerSQLiteStorage.EnqueueRequest").Str("tag", req.Tag).Str("url", req.URL).Msg("failed to queue request")
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}

	return nil
}

func (w *WorkerSQLiteStorage) PendingRequests(ctx context.Context, tag string) ([]models.PendingRequest, error) {
	query, args, err := buildPendingRequestsQuery(tag)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := w.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	requests := make([]models.PendingRequest, 0)
	for rows.Next() {
		var (
			req       models.PendingRequest
			header    string
			createdAt int64
		)
		if err = rows.Scan(&req.ID, &req.Tag, &req.Method, &req.URL, &header, &req.Body, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if req.Header, err = decodeHeader(header); err != nil {
			return nil, err
		}
		req.CreatedAt = time.Unix(0, createdAt)
		requests = append(requests, req)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return requests, nil
}

func (w *WorkerSQLiteStorage) PendingTags(ctx context.Context) ([]string, error) {
	query, args, err := buildPendingTagsQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := w.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	tags := make([]string, 0)
	for rows.Next() {
		var tag string
		if err = rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		tags = append(tags, tag)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return tags, nil
}

func (w *WorkerSQLiteStorage) RemoveRequest(ctx context.Context, id string) error {
	query, args, err := buildRemoveRequestQuery(id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = w.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	return nil
}

func (w *WorkerSQLiteStorage) CountRequests(ctx context.Context) (int, error) {
	query, args, err := buildCountRequestsQuery()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var n int
	if err = w.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return n, nil
}

func (w *WorkerSQLiteStorage) Close() error {
	return w.db.Close()
}

func decodeHeader(raw string) (http.Header, error) {
	header := make(http.Header)
	if raw == "" || raw == "null" {
		return header, nil
	}
	if err := json.Unmarshal([]byte(raw), &header); err != nil {
		return nil, fmt.Errorf("decode stored header: %w", err)
	}
	return header, nil
}
