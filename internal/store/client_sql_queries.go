// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/fia-offline-sync/models"
)

const (
	outboxTable         = "pending_sync"
	rejectedOutboxTable = "pending_sync_rejected"
)

// sqlite uses "?" placeholders.
var sqlite = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func storeTable(store models.StoreName) (string, error) {
	if !store.Valid() {
		return "", fmt.Errorf("%w: %q", models.ErrUnknownStore, store)
	}
	return string(store), nil
}

func buildPutRecordQuery(store models.StoreName, record models.Record, at time.Time) (string, []any, error) {
	table, err := storeTable(store)
	if err != nil {
		return "", nil, err
	}

	return sqlite.Insert(table).
		Columns("id", "payload", "updated_at").
		Values(record.ID, string(record.Payload), at.UTC()).
		Suffix("ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at").
		ToSql()
}

func buildSelectRecordsQuery(store models.StoreName) (string, []any, error) {
	table, err := storeTable(store)
	if err != nil {
		return "", nil, err
	}

	return sqlite.Select("id", "payload").From(table).OrderBy("rowid").ToSql()
}

func buildSelectRecordQuery(store models.StoreName, id string) (string, []any, error) {
	table, err := storeTable(store)
	if err != nil {
		return "", nil, err
	}

	return sqlite.Select("id", "payload").From(table).Where(sq.Eq{"id": id}).ToSql()
}

func buildDeleteRecordQuery(store models.StoreName, id string) (string, []any, error) {
	table, err := storeTable(store)
	if err != nil {
		return "", nil, err
	}

	return sqlite.Delete(table).Where(sq.Eq{"id": id}).ToSql()
}

func buildClearStoreQuery(store models.StoreName) (string, []any, error) {
	table, err := storeTable(store)
	if err != nil {
		return "", nil, err
	}

	return sqlite.Delete(table).ToSql()
}

func buildEnqueueOutboxQuery(entry models.OutboxEntry) (string, []any, error) {
	if !entry.Table.Valid() {
		return "", nil, fmt.Errorf("%w: %q", models.ErrUnknownStore, entry.Table)
	}
	if !entry.Action.Valid() {
		return "", nil, fmt.Errorf("%w: %q", models.ErrUnknownAction, entry.Action)
	}

	data, err := models.EncodeMutation(entry.Data)
	if err != nil {
		return "", nil, err
	}

	return sqlite.Insert(outboxTable).
		Columns("id", "store", "record_id", "action", "data", "created_at").
		Values(entry.ID, string(entry.Table), entry.Data.RecordID(), string(entry.Action), string(data), entry.Timestamp.UnixNano()).
		ToSql()
}

func buildDrainOutboxQuery() (string, []any, error) {
	return sqlite.Select("id", "store", "action", "data", "created_at").
		From(outboxTable).
		OrderBy("created_at", "seq").
		ToSql()
}

func buildCountOutboxQuery() (string, []any, error) {
	return sqlite.Select("COUNT(*)").From(outboxTable).ToSql()
}

func buildRemoveOutboxQuery(ids []string) (string, []any, error) {
	return sqlite.Delete(outboxTable).Where(sq.Eq{"id": ids}).ToSql()
}

func buildRejectOutboxQuery(id, store, action, data string, createdAt int64, reason string, at time.Time) (string, []any, error) {
	return sqlite.Insert(rejectedOutboxTable).
		Columns("id", "store", "action", "data", "created_at", "reason", "rejected_at").
		Values(id, store, action, data, createdAt, reason, at.UnixNano()).
		Suffix("ON CONFLICT(id) DO NOTHING").
		ToSql()
}

func buildRejectedOutboxQuery() (string, []any, error) {
	return sqlite.Select("id").From(rejectedOutboxTable).OrderBy("created_at").ToSql()
}

const (
	cacheTable   = "cache_entries"
	requestTable = "pending_requests"
)

func buildPutResponseQuery(resp models.CachedResponse, header []byte) (string, []any, error) {
	return sqlite.Insert(cacheTable).
		Columns("version", "key", "method", "url", "status_code", "header", "body", "stored_at").
		Values(resp.Version, resp.Key, resp.Method, resp.URL, resp.StatusCode, string(header), resp.Body, resp.StoredAt.UnixNano()).
		Suffix("ON CONFLICT(version, key) DO UPDATE SET " +
			"method = excluded.method, url = excluded.url, status_code = excluded.status_code, " +
			"header = excluded.header, body = excluded.body, stored_at = excluded.stored_at").
		ToSql()
}

func buildGetResponseQuery(version, key string) (string, []any, error) {
	return sqlite.Select("version", "key", "method", "url", "status_code", "header", "body", "stored_at").
		From(cacheTable).
		Where(sq.Eq{"version": version, "key": key}).
		ToSql()
}

func buildVersionsQuery() (string, []any, error) {
	return sqlite.Select("DISTINCT version").From(cacheTable).OrderBy("version").ToSql()
}

func buildDeleteVersionsExceptQuery(keep string) (string, []any, error) {
	return sqlite.Delete(cacheTable).Where(sq.NotEq{"version": keep}).ToSql()
}

func buildEnqueueRequestQuery(req models.PendingRequest, header []byte) (string, []any, error) {
	return sqlite.Insert(requestTable).
		Columns("id", "tag", "method", "url", "header", "body", "created_at").
		Values(req.ID, req.Tag, req.Method, req.URL, string(header), req.Body, req.CreatedAt.UnixNano()).
		ToSql()
}

func buildPendingRequestsQuery(tag string) (string, []any, error) {
	q := sqlite.Select("id", "tag", "method", "url", "header", "body", "created_at").
		From(requestTable).
		OrderBy("created_at", "seq")
	if tag != "" {
		q = q.Where(sq.Eq{"tag": tag})
	}
	return q.ToSql()
}

func buildPendingTagsQuery() (string, []any, error) {
	return sqlite.Select("DISTINCT tag").From(requestTable).OrderBy("tag").ToSql()
}

func buildRemoveRequestQuery(id string) (string, []any, error) {
	return sqlite.Delete(requestTable).Where(sq.Eq{"id": id}).ToSql()
}

func buildCountRequestsQuery() (string, []any, error) {
	return sqlite.Select("COUNT(*)").From(requestTable).ToSql()
}

