// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/fia-offline-sync/models"
)

const recordsTable = "records"

var postgres = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// lastWins drops earlier occurrences of repeated ids, keeping the position
// of the last one. PostgreSQL refuses to upsert the same key twice in one
// statement.
func lastWins(records []models.Record) []models.Record {
	last := make(map[string]int, len(records))
	for i, r := range records {
		last[r.ID] = i
	}

	out := make([]models.Record, 0, len(last))
	for i, r := range records {
		if last[r.ID] == i {
			out = append(out, r)
		}
	}
	return out
}

func buildUpsertRecordsQuery(store models.StoreName, records []models.Record) (string, []any, error) {
	if !store.Valid() {
		return "", nil, fmt.Errorf("%w: %q", models.ErrUnknownStore, store)
	}
	if len(records) == 0 {
		return "", nil, fmt.Errorf("%w: empty batch", ErrBuildingSQLQuery)
	}

	q := postgres.Insert(recordsTable).Columns("store", "id", "payload")
	for _, r := range lastWins(records) {
		q = q.Values(string(store), r.ID, string(r.Payload))
	}

	return q.Suffix("ON CONFLICT (store, id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()").ToSql()
}

func buildDeleteRecordsQuery(store models.StoreName, ids []string) (string, []any, error) {
	if !store.Valid() {
		return "", nil, fmt.Errorf("%w: %q", models.ErrUnknownStore, store)
	}

	return postgres.Delete(recordsTable).
		Where(sq.Eq{"store": string(store), "id": ids}).
		ToSql()
}

func buildSelectStoreRecordsQuery(store models.StoreName) (string, []any, error) {
	if !store.Valid() {
		return "", nil, fmt.Errorf("%w: %q", models.ErrUnknownStore, store)
	}

	return postgres.Select("id", "payload::text").
		From(recordsTable).
		Where(sq.Eq{"store": string(store)}).
		OrderBy("created_at", "id").
		ToSql()
}

func buildSelectStoreRecordQuery(store models.StoreName, id string) (string, []any, error) {
	if !store.Valid() {
		return "", nil, fmt.Errorf("%w: %q", models.ErrUnknownStore, store)
	}

	return postgres.Select("id", "payload::text").
		From(recordsTable).
		Where(sq.Eq{"store": string(store), "id": id}).
		ToSql()
}
