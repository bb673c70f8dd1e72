// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/fia-offline-sync/internal/logger"
	"github.com/MKhiriev/fia-offline-sync/models"
)

func newTestRecordRepo(t *testing.T) (*recordRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	l := logger.Nop()
	repo := &recordRepository{
		DB:     &DB{DB: db, logger: l, errorClassificator: NewPostgresErrorClassifier()},
		logger: l,
	}
	return repo, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestRecordRepository_UpsertBatch_Success(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO records")).
		WithArgs("audits", "a1", `{"id":"a1"}`, "audits", "a2", `{"id":"a2"}`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	n, err := repo.UpsertBatch(context.Background(), models.StoreAudits, []models.Record{rec("a1", `{"id":"a1"}`), rec("a2", `{"id":"a2"}`)})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_UpsertBatch_EmptyIsNoop(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	n, err := repo.UpsertBatch(context.Background(), models.StoreAudits, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_UpsertBatch_ReplayIsSameStatement(t *testing.T) {
	repo, mock := newTestRecordRepo(t)
	batch := []models.Record{
		rec("t1", `{"id":"t1","amount":1}`),
		rec("t1", `{"id":"t1","amount":2}`),
		rec("t2", `{"id":"t2"}`),
	}

	// a replayed batch must hit the same keyed upsert, never a plain insert
	for range 2 {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO records (store,id,payload) VALUES ($1,$2,$3),($4,$5,$6) ON CONFLICT (store, id) DO UPDATE")).
			WithArgs("transactions", "t1", `{"id":"t1","amount":2}`, "transactions", "t2", `{"id":"t2"}`).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()
	}

	first, err := repo.UpsertBatch(context.Background(), models.StoreTransactions, batch)
	require.NoError(t, err)
	second, err := repo.UpsertBatch(context.Background(), models.StoreTransactions, batch)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_UpsertBatch_RetriesDeadlock(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO records").WillReturnError(pgError(pgerrcode.DeadlockDetected))
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO records").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := repo.UpsertBatch(context.Background(), models.StoreTransactions, []models.Record{rec("t1", `{"id":"t1"}`)})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_UpsertBatch_NonRetryableRollsBack(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO records").WillReturnError(pgError(pgerrcode.InvalidTextRepresentation))
	mock.ExpectRollback()

	_, err := repo.UpsertBatch(context.Background(), models.StoreTransactions, []models.Record{rec("t1", `{"id":"t1"}`)})
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_DeleteBatch(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM records WHERE id IN ($1,$2)")).
		WithArgs("c1", "ghost", "complaints").
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.DeleteBatch(context.Background(), models.StoreComplaints, []string{"c1", "ghost"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_GetAll(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	rows := sqlmock.NewRows([]string{"id", "payload"}).
		AddRow("t1", `{"id":"t1"}`).
		AddRow("t2", `{"id":"t2"}`)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, payload::text FROM records")).
		WithArgs("transactions").
		WillReturnRows(rows)

	got, err := repo.GetAll(context.Background(), models.StoreTransactions)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "t2", got[1].ID)
}

func TestRecordRepository_GetAll_QueryError(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	mock.ExpectQuery("SELECT").WillReturnError(sql.ErrConnDone)

	_, err := repo.GetAll(context.Background(), models.StoreTransactions)
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestRecordRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	mock.ExpectQuery("SELECT").
		WithArgs("x", "audits").
		WillReturnRows(sqlmock.NewRows([]string{"id", "payload"}))

	_, err := repo.GetByID(context.Background(), models.StoreAudits, "x")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestPostgresErrorClassifier(t *testing.T) {
	c := NewPostgresErrorClassifier()

	assert.Equal(t, Retryable, c.Classify(pgError(pgerrcode.SerializationFailure)))
	assert.Equal(t, Retryable, c.Classify(pgError(pgerrcode.ConnectionFailure)))
	assert.Equal(t, NonRetryable, c.Classify(pgError(pgerrcode.UniqueViolation)))
	assert.Equal(t, NonRetryable, c.Classify(assert.AnError))
	assert.Equal(t, NonRetryable, c.Classify(nil))
}
