// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

//go:build integration

package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/MKhiriev/fia-offline-sync/internal/logger"
	"github.com/MKhiriev/fia-offline-sync/models"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "fia",
				"POSTGRES_PASSWORD": "fia",
				"POSTGRES_DB":       "fia",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://fia:fia@%s:%s/fia?sslmode=disable", host, port.Port())
}

func TestRecordRepository_Postgres(t *testing.T) {
	ctx := context.Background()

	storages, err := NewStorages(ctx, startPostgres(t), logger.Nop())
	require.NoError(t, err)
	defer storages.Close()

	repo := storages.RecordRepository

	n, err := repo.UpsertBatch(ctx, models.StoreTransactions, []models.Record{
		rec("t1", `{"id":"t1","amount":500}`),
		rec("t1", `{"id":"t1","amount":700}`),
		rec("t2", `{"id":"t2","amount":1}`),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := repo.GetByID(ctx, models.StoreTransactions, "t1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"t1","amount":700}`, string(got.Payload))

	_, err = repo.DeleteBatch(ctx, models.StoreTransactions, []string{"t2", "ghost"})
	require.NoError(t, err)

	all, err := repo.GetAll(ctx, models.StoreTransactions)
	require.NoError(t, err)
	require.Len(t, all, 1)

	_, err = repo.GetByID(ctx, models.StoreAudits, "t1")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestRecordRepository_Postgres_ReplayedBatchIsIdempotent(t *testing.T) {
	ctx := context.Background()

	storages, err := NewStorages(ctx, startPostgres(t), logger.Nop())
	require.NoError(t, err)
	defer storages.Close()

	repo := storages.RecordRepository
	batch := []models.Record{
		rec("a1", `{"id":"a1","score":3}`),
		rec("a2", `{"id":"a2"}`),
		rec("a1", `{"id":"a1","score":4}`),
	}

	_, err = repo.UpsertBatch(ctx, models.StoreAudits, batch)
	require.NoError(t, err)
	once, err := repo.GetAll(ctx, models.StoreAudits)
	require.NoError(t, err)

	_, err = repo.UpsertBatch(ctx, models.StoreAudits, batch)
	require.NoError(t, err)
	twice, err := repo.GetAll(ctx, models.StoreAudits)
	require.NoError(t, err)

	require.Len(t, twice, 2)
	assert.Equal(t, once, twice)

	got, err := repo.GetByID(ctx, models.StoreAudits, "a1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"a1","score":4}`, string(got.Payload))
}
