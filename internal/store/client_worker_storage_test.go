// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/fia-offline-sync/internal/logger"
	"github.com/MKhiriev/fia-offline-sync/models"
)

func newTestWorkerStorage(t *testing.T) *WorkerSQLiteStorage {
	t.Helper()
	w, err := NewWorkerStorage(context.Background(), filepath.Join(t.TempDir(), "worker.db"), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func TestWorkerStorage_ResponsesByVersion(t *testing.T) {
	ctx := context.Background()
	w := newTestWorkerStorage(t)

	resp := models.CachedResponse{
		Version:    "v1",
		Key:        "k1",
		Method:     http.MethodGet,
		URL:        "http://origin/index.html",
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": {"text/html"}},
		Body:       []byte("<html></html>"),
		StoredAt:   time.Unix(1700000000, 0),
	}
	require.NoError(t, w.PutResponses(ctx, []models.CachedResponse{resp, {Version: "v0", Key: "k1", Method: "GET", URL: "u", StatusCode: 200}}))

	got, err := w.GetResponse(ctx, "v1", "k1")
	require.NoError(t, err)
	assert.Equal(t, resp.Body, got.Body)
	assert.Equal(t, "text/html", got.Header.Get("Content-Type"))
	assert.True(t, got.StoredAt.Equal(resp.StoredAt))

	_, err = w.GetResponse(ctx, "v2", "k1")
	assert.ErrorIs(t, err, ErrCacheMiss)

	versions, err := w.Versions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"v0", "v1"}, versions)

	removed, err := w.DeleteVersionsExcept(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	versions, err = w.Versions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"v1"}, versions)
}

func TestWorkerStorage_PutResponseOverwrites(t *testing.T) {
	ctx := context.Background()
	w := newTestWorkerStorage(t)

	base := models.CachedResponse{Version: "v1", Key: "k", Method: "GET", URL: "u", StatusCode: 200, Body: []byte("a")}
	require.NoError(t, w.PutResponse(ctx, base))
	base.Body = []byte("b")
	require.NoError(t, w.PutResponse(ctx, base))

	got, err := w.GetResponse(ctx, "v1", "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), got.Body)
}

func TestWorkerStorage_PendingRequests(t *testing.T) {
	ctx := context.Background()
	w := newTestWorkerStorage(t)
	now := time.Unix(1700000000, 0)

	require.NoError(t, w.EnqueueRequest(ctx, models.PendingRequest{ID: "r2", Tag: "sync-pending-requests", Method: "POST", URL: "/api/x", Body: []byte(`{}`), CreatedAt: now.Add(time.Second)}))
	require.NoError(t, w.EnqueueRequest(ctx, models.PendingRequest{ID: "r1", Tag: "sync-pending-requests", Method: "PUT", URL: "/api/y", Header: http.Header{"X-A": {"1"}}, CreatedAt: now}))
	require.NoError(t, w.EnqueueRequest(ctx, models.PendingRequest{ID: "r3", Tag: "other", Method: "DELETE", URL: "/api/z", CreatedAt: now}))

	tagged, err := w.PendingRequests(ctx, "sync-pending-requests")
	require.NoError(t, err)
	require.Len(t, tagged, 2)
	assert.Equal(t, "r1", tagged[0].ID)
	assert.Equal(t, "1", tagged[0].Header.Get("X-A"))

	all, err := w.PendingRequests(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	tags, err := w.PendingTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"other", "sync-pending-requests"}, tags)

	require.NoError(t, w.RemoveRequest(ctx, "r1"))
	n, err := w.CountRequests(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
