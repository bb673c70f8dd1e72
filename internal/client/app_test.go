// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/fia-offline-sync/internal/config"
	"github.com/MKhiriev/fia-offline-sync/internal/logger"
	"github.com/MKhiriev/fia-offline-sync/internal/requestcache"
	"github.com/MKhiriev/fia-offline-sync/internal/store"
	"github.com/MKhiriev/fia-offline-sync/models"
)

// fakeOrigin serves the precache manifest, the health probe and the batch
// upsert endpoint of the records API.
type fakeOrigin struct {
	mu      sync.Mutex
	upserts map[string][]models.Record
}

func (o *fakeOrigin) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/health":
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/batch"):
		store := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/"), "/batch")
		var records []models.Record
		if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		o.mu.Lock()
		if o.upserts == nil {
			o.upserts = make(map[string][]models.Record)
		}
		o.upserts[store] = append(o.upserts[store], records...)
		o.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"store":"` + store + `","affected":1}`))
	case strings.HasPrefix(r.URL.Path, "/api/"):
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	default:
		_, _ = w.Write([]byte("<html>asset</html>"))
	}
}

func (o *fakeOrigin) received(store models.StoreName) []models.Record {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.upserts[string(store)]
}

type fakeUI struct {
	run func(ctx context.Context) error
}

func (f fakeUI) Run(ctx context.Context) error {
	return f.run(ctx)
}

func testConfig(t *testing.T, origin string) *config.ClientConfig {
	t.Helper()
	dir := t.TempDir()
	return &config.ClientConfig{
		App: config.ClientApp{CacheVersion: "v1", APIPrefix: "/api"},
		Adapter: config.ClientAdapter{
			HTTPAddress:    origin,
			OriginAddress:  origin,
			RequestTimeout: 2 * time.Second,
		},
		Storage: config.ClientStorage{
			LocalDSN:  filepath.Join(dir, "local.db"),
			WorkerDSN: filepath.Join(dir, "worker.db"),
		},
		Workers: config.ClientWorkers{SyncInterval: time.Hour, ProbeInterval: time.Hour},
	}
}

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

// ── construction ────────────────────────────────────────────────────────────

func TestNewApp_Online(t *testing.T) {
	origin := &fakeOrigin{}
	srv := httptest.NewServer(origin)
	defer srv.Close()

	app, err := NewApp(context.Background(), testConfig(t, srv.URL), models.NewBuildInfo("dev", "", ""), logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, requestcache.StateActivated, app.cache.State())
	assert.True(t, app.monitor.Online())
	assert.False(t, app.services.SyncService.State().OnlineOnly)
	assert.NotNil(t, app.ui)
	assert.Nil(t, app.proxy)

	app.ui = fakeUI{run: func(ctx context.Context) error {
		_, err := app.services.Transactions.Add(ctx, models.Transaction{ID: "t1", Amount: 100})
		return err
	}}
	require.NoError(t, app.Run(context.Background()))

	received := origin.received(models.StoreTransactions)
	require.Len(t, received, 1)
	assert.Equal(t, "t1", received[0].ID)
}

func TestNewApp_OriginUnreachable(t *testing.T) {
	srv := httptest.NewServer(&fakeOrigin{})
	url := srv.URL
	srv.Close()

	app, err := NewApp(context.Background(), testConfig(t, url), models.BuildInfo{}, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, requestcache.StateRedundant, app.cache.State())
	assert.False(t, app.monitor.Online())

	app.ui = fakeUI{run: func(ctx context.Context) error {
		_, err := app.services.Audits.Add(ctx, models.Audit{ID: "a1"})
		if err != nil {
			return err
		}
		assert.Equal(t, 1, app.services.SyncService.State().PendingCount)
		return nil
	}}
	require.NoError(t, app.Run(context.Background()))
}

func TestNewApp_LocalStoreUnavailableRunsOnlineOnly(t *testing.T) {
	srv := httptest.NewServer(&fakeOrigin{})
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	cfg.Storage.LocalDSN = t.TempDir()

	app, err := NewApp(context.Background(), cfg, models.BuildInfo{}, logger.Nop())
	require.NoError(t, err)
	defer app.shutdown()

	state := app.services.SyncService.State()
	assert.True(t, state.OnlineOnly)
	assert.Error(t, state.LastError)
}

func TestNewApp_Errors(t *testing.T) {
	srv := httptest.NewServer(&fakeOrigin{})
	defer srv.Close()

	t.Run("request cache storage", func(t *testing.T) {
		cfg := testConfig(t, srv.URL)
		cfg.Storage.WorkerDSN = t.TempDir()

		_, err := NewApp(context.Background(), cfg, models.BuildInfo{}, logger.Nop())
		assert.ErrorIs(t, err, ErrCreatingStorages)
	})

	t.Run("empty cache version", func(t *testing.T) {
		cfg := testConfig(t, srv.URL)
		cfg.App.CacheVersion = ""

		_, err := NewApp(context.Background(), cfg, models.BuildInfo{}, logger.Nop())
		assert.ErrorIs(t, err, ErrCreatingRequestCache)
	})

	t.Run("api address", func(t *testing.T) {
		cfg := testConfig(t, srv.URL)
		cfg.Adapter.HTTPAddress = "http://"

		_, err := NewApp(context.Background(), cfg, models.BuildInfo{}, logger.Nop())
		assert.ErrorIs(t, err, ErrCreatingAdapter)
	})
}

func TestNewApp_RegistersPeriodicSync(t *testing.T) {
	srv := httptest.NewServer(&fakeOrigin{})
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	cfg.Workers.PeriodicSyncInterval = time.Hour

	app, err := NewApp(context.Background(), cfg, models.BuildInfo{}, logger.Nop())
	require.NoError(t, err)
	defer app.shutdown()

	assert.True(t, app.cache.Sync().PeriodicSupported())
}

func TestNewApp_ReplaysRequestsQueuedBeforeRestart(t *testing.T) {
	origin := &fakeOrigin{}
	srv := httptest.NewServer(origin)
	defer srv.Close()

	cfg := testConfig(t, srv.URL)

	previous, err := store.NewWorkerStorage(context.Background(), cfg.Storage.WorkerDSN, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, previous.EnqueueRequest(context.Background(), models.PendingRequest{
		ID:        "r1",
		Tag:       requestcache.TagPendingRequests,
		Method:    http.MethodPut,
		URL:       srv.URL + "/api/audits/batch",
		Header:    http.Header{"Content-Type": {"application/json"}},
		Body:      []byte(`[{"id":"a1"}]`),
		CreatedAt: time.Now(),
	}))
	require.NoError(t, previous.Close())

	app, err := NewApp(context.Background(), cfg, models.BuildInfo{}, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, []string{requestcache.TagPendingRequests}, app.cache.Sync().Registered())

	app.ui = fakeUI{run: func(ctx context.Context) error {
		for range 100 {
			if len(origin.received(models.StoreAudits)) > 0 {
				return nil
			}
			time.Sleep(10 * time.Millisecond)
		}
		return nil
	}}
	require.NoError(t, app.Run(context.Background()))

	received := origin.received(models.StoreAudits)
	require.Len(t, received, 1)
	assert.Equal(t, "a1", received[0].ID)
}

// ── offline proxy ───────────────────────────────────────────────────────────

func TestApp_ProxyServesSyncState(t *testing.T) {
	srv := httptest.NewServer(&fakeOrigin{})
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	cfg.ProxyAddress = freeAddr(t)

	app, err := NewApp(context.Background(), cfg, models.BuildInfo{}, logger.Nop())
	require.NoError(t, err)
	require.NotNil(t, app.proxy)

	var state struct {
		Online       bool `json:"online"`
		PendingCount int  `json:"pendingCount"`
	}
	app.ui = fakeUI{run: func(ctx context.Context) error {
		var lastErr error
		for range 50 {
			resp, err := http.Get("http://" + cfg.ProxyAddress + "/__sync/state")
			if err != nil {
				lastErr = err
				time.Sleep(20 * time.Millisecond)
				continue
			}
			defer resp.Body.Close()
			return json.NewDecoder(resp.Body).Decode(&state)
		}
		return lastErr
	}}

	require.NoError(t, app.Run(context.Background()))
	assert.True(t, state.Online)
	assert.Zero(t, state.PendingCount)
}
