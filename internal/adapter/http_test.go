// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/fia-offline-sync/internal/config"
	"github.com/MKhiriev/fia-offline-sync/internal/logger"
	"github.com/MKhiriev/fia-offline-sync/models"
)

func newTestAdapter(t *testing.T, serverURL string, token string) *HTTPRemoteAdapter {
	t.Helper()
	a, err := NewHTTPRemoteAdapter(
		config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 2 * time.Second},
		config.ClientApp{APIPrefix: "/api", SessionToken: token},
		nil,
		logger.Nop(),
	)
	require.NoError(t, err)
	return a
}

func TestNewHTTPRemoteAdapter_InvalidAddress(t *testing.T) {
	_, err := NewHTTPRemoteAdapter(config.ClientAdapter{}, config.ClientApp{}, nil, logger.Nop())
	assert.Error(t, err)
}

func TestUpsertBatch_SendsRecordsWithSessionCookie(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/transactions/batch", r.URL.Path)

		c, err := r.Cookie(SessionCookieName)
		require.NoError(t, err)
		assert.Equal(t, "jwt-token", c.Value)

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `[{"id":"t1","amount":500},{"id":"t2","amount":1}]`, string(body))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "jwt-token")
	err := a.UpsertBatch(context.Background(), models.StoreTransactions, []models.Record{
		{ID: "t1", Payload: json.RawMessage(`{"id":"t1","amount":500}`)},
		{ID: "t2", Payload: json.RawMessage(`{"id":"t2","amount":1}`)},
	})
	require.NoError(t, err)
}

func TestUpsertBatch_EmptyDoesNotCallServer(t *testing.T) {
	a := newTestAdapter(t, "http://127.0.0.1:1", "")
	assert.NoError(t, a.UpsertBatch(context.Background(), models.StoreAudits, nil))
}

func TestDeleteBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/audits/batch-delete", r.URL.Path)

		var req models.BatchDeleteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"a1", "a2"}, req.IDs)

		_, noCookie := r.Cookie(SessionCookieName)
		assert.ErrorIs(t, noCookie, http.ErrNoCookie)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	require.NoError(t, a.DeleteBatch(context.Background(), models.StoreAudits, []string{"a1", "a2"}))
}

func TestFetchAllAndByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/complaints":
			_, _ = w.Write([]byte(`[{"id":"c1","subject":"s"},{"id":"c2","subject":"t"}]`))
		case "/api/complaints/c1":
			_, _ = w.Write([]byte(`{"id":"c1","subject":"s"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"record not found"}`))
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	ctx := context.Background()

	all, err := a.FetchAll(ctx, models.StoreComplaints)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "c2", all[1].ID)

	one, err := a.FetchByID(ctx, models.StoreComplaints, "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", one.ID)

	_, err = a.FetchByID(ctx, models.StoreComplaints, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "record not found")
	assert.False(t, IsRetryable(err))
}

func TestFetchAll_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"no-id":1}]`))
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL, "").FetchAll(context.Background(), models.StoreAudits)
	assert.ErrorIs(t, err, ErrDecodeResponse)
}

func TestFetch_FreshReadRefusesStoredCopy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set(models.CacheStatusHeader, models.CacheStatusHit)
		if r.URL.Path == "/api/audits/a1" {
			_, _ = w.Write([]byte(`{"id":"a1"}`))
			return
		}
		_, _ = w.Write([]byte(`[{"id":"a1"}]`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")

	all, err := a.FetchAll(context.Background(), models.StoreAudits)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	fresh := WithFreshRead(context.Background())
	assert.True(t, FreshReadRequired(fresh))
	assert.False(t, FreshReadRequired(context.Background()))

	_, err = a.FetchAll(fresh, models.StoreAudits)
	assert.ErrorIs(t, err, ErrStaleResponse)
	assert.True(t, IsRetryable(err))

	_, err = a.FetchByID(fresh, models.StoreAudits, "a1")
	assert.ErrorIs(t, err, ErrStaleResponse)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		status    int
		body      string
		want      error
		retryable bool
	}{
		{http.StatusBadRequest, "bad", ErrBadRequest, false},
		{http.StatusUnauthorized, "", ErrUnauthorized, false},
		{http.StatusConflict, "", ErrConflict, false},
		{http.StatusInternalServerError, "", ErrInternalServerError, true},
		{http.StatusServiceUnavailable, `{"error":"You are offline and the request is not cached.","offlineMode":true}`, ErrOffline, true},
		{http.StatusBadGateway, "", ErrBadGateway, true},
		{http.StatusTooManyRequests, "", ErrTooManyRequests, true},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := newTestAdapter(t, srv.URL, "").UpsertBatch(context.Background(), models.StoreAudits,
				[]models.Record{{ID: "a1", Payload: json.RawMessage(`{"id":"a1"}`)}})
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.retryable, IsRetryable(err))
		})
	}
}

func TestTransportErrorIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := newTestAdapter(t, url, "").DeleteBatch(context.Background(), models.StoreAudits, []string{"a1"})
	assert.ErrorIs(t, err, ErrTransport)
	assert.True(t, IsRetryable(err))
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	assert.NoError(t, newTestAdapter(t, srv.URL, "").Ping(context.Background()))
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(nil))
	assert.False(t, IsRetryable(errors.New("boom")))
	assert.True(t, IsRetryable(context.DeadlineExceeded))
}
