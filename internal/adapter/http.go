// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/fia-offline-sync/internal/config"
	"github.com/MKhiriev/fia-offline-sync/internal/logger"
	"github.com/MKhiriev/fia-offline-sync/internal/utils"
	"github.com/MKhiriev/fia-offline-sync/models"
)

// SessionCookieName carries the session JWT on every request.
const SessionCookieName = "session"

// HTTPRemoteAdapter is the JSON-over-HTTP [RemoteAdapter].
type HTTPRemoteAdapter struct {
	client    *utils.HTTPClient
	apiPrefix string

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPRemoteAdapter builds the adapter for the API at
// adapterCfg.HTTPAddress. transport is the round tripper under resty,
// normally the request cache. A nil transport uses http.DefaultTransport.
func NewHTTPRemoteAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, transport http.RoundTripper, log *logger.Logger) (*HTTPRemoteAdapter, error) {
	baseURL, err := utils.NormalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	prefix := strings.TrimRight(appCfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api"
	}

	a := &HTTPRemoteAdapter{
		client:    utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout, transport),
		apiPrefix: prefix,
		logger:    log,
	}
	a.SetToken(appCfg.SessionToken)

	return a, nil
}

// SetToken replaces the session token sent in the session cookie.
func (h *HTTPRemoteAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *HTTPRemoteAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// UpsertBatch sends PUT {prefix}/{store}/batch with the records as a JSON
// array.
func (h *HTTPRemoteAdapter) UpsertBatch(ctx context.Context, store models.StoreName, records []models.Record) error {
	if len(records) == 0 {
		return nil
	}

	resp, err := h.sessionRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(records).
		Put(h.storePath(store, "batch"))
	if err != nil {
		return h.transportError(err, "HTTPRemoteAdapter.UpsertBatch", store)
	}

	return mapHTTPError(resp)
}

// DeleteBatch sends POST {prefix}/{store}/batch-delete with {"ids": [...]}.
func (h *HTTPRemoteAdapter) DeleteBatch(ctx context.Context, store models.StoreName, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	resp, err := h.sessionRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.BatchDeleteRequest{IDs: ids}).
		Post(h.storePath(store, "batch-delete"))
	if err != nil {
		return h.transportError(err, "HTTPRemoteAdapter.DeleteBatch", store)
	}

	return mapHTTPError(resp)
}

type freshReadKey struct{}

// WithFreshRead marks ctx so FetchAll and FetchByID refuse copies served
// from the request cache with [ErrStaleResponse].
func WithFreshRead(ctx context.Context) context.Context {
	return context.WithValue(ctx, freshReadKey{}, true)
}

func FreshReadRequired(ctx context.Context) bool {
	fresh, _ := ctx.Value(freshReadKey{}).(bool)
	return fresh
}

func checkFresh(ctx context.Context, resp *resty.Response) error {
	if FreshReadRequired(ctx) && resp.Header().Get(models.CacheStatusHeader) == models.CacheStatusHit {
		return ErrStaleResponse
	}
	return nil
}

func (h *HTTPRemoteAdapter) FetchAll(ctx context.Context, store models.StoreName) ([]models.Record, error) {
	resp, err := h.sessionRequest(ctx).Get(h.storePath(store))
	if err != nil {
		return nil, h.transportError(err, "HTTPRemoteAdapter.FetchAll", store)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	if err = checkFresh(ctx, resp); err != nil {
		h.logger.Debug().Str("func", "HTTPRemoteAdapter.FetchAll").Str("store", store.String()).Msg("stored copy refused for a fresh read")
		return nil, err
	}

	var records []models.Record
	if err = json.Unmarshal(resp.Body(), &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}

	return records, nil
}

func (h *HTTPRemoteAdapter) FetchByID(ctx context.Context, store models.StoreName, id string) (models.Record, error) {
	resp, err := h.sessionRequest(ctx).Get(h.storePath(store, url.PathEscape(id)))
	if err != nil {
		return models.Record{}, h.transportError(err, "HTTPRemoteAdapter.FetchByID", store)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Record{}, err
	}
	if err = checkFresh(ctx, resp); err != nil {
		return models.Record{}, err
	}

	var record models.Record
	if err = json.Unmarshal(resp.Body(), &record); err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}

	return record, nil
}

// Ping issues GET {prefix}/health.
func (h *HTTPRemoteAdapter) Ping(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get(h.apiPrefix + "/health")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	return mapHTTPError(resp)
}

func (h *HTTPRemoteAdapter) storePath(store models.StoreName, parts ...string) string {
	return strings.Join(append([]string{h.apiPrefix, string(store)}, parts...), "/")
}

func (h *HTTPRemoteAdapter) sessionRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	}
	return req
}

func (h *HTTPRemoteAdapter) transportError(err error, fn string, store models.StoreName) error {
	h.logger.Debug().Err(err).Str("func", fn).Str("store", store.String()).Msg("request did not reach the records API")
	return fmt.Errorf("%w: %w", ErrTransport, err)
}
