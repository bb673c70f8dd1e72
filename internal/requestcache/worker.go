// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package requestcache intercepts outgoing HTTP requests and answers them
// from a versioned response cache when the network cannot.
//
// [Worker] is an [http.RoundTripper]. Requests under the API prefix are
// served network-first, everything else cache-first. Write requests that
// opt in with [BackgroundSyncHeader] are queued when the network is down and
// replayed later by [BackgroundSync].
//
// The worker goes through install and activate before it intercepts
// anything; until then requests pass straight to the underlying transport.
package requestcache

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/fia-offline-sync/internal/logger"
	"github.com/MKhiriev/fia-offline-sync/internal/store"
	"github.com/MKhiriev/fia-offline-sync/internal/utils"
	"github.com/MKhiriev/fia-offline-sync/models"
)

type Worker struct {
	opts    Options
	storage store.WorkerStorage
	next    http.RoundTripper
	fetcher *utils.HTTPClient
	sync    *BackgroundSync

	mu    sync.RWMutex
	state State

	now    func() time.Time
	logger *logger.Logger
}

// NewWorker builds a worker in [StateParsed]. next is the real transport;
// nil means http.DefaultTransport.
func NewWorker(opts Options, storage store.WorkerStorage, next http.RoundTripper, log *logger.Logger) (*Worker, error) {
	if opts.Version == "" {
		return nil, fmt.Errorf("%w: empty cache version", ErrInvalidState)
	}
	if next == nil {
		next = http.DefaultTransport
	}
	opts = opts.withDefaults()

	origin := ""
	if opts.Origin != "" {
		normalized, err := utils.NormalizeBaseURL(opts.Origin)
		if err != nil {
			return nil, fmt.Errorf("invalid origin: %w", err)
		}
		origin = normalized
	}
	opts.Origin = origin

	w := &Worker{
		opts:    opts,
		storage: storage,
		next:    next,
		fetcher: utils.NewHTTPClient(origin, opts.FetchTimeout, next),
		state:   StateParsed,
		now:     time.Now,
		logger:  log,
	}
	w.sync = NewBackgroundSync(storage, next, opts.PeriodicSyncSupported, log)

	return w, nil
}

func (w *Worker) State() State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

func (w *Worker) Version() string {
	return w.opts.Version
}

// Sync returns the background sync manager fed by this worker.
func (w *Worker) Sync() *BackgroundSync {
	return w.sync
}

func (w *Worker) setState(s State) {
	w.mu.Lock()
	w.state = s
	w.mu.Unlock()
}

// transition moves from one state to another, failing when the worker is
// elsewhere.
func (w *Worker) transition(from, to State) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != from {
		return fmt.Errorf("%w: %s, want %s", ErrInvalidState, w.state, from)
	}
	w.state = to
	return nil
}

// Install fetches every manifest asset and stores them under the current
// version. Either all assets are stored or none; on failure the worker
// becomes [StateRedundant]. With SkipWaiting the worker activates
// immediately.
func (w *Worker) Install(ctx context.Context) error {
	if err := w.transition(StateParsed, StateInstalling); err != nil {
		return err
	}

	resps, err := w.fetchManifest(ctx)
	if err == nil {
		err = w.storage.PutResponses(ctx, resps)
	}
	if err != nil {
		w.setState(StateRedundant)
		w.logger.Err(err).Str("func", "Worker.Install").Str("version", w.opts.Version).Msg("install failed")
		return fmt.Errorf("%w: %w", ErrInstallFailed, err)
	}

	w.setState(StateInstalled)
	w.logger.Info().Str("func", "Worker.Install").Str("version", w.opts.Version).Int("assets", len(resps)).Msg("precache complete")

	if w.opts.SkipWaiting {
		return w.Activate(ctx)
	}
	return nil
}

func (w *Worker) fetchManifest(ctx context.Context) ([]models.CachedResponse, error) {
	resps := make([]models.CachedResponse, 0, len(w.opts.Manifest))
	for _, asset := range w.opts.Manifest {
		resp, err := w.fetcher.R().SetContext(ctx).Get(asset)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", asset, err)
		}
		if !resp.IsSuccess() {
			return nil, fmt.Errorf("fetch %s: unexpected status %d", asset, resp.StatusCode())
		}

		url := resp.Request.URL
		if resp.RawResponse != nil && resp.RawResponse.Request != nil {
			url = resp.RawResponse.Request.URL.String()
		}

		resps = append(resps, models.CachedResponse{
			Version:    w.opts.Version,
			Key:        RequestKey(http.MethodGet, url),
			Method:     http.MethodGet,
			URL:        url,
			StatusCode: resp.StatusCode(),
			Header:     resp.Header().Clone(),
			Body:       resp.Body(),
			StoredAt:   w.now(),
		})
	}
	return resps, nil
}

// Activate deletes every cache version but the current one and starts
// intercepting requests.
func (w *Worker) Activate(ctx context.Context) error {
	if err := w.transition(StateInstalled, StateActivating); err != nil {
		return err
	}

	removed, err := w.storage.DeleteVersionsExcept(ctx, w.opts.Version)
	if err != nil {
		w.setState(StateInstalled)
		w.logger.Err(err).Str("func", "Worker.Activate").Str("version", w.opts.Version).Msg("failed to purge old cache versions")
		return fmt.Errorf("%w: %w", ErrActivateFailed, err)
	}

	w.setState(StateActivated)
	w.logger.Info().Str("func", "Worker.Activate").Str("version", w.opts.Version).Int64("purged", removed).Msg("request cache active")
	return nil
}

// RoundTrip implements [http.RoundTripper].
func (w *Worker) RoundTrip(req *http.Request) (*http.Response, error) {
	if w.State() != StateActivated {
		return w.next.RoundTrip(req)
	}

	if w.isAPI(req) {
		return w.networkFirst(req)
	}
	return w.cacheFirst(req)
}

func (w *Worker) isAPI(req *http.Request) bool {
	prefix := strings.TrimRight(w.opts.APIPrefix, "/")
	path := req.URL.Path
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
