// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package requestcache

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/fia-offline-sync/internal/logger"
	"github.com/MKhiriev/fia-offline-sync/internal/store"
	"github.com/MKhiriev/fia-offline-sync/internal/workers"
)

// SyncReport summarizes one replay of the background queue.
type SyncReport struct {
	Sent int
	Kept int
}

// BackgroundSync replays queued write requests. One-shot tags fire when the
// connection is up; periodic tags fire on their own ticker. One-shot
// registrations are rebuilt from the persisted queue with [BackgroundSync.Restore].
//
// It implements [workers.Worker] for the periodic registrations.
type BackgroundSync struct {
	storage           store.WorkerStorage
	transport         http.RoundTripper
	periodicSupported bool

	mu        sync.Mutex
	oneShot   map[string]struct{}
	periodic  map[string]*workers.Periodic
	runCtx    context.Context
	nextID    int
	listeners []registerListener

	// replayMu serializes replays so one entry is never sent twice
	// concurrently.
	replayMu sync.Mutex

	logger *logger.Logger
}

type registerListener struct {
	id int
	fn func()
}

func NewBackgroundSync(storage store.WorkerStorage, transport http.RoundTripper, periodicSupported bool, log *logger.Logger) *BackgroundSync {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &BackgroundSync{
		storage:           storage,
		transport:         transport,
		periodicSupported: periodicSupported,
		oneShot:           make(map[string]struct{}),
		periodic:          make(map[string]*workers.Periodic),
		logger:            log,
	}
}

// Register records a one-shot sync for tag. Registering the same tag twice
// keeps one registration.
func (b *BackgroundSync) Register(tag string) {
	if tag == "" {
		tag = TagPendingRequests
	}
	b.mu.Lock()
	b.oneShot[tag] = struct{}{}
	listeners := append([]registerListener(nil), b.listeners...)
	b.mu.Unlock()

	for _, l := range listeners {
		l.fn()
	}
}

// OnRegister calls fn after every one-shot registration. The returned func
// unregisters it.
func (b *BackgroundSync) OnRegister(fn func()) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, registerListener{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, l := range b.listeners {
			if l.id == id {
				b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}

// Restore registers a one-shot sync for every tag that still has requests
// in the queue, so requests queued by an earlier run are replayed too.
func (b *BackgroundSync) Restore(ctx context.Context) error {
	tags, err := b.storage.PendingTags(ctx)
	if err != nil {
		b.logger.Err(err).Str("func", "BackgroundSync.Restore").Msg("failed to list queued tags")
		return fmt.Errorf("list queued tags: %w", err)
	}

	b.mu.Lock()
	for _, tag := range tags {
		b.oneShot[tag] = struct{}{}
	}
	b.mu.Unlock()

	if len(tags) > 0 {
		b.logger.Info().Str("func", "BackgroundSync.Restore").Strs("tags", tags).Msg("restored queued sync registrations")
	}
	return nil
}

// Registered lists one-shot tags waiting to fire, sorted.
func (b *BackgroundSync) Registered() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	tags := make([]string, 0, len(b.oneShot))
	for tag := range b.oneShot {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func (b *BackgroundSync) PeriodicSupported() bool {
	return b.periodicSupported
}

// RegisterPeriodic dispatches tag every interval. It fails when periodic
// sync is not supported. A registration made after Start begins at once.
func (b *BackgroundSync) RegisterPeriodic(tag string, interval time.Duration) error {
	if !b.periodicSupported {
		return ErrPeriodicSyncUnsupported
	}
	if interval <= 0 {
		return ErrInvalidPeriodicInterval
	}

	job := workers.NewPeriodic("periodic-sync:"+tag, interval, func(ctx context.Context) error {
		_, err := b.Dispatch(ctx, tag)
		return err
	}, b.logger)

	b.mu.Lock()
	old := b.periodic[tag]
	b.periodic[tag] = job
	runCtx := b.runCtx
	b.mu.Unlock()

	if old != nil {
		old.Stop()
	}
	if runCtx != nil {
		job.Start(runCtx)
	}
	return nil
}

func (b *BackgroundSync) Start(ctx context.Context) {
	b.mu.Lock()
	b.runCtx = ctx
	jobs := make([]*workers.Periodic, 0, len(b.periodic))
	for _, job := range b.periodic {
		jobs = append(jobs, job)
	}
	b.mu.Unlock()

	for _, job := range jobs {
		job.Start(ctx)
	}
}

func (b *BackgroundSync) Stop() {
	b.mu.Lock()
	b.runCtx = nil
	jobs := make([]*workers.Periodic, 0, len(b.periodic))
	for _, job := range b.periodic {
		jobs = append(jobs, job)
	}
	b.mu.Unlock()

	for _, job := range jobs {
		job.Stop()
	}
}

// FireRegistered dispatches every one-shot tag. A tag stays registered
// while requests for it remain queued.
func (b *BackgroundSync) FireRegistered(ctx context.Context) {
	for _, tag := range b.Registered() {
		report, err := b.Dispatch(ctx, tag)
		if err != nil || report.Kept > 0 {
			continue
		}
		b.mu.Lock()
		delete(b.oneShot, tag)
		b.mu.Unlock()
	}
}

// Dispatch handles a sync event. The periodic data tag replays the whole
// queue, any other tag replays the requests queued under it.
func (b *BackgroundSync) Dispatch(ctx context.Context, tag string) (SyncReport, error) {
	filter := tag
	if tag == TagPeriodicData {
		filter = ""
	}
	return b.SyncPendingRequests(ctx, filter)
}

// SyncPendingRequests replays queued requests for tag (all when empty) in
// queue order. A 2xx answer removes the entry; anything else keeps it for
// the next sync. One failing entry does not stop the others.
func (b *BackgroundSync) SyncPendingRequests(ctx context.Context, tag string) (SyncReport, error) {
	b.replayMu.Lock()
	defer b.replayMu.Unlock()

	pending, err := b.storage.PendingRequests(ctx, tag)
	if err != nil {
		b.logger.Err(err).Str("func", "BackgroundSync.SyncPendingRequests").Str("tag", tag).Msg("failed to list pending requests")
		return SyncReport{}, fmt.Errorf("list pending requests: %w", err)
	}

	var report SyncReport
	for _, p := range pending {
		if ctx.Err() != nil {
			report.Kept += len(pending) - report.Sent - report.Kept
			return report, ctx.Err()
		}

		if err = b.replay(ctx, p.Method, p.URL, p.Header, p.Body); err != nil {
			report.Kept++
			b.logger.Warn().Err(err).Str("func", "BackgroundSync.SyncPendingRequests").
				Str("id", p.ID).Str("url", p.URL).Msg("failed to sync request")
			continue
		}

		if err = b.storage.RemoveRequest(ctx, p.ID); err != nil {
			b.logger.Err(err).Str("func", "BackgroundSync.SyncPendingRequests").Str("id", p.ID).Msg("failed to remove synced request")
		}
		report.Sent++
	}

	b.logger.Info().Str("func", "BackgroundSync.SyncPendingRequests").Str("tag", tag).
		Int("sent", report.Sent).Int("kept", report.Kept).Msg("background sync finished")
	return report, nil
}

func (b *BackgroundSync) replay(ctx context.Context, method, url string, header http.Header, body []byte) error {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := b.transport.RoundTrip(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
