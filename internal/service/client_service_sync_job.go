// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/fia-offline-sync/internal/logger"
	"github.com/MKhiriev/fia-offline-sync/internal/workers"
)

type clientSyncJob struct {
	syncService ClientSyncService
	job         *workers.Periodic
}

// NewClientSyncJob creates a job that retries PerformSync every interval
// while entries are pending and the coordinator is online. A non-positive
// interval defaults to 5 minutes. The job is idle until Start is called.
func NewClientSyncJob(syncService ClientSyncService, interval time.Duration, log *logger.Logger) ClientSyncJob {
	j := &clientSyncJob{syncService: syncService}
	j.job = workers.NewPeriodic("client-sync", interval, j.tick, log).RunImmediately()
	return j
}

func (j *clientSyncJob) tick(ctx context.Context) error {
	state := j.syncService.State()
	if !state.Online || state.PendingCount == 0 || state.OnlineOnly {
		return nil
	}
	return j.syncService.PerformSync(ctx)
}

// Start stops a previous run, then starts the ticker. The goroutine exits
// when ctx is cancelled or Stop is called.
func (j *clientSyncJob) Start(ctx context.Context) {
	j.job.Start(ctx)
}

// Stop blocks until the ticker goroutine has exited. Safe on a stopped job.
func (j *clientSyncJob) Stop() {
	j.job.Stop()
}
