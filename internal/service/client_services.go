// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/fia-offline-sync/internal/adapter"
	"github.com/MKhiriev/fia-offline-sync/internal/config"
	"github.com/MKhiriev/fia-offline-sync/internal/logger"
	"github.com/MKhiriev/fia-offline-sync/internal/store"
	"github.com/MKhiriev/fia-offline-sync/models"
)

type ClientServices struct {
	SyncService ClientSyncService
	SyncJob     ClientSyncJob

	Transactions *Collection[models.Transaction]
	Audits       *Collection[models.Audit]
	Complaints   *Collection[models.Complaint]
}

// NewClientServices wires the coordinator. A nil localStore selects the
// online-only coordinator with localErr as its reported error.
func NewClientServices(
	ctx context.Context,
	localStore store.LocalStorage,
	localErr error,
	remote adapter.RemoteAdapter,
	conn Connectivity,
	cfg config.ClientWorkers,
	log *logger.Logger,
) *ClientServices {
	var syncSvc ClientSyncService
	if localStore == nil {
		syncSvc = NewOnlineOnlySyncService(remote, conn, localErr, log)
	} else {
		syncSvc = NewClientSyncService(ctx, localStore, remote, conn, cfg, log)
	}

	return &ClientServices{
		SyncService:  syncSvc,
		SyncJob:      NewClientSyncJob(syncSvc, cfg.SyncInterval, log),
		Transactions: NewCollection[models.Transaction](syncSvc),
		Audits:       NewCollection[models.Audit](syncSvc),
		Complaints:   NewCollection[models.Complaint](syncSvc),
	}
}
