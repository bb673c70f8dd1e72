// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/fia-offline-sync/internal/config"
	"github.com/MKhiriev/fia-offline-sync/internal/logger"
)

// ClientStorages groups the client's two SQLite databases.
type ClientStorages struct {
	// Local is nil when the durable store could not be opened. The client
	// then runs in online-only mode.
	Local LocalStorage

	Worker WorkerStorage
}

// NewClientStorages opens the request cache and the local durable store.
// A failing request cache is fatal. A failing local store is logged and
// returned as localErr so the caller can degrade.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (storages *ClientStorages, localErr error, err error) {
	log.Info().Msg("creating client storages...")

	worker, err := NewWorkerStorage(ctx, cfg.WorkerDSN, log.WithComponent("worker-storage"))
	if err != nil {
		return nil, nil, fmt.Errorf("request cache storage: %w", err)
	}

	storages = &ClientStorages{Worker: worker}

	local, localErr := NewLocalStorage(ctx, cfg.LocalDSN, log.WithComponent("local-storage"))
	if localErr != nil {
		log.Warn().Err(localErr).Str("func", "NewClientStorages").Msg("local durable store unavailable, continuing online-only")
		return storages, localErr, nil
	}
	storages.Local = local

	return storages, nil, nil
}

func (s *ClientStorages) Close() error {
	var errs []error
	if s.Local != nil {
		errs = append(errs, s.Local.Close())
	}
	if s.Worker != nil {
		errs = append(errs, s.Worker.Close())
	}
	return errors.Join(errs...)
}
