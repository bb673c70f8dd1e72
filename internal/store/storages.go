// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/fia-offline-sync/internal/logger"
)

// Storages groups the server-side repositories.
type Storages struct {
	RecordRepository RecordRepository

	db *DB
}

// NewStorages connects to PostgreSQL, applies the server migrations and
// builds the repositories.
func NewStorages(ctx context.Context, dsn string, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, dsn, log)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		RecordRepository: NewRecordRepository(db, log),
		db:               db,
	}, nil
}

func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
