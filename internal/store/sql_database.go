// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/fia-offline-sync/internal/logger"
	"github.com/MKhiriev/fia-offline-sync/migrations"
)

// ErrorClassification tells whether a failed operation may be retried.
type ErrorClassification int

const (
	// NonRetryable is the default for unknown errors, constraint violations
	// and malformed queries.
	NonRetryable ErrorClassification = iota

	// Retryable marks transient failures: lost connections, deadlocks,
	// serialization failures, a busy SQLite file.
	Retryable
)

// ErrorClassificator maps driver errors to an [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// DB wraps *sql.DB with the driver's error classifier.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
	migrationSet       migrations.Set
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.migrationSet)
}

var retryBackoff = []time.Duration{50 * time.Millisecond, 200 * time.Millisecond, 500 * time.Millisecond}

// withRetry runs fn and repeats it while the classifier reports a retryable
// error, at most len(retryBackoff) extra times.
func (db *DB) withRetry(ctx context.Context, fn func() error) error {
	err := fn()
	for _, wait := range retryBackoff {
		if err == nil || db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable {
			return err
		}

		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-time.After(wait):
		}
		err = fn()
	}

	return err
}

// inTx runs fn inside a transaction, committing when fn returns nil.
func (db *DB) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
