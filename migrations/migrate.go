// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations embeds the goose migration sets of every database the
// project owns and applies them.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed client/*.sql server/*.sql worker/*.sql
var embedMigrations embed.FS

// Set names a migration directory.
type Set string

const (
	// Client is the local durable store: one table per record store plus
	// the pending_sync outbox.
	Client Set = "client"
	// Worker is the request cache and background request queue.
	Worker Set = "worker"
	// Server is the PostgreSQL records table.
	Server Set = "server"
)

var ErrUnknownSet = errors.New("unknown migration set")

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

func (s Set) dialect() (string, error) {
	switch s {
	case Client, Worker:
		return "sqlite3", nil
	case Server:
		return "pgx", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSet, s)
	}
}

// Migrate applies every pending migration of set to db. It is idempotent.
func Migrate(db *sql.DB, set Set) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	dialect, err := set.dialect()
	if err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, string(set)); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

// Version reports the applied schema version of db for set.
func Version(db *sql.DB, set Set) (int64, error) {
	dialect, err := set.dialect()
	if err != nil {
		return 0, err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect(dialect); err != nil {
		return 0, err
	}

	return goose.GetDBVersion(db)
}
