// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncState is an observable snapshot of the sync coordinator used by UI
// consumers to render "offline" and "N items pending" banners.
type SyncState struct {
	// Online mirrors the last connectivity event.
	Online bool

	// Syncing is true while a drain is in flight.
	Syncing bool

	// PendingCount equals the number of outbox entries currently stored.
	PendingCount int

	// LastError holds the failure of the most recent drain, nil after a
	// successful one.
	LastError error

	// LastSyncAt is the time of the last successful drain.
	LastSyncAt *time.Time

	// OnlineOnly is set when local storage is unavailable and every
	// operation goes straight to the remote API.
	OnlineOnly bool
}
