// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"net/http"
	"time"
)

// CachedResponse is a stored copy of a successful response, filed under the
// release tag (Version) of the request cache that stored it.
type CachedResponse struct {
	Version    string
	Key        string
	Method     string
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
	StoredAt   time.Time
}

// PendingRequest is a write request persisted by the request cache for
// replay on the next background sync.
type PendingRequest struct {
	ID        string
	Tag       string
	Method    string
	URL       string
	Header    http.Header
	Body      []byte
	CreatedAt time.Time
}
