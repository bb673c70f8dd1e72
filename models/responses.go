// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// CacheStatusHeader marks responses the request cache answered itself:
// [CacheStatusHit] for a stored copy, [CacheStatusOffline] for a
// synthesized one.
const (
	CacheStatusHeader  = "X-Request-Cache"
	CacheStatusHit     = "hit"
	CacheStatusOffline = "offline"
)

// OfflineResponse is the body synthesized for API requests that failed at
// the transport level and have no cached copy.
type OfflineResponse struct {
	Error       string `json:"error"`
	OfflineMode bool   `json:"offlineMode"`
}

// ErrorResponse is the JSON error body written by the records API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// BatchDeleteRequest lists ids to delete from one collection.
type BatchDeleteRequest struct {
	IDs []string `json:"ids"`
}

// BatchResponse reports how many rows a batch call touched.
type BatchResponse struct {
	Store    StoreName `json:"store"`
	Affected int       `json:"affected"`
}
