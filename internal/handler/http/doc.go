// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the records API: one collection per store under
// /api/{store}, batch upsert and batch delete, and a health endpoint used by
// clients to decide whether they are online.
//
// Trace ids, access logging, gzip and session cookie authentication are
// handled here before requests reach the service layer.
package http
