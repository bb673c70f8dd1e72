// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the client application runtime.
//
// [App] opens the local databases, installs the request cache, builds the
// sync coordinator on top of them and runs the background workers and the
// dashboard for the lifetime of one process.
package client
