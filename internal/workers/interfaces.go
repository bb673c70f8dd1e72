// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the client's background jobs: the reachability
// prober, the retry sync job and periodic background sync.
//
// A [Worker] is started with a context and stopped explicitly. [Workers]
// starts a group in order and stops it in reverse order.
package workers

import "context"

// Worker is a background job. Start must not block. Stop blocks until the
// job's goroutines have exited and is safe to call on a stopped worker.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
