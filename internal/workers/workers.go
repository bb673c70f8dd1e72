// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
)

type Workers struct {
	mu      sync.Mutex
	workers []Worker
	started []Worker
}

func NewWorkers(ws ...Worker) *Workers {
	return &Workers{workers: ws}
}

// Add appends w. It is started on the next Start.
func (w *Workers) Add(ws ...Worker) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.workers = append(w.workers, ws...)
}

func (w *Workers) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, worker := range w.workers {
		worker.Start(ctx)
		w.started = append(w.started, worker)
	}
}

func (w *Workers) Stop() {
	w.mu.Lock()
	started := w.started
	w.started = nil
	w.mu.Unlock()

	for i := len(started) - 1; i >= 0; i-- {
		started[i].Stop()
	}
}
