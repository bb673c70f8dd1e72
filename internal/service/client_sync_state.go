// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"sync"

	"github.com/MKhiriev/fia-offline-sync/models"
)

// stateHub owns the observable coordinator state and fans it out to
// subscribers.
type stateHub struct {
	mu     sync.Mutex
	state  models.SyncState
	nextID int
	subs   map[int]chan models.SyncState
}

func newStateHub(initial models.SyncState) *stateHub {
	return &stateHub{state: initial, subs: make(map[int]chan models.SyncState)}
}

func (h *stateHub) snapshot() models.SyncState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// update applies fn and publishes the result.
func (h *stateHub) update(fn func(*models.SyncState)) models.SyncState {
	h.mu.Lock()
	defer h.mu.Unlock()

	fn(&h.state)
	for _, ch := range h.subs {
		publish(ch, h.state)
	}
	return h.state
}

// publish replaces whatever snapshot is still unread in ch.
func publish(ch chan models.SyncState, s models.SyncState) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- s:
	default:
	}
}

func (h *stateHub) subscribe() (<-chan models.SyncState, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	ch := make(chan models.SyncState, 1)
	ch <- h.state
	h.subs[id] = ch

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(ch)
		}
	}
}

func (h *stateHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
