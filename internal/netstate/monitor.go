// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package netstate tracks whether the remote API is reachable.
//
// [Monitor] holds the process-wide online flag and notifies subscribers on
// transitions. [Prober] feeds it by pinging the API health endpoint.
package netstate

import (
	"sync"

	"github.com/MKhiriev/fia-offline-sync/internal/logger"
)

type callback struct {
	id int
	fn func()
}

// Monitor is the connectivity flag. The zero value is not usable; build it
// with [NewMonitor].
type Monitor struct {
	mu        sync.Mutex
	online    bool
	nextID    int
	onOnline  []callback
	onOffline []callback

	logger *logger.Logger
}

func NewMonitor(initial bool, log *logger.Logger) *Monitor {
	return &Monitor{online: initial, logger: log}
}

func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// SetOnline stores the new state. Callbacks run synchronously, in
// registration order, and only when the state actually changes.
func (m *Monitor) SetOnline(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online

	var fire []callback
	if online {
		fire = append(fire, m.onOnline...)
	} else {
		fire = append(fire, m.onOffline...)
	}
	m.mu.Unlock()

	m.logger.Info().Str("func", "Monitor.SetOnline").Bool("online", online).Msg("connectivity changed")

	for _, cb := range fire {
		cb.fn()
	}
}

// OnOnline registers fn for offline-to-online transitions. The returned
// func unregisters it.
func (m *Monitor) OnOnline(fn func()) func() {
	return m.register(&m.onOnline, fn)
}

// OnOffline registers fn for online-to-offline transitions.
func (m *Monitor) OnOffline(fn func()) func() {
	return m.register(&m.onOffline, fn)
}

func (m *Monitor) register(list *[]callback, fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	id := m.nextID
	*list = append(*list, callback{id: id, fn: fn})

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, cb := range *list {
			if cb.id == id {
				*list = append((*list)[:i:i], (*list)[i+1:]...)
				return
			}
		}
	}
}
