// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package netstate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/fia-offline-sync/internal/logger"
)

func TestMonitor_FiresOnlyOnTransitions(t *testing.T) {
	m := NewMonitor(false, logger.Nop())

	var events []string
	m.OnOnline(func() { events = append(events, "online") })
	m.OnOffline(func() { events = append(events, "offline") })

	m.SetOnline(false)
	m.SetOnline(true)
	m.SetOnline(true)
	m.SetOnline(false)

	assert.Equal(t, []string{"online", "offline"}, events)
	assert.False(t, m.Online())
}

func TestMonitor_RegistrationOrder(t *testing.T) {
	m := NewMonitor(false, logger.Nop())

	var order []int
	m.OnOnline(func() { order = append(order, 1) })
	m.OnOnline(func() { order = append(order, 2) })
	m.OnOnline(func() { order = append(order, 3) })

	m.SetOnline(true)
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestMonitor_Unsubscribe(t *testing.T) {
	m := NewMonitor(true, logger.Nop())

	calls := 0
	unsubscribe := m.OnOffline(func() { calls++ })
	m.OnOffline(func() {})

	m.SetOnline(false)
	unsubscribe()
	unsubscribe()
	m.SetOnline(true)
	m.SetOnline(false)

	assert.Equal(t, 1, calls)
}

func TestMonitor_CallbackMayReadState(t *testing.T) {
	m := NewMonitor(false, logger.Nop())

	var seen bool
	m.OnOnline(func() { seen = m.Online() })
	m.SetOnline(true)

	assert.True(t, seen)
}
