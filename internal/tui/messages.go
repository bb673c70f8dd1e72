// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/MKhiriev/fia-offline-sync/models"

type stateMsg struct {
	state models.SyncState
}

// stateClosedMsg is sent once the coordinator closed the subscription.
type stateClosedMsg struct{}

type countsLoadedMsg struct {
	counts map[models.StoreName]int
	err    error
}

type syncDoneMsg struct {
	err error
}

type refreshDoneMsg struct {
	err error
}

type clearStatusMsg struct{}
