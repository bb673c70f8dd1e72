// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
)

// StoreName identifies one of the fixed logical collections that are kept
// locally and mirrored on the remote API. The set is closed: values outside
// of [AllStores] are rejected by [ParseStoreName].
type StoreName string

const (
	// StoreTransactions holds banking-correspondent transactions.
	StoreTransactions StoreName = "transactions"

	// StoreAudits holds field audits of CSP points.
	StoreAudits StoreName = "audits"

	// StoreComplaints holds customer complaints.
	StoreComplaints StoreName = "complaints"
)

// ErrUnknownStore is returned when a string does not name a known collection.
var ErrUnknownStore = errors.New("unknown store")

// AllStores returns every known collection in a stable order.
func AllStores() []StoreName {
	return []StoreName{StoreTransactions, StoreAudits, StoreComplaints}
}

// Valid reports whether s is one of the known collections.
func (s StoreName) Valid() bool {
	switch s {
	case StoreTransactions, StoreAudits, StoreComplaints:
		return true
	}
	return false
}

func (s StoreName) String() string {
	return string(s)
}

// ParseStoreName converts raw into a [StoreName].
func ParseStoreName(raw string) (StoreName, error) {
	s := StoreName(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStore, raw)
	}
	return s, nil
}
