// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package requestcache

// State is the worker lifecycle stage.
type State int

const (
	StateParsed State = iota
	StateInstalling
	StateInstalled
	StateActivating
	StateActivated
	// StateRedundant is terminal: install failed and the worker never
	// intercepts.
	StateRedundant
)

func (s State) String() string {
	switch s {
	case StateParsed:
		return "parsed"
	case StateInstalling:
		return "installing"
	case StateInstalled:
		return "installed"
	case StateActivating:
		return "activating"
	case StateActivated:
		return "activated"
	case StateRedundant:
		return "redundant"
	default:
		return "unknown"
	}
}
