// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
)

// DrainMode selects when drained outbox entries are removed.
type DrainMode string

const (
	// DrainPerGroup removes a store's entries as soon as that store's remote
	// calls succeed.
	DrainPerGroup DrainMode = "per-group"
	// DrainAllOrNothing removes entries only when every store succeeded.
	DrainAllOrNothing DrainMode = "all-or-nothing"
)

var ErrUnknownDrainMode = errors.New("unknown drain mode")

func ParseDrainMode(raw string) (DrainMode, error) {
	switch m := DrainMode(raw); m {
	case DrainPerGroup, DrainAllOrNothing:
		return m, nil
	case "":
		return DrainPerGroup, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDrainMode, raw)
	}
}
