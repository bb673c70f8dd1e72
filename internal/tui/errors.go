// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/fia-offline-sync/internal/service"
)

// humanizeError turns a coordinator error into the line shown to the agent.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, service.ErrPendingChanges):
		return "local changes are still queued, sync before refreshing"
	case errors.Is(err, service.ErrOffline):
		return "no network, try again once online"
	}

	if described := service.DescribeError(err); described != err.Error() {
		return described
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "no network or the server is unavailable"
	}

	return err.Error()
}
