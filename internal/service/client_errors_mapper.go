// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/fia-offline-sync/internal/adapter"
	"github.com/MKhiriev/fia-offline-sync/internal/store"
)

// mapAdapterError adds the service-level sentinel to an adapter error. The
// original error stays in the chain so adapter.IsRetryable still works.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, adapter.ErrNotFound):
		return fmt.Errorf("%w: %w", store.ErrRecordNotFound, err)
	case errors.Is(err, adapter.ErrUnauthorized), errors.Is(err, adapter.ErrForbidden):
		return fmt.Errorf("%w: %w", ErrSessionRejected, err)
	case adapter.IsRetryable(err):
		return fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
	case errors.Is(err, adapter.ErrBadRequest), errors.Is(err, adapter.ErrConflict):
		return fmt.Errorf("%w: %w", ErrRejectedByRemote, err)
	}

	return err
}

// DescribeError renders err as one short line for status displays.
func DescribeError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSessionRejected):
		return "session rejected, check the session token"
	case errors.Is(err, ErrRemoteUnavailable), errors.Is(err, adapter.ErrOffline), errors.Is(err, adapter.ErrTransport):
		return "remote api unavailable, changes stay queued"
	case errors.Is(err, ErrRejectedByRemote):
		return "remote rejected the data: " + err.Error()
	case errors.Is(err, store.ErrStorageUnavailable):
		return "local storage unavailable, working online only"
	}
	return err.Error()
}
