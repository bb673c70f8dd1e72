// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
)

// Errors mapped from records API responses by mapHTTPError.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrRequestTimeout      = errors.New("request timeout")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("service unavailable")
	ErrGatewayTimeout      = errors.New("gateway timeout")
)

var (
	// ErrOffline is returned when the request cache answered on behalf of an
	// unreachable network with its offline JSON body.
	ErrOffline = errors.New("offline: request was not delivered")

	// ErrTransport wraps failures below HTTP: DNS, refused connections,
	// timeouts.
	ErrTransport = errors.New("transport error")

	ErrDecodeResponse = errors.New("cannot decode response")

	// ErrStaleResponse is returned by reads made with [WithFreshRead] when
	// the request cache answered with a stored copy.
	ErrStaleResponse = errors.New("response served from the request cache")
)

var retryable = []error{
	ErrOffline,
	ErrStaleResponse,
	ErrTransport,
	ErrRequestTimeout,
	ErrTooManyRequests,
	ErrInternalServerError,
	ErrBadGateway,
	ErrServiceUnavailable,
	ErrGatewayTimeout,
	context.DeadlineExceeded,
}

// IsRetryable reports whether err is worth delivering again later. Client
// errors (4xx other than 408 and 429) are not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	for _, target := range retryable {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
