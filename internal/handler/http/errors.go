// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Errors written by the session middleware.
var (
	// ErrMissingSession is returned when neither the session cookie nor an
	// Authorization header is present.
	ErrMissingSession = errors.New("missing session")

	// ErrInvalidAuthorizationHeader is returned when the Authorization header
	// cannot be split into a scheme and a token.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when a token is present but blank.
	ErrEmptyToken = errors.New("empty session token")

	ErrInvalidJSON = errors.New("invalid JSON was passed")
)
