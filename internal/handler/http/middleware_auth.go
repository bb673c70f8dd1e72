// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/fia-offline-sync/internal/logger"
	"github.com/MKhiriev/fia-offline-sync/internal/utils"
)

// SessionCookieName is the cookie that carries the session JWT.
const SessionCookieName = "session"

// auth enforces the session token when the auth service is enabled.
//
// The token is read from the session cookie and, failing that, from an
// "Authorization: Bearer <token>" header. On success the token subject is
// stored in the request context under [utils.SubjectCtxKey]. Every
// rejection is a 401.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.services.AuthService.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		tokenString, err := sessionToken(r)
		if err != nil {
			log.Err(err).Str("func", "*Handler.auth").Msg("request without usable session")
			utils.WriteError(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		subject, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Str("func", "*Handler.auth").Msg("error occurred during parsing token")
			utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithSubject(ctx, subject)))
	})
}

func sessionToken(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if strings.TrimSpace(cookie.Value) == "" {
			return "", ErrEmptyToken
		}
		return cookie.Value, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrMissingSession
	}
	return getTokenFromAuthHeader(authHeader)
}

// getTokenFromAuthHeader extracts the token from "<scheme> <token>".
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
