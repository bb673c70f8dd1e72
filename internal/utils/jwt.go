// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidTokenParams = errors.New("invalid params for generating session token")
	ErrInvalidToken       = errors.New("invalid session token")
)

// SessionClaims are the claims carried by the session cookie.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// GenerateSessionToken signs an HS256 JWT for subject. The token carries
// iss, sub, iat and exp = now + tokenDuration.
//
//	token, err := utils.GenerateSessionToken("fia-offline-sync", "csp-agent-17", 24*time.Hour, "secret")
func GenerateSessionToken(issuer, subject string, tokenDuration time.Duration, signKey string) (string, error) {
	if issuer == "" || subject == "" || tokenDuration <= 0 || signKey == "" {
		return "", ErrInvalidTokenParams
	}

	now := time.Now()
	claims := SessionClaims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing session token: %w", err)
	}

	return signed, nil
}

// ParseSessionToken verifies signature, issuer and expiry and returns the
// subject. Only HS256 is accepted.
func ParseSessionToken(tokenString, signKey, issuer string) (string, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithIssuer(issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}

	return claims.Subject, nil
}
