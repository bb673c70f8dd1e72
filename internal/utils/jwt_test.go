// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSessionToken_RoundTrip(t *testing.T) {
	token, err := GenerateSessionToken("fia", "agent-1", time.Hour, "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := ParseSessionToken(token, "secret", "fia")
	require.NoError(t, err)
	assert.Equal(t, "agent-1", subject)
}

func TestGenerateSessionToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		subject  string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", "s", time.Hour, "key"},
		{"empty subject", "iss", "", time.Hour, "key"},
		{"zero duration", "iss", "s", 0, "key"},
		{"empty key", "iss", "s", time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateSessionToken(tt.issuer, tt.subject, tt.duration, tt.key)
			assert.ErrorIs(t, err, ErrInvalidTokenParams)
		})
	}
}

func TestParseSessionToken_Rejects(t *testing.T) {
	valid, err := GenerateSessionToken("fia", "agent-1", time.Hour, "secret")
	require.NoError(t, err)

	expiredClaims := SessionClaims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "fia",
		Subject:   "agent-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString([]byte("secret"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer: "fia", Subject: "agent-1",
	}}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		key    string
		issuer string
	}{
		{"wrong key", valid, "other", "fia"},
		{"wrong issuer", valid, "secret", "someone-else"},
		{"expired", expired, "secret", "fia"},
		{"no expiry", noExpiry, "secret", "fia"},
		{"garbage", "not-a-jwt", "secret", "fia"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSessionToken(tt.token, tt.key, tt.issuer)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
