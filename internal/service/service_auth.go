// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/fia-offline-sync/internal/config"
	"github.com/MKhiriev/fia-offline-sync/internal/logger"
	"github.com/MKhiriev/fia-offline-sync/internal/utils"
)

// authService issues and verifies the HS256 session tokens carried in the
// session cookie.
type authService struct {
	// tokenSignKey signs and verifies tokens. Empty disables auth.
	tokenSignKey string

	// tokenIssuer is the "iss" claim; tokens from other issuers are
	// rejected.
	tokenIssuer string

	tokenDuration time.Duration

	logger *logger.Logger
}

func NewAuthService(cfg config.ServerApp, logger *logger.Logger) AuthService {
	return &authService{
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

func (a *authService) Enabled() bool {
	return a.tokenSignKey != ""
}

// CreateToken signs a session token for subject that expires after the
// configured duration.
func (a *authService) CreateToken(ctx context.Context, subject string) (string, error) {
	token, err := utils.GenerateSessionToken(a.tokenIssuer, subject, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "authService.CreateToken").Str("subject", subject).Msg("token creation failed")
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken normalizes every validation failure to
// ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, token string) (string, error) {
	subject, err := utils.ParseSessionToken(token, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "authService.ParseToken").Msg("rejected session token")
		return "", ErrTokenIsExpiredOrInvalid
	}

	return subject, nil
}
