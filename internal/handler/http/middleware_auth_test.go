// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/fia-offline-sync/internal/adapter"
	"github.com/MKhiriev/fia-offline-sync/internal/logger"
	"github.com/MKhiriev/fia-offline-sync/internal/mock"
	"github.com/MKhiriev/fia-offline-sync/internal/service"
	"github.com/MKhiriev/fia-offline-sync/internal/utils"
)

func TestSessionCookieMatchesClient(t *testing.T) {
	assert.Equal(t, adapter.SessionCookieName, SessionCookieName)
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name        string
		enabled     bool
		cookie      string
		header      string
		parsedToken string
		parseErr    error
		wantStatus  int
		wantSubject string
	}{
		{name: "disabled lets everything through", enabled: false, wantStatus: http.StatusOK},
		{name: "missing session", enabled: true, wantStatus: http.StatusUnauthorized},
		{name: "malformed header", enabled: true, header: "Bearer", wantStatus: http.StatusUnauthorized},
		{name: "empty bearer token", enabled: true, header: "Bearer ", wantStatus: http.StatusUnauthorized},
		{
			name: "valid cookie", enabled: true, cookie: "tok", parsedToken: "tok",
			wantStatus: http.StatusOK, wantSubject: "agent-7",
		},
		{
			name: "valid bearer header", enabled: true, header: "Bearer tok", parsedToken: "tok",
			wantStatus: http.StatusOK, wantSubject: "agent-7",
		},
		{
			name: "rejected token", enabled: true, cookie: "expired", parsedToken: "expired",
			parseErr: service.ErrTokenIsExpiredOrInvalid, wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			auth := mock.NewMockAuthService(ctrl)
			auth.EXPECT().Enabled().Return(tt.enabled)
			if tt.parsedToken != "" {
				subject := "agent-7"
				if tt.parseErr != nil {
					subject = ""
				}
				auth.EXPECT().ParseToken(gomock.Any(), tt.parsedToken).Return(subject, tt.parseErr)
			}

			h := NewHandler(&service.Services{AuthService: auth}, logger.Nop())

			var gotSubject string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotSubject, _ = utils.GetSubjectFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/audits", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.auth(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantSubject, gotSubject)
		})
	}
}

func TestGetTokenFromAuthHeader(t *testing.T) {
	token, err := getTokenFromAuthHeader("Bearer abc")
	assert.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = getTokenFromAuthHeader("abc")
	assert.ErrorIs(t, err, ErrInvalidAuthorizationHeader)

	_, err = getTokenFromAuthHeader("Bearer ")
	assert.ErrorIs(t, err, ErrEmptyToken)
}
