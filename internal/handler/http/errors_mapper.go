// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/fia-offline-sync/internal/service"
	"github.com/MKhiriev/fia-offline-sync/internal/store"
	"github.com/MKhiriev/fia-offline-sync/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrValidationEmptyBatch:    http.StatusBadRequest,
	service.ErrValidationEmptyRecordID: http.StatusBadRequest,
	service.ErrValidationNoIDsProvided: http.StatusBadRequest,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,

	models.ErrUnknownStore:         http.StatusNotFound,
	models.ErrEmptyRecordID:        http.StatusBadRequest,
	models.ErrInvalidRecordPayload: http.StatusBadRequest,

	store.ErrRecordNotFound:     http.StatusNotFound,
	store.ErrStorageUnavailable: http.StatusServiceUnavailable,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
