// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/fia-offline-sync/internal/config"
	"github.com/MKhiriev/fia-offline-sync/internal/logger"
	"github.com/MKhiriev/fia-offline-sync/internal/store"
)

type Services struct {
	RecordService  RecordService
	AuthService    AuthService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg *config.ServerConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App.Version, logger)
	if err != nil {
		return nil, err
	}

	records := NewRecordValidationService().Wrap(NewRecordService(storages.RecordRepository, logger))

	return &Services{
		RecordService:  records,
		AuthService:    NewAuthService(cfg.App, logger),
		AppInfoService: appInfo,
	}, nil
}
