// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package grpc exposes the standard gRPC health service for the records
// API. Its status follows the database: SERVING while the records
// repository answers pings, NOT_SERVING otherwise.
package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/fia-offline-sync/internal/logger"
	"github.com/MKhiriev/fia-offline-sync/internal/service"
	"github.com/MKhiriev/fia-offline-sync/internal/workers"
)

// RecordsServiceName is the service name reported next to the overall ("")
// status.
const RecordsServiceName = "fia.records"

const healthCheckInterval = 15 * time.Second

// Handler is the root gRPC transport handler.
type Handler struct {
	services *service.Services
	health   *health.Server
	checker  *workers.Periodic

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	h := &Handler{
		services: services,
		health:   health.NewServer(),
		logger:   logger,
	}
	h.checker = workers.NewPeriodic("grpc-health", healthCheckInterval, h.CheckHealth, logger).RunImmediately()

	logger.Debug().Msg("gRPC handler created")
	return h
}

// Register attaches the health service to s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
}

// CheckHealth pings the records repository and publishes the result.
func (h *Handler) CheckHealth(ctx context.Context) error {
	status := healthpb.HealthCheckResponse_SERVING
	err := h.services.RecordService.Health(ctx)
	if err != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(RecordsServiceName, status)
	return err
}

// Start refreshes the health status in the background until Stop.
func (h *Handler) Start(ctx context.Context) {
	h.checker.Start(ctx)
}

// Stop ends the background checks and switches every service to
// NOT_SERVING so watchers see the shutdown.
func (h *Handler) Stop() {
	h.checker.Stop()
	h.health.Shutdown()
}
