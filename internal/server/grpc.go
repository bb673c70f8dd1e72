// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"fmt"
	"net"

	"google.golang.org/grpc"

	myGRPC "github.com/MKhiriev/fia-offline-sync/internal/handler/grpc"
	"github.com/MKhiriev/fia-offline-sync/internal/logger"
)

type grpcServer struct {
	handler *myGRPC.Handler

	server          *grpc.Server
	gRPCNetListener net.Listener

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, addr string, logger *logger.Logger) (*grpcServer, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("gRPC listen on %s: %w", addr, err)
	}

	srv := grpc.NewServer()
	handler.Register(srv)

	return &grpcServer{
		handler:         handler,
		server:          srv,
		gRPCNetListener: lis,
		logger:          logger,
	}, nil
}

// startHealth begins refreshing the health status; Shutdown stops it.
func (g *grpcServer) startHealth(ctx context.Context) {
	g.handler.Start(ctx)
}

func (g *grpcServer) RunServer() {
	g.logger.Info().Str("addr", g.gRPCNetListener.Addr().String()).Msg("gRPC server listening")
	if err := g.server.Serve(g.gRPCNetListener); err != nil {
		g.logger.Err(err).Str("func", "grpcServer.RunServer").Msg("gRPC server Serve failed")
	}
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("gRPC server Shutdown")
	g.handler.Stop()
	g.server.GracefulStop()
}
