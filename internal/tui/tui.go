// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui renders the terminal sync dashboard of the client.
//
// The dashboard follows the coordinator's state stream: it shows the
// connectivity banner, the number of queued changes, a spinner while a drain
// runs and the last sync error. Every sync or refresh runs as a tea.Cmd, so
// the interface never waits on the network.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/fia-offline-sync/internal/logger"
	"github.com/MKhiriev/fia-offline-sync/internal/service"
	"github.com/MKhiriev/fia-offline-sync/models"
)

type TUI struct {
	sync      service.ClientSyncService
	buildInfo models.BuildInfo
	logger    *logger.Logger
	options   []tea.ProgramOption
}

func New(services *service.ClientServices, buildInfo models.BuildInfo, log *logger.Logger, opts ...tea.ProgramOption) *TUI {
	return &TUI{
		sync:      services.SyncService,
		buildInfo: buildInfo,
		logger:    log,
		options:   opts,
	}
}

// Run shows the dashboard until the user quits or ctx is cancelled.
func (t *TUI) Run(ctx context.Context) error {
	model := newDashboardModel(ctx, t.sync, t.buildInfo)
	defer model.unsubscribe()

	opts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, t.options...)
	_, err := tea.NewProgram(model, opts...).Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		t.logger.Err(err).Str("func", "TUI.Run").Msg("dashboard stopped with error")
	}
	return err
}
