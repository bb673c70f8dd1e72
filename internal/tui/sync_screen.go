// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// syncModel is the spinner shown while a drain or refresh runs. It keeps
// ticking only while running is set.
type syncModel struct {
	spinner spinner.Model
	running bool
}

func newSyncModel() syncModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return syncModel{spinner: s}
}

// setRunning returns the command that starts the tick loop when the spinner
// goes from idle to running.
func (m syncModel) setRunning(running bool) (syncModel, tea.Cmd) {
	start := running && !m.running
	m.running = running
	if start {
		return m, m.spinner.Tick
	}
	return m, nil
}

func (m syncModel) Update(msg spinner.TickMsg) (syncModel, tea.Cmd) {
	if !m.running {
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m syncModel) View(label string) string {
	return m.spinner.View() + " " + label
}
