// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/fia-offline-sync/internal/service"
	"github.com/MKhiriev/fia-offline-sync/models"
)

const (
	statusTTL      = 3 * time.Second
	errorLineWidth = 60
)

// dashboardModel is the only screen of the client:
// 1) mirrors every state snapshot the coordinator publishes
// 2) starts syncs and refreshes as commands, never inline
// 3) overlays build info and the full last error on top of itself
type dashboardModel struct {
	ctx  context.Context
	sync service.ClientSyncService

	states      <-chan models.SyncState
	unsubscribe func()

	state      models.SyncState
	counts     map[models.StoreName]int
	countsErr  error
	spinner    syncModel
	syncing    bool
	refreshing bool

	status string
	errMsg string

	buildInfo     models.BuildInfo
	showBuildInfo bool
	showError     bool

	copyToClipboard func(string) error
}

func newDashboardModel(ctx context.Context, sync service.ClientSyncService, buildInfo models.BuildInfo) dashboardModel {
	states, unsubscribe := sync.Subscribe()
	state := sync.State()
	spin := newSyncModel()
	spin.running = state.Syncing
	return dashboardModel{
		ctx:             ctx,
		sync:            sync,
		states:          states,
		unsubscribe:     unsubscribe,
		state:           state,
		spinner:         spin,
		buildInfo:       buildInfo,
		copyToClipboard: clipboard.WriteAll,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForState(m.states), m.cmdLoadCounts()}
	if m.state.Syncing {
		cmds = append(cmds, m.spinner.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		prev := m.state
		m.state = msg.state
		cmds := []tea.Cmd{waitForState(m.states), m.syncSpinner()}
		if !msg.state.Syncing && (prev.Syncing || prev.PendingCount != msg.state.PendingCount) {
			cmds = append(cmds, m.cmdLoadCounts())
		}
		return m, tea.Batch(cmds...)
	case stateClosedMsg:
		return m, nil
	case countsLoadedMsg:
		m.counts = msg.counts
		m.countsErr = msg.err
		return m, nil
	case syncDoneMsg:
		m.syncing = false
		m.syncSpinner()
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		hide := m.setStatus("sync finished")
		return m, hide
	case refreshDoneMsg:
		m.refreshing = false
		m.syncSpinner()
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, m.cmdLoadCounts()
		}
		m.errMsg = ""
		hide := m.setStatus("local stores refreshed")
		return m, tea.Batch(m.cmdLoadCounts(), hide)
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m dashboardModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.quit) {
		return m, tea.Quit
	}

	if m.showBuildInfo || m.showError {
		if key.Matches(msg, keys.esc) ||
			(m.showBuildInfo && key.Matches(msg, keys.buildInfo)) ||
			(m.showError && key.Matches(msg, keys.errors)) {
			m.showBuildInfo = false
			m.showError = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.sync):
		return m.startSync()
	case key.Matches(msg, keys.refresh):
		return m.startRefresh()
	case key.Matches(msg, keys.copy):
		return m.copyLastError()
	case key.Matches(msg, keys.errors):
		m.showError = true
	case key.Matches(msg, keys.buildInfo):
		m.showBuildInfo = true
	}
	return m, nil
}

func (m dashboardModel) startSync() (tea.Model, tea.Cmd) {
	if m.syncing || m.state.Syncing {
		hide := m.setStatus("sync already running")
		return m, hide
	}
	if !m.state.Online {
		hide := m.setStatus("offline, changes stay queued until the network is back")
		return m, hide
	}
	m.syncing = true
	m.errMsg = ""
	tick := m.syncSpinner()
	return m, tea.Batch(m.cmdSync(), tick)
}

func (m dashboardModel) startRefresh() (tea.Model, tea.Cmd) {
	if m.refreshing {
		return m, nil
	}
	if !m.state.Online {
		hide := m.setStatus("offline, refresh needs the network")
		return m, hide
	}
	m.refreshing = true
	m.errMsg = ""
	tick := m.syncSpinner()
	return m, tea.Batch(m.cmdRefresh(), tick)
}

func (m dashboardModel) copyLastError() (tea.Model, tea.Cmd) {
	text := m.lastError()
	if text == "" {
		hide := m.setStatus("nothing to copy")
		return m, hide
	}
	if err := m.copyToClipboard(text); err != nil {
		m.errMsg = fmt.Sprintf("copy failed: %v", err)
		return m, nil
	}
	hide := m.setStatus("error copied to clipboard")
	return m, hide
}

// lastError prefers the failure of the user's own action over the drain
// error the coordinator reports.
func (m dashboardModel) lastError() string {
	if m.errMsg != "" {
		return m.errMsg
	}
	return humanizeError(m.state.LastError)
}

func (m dashboardModel) busy() bool {
	return m.syncing || m.refreshing || m.state.Syncing
}

// syncSpinner matches the spinner to busy and returns the tick that
// restarts its loop, if any.
func (m *dashboardModel) syncSpinner() tea.Cmd {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.setRunning(m.busy())
	return cmd
}

func (m *dashboardModel) setStatus(status string) tea.Cmd {
	m.status = status
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m dashboardModel) View() string {
	if m.showBuildInfo {
		return renderBuildInfoWindow(m.buildInfo)
	}
	if m.showError {
		return appStyle.Render(errorOverlayModel{message: m.lastError()}.View())
	}

	var b strings.Builder

	b.WriteString(m.banner())
	b.WriteString("\n")
	b.WriteString(pendingStyle.Render(pendingLabel(m.state.PendingCount)))
	b.WriteString("\n")

	switch {
	case m.state.Syncing || m.syncing:
		b.WriteString(m.spinner.View("Syncing..."))
		b.WriteString("\n")
	case m.refreshing:
		b.WriteString(m.spinner.View("Refreshing..."))
		b.WriteString("\n")
	}

	b.WriteString("Last sync: ")
	if m.state.LastSyncAt != nil {
		b.WriteString(m.state.LastSyncAt.Local().Format(time.DateTime))
	} else {
		b.WriteString("never")
	}
	b.WriteString("\n")

	if last := m.lastError(); last != "" {
		b.WriteString(errorStyle.Render("Last error: " + fitText(last, errorLineWidth)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderCounts())

	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(m.status)
	}

	return renderPage("FIA OFFLINE SYNC", b.String(), keys.helpLine())
}

func (m dashboardModel) banner() string {
	switch {
	case m.state.OnlineOnly && m.state.Online:
		return degradedBannerStyle.Render("● ONLINE ONLY  local storage unavailable")
	case m.state.OnlineOnly:
		return offlineBannerStyle.Render("● OFFLINE  local storage unavailable, nothing can be saved")
	case m.state.Online:
		return onlineBannerStyle.Render("● ONLINE")
	default:
		return offlineBannerStyle.Render("● OFFLINE  changes are saved on this device")
	}
}

func (m dashboardModel) renderCounts() string {
	var b strings.Builder
	for i, s := range models.AllStores() {
		if i > 0 {
			b.WriteString("\n")
		}
		count := "-"
		if n, ok := m.counts[s]; ok {
			count = fmt.Sprint(n)
		}
		fmt.Fprintf(&b, "%-14s %6s", s, count)
	}
	if m.countsErr != nil {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("counts unavailable: " + fitText(humanizeError(m.countsErr), errorLineWidth)))
	}
	return b.String()
}

// waitForState blocks on the subscription inside the command goroutine.
func waitForState(states <-chan models.SyncState) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-states
		if !ok {
			return stateClosedMsg{}
		}
		return stateMsg{state: state}
	}
}

func (m dashboardModel) cmdLoadCounts() tea.Cmd {
	ctx := m.ctx
	svc := m.sync

	return func() tea.Msg {
		counts := make(map[models.StoreName]int, len(models.AllStores()))
		var errs []error
		for _, s := range models.AllStores() {
			records, err := svc.GetAll(ctx, s)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			counts[s] = len(records)
		}
		return countsLoadedMsg{counts: counts, err: errors.Join(errs...)}
	}
}

func (m dashboardModel) cmdSync() tea.Cmd {
	ctx := m.ctx
	svc := m.sync

	return func() tea.Msg {
		return syncDoneMsg{err: svc.PerformSync(ctx)}
	}
}

// cmdRefresh replaces every local store with the remote copy. A store
// holding queued changes is skipped with ErrPendingChanges.
func (m dashboardModel) cmdRefresh() tea.Cmd {
	ctx := m.ctx
	svc := m.sync

	return func() tea.Msg {
		var errs []error
		for _, s := range models.AllStores() {
			if err := svc.Refresh(ctx, s); err != nil {
				errs = append(errs, fmt.Errorf("refresh %s: %w", s, err))
			}
		}
		return refreshDoneMsg{err: errors.Join(errs...)}
	}
}
