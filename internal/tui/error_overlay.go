// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

// errorOverlayModel shows the full text of the last error, which the main
// screen truncates.
type errorOverlayModel struct {
	message string
}

func (m errorOverlayModel) View() string {
	message := m.message
	if message == "" {
		message = "no errors so far"
	}
	content := titleStyle.Render("Last error") + "\n\n" + message + "\n\nenter / esc close"
	return overlayBoxStyle.Render(content)
}
