// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	sync      key.Binding
	refresh   key.Binding
	copy      key.Binding
	errors    key.Binding
	buildInfo key.Binding
	esc       key.Binding
	quit      key.Binding
}

var keys = keyMap{
	sync:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sync now")),
	refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh from remote")),
	copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy last error")),
	errors:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "error details")),
	buildInfo: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "about")),
	esc:       key.NewBinding(key.WithKeys("esc", "enter")),
	quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// helpLine renders the hotkeys of the main screen.
func (k keyMap) helpLine() string {
	bindings := []key.Binding{k.sync, k.refresh, k.copy, k.errors, k.buildInfo}
	line := ""
	for i, b := range bindings {
		if i > 0 {
			line += "  "
		}
		line += b.Help().Key + ": " + b.Help().Desc
	}
	return line
}
