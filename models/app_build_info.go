// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// BuildInfo carries linker-injected release metadata shown by the binaries.
type BuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// NewBuildInfo replaces empty values with "N/A".
func NewBuildInfo(version, date, commit string) BuildInfo {
	orNA := func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	}
	return BuildInfo{Version: orNA(version), Date: orNA(date), Commit: orNA(commit)}
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s\n", b.Version, b.Date, b.Commit)
}
