// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config loads, merges and validates configuration for the records
// server and the offline client.
//
// Values come from three sources. For every field the first non-zero value
// in this order wins:
//  1. Command-line flags
//  2. Environment variables
//  3. JSON config file (path from -c/-config or CONFIG)
//
// Fields still empty after merging receive the defaults from [Defaults].
// [GetServerConfig] and [GetClientConfig] return the validated view each
// binary needs.
package config
