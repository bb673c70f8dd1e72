// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package requestcache

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// RequestKey is the storage key of a request identity: BLAKE2b-256 of the
// upper-cased method and the absolute URL.
func RequestKey(method, url string) string {
	sum := blake2b.Sum256([]byte(strings.ToUpper(method) + " " + url))
	return hex.EncodeToString(sum[:])
}
