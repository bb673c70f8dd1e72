// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient wraps *resty.Client so every outbound client in the project is
// configured the same way.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent resty client rooted at baseURL.
// A non-positive timeout leaves resty's default. A nil transport keeps
// http.DefaultTransport.
func NewHTTPClient(baseURL string, timeout time.Duration, transport http.RoundTripper) *HTTPClient {
	c := resty.New().SetBaseURL(strings.TrimRight(baseURL, "/"))
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	if transport != nil {
		c.SetTransport(transport)
	}
	return &HTTPClient{Client: c}
}

// NormalizeBaseURL adds a missing http:// scheme and strips trailing
// slashes.
func NormalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}
