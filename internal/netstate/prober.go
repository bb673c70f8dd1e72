// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package netstate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/fia-offline-sync/internal/logger"
	"github.com/MKhiriev/fia-offline-sync/internal/utils"
	"github.com/MKhiriev/fia-offline-sync/internal/workers"
)

// Pinger reports whether the remote side answered at all.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HTTPPinger issues GET <prefix>/health on its own HTTP client. It never
// goes through the request cache, so a cached health response cannot mask
// an outage.
type HTTPPinger struct {
	client *utils.HTTPClient
	path   string
}

func NewHTTPPinger(baseURL, apiPrefix string, timeout time.Duration) (*HTTPPinger, error) {
	normalized, err := utils.NormalizeBaseURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid probe address: %w", err)
	}
	prefix := strings.TrimRight(apiPrefix, "/")
	return &HTTPPinger{
		client: utils.NewHTTPClient(normalized, timeout, nil),
		path:   prefix + "/health",
	}, nil
}

// Ping succeeds for any HTTP response. Only transport failures count as
// unreachable.
func (p *HTTPPinger) Ping(ctx context.Context) error {
	_, err := p.client.R().SetContext(ctx).Get(p.path)
	return err
}

// Prober periodically pings the API and feeds the result into a [Monitor].
// It implements [workers.Worker].
type Prober struct {
	pinger  Pinger
	monitor *Monitor
	timeout time.Duration
	job     *workers.Periodic
	logger  *logger.Logger
}

func NewProber(pinger Pinger, monitor *Monitor, interval, timeout time.Duration, log *logger.Logger) *Prober {
	p := &Prober{pinger: pinger, monitor: monitor, timeout: timeout, logger: log}
	p.job = workers.NewPeriodic("prober", interval, func(ctx context.Context) error {
		p.Probe(ctx)
		return nil
	}, log)
	return p
}

// Probe pings once, updates the monitor and returns the observed state.
func (p *Prober) Probe(ctx context.Context) bool {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	err := p.pinger.Ping(ctx)
	online := err == nil
	if err != nil {
		p.logger.Debug().Err(err).Str("func", "Prober.Probe").Msg("remote api unreachable")
	}

	p.monitor.SetOnline(online)
	return online
}

func (p *Prober) Start(ctx context.Context) {
	p.job.Start(ctx)
}

func (p *Prober) Stop() {
	p.job.Stop()
}
