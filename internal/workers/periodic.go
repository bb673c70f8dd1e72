// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/fia-offline-sync/internal/logger"
)

// Periodic calls fn on a ticker until stopped. Errors are logged and do not
// stop the job.
type Periodic struct {
	name      string
	interval  time.Duration
	immediate bool
	fn        func(ctx context.Context) error
	logger    *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPeriodic builds an idle job. A non-positive interval defaults to five
// minutes.
func NewPeriodic(name string, interval time.Duration, fn func(ctx context.Context) error, log *logger.Logger) *Periodic {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Periodic{name: name, interval: interval, fn: fn, logger: log}
}

// RunImmediately makes Start call fn once before the first tick.
func (p *Periodic) RunImmediately() *Periodic {
	p.immediate = true
	return p
}

func (p *Periodic) Interval() time.Duration {
	return p.interval
}

// Start stops a previous run, then launches the ticker goroutine.
func (p *Periodic) Start(ctx context.Context) {
	p.Stop()

	p.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		t := time.NewTicker(p.interval)
		defer t.Stop()

		if p.immediate {
			p.tick(jobCtx)
		}

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				p.tick(jobCtx)
			}
		}
	}()
}

func (p *Periodic) tick(ctx context.Context) {
	if err := p.fn(ctx); err != nil && ctx.Err() == nil {
		p.logger.Warn().Err(err).Str("func", "Periodic.tick").Str("job", p.name).Msg("periodic job failed")
	}
}

// Stop cancels the goroutine and waits for it to exit.
func (p *Periodic) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
}
