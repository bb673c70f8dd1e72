// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/fia-offline-sync/internal/logger"
)

// onlineNotifier is the part of netstate.Monitor the trigger listens to.
type onlineNotifier interface {
	Online() bool
	OnOnline(fn func()) (unsubscribe func())
}

// replayer is the part of requestcache.BackgroundSync fired on reconnect.
type replayer interface {
	FireRegistered(ctx context.Context)
	Registered() []string
	OnRegister(fn func()) (unsubscribe func())
}

// reconnectTrigger replays queued background-sync requests while the
// connection is up: at start, on every reconnect, on every new registration
// and every retry interval while registrations are left. Replays run on the
// trigger's goroutine; wakeups that arrive during a replay collapse into one
// more run.
type reconnectTrigger struct {
	monitor  onlineNotifier
	replayer replayer
	retry    time.Duration

	mu          sync.Mutex
	unsubscribe func()
	cancel      context.CancelFunc
	done        chan struct{}

	logger *logger.Logger
}

// newReconnectTrigger builds the trigger. A retry of zero disables the
// retry ticker.
func newReconnectTrigger(monitor onlineNotifier, replayer replayer, retry time.Duration, log *logger.Logger) *reconnectTrigger {
	return &reconnectTrigger{monitor: monitor, replayer: replayer, retry: retry, logger: log}
}

// Start implements workers.Worker.
func (t *reconnectTrigger) Start(ctx context.Context) {
	t.Stop()

	ctx, cancel := context.WithCancel(ctx)
	wake := make(chan struct{}, 1)
	done := make(chan struct{})

	notify := func() {
		select {
		case wake <- struct{}{}:
		default:
		}
	}
	unsubscribeOnline := t.monitor.OnOnline(notify)
	unsubscribeRegister := t.replayer.OnRegister(notify)
	unsubscribe := func() {
		unsubscribeOnline()
		unsubscribeRegister()
	}
	if t.monitor.Online() {
		notify()
	}

	t.mu.Lock()
	t.unsubscribe = unsubscribe
	t.cancel = cancel
	t.done = done
	t.mu.Unlock()

	go func() {
		defer close(done)

		var retry <-chan time.Time
		if t.retry > 0 {
			ticker := time.NewTicker(t.retry)
			defer ticker.Stop()
			retry = ticker.C
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-wake:
			case <-retry:
				if len(t.replayer.Registered()) == 0 {
					continue
				}
			}
			if !t.monitor.Online() {
				continue
			}
			t.logger.Debug().Str("func", "reconnectTrigger.Start").Msg("connection is up, replaying queued requests")
			t.replayer.FireRegistered(ctx)
		}
	}()
}

// Stop implements workers.Worker.
func (t *reconnectTrigger) Stop() {
	t.mu.Lock()
	unsubscribe, cancel, done := t.unsubscribe, t.cancel, t.done
	t.unsubscribe, t.cancel, t.done = nil, nil, nil
	t.mu.Unlock()

	if unsubscribe == nil {
		return
	}
	unsubscribe()
	cancel()
	<-done
}
