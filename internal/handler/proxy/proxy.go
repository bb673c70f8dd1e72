// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package proxy serves the web app on the client machine through the
// request cache, so a browser pointed at the proxy keeps working offline.
// It also exposes the coordinator state for an "offline / N pending"
// banner.
package proxy

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/fia-offline-sync/internal/logger"
	"github.com/MKhiriev/fia-offline-sync/internal/utils"
	"github.com/MKhiriev/fia-offline-sync/models"
)

// StatePath answers with the current sync state as JSON.
const StatePath = "/__sync/state"

// StateSource is what the proxy reports under StatePath.
type StateSource interface {
	State() models.SyncState
}

type Proxy struct {
	target  *url.URL
	reverse *httputil.ReverseProxy
	state   StateSource

	logger *logger.Logger
}

type stateResponse struct {
	Online       bool       `json:"online"`
	Syncing      bool       `json:"syncing"`
	PendingCount int        `json:"pendingCount"`
	OnlineOnly   bool       `json:"onlineOnly"`
	LastError    string     `json:"lastError,omitempty"`
	LastSyncAt   *time.Time `json:"lastSyncAt,omitempty"`
}

// NewProxy forwards every request to origin through transport, normally the
// request cache worker.
func NewProxy(origin string, transport http.RoundTripper, state StateSource, log *logger.Logger) (*Proxy, error) {
	normalized, err := utils.NormalizeBaseURL(origin)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy origin: %w", err)
	}
	target, err := url.Parse(normalized)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy origin: %w", err)
	}

	p := &Proxy{target: target, state: state, logger: log}
	p.reverse = &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.SetURL(target)
			r.SetXForwarded()
		},
		Transport:    transport,
		ErrorHandler: p.proxyError,
	}

	return p, nil
}

func (p *Proxy) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Get(StatePath, p.syncState)
	router.Handle("/*", p.reverse)

	return router
}

func (p *Proxy) syncState(w http.ResponseWriter, _ *http.Request) {
	st := p.state.State()
	resp := stateResponse{
		Online:       st.Online,
		Syncing:      st.Syncing,
		PendingCount: st.PendingCount,
		OnlineOnly:   st.OnlineOnly,
		LastSyncAt:   st.LastSyncAt,
	}
	if st.LastError != nil {
		resp.LastError = st.LastError.Error()
	}

	w.Header().Set("Cache-Control", "no-store")
	_, _ = utils.WriteJSON(w, resp, http.StatusOK)
}

func (p *Proxy) proxyError(w http.ResponseWriter, r *http.Request, err error) {
	p.logger.Err(err).Str("func", "Proxy.proxyError").Str("url", r.URL.String()).Msg("proxy request failed")
	utils.WriteError(w, "origin unreachable", http.StatusBadGateway)
}
