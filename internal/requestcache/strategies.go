// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package requestcache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/MKhiriev/fia-offline-sync/internal/store"
	"github.com/MKhiriev/fia-offline-sync/models"
)

// networkFirst asks the network and falls back to the cache only when the
// request fails at transport level. Non-2xx responses are returned as they
// are.
func (w *Worker) networkFirst(req *http.Request) (*http.Response, error) {
	outgoing, tag, body, err := w.prepare(req)
	if err != nil {
		return nil, err
	}

	resp, err := w.next.RoundTrip(outgoing)
	if err == nil {
		return w.maybeStore(req, resp), nil
	}

	w.logger.Debug().Err(err).Str("func", "Worker.networkFirst").Str("url", req.URL.String()).Msg("network failed, trying cache")

	if tag != "" {
		w.queue(req, tag, body)
	}

	if cached, ok := w.lookup(req, req.Method, req.URL.String()); ok {
		return cached, nil
	}

	return offlineJSON(req), nil
}

// cacheFirst serves a stored copy when one exists and never touches the
// network in that case.
func (w *Worker) cacheFirst(req *http.Request) (*http.Response, error) {
	if cached, ok := w.lookup(req, req.Method, req.URL.String()); ok {
		return cached, nil
	}

	outgoing, tag, body, err := w.prepare(req)
	if err != nil {
		return nil, err
	}

	resp, err := w.next.RoundTrip(outgoing)
	if err == nil {
		return w.maybeStore(req, resp), nil
	}

	w.logger.Debug().Err(err).Str("func", "Worker.cacheFirst").Str("url", req.URL.String()).Msg("network failed")

	if tag != "" {
		w.queue(req, tag, body)
	}

	if isNavigation(req) {
		if page, ok := w.lookup(req, http.MethodGet, w.offlinePageURL(req)); ok {
			return page, nil
		}
	}

	return networkError(req), nil
}

// prepare clones req for the wire. Write requests carrying
// BackgroundSyncHeader have their body buffered so they can be queued on
// failure; the header itself is not forwarded.
func (w *Worker) prepare(req *http.Request) (*http.Request, string, []byte, error) {
	tagValue, tagged := req.Header[BackgroundSyncHeader]
	if !tagged || isSafeMethod(req.Method) {
		return req, "", nil, nil
	}

	tag := TagPendingRequests
	if len(tagValue) > 0 && strings.TrimSpace(tagValue[0]) != "" {
		tag = strings.TrimSpace(tagValue[0])
	}

	var body []byte
	if req.Body != nil {
		var err error
		body, err = io.ReadAll(req.Body)
		_ = req.Body.Close()
		if err != nil {
			return nil, "", nil, fmt.Errorf("read request body: %w", err)
		}
	}

	out := req.Clone(req.Context())
	out.Header.Del(BackgroundSyncHeader)
	out.Body = io.NopCloser(bytes.NewReader(body))
	out.ContentLength = int64(len(body))
	out.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}

	return out, tag, body, nil
}

func (w *Worker) queue(req *http.Request, tag string, body []byte) {
	header := req.Header.Clone()
	header.Del(BackgroundSyncHeader)

	pending := models.PendingRequest{
		ID:        uuid.NewString(),
		Tag:       tag,
		Method:    req.Method,
		URL:       req.URL.String(),
		Header:    header,
		Body:      body,
		CreatedAt: w.now(),
	}
	if err := w.storage.EnqueueRequest(req.Context(), pending); err != nil {
		w.logger.Err(err).Str("func", "Worker.queue").Str("url", pending.URL).Msg("failed to queue request for background sync")
		return
	}

	w.sync.Register(tag)
	w.logger.Info().Str("func", "Worker.queue").Str("tag", tag).Str("url", pending.URL).Msg("request queued for background sync")
}

// maybeStore keeps a copy of successful GET responses under the current
// version. Storage failures are logged and the live response is returned.
func (w *Worker) maybeStore(req *http.Request, resp *http.Response) *http.Response {
	if req.Method != http.MethodGet || resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		w.logger.Warn().Err(err).Str("func", "Worker.maybeStore").Str("url", req.URL.String()).Msg("failed to read response for caching")
		return resp
	}

	url := req.URL.String()
	cached := models.CachedResponse{
		Version:    w.opts.Version,
		Key:        RequestKey(req.Method, url),
		Method:     req.Method,
		URL:        url,
		StatusCode: resp.StatusCode,
		Header:     resp.Header.Clone(),
		Body:       body,
		StoredAt:   w.now(),
	}
	if err = w.storage.PutResponse(req.Context(), cached); err != nil {
		w.logger.Warn().Err(err).Str("func", "Worker.maybeStore").Str("url", url).Msg("failed to cache response")
	}

	return resp
}

func (w *Worker) lookup(req *http.Request, method, url string) (*http.Response, bool) {
	if method != http.MethodGet {
		return nil, false
	}

	cached, err := w.storage.GetResponse(req.Context(), w.opts.Version, RequestKey(method, url))
	if err != nil {
		if !errors.Is(err, store.ErrCacheMiss) {
			w.logger.Warn().Err(err).Str("func", "Worker.lookup").Str("url", url).Msg("cache lookup failed")
		}
		return nil, false
	}

	header := cached.Header.Clone()
	if header == nil {
		header = http.Header{}
	}
	header.Set(CacheStatusHeader, models.CacheStatusHit)

	return newResponse(req, cached.StatusCode, header, cached.Body), true
}

func (w *Worker) offlinePageURL(req *http.Request) string {
	if w.opts.Origin != "" {
		return w.opts.Origin + w.opts.OfflineURL
	}
	u := *req.URL
	u.Path = w.opts.OfflineURL
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

func isSafeMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

// isNavigation reports a full-page load: Sec-Fetch-Mode navigate, or a GET
// that accepts HTML.
func isNavigation(req *http.Request) bool {
	if req.Header.Get("Sec-Fetch-Mode") == "navigate" {
		return true
	}
	return req.Method == http.MethodGet && strings.Contains(req.Header.Get("Accept"), "text/html")
}

func offlineJSON(req *http.Request) *http.Response {
	body, _ := json.Marshal(models.OfflineResponse{Error: offlineMessage, OfflineMode: true})
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set(CacheStatusHeader, models.CacheStatusOffline)
	return newResponse(req, http.StatusServiceUnavailable, header, body)
}

func networkError(req *http.Request) *http.Response {
	header := http.Header{}
	header.Set("Content-Type", "text/plain; charset=utf-8")
	header.Set(CacheStatusHeader, models.CacheStatusOffline)
	return newResponse(req, http.StatusRequestTimeout, header, []byte("Network error"))
}

func newResponse(req *http.Request, status int, header http.Header, body []byte) *http.Response {
	header.Set("Content-Length", strconv.Itoa(len(body)))
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", status, http.StatusText(status)),
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}
}
