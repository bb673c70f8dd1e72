// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog.Logger with the constructors used by the
// records server, the offline client and its request cache.
//
// Logger embeds zerolog.Logger so the whole zerolog API is available on
// *Logger. Components receive a *Logger at construction time and derive
// request- or store-scoped children from it.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

// DefaultLevel is used when a configured level string is empty or unknown.
const DefaultLevel = zerolog.DebugLevel

func configureGlobals(level string) {
	zerolog.SetGlobalLevel(ParseLevel(level))
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"
}

// ParseLevel maps a textual level ("debug", "info", ...) to a zerolog level.
// Unknown values fall back to DefaultLevel.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return DefaultLevel
	}
	return lvl
}

func newLogger(w io.Writer, role string) *Logger {
	l := zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{l}
}

// NewLogger builds a JSON logger writing to os.Stdout. Every entry carries
// the role label, a timestamp and the calling function name in "func".
func NewLogger(role string, level string) *Logger {
	configureGlobals(level)
	return newLogger(os.Stdout, role)
}

// NewClientLogger builds a logger for the interactive client. The terminal
// belongs to the dashboard, so entries go to the file at path. An empty path
// means "logs" next to the executable. Stdout is used when the file cannot
// be opened.
func NewClientLogger(role string, level string, path string) *Logger {
	configureGlobals(level)

	if path == "" {
		execPath, _ := os.Executable()
		path = filepath.Join(filepath.Dir(execPath), "logs")
	}

	var w io.Writer = os.Stdout
	if f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
		w = f
	}

	return newLogger(w, role)
}

// Nop returns a *Logger that discards all output.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a copy of the receiver that can be enriched with
// fields without touching the parent.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// WithComponent returns a child logger tagged with a "component" field.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{l.With().Str("component", name).Logger()}
}

// FromRequest returns the request-scoped logger attached by the logging
// middleware.
func FromRequest(r *http.Request) *Logger {
	return &Logger{*log.Ctx(r.Context())}
}

// FromContext returns the logger stored in ctx, or zerolog's default logger
// when none is attached. It never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
