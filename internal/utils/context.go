// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils holds small helpers shared by the client and the server:
// context keys, JSON response writing, the resty client factory, session
// tokens and id generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys so they never collide with
// string keys from other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

var (
	// SubjectCtxKey holds the authenticated session subject.
	SubjectCtxKey = contextKey("subject")
	// TraceIDCtxKey holds the request trace id.
	TraceIDCtxKey = contextKey("traceID")
)

// WithSubject stores the session subject in ctx.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, SubjectCtxKey, subject)
}

// GetSubjectFromContext returns the session subject and whether one is set.
func GetSubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(SubjectCtxKey).(string)
	return subject, ok && subject != ""
}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDCtxKey, traceID)
}

func GetTraceIDFromContext(ctx context.Context) (string, bool) {
	traceID, ok := ctx.Value(TraceIDCtxKey).(string)
	return traceID, ok
}
