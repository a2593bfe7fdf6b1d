package context

import (
	"context"

	"github.com/google/uuid"
)

// TraceContext carries the request correlation identifiers that the
// logging middleware stamps onto every request.
type TraceContext struct {
	TraceID   string
	SpanID    string
	RequestID string
}

type traceContextKey struct{}

// NewTraceContext returns a TraceContext with freshly generated IDs.
func NewTraceContext() *TraceContext {
	traceID := uuid.New().String()
	return &TraceContext{
		TraceID:   traceID,
		SpanID:    traceID[:16],
		RequestID: uuid.New().String(),
	}
}

// WithTrace attaches trace to the context.
func WithTrace(ctx context.Context, trace *TraceContext) context.Context {
	return context.WithValue(ctx, traceContextKey{}, trace)
}

// GetTrace returns the TraceContext, or nil when none is attached.
func GetTrace(ctx context.Context) *TraceContext {
	if v, ok := ctx.Value(traceContextKey{}).(*TraceContext); ok {
		return v
	}
	return nil
}

// GetTraceID returns the trace ID, generating one for untraced contexts.
func GetTraceID(ctx context.Context) string {
	if t := GetTrace(ctx); t != nil {
		return t.TraceID
	}
	return uuid.New().String()
}

// GetRequestID returns the request ID, or "" for untraced contexts.
func GetRequestID(ctx context.Context) string {
	if t := GetTrace(ctx); t != nil {
		return t.RequestID
	}
	return ""
}
