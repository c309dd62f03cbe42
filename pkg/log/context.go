package log

import (
	"context"

	"github.com/go-kit/kit/log"

	"sortid.io/pkg/id"
)

type key int

const (
	loggerKey key = iota
	traceKey
)

// NewContext stores a request-scoped logger in ctx.
func NewContext(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored by NewContext, annotated with the
// request trace ID. A missing logger yields a nop logger so callers never
// check for nil.
func FromContext(ctx context.Context) Logger {
	v, ok := ctx.Value(loggerKey).(Logger)
	if !ok {
		return log.NewNopLogger()
	}
	return log.With(v, "trace_id", TraceID(ctx))
}

// TraceID returns the unique ID associated with a request, minting one if
// the context never passed through the HTTP middleware. Trace IDs are
// ULIDs, so sorting them orders requests by arrival time.
func TraceID(ctx context.Context) string {
	v, ok := ctx.Value(traceKey).(string)
	if !ok {
		return id.New()
	}
	return v
}

func newTraceContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, traceKey, id.New())
}
