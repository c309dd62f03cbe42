package log

import (
	"context"
	"net"
	"net/http"

	"github.com/felixge/httpsnoop"
)

// HTTP returns an HTTP logging middleware using the provided base logger.
// Each request gets a trace ID and a request-scoped logger in its context.
func HTTP(l Logger) func(http.Handler) http.Handler { return handler{logger: l}.decorate }

type handler struct{ logger Logger }

func (h handler) decorate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := newTraceContext(r.Context())
		ctx = NewContext(ctx, h.logger)

		// httpsnoop wraps the ResponseWriter without masking optional
		// interfaces like http.Flusher. See
		// https://github.com/felixge/httpsnoop#why-this-package-exists
		var metrics httpsnoop.Metrics

		defer func() {
			logRequest(ctx, metrics.Code, r)
		}()

		metrics = httpsnoop.CaptureMetrics(next, w, r.WithContext(ctx))
	})
}

func logRequest(ctx context.Context, code int, r *http.Request) {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	keyvals := []interface{}{
		"method", r.Method,
		"status", code,
		"proto", r.Proto,
		"host", host,
		"user_agent", r.UserAgent(),
		"path", r.URL.RequestURI(),
	}

	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		keyvals = append(keyvals, "x_forwarded_for", fwd)
	}

	if code >= 500 {
		Info(FromContext(ctx)).Log(keyvals...)
	} else {
		Debug(FromContext(ctx)).Log(keyvals...)
	}
}
