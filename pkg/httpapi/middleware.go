package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/cuemby/chainsaw/pkg/log"
	"github.com/cuemby/chainsaw/pkg/metrics"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// WithMiddleware composes the request-ID, logging, and metrics middleware
// chainsaw wraps every route with, translating the teacher's gRPC unary
// interceptor idiom (pkg/api/interceptor.go — a single cross-cutting
// wrapper around every call) into the equivalent http.Handler chain.
func WithMiddleware(next http.Handler) http.Handler {
	return requestID(withMetrics(next))
}

// requestID stamps every request with a correlation ID, echoed back as
// X-Request-Id and attached to the request's logger — the teacher uses
// google/uuid to stamp entity IDs; here it stamps requests instead.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFrom extracts the correlation ID middleware attached to ctx, if
// any.
func RequestIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}

// statusRecorder captures the status code a handler wrote, since
// http.ResponseWriter doesn't expose it after the fact.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		timer := metrics.NewTimer()

		next.ServeHTTP(rec, r)

		route := r.URL.Path
		metrics.APIRequestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		timer.ObserveDurationVec(metrics.APIRequestDuration, route)

		logger := log.WithRequestID(requestIDValue(r.Context()))
		logEvent := logger.Info()
		if rec.status >= 500 {
			logEvent = logger.Error()
		}
		logEvent.
			Str("method", r.Method).
			Str("route", route).
			Int("status", rec.status).
			Dur("duration", timer.Duration()).
			Msg("http request")
	})
}

func requestIDValue(ctx context.Context) string {
	id, _ := RequestIDFrom(ctx)
	return id
}
