package httpserver

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-Id"

// withLogging tags every response with a request id and a JSON content type
// and logs one line per request once the handler returns.
func withLogging(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)
		w.Header().Set("Content-Type", "application/json")

		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", wrapped.status),
			zap.Duration("duration", time.Since(start)),
		}
		switch {
		case wrapped.status >= http.StatusInternalServerError:
			logger.Error("http request", fields...)
		case wrapped.status >= http.StatusBadRequest:
			logger.Warn("http request", fields...)
		default:
			logger.Info("http request", fields...)
		}
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// withJSONNotFound fills in the error body when next answers 404 without one,
// which is what the router does for paths and methods it has no route for.
func withJSONNotFound(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrapped := &bodyWriter{ResponseWriter: w}
		next.ServeHTTP(wrapped, r)

		if wrapped.status == http.StatusNotFound && !wrapped.wrote {
			toJSON(w, NewError(ErrNotFoundMessage))
		}
	})
}

type bodyWriter struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (w *bodyWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *bodyWriter) Write(b []byte) (int, error) {
	if len(b) > 0 {
		w.wrote = true
	}
	return w.ResponseWriter.Write(b)
}
