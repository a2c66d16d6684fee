package middleware

import (
	"net/http"
	"time"

	"github.com/evyataryagoni/issflyover/internal/logger"
	"github.com/go-chi/chi/v5/middleware"
)

// LoggingMiddleware logs every HTTP request once it completes
// The level follows the status: 5xx error, 4xx warn, everything else info
func LoggingMiddleware(log *logger.Logger) func(http.Handler) http.Handler {
	httpLog := log.WithComponent("HTTP")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			reqLog := httpLog.WithRequestID(middleware.GetReqID(r.Context()))

			next.ServeHTTP(ww, r)

			event := reqLog.Info()
			switch {
			case ww.Status() >= 500:
				event = reqLog.Error()
			case ww.Status() >= 400:
				event = reqLog.Warn()
			}

			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("remote_addr", r.RemoteAddr).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("Request completed")
		})
	}
}
