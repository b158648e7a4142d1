package middleware

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Logger attaches a request-scoped logger to the context and logs one line
// per request once it completes.
func Logger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			reqLogger := logger.With(
				"method", req.Method,
				"path", req.URL.Path,
				"remote_ip", req.RemoteAddr,
			)
			if id := chimw.GetReqID(req.Context()); id != "" {
				reqLogger = reqLogger.With("request_id", id)
			}

			ctx := log.WithContext(req.Context(), reqLogger)
			req = req.WithContext(ctx)

			ww := chimw.NewWrapResponseWriter(w, req.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, req)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			reqLogger.Info("request", "status", status, "bytes", ww.BytesWritten(), "duration", time.Since(start))
		})
	}
}
