package middleware

import (
	"net/http"
	"time"

	"dealer-app-go/pkg/logger"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// AccessLog writes one line per request through the application logger.
func AccessLog(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, slot := withUserSlot(r.Context())
			r = r.WithContext(ctx)
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			args := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", chimw.GetReqID(r.Context()),
			}
			if slot.user.Username != "" {
				args = append(args, "user", slot.user.Username)
			}

			switch {
			case status >= http.StatusInternalServerError:
				log.Error("http request", args...)
			case status >= http.StatusBadRequest:
				log.Warn("http request", args...)
			default:
				log.Info("http request", args...)
			}
		})
	}
}
