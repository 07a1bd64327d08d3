package middleware

import (
	"net/http"
	"time"

	"pet-catalog/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLogger registra cada request al terminar: método, ruta, status,
// bytes escritos, duración y el request id que puso chimw.RequestID.
// 5xx sale como error, 4xx como warn, el resto como info.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	log = log.With(map[string]any{"component": "http"})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				fields := map[string]any{
					"method":      r.Method,
					"path":        r.URL.Path,
					"status":      status,
					"bytes":       ww.BytesWritten(),
					"duration_ms": time.Since(start).Milliseconds(),
					"request_id":  chimw.GetReqID(r.Context()),
				}
				switch {
				case status >= 500:
					log.Error("request", fields)
				case status >= 400:
					log.Warn("request", fields)
				default:
					log.Info("request", fields)
				}
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
