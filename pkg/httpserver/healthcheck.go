package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/excelglass/contactrelay/pkg/logger"
)

// HealthCheckHandler returns a HTTP handler usable for both liveness and
// readiness probes.
//
//   - Liveness: with no dependency functions the handler simply returns
//     200 OK with body "ALIVE".
//   - Readiness: each supplied dependency function runs with the request's
//     context, so a probe deadline or a dropped connection cuts the check
//     short. If all succeed the handler returns 200 OK with body "READY",
//     otherwise 500 Internal Server Error with body "NOT_READY". For the
//     contact relay the interesting dependency is SMTP connection
//     verification.
func HealthCheckHandler(log *slog.Logger, funcs ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(funcs) == 0 {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ALIVE"))
			return
		}

		ctx := r.Context()
		for _, f := range funcs {
			if err := f(ctx); err != nil {
				log.ErrorContext(ctx, "Readiness check failed", logger.Error(err))
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	}
}
