package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/2beens/portfolio/internal/telemetry/metrics"
	"github.com/2beens/portfolio/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// PanicRecovery turns a panic anywhere down the chain into the generic 500 JSON reply.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(respWriter http.ResponseWriter, req *http.Request) {
			defer func() {
				if r := recover(); r != nil {
					if r == http.ErrAbortHandler {
						panic(r)
					}
					log.Errorf("http: panic serving %s: %v\n%s", req.URL.Path, r, debug.Stack())
					span := trace.SpanFromContext(req.Context())
					span.RecordError(fmt.Errorf("panic: %v", r))
					span.SetStatus(codes.Error, "panic recovered")
					if metricsManager != nil {
						metricsManager.CounterHandleRequestPanic.Inc()
					}
					pkg.WriteJSONStatus(respWriter, http.StatusInternalServerError, false, "Internal server error")
				}
			}()

			// handler call
			next.ServeHTTP(respWriter, req)
		})
	}
}
