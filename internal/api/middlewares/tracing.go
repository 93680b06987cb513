package middlewares

import (
	"net/http"

	"github.com/babylonchain/staking-ledger-service/internal/observability/tracing"
)

const traceIdHeader = "X-Trace-Id"

// TracingMiddleware starts a trace for every request and echoes its id back
// so clients can quote it when reporting a failed operation.
func TracingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := tracing.AttachTracingIntoContext(r.Context())
		w.Header().Set(traceIdHeader, tracing.TraceId(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
