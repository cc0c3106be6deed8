package middleware

import (
	"net/http"

	"cortexgraph/pkg/observability"
)

// Tracing wraps every request in an X-Ray segment named after the
// request path. The segment is closed without an error; the response
// status is not recorded on it.
func Tracing(tracer *observability.Tracer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, seg := tracer.StartSegment(r.Context(), r.URL.Path)
			defer seg.Close(nil)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
