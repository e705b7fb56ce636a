package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Tracing starts an OpenTelemetry span per HTTP request and propagates the
// context downstream, so service-level spans (trends, insights) nest under
// the request. Request metadata is mirrored into Langfuse observation
// attributes for the trace UI.
func Tracing(next http.Handler) http.Handler {
	tracer := otel.Tracer("stress-monitor-api/http")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), r.Method+" "+r.URL.Path,
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.target", r.URL.Path),
			),
		)

		input := map[string]any{
			"method": r.Method,
			"path":   r.URL.Path,
		}
		if r.URL.RawQuery != "" {
			input["query"] = r.URL.RawQuery
		}
		if r.RemoteAddr != "" {
			input["remote_addr"] = r.RemoteAddr
		}
		if inJSON, err := json.Marshal(input); err == nil {
			span.SetAttributes(attribute.String("langfuse.observation.input", string(inJSON)))
		}

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(sw, r.WithContext(ctx))

		// The userId route param is only resolved after chi has routed the
		// request, so it is attached after the handler runs.
		if userID := chi.URLParam(r, "userId"); userID != "" {
			span.SetAttributes(attribute.String("enduser.id", userID))
		}

		span.SetAttributes(attribute.Int("http.status_code", sw.status))
		output := map[string]any{
			"status_code": sw.status,
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if outJSON, err := json.Marshal(output); err == nil {
			span.SetAttributes(attribute.String("langfuse.observation.output", string(outJSON)))
		}

		span.End()
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}
