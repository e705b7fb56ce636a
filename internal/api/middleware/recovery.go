package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/hrvlabs/stress-monitor/pkg/problem"
)

// Recovery converts handler panics into a problem+json 500 instead of a
// dropped connection.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("panic recovered on %s %s: %v\n%s", r.Method, r.URL.Path, err, debug.Stack())
				problem.InternalError("An unexpected error occurred").Write(w)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
