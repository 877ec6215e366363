package middleware

import (
	"io"
	"log"
	"net/http"
	"runtime/debug"
)

// PanicRecovery converts a panic anywhere down the handler chain into a
// 500 response instead of tearing down the connection. The request line
// is logged alongside the stack so the failing route is identifiable.
func PanicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[Recover] panic on %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				io.WriteString(w, `{"error":"internal server error"}`)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
