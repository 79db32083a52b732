// Package recovery converts downstream handler panics into 500 responses.
package recovery

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"

	"github.com/pranaflow/prana-server/internal/api/respond"
)

// Middleware returns a mux middleware that recovers panics, logs the stack
// through the service logger, and answers with the API's standard problem
// body. Engine handlers hold no locks across writes, so recovering here
// cannot strand shared state.
func Middleware(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					log.Error().
						Interface("panic", v).
						Str("method", r.Method).
						Str("url", r.URL.String()).
						Str("remote", r.RemoteAddr).
						Bytes("stack", debug.Stack()).
						Msg("recovered panic in handler")
					respond.InternalError(w, "unexpected failure")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
