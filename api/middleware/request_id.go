package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/autoworks/workshop-backend/pkg/logger"
)

// HeaderRequestID is the header that carries the request correlation id.
// Inbound values are echoed back so clients can stitch logs across hops.
const HeaderRequestID = "X-Request-Id"

const maxRequestIDLen = 64

// RequestID accepts a client-supplied correlation id or mints a fresh one,
// echoes it on the response, and threads it into the request logger.
// Blank or oversized inbound values are discarded rather than propagated.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(HeaderRequestID))
			if id == "" || len(id) > maxRequestIDLen {
				id = uuid.NewString()
			}

			w.Header().Set(HeaderRequestID, id)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, id)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
