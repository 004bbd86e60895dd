// Package requestid assigns each request a unique id so log lines for
// one request can be correlated. Inbound X-Request-ID headers from a
// trusted proxy are reused; otherwise a new id is generated.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type ctxKey int

const idKey ctxKey = iota

// Header is the request id header name, inbound and outbound.
const Header = "X-Request-ID"

// Middleware tags the request with an id and echoes it in the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		ctx := context.WithValue(r.Context(), idKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromContext returns the request id, or "" when the middleware did
// not run.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(idKey).(string)
	return id
}
