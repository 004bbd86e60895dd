// Package network resolves the client address recorded with login
// history events.
package network

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP returns the originating client IP for an audit record. The
// dashboard normally sits behind a reverse proxy, so proxy headers win
// over RemoteAddr: the first X-Forwarded-For hop, then X-Real-IP.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
