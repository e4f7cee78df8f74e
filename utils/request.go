package utils

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP returns the submitter's network origin: the first populated value
// among the X-Forwarded-For header, the X-Real-Ip header, and the socket
// address. Only the first comma-separated token is kept (proxies append to
// X-Forwarded-For); the result is trimmed, or "" when nothing is present.
func ClientIP(r *http.Request) string {
	candidate := r.Header.Get("X-Forwarded-For")
	if candidate == "" {
		candidate = r.Header.Get("X-Real-Ip")
	}
	if candidate == "" {
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			candidate = host
		} else {
			candidate = r.RemoteAddr
		}
	}

	if i := strings.IndexByte(candidate, ','); i >= 0 {
		candidate = candidate[:i]
	}
	return strings.TrimSpace(candidate)
}
