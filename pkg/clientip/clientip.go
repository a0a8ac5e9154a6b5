package clientip

import (
	"net"
	"net/http"
	"strings"
)

// RealClientIP returns the caller's address for logging. Proxy headers
// (X-Forwarded-For, then X-Real-IP) are only honored when trustForwarded is
// set, i.e. when the app runs behind a platform router that overwrites them.
func RealClientIP(r *http.Request, trustForwarded bool) string {
	if trustForwarded {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			first, _, _ := strings.Cut(fwd, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
		if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return strings.TrimSpace(host)
}
