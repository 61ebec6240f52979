package http

import (
	"net"
	"net/http"
	"strings"
)

// ClientIdentity derives the throttling key for a request from proxy
// headers. This is not a verified identity, only a stable rate-limiting
// key.
//
// Priority order:
// 1. First entry of X-Forwarded-For (original client behind proxies)
// 2. CF-Connecting-IP (Cloudflare)
// 3. True-Client-IP (Akamai and others)
// 4. X-Real-IP (NGINX)
// 5. Request URL hostname, or "localhost" when nothing else is present
func ClientIdentity(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if first != "" {
			return first
		}
	}

	if cfIP := r.Header.Get("CF-Connecting-IP"); cfIP != "" {
		return cfIP
	}

	if tcIP := r.Header.Get("True-Client-IP"); tcIP != "" {
		return tcIP
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	if host := r.URL.Hostname(); host != "" {
		return host
	}
	if r.Host != "" {
		// Host may carry a port.
		if host, _, err := net.SplitHostPort(r.Host); err == nil {
			return host
		}
		return r.Host
	}
	return "localhost"
}
