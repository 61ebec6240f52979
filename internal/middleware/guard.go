package middleware

import (
	"net/http"
	"strings"

	"github.com/mshepherd/apilens/internal/auth"
	pkghttp "github.com/mshepherd/apilens/pkg/http"
)

// GuardConfig holds route guard configuration
type GuardConfig struct {
	// ProtectedPrefix is the path prefix requiring a verification cookie.
	ProtectedPrefix string
	// RedirectTo is where unverified browsers are sent.
	RedirectTo string
}

// DefaultGuardConfig guards the dashboard behind the security checkpoint.
func DefaultGuardConfig() GuardConfig {
	return GuardConfig{
		ProtectedPrefix: "/dashboard",
		RedirectTo:      "/security",
	}
}

// RequireVerification redirects requests under the protected prefix to the
// security checkpoint unless the verification cookie is present. Paths
// outside the prefix pass through untouched.
func RequireVerification(config GuardConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, config.ProtectedPrefix) && !auth.IsVerified(r) {
				http.Redirect(w, r, config.RedirectTo, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireVerificationJSON rejects unverified requests with a 401 JSON
// envelope. Used for the gated API endpoints, where a redirect would be
// meaningless to the caller.
func RequireVerificationJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.IsVerified(r) {
			pkghttp.WriteUnauthorized(w, "Security verification required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
