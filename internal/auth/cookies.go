package auth

import (
	"net/http"
	"time"
)

// VerificationCookieName is the session credential marking a client as
// having passed the security checkpoint.
const VerificationCookieName = "securityVerified"

// verificationCookieMaxAge is 24 hours in seconds.
const verificationCookieMaxAge = 60 * 60 * 24

// CookieConfig holds cookie configuration settings
type CookieConfig struct {
	Domain string // Empty string = current host only
	Secure bool   // HTTPS only
}

// SetVerificationCookie marks the client as verified for 24 hours via an
// httpOnly, SameSite=Strict cookie. The value is a plain flag; its
// integrity relies on the HttpOnly/Secure/Strict attributes and transport
// security, not on a signature.
func SetVerificationCookie(w http.ResponseWriter, config CookieConfig) {
	cookie := &http.Cookie{
		Name:     VerificationCookieName,
		Value:    "true",
		Path:     "/",
		Domain:   config.Domain,
		Expires:  time.Now().Add(verificationCookieMaxAge * time.Second),
		MaxAge:   verificationCookieMaxAge,
		HttpOnly: true, // Critical: prevents JavaScript access (XSS protection)
		Secure:   config.Secure,
		SameSite: http.SameSiteStrictMode,
	}
	http.SetCookie(w, cookie)
}

// ClearVerificationCookie deletes the verification cookie.
func ClearVerificationCookie(w http.ResponseWriter, config CookieConfig) {
	cookie := &http.Cookie{
		Name:     VerificationCookieName,
		Value:    "",
		Path:     "/",
		Domain:   config.Domain,
		MaxAge:   -1, // Negative MaxAge deletes the cookie
		HttpOnly: true,
		Secure:   config.Secure,
		SameSite: http.SameSiteStrictMode,
	}
	http.SetCookie(w, cookie)
}

// IsVerified reports whether the request carries a valid verification
// cookie. The cookie is server-set and HttpOnly, so a presence check on
// the literal value is the whole contract.
func IsVerified(r *http.Request) bool {
	cookie, err := r.Cookie(VerificationCookieName)
	if err != nil {
		return false
	}
	return cookie.Value == "true"
}
