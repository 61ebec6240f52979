package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mshepherd/apilens/internal/auth"
	"github.com/stretchr/testify/assert"
)

func TestSetVerificationCookie_Attributes(t *testing.T) {
	w := httptest.NewRecorder()

	auth.SetVerificationCookie(w, auth.CookieConfig{Secure: true})

	cookies := w.Result().Cookies()
	if assert.Len(t, cookies, 1) {
		c := cookies[0]
		assert.Equal(t, "securityVerified", c.Name)
		assert.Equal(t, "true", c.Value)
		assert.True(t, c.HttpOnly)
		assert.True(t, c.Secure)
		assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
		assert.Equal(t, 60*60*24, c.MaxAge)
	}
}

func TestClearVerificationCookie_Deletes(t *testing.T) {
	w := httptest.NewRecorder()

	auth.ClearVerificationCookie(w, auth.CookieConfig{})

	cookies := w.Result().Cookies()
	if assert.Len(t, cookies, 1) {
		assert.Equal(t, "securityVerified", cookies[0].Name)
		assert.Negative(t, cookies[0].MaxAge)
	}
}

func TestIsVerified(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/check-verification", nil)
	assert.False(t, auth.IsVerified(req))

	req.AddCookie(&http.Cookie{Name: "securityVerified", Value: "true"})
	assert.True(t, auth.IsVerified(req))

	tampered := httptest.NewRequest("GET", "/api/check-verification", nil)
	tampered.AddCookie(&http.Cookie{Name: "securityVerified", Value: "1"})
	assert.False(t, auth.IsVerified(tampered))
}
