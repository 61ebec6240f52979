package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/mshepherd/apilens/internal/auth"
	"github.com/mshepherd/apilens/internal/models"
	"github.com/mshepherd/apilens/internal/services"
	pkghttp "github.com/mshepherd/apilens/pkg/http"
)

// KeyVerifier defines the interface for the security checkpoint logic
type KeyVerifier interface {
	VerifyKey(ctx context.Context, identity, submitted string) (*services.VerifyResult, error)
}

// SecurityHandler handles the security checkpoint HTTP requests
type SecurityHandler struct {
	service      KeyVerifier
	cookieConfig auth.CookieConfig
}

// NewSecurityHandler creates a new SecurityHandler
func NewSecurityHandler(service KeyVerifier, cookieConfig auth.CookieConfig) *SecurityHandler {
	return &SecurityHandler{
		service:      service,
		cookieConfig: cookieConfig,
	}
}

// VerifyKeyRequest represents the request body for key verification
type VerifyKeyRequest struct {
	Key string `json:"key"`
}

// SuccessResponse is the minimal success envelope
type SuccessResponse struct {
	Success bool `json:"success"`
}

// VerificationStatusResponse reports whether the client holds a valid
// verification cookie
type VerificationStatusResponse struct {
	IsVerified bool `json:"isVerified"`
}

// VerifyKey handles the security-key checkpoint.
//
// An empty or missing key field is treated the same as a wrong key: it
// consumes an attempt. Only an unreadable body is an internal error.
func (h *SecurityHandler) VerifyKey(w http.ResponseWriter, r *http.Request) {
	identity := pkghttp.ClientIdentity(r)

	var req VerifyKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	result, err := h.service.VerifyKey(r.Context(), identity, req.Key)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrKeyNotConfigured):
			pkghttp.WriteInternalError(w, "Security key not configured")
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	if result.Locked {
		minutes := int(math.Ceil(result.RetryAfter.Minutes()))
		pkghttp.WriteTooManyRequests(w,
			fmt.Sprintf("Too many failed attempts. Please try again in %d minutes.", minutes))
		return
	}

	if !result.Success {
		// Deliberately 200: the request itself succeeded, the key did not.
		pkghttp.WriteError(w, http.StatusOK,
			fmt.Sprintf("Invalid key. %d attempts remaining.", result.AttemptsRemaining))
		return
	}

	auth.SetVerificationCookie(w, h.cookieConfig)
	pkghttp.WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// CheckVerification reports the verification cookie state.
func (h *SecurityHandler) CheckVerification(w http.ResponseWriter, r *http.Request) {
	pkghttp.WriteJSON(w, http.StatusOK, VerificationStatusResponse{
		IsVerified: auth.IsVerified(r),
	})
}

// Logout clears the verification cookie.
func (h *SecurityHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearVerificationCookie(w, h.cookieConfig)
	pkghttp.WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
}
