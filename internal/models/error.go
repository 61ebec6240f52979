package models

import "errors"

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")

	// Security gate errors
	ErrKeyNotConfigured = errors.New("security key not configured")
	ErrLockedOut        = errors.New("too many failed attempts")

	// AI collaborator errors
	ErrAIKeyNotConfigured = errors.New("ai api key not configured")
	ErrAIUpstream         = errors.New("ai provider request failed")
)
