package services

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"time"

	"github.com/mshepherd/apilens/internal/ledger"
	"github.com/mshepherd/apilens/internal/models"
	pkglogger "github.com/mshepherd/apilens/pkg/logger"
)

// VerifyResult is the outcome of one key verification attempt.
type VerifyResult struct {
	Success           bool
	Locked            bool
	RetryAfter        time.Duration // remaining lockout, when Locked
	AttemptsRemaining int           // remaining tries, when !Success && !Locked
}

// SecurityService enforces the security-key checkpoint: exact key
// comparison guarded by the per-identity attempt ledger.
type SecurityService struct {
	ledger      *ledger.Ledger
	key         string
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger
}

// NewSecurityService creates a new SecurityService. An empty key is
// accepted at construction; VerifyKey reports it per request.
func NewSecurityService(l *ledger.Ledger, key string, logger *slog.Logger, auditLogger *pkglogger.AuditLogger) *SecurityService {
	return &SecurityService{
		ledger:      l,
		key:         key,
		logger:      logger,
		auditLogger: auditLogger,
	}
}

// Ledger exposes the underlying attempt ledger for the background sweeper.
func (s *SecurityService) Ledger() *ledger.Ledger {
	return s.ledger
}

// VerifyKey runs the verification decision procedure for one request.
//
// A locked identity is rejected before the key is compared, so probing a
// locked identity leaks nothing about the key. A missing configured key is
// a configuration error and never consumes an attempt.
func (s *SecurityService) VerifyKey(ctx context.Context, identity, submitted string) (*VerifyResult, error) {
	if s.key == "" {
		s.logger.Error("security key not configured")
		return nil, models.ErrKeyNotConfigured
	}

	now := time.Now()

	if rec, locked := s.ledger.CheckLocked(identity, now); locked {
		result := &VerifyResult{
			Locked:     true,
			RetryAfter: rec.RetryAfter(now),
		}
		s.audit(identity, result)
		return result, nil
	}

	if subtle.ConstantTimeCompare([]byte(submitted), []byte(s.key)) != 1 {
		rec := s.ledger.RecordFailure(identity, now)
		result := &VerifyResult{
			Locked:            rec.Locked,
			RetryAfter:        rec.RetryAfter(now),
			AttemptsRemaining: ledger.MaxAttempts - rec.Count,
		}
		s.audit(identity, result)
		return result, nil
	}

	s.ledger.RecordSuccess(identity)
	result := &VerifyResult{Success: true}
	s.audit(identity, result)
	return result, nil
}

func (s *SecurityService) audit(identity string, result *VerifyResult) {
	s.auditLogger.LogVerificationAttempt(pkglogger.VerificationEvent{
		Identity:          pkglogger.SanitizedIdentity(identity),
		Success:           result.Success,
		Locked:            result.Locked,
		AttemptsRemaining: result.AttemptsRemaining,
		RetryAfter:        result.RetryAfter,
	})
}
