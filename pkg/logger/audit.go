package logger

import (
	"context"
	"log/slog"
	"time"
)

// VerificationEvent describes the outcome of one security-key
// verification attempt.
type VerificationEvent struct {
	Identity          string
	Success           bool
	Locked            bool
	AttemptsRemaining int
	RetryAfter        time.Duration
}

// AuditLogger provides structured audit logging for the security gate.
type AuditLogger struct {
	logger *slog.Logger
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	return &AuditLogger{
		logger: logger,
	}
}

// LogVerificationAttempt logs a key verification attempt.
func (al *AuditLogger) LogVerificationAttempt(event VerificationEvent) {
	attrs := []slog.Attr{
		slog.String("audit_type", "security_gate"),
		slog.String("identity", event.Identity),
		slog.Bool("success", event.Success),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	}

	if event.Locked {
		attrs = append(attrs,
			slog.Bool("locked", true),
			slog.Duration("retry_after", event.RetryAfter))
	} else if !event.Success {
		attrs = append(attrs, slog.Int("attempts_remaining", event.AttemptsRemaining))
	}

	level := slog.LevelInfo
	if event.Locked {
		level = slog.LevelWarn
	}
	al.logger.LogAttrs(context.Background(), level, "verification_attempt", attrs...)
}

// LogSweep logs the outcome of a ledger sweep pass.
func (al *AuditLogger) LogSweep(removed int) {
	al.logger.LogAttrs(context.Background(), slog.LevelInfo, "ledger_sweep",
		slog.String("audit_type", "security_gate"),
		slog.Int("records_removed", removed),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	)
}
