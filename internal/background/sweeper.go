package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/mshepherd/apilens/internal/ledger"
)

// Sweeper periodically removes stale attempt records from the ledger.
type Sweeper struct {
	ledger   *ledger.Ledger
	logger   *slog.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewSweeper creates a new sweeper.
func NewSweeper(l *ledger.Ledger, logger *slog.Logger, interval time.Duration) *Sweeper {
	return &Sweeper{
		ledger:   l,
		logger:   logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic sweep task. It blocks until Stop is called or
// the context is cancelled, so run it in its own goroutine.
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runSweep()
		case <-s.stopCh:
			s.logger.Info("ledger sweeper stopped")
			return
		case <-ctx.Done():
			s.logger.Info("ledger sweeper context cancelled")
			return
		}
	}
}

// runSweep removes stale records and logs the outcome.
func (s *Sweeper) runSweep() {
	removed := s.ledger.Sweep(time.Now())
	if removed > 0 {
		s.logger.Info("ledger sweep completed",
			slog.Int("records_removed", removed),
			slog.Int("records_remaining", s.ledger.Len()))
	}
}

// Stop signals the sweeper to stop.
func (s *Sweeper) Stop() {
	close(s.stopCh)
}
