package ledger

import (
	"sync"
	"time"
)

// Lockout policy constants. These are deliberate product decisions, not
// runtime-tunable knobs.
const (
	// MaxAttempts is the number of failed verifications allowed before an
	// identity is locked out.
	MaxAttempts = 3

	// AttemptWindow is how long a failure count stays fresh. A failure
	// recorded after the window has elapsed starts counting from 1 again.
	AttemptWindow = 5 * time.Minute

	// LockoutDuration is how long a locked identity stays locked.
	LockoutDuration = 15 * time.Minute

	// idleRetention is how long an unlocked record is kept after its last
	// failure before the sweep removes it.
	idleRetention = 24 * time.Hour
)

// Record tracks the failure history and lockout state for one client
// identity.
type Record struct {
	Count       int
	LastAttempt time.Time
	Locked      bool
	LockExpiry  time.Time
}

// IsLocked reports whether the record is locked at the given instant.
// Expired locks lapse lazily: a record whose LockExpiry has passed is
// reset in place (Locked=false, Count=0) and reported as unlocked.
func (r *Record) IsLocked(now time.Time) bool {
	if !r.Locked {
		return false
	}
	if now.After(r.LockExpiry) {
		r.Locked = false
		r.Count = 0
		return false
	}
	return true
}

// RetryAfter returns the time remaining on an active lock. Zero if the
// record is not locked or the lock has already expired.
func (r *Record) RetryAfter(now time.Time) time.Duration {
	if !r.Locked {
		return 0
	}
	remaining := r.LockExpiry.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Ledger maps client identities to their attempt records and enforces the
// lockout policy. It owns all records exclusively; callers only ever see
// copies. Safe for concurrent use.
type Ledger struct {
	mu      sync.RWMutex
	records map[string]Record
}

// New creates an empty Ledger.
func New() *Ledger {
	return &Ledger{
		records: make(map[string]Record),
	}
}

// Get returns a copy of the record for identity, or a fresh zero-value
// record stamped with now if none exists. A fresh record is not persisted
// until a mutation occurs.
func (l *Ledger) Get(identity string, now time.Time) Record {
	l.mu.RLock()
	rec, ok := l.records[identity]
	l.mu.RUnlock()
	if !ok {
		return Record{LastAttempt: now}
	}
	return rec
}

// CheckLocked reports whether identity is currently locked out, applying
// lazy lock expiry. A lapsed lock is persisted back as an unlocked record
// with a zero count, so the next failure counts from 1.
func (l *Ledger) CheckLocked(identity string, now time.Time) (Record, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[identity]
	if !ok {
		return Record{LastAttempt: now}, false
	}
	wasLocked := rec.Locked
	if rec.IsLocked(now) {
		return rec, true
	}
	if wasLocked {
		// Lock lapsed during this check.
		l.records[identity] = rec
	}
	return rec, false
}

// RecordFailure registers a failed verification attempt for identity and
// returns the updated record. A count that has gone stale (last failure
// older than AttemptWindow) is reset before the increment. Reaching
// MaxAttempts locks the identity for LockoutDuration.
func (l *Ledger) RecordFailure(identity string, now time.Time) Record {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[identity]
	if !ok {
		rec = Record{LastAttempt: now}
	}
	if now.Sub(rec.LastAttempt) > AttemptWindow {
		rec.Count = 0
	}
	rec.Count++
	rec.LastAttempt = now
	if rec.Count >= MaxAttempts {
		rec.Locked = true
		rec.LockExpiry = now.Add(LockoutDuration)
	}
	l.records[identity] = rec
	return rec
}

// RecordSuccess deletes the record for identity, returning it to a clean
// state. Idempotent when no record exists.
func (l *Ledger) RecordSuccess(identity string) {
	l.mu.Lock()
	delete(l.records, identity)
	l.mu.Unlock()
}

// Sweep removes stale records: unlocked records idle for more than 24
// hours and locked records whose lockout has expired. It snapshots the key
// set first and re-checks each record under a short per-entry critical
// section, so concurrent verifications never wait on a full scan. Returns
// the number of records removed.
func (l *Ledger) Sweep(now time.Time) int {
	l.mu.RLock()
	keys := make([]string, 0, len(l.records))
	for identity := range l.records {
		keys = append(keys, identity)
	}
	l.mu.RUnlock()

	removed := 0
	for _, identity := range keys {
		l.mu.Lock()
		rec, ok := l.records[identity]
		if ok && sweepable(rec, now) {
			delete(l.records, identity)
			removed++
		}
		l.mu.Unlock()
	}
	return removed
}

// sweepable reports whether a record is eligible for removal by Sweep.
func sweepable(rec Record, now time.Time) bool {
	if rec.Locked {
		return now.After(rec.LockExpiry)
	}
	return now.Sub(rec.LastAttempt) > idleRetention
}

// Len returns the number of records currently held.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}
