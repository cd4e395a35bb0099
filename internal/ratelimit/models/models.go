package models

import "time"

// AuthLockout tracks failed logins for one identifier within a fixed window that
// starts at the first failure.
type AuthLockout struct {
	Identifier    string
	FailureCount  int
	WindowStart   time.Time
	LastFailureAt time.Time
}

// WindowEnd is when the counted failures stop applying.
func (l *AuthLockout) WindowEnd(window time.Duration) time.Time {
	return l.WindowStart.Add(window)
}

// IsLockedAt reports whether maxFailures has been reached inside the window at now.
func (l *AuthLockout) IsLockedAt(now time.Time, maxFailures int, window time.Duration) bool {
	if l == nil || maxFailures <= 0 {
		return false
	}
	return l.FailureCount >= maxFailures && now.Before(l.WindowEnd(window))
}

// RecordFailureAt counts a failure at now, starting a fresh window when the previous
// one has lapsed.
func (l *AuthLockout) RecordFailureAt(now time.Time, window time.Duration) {
	if l.FailureCount == 0 || !now.Before(l.WindowEnd(window)) {
		l.FailureCount = 0
		l.WindowStart = now
	}
	l.FailureCount++
	l.LastFailureAt = now
}

// AuthLockoutResult is the outcome of a lockout check.
type AuthLockoutResult struct {
	Locked       bool
	FailureCount int
	RetryAfter   time.Duration
}
