// Package lockout computes progressive ban windows from consecutive failed
// unlock attempts. It is pure: callers own and persist the Record.
package lockout

import "time"

// BanThreshold is the number of consecutive failures that starts a ban.
const BanThreshold = 3

// Record tracks consecutive failed decryptions. A nil *Record means no failures.
type Record struct {
	Attempts      int
	LastFailureAt time.Time
}

// BanInfo describes an active ban.
type BanInfo struct {
	Attempts         int `json:"attempts"`
	RemainingSeconds int `json:"remainingSeconds"`
}

// DurationFor returns the ban length after exactly attempts failures:
// 3 → 15s, 4 → 30s, 5 → 60s, more → 120s flat, fewer than 3 → none.
func DurationFor(attempts int) time.Duration {
	switch {
	case attempts < BanThreshold:
		return 0
	case attempts == 3:
		return 15 * time.Second
	case attempts == 4:
		return 30 * time.Second
	case attempts == 5:
		return 60 * time.Second
	default:
		return 120 * time.Second
	}
}

// Info returns the active ban at now, or nil when not banned.
func Info(rec *Record, now time.Time) *BanInfo {
	if rec == nil {
		return nil
	}
	d := DurationFor(rec.Attempts)
	if d == 0 {
		return nil
	}
	remaining := rec.LastFailureAt.Add(d).Sub(now)
	if remaining <= 0 {
		return nil
	}
	secs := int((remaining + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return &BanInfo{Attempts: rec.Attempts, RemainingSeconds: secs}
}

// IsBanned reports whether a ban is active at now. It agrees with Info.
func IsBanned(rec *Record, now time.Time) bool {
	return Info(rec, now) != nil
}

// RecordFailure returns the record after one more failure at now.
// Timestamps are kept at millisecond precision to match persisted values,
// rounded up so a ban never ends before its full duration.
func RecordFailure(rec *Record, now time.Time) *Record {
	at := now.Truncate(time.Millisecond)
	if at.Before(now) {
		at = at.Add(time.Millisecond)
	}
	next := &Record{Attempts: 1, LastFailureAt: at}
	if rec != nil {
		next.Attempts = rec.Attempts + 1
	}
	return next
}

// Reset clears the record after a successful decryption.
func Reset(*Record) *Record {
	return nil
}

// AttemptsUntilBan returns how many more failures are allowed before the
// first ban starts. It is zero once the threshold has been reached.
func AttemptsUntilBan(rec *Record) int {
	if rec == nil {
		return BanThreshold
	}
	if left := BanThreshold - rec.Attempts; left > 0 {
		return left
	}
	return 0
}
