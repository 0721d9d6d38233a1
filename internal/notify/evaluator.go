package notify

import "time"

const (
	// DefaultLookahead is how far before a task's due instant its reminder fires.
	DefaultLookahead = 10 * time.Minute
	// DefaultScanInterval is the scanner's polling period.
	DefaultScanInterval = time.Minute
)

// DueSoon reports whether a task's reminder should fire during the scan
// cycle starting at now: true iff the reminder instant (due - lookahead)
// lies in the half-open window [now, now+interval). Inclusive on the lower
// bound and exclusive on the upper so adjacent cycles never double-count.
// A zero due instant, or a reminder instant already in the past, is false.
func DueSoon(now, due time.Time, lookahead, interval time.Duration) bool {
	if due.IsZero() {
		return false
	}
	remind := due.Add(-lookahead)
	return !remind.Before(now) && remind.Before(now.Add(interval))
}

// ReminderAt returns the instant a reminder for the given due time fires.
func ReminderAt(due time.Time, lookahead time.Duration) time.Time {
	return due.Add(-lookahead)
}
