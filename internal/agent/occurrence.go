package agent

import (
	"errors"
	"fmt"
	"time"

	"github.com/Mukund-Vijay/pennywise-todo/internal/notify"
)

var ErrBadStartTime = errors.New("start time must be HH:MM")

// NextOccurrence computes the next due instant for a weekly task scheduled
// on the given weekday (0-6, Sunday=0) at an "HH:MM" local clock time.
// The candidate is today when today is the target weekday; if the reminder
// instant (due - lookahead) is not strictly after now, the occurrence rolls
// forward seven days. This mirrors weekly recurrence: a task whose reminder
// already passed this week belongs to next week.
func NextOccurrence(now time.Time, weekday int, startTime string, lookahead time.Duration) (time.Time, error) {
	if weekday < 0 || weekday > 6 {
		return time.Time{}, fmt.Errorf("weekday %d out of range", weekday)
	}
	clock, err := time.Parse("15:04", startTime)
	if err != nil {
		return time.Time{}, ErrBadStartTime
	}
	daysAhead := (weekday - int(now.Weekday()) + 7) % 7
	due := time.Date(now.Year(), now.Month(), now.Day(),
		clock.Hour(), clock.Minute(), 0, 0, now.Location()).AddDate(0, 0, daysAhead)
	if !notify.ReminderAt(due, lookahead).After(now) {
		due = due.AddDate(0, 0, 7)
	}
	return due, nil
}
