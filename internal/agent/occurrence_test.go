package agent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lookahead = 10 * time.Minute

// Wednesday, 2024-01-10 09:00 local.
var wednesday = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

func TestNextOccurrenceTodayBeforeReminder(t *testing.T) {
	t.Parallel()

	// Reminder fires 10:50, now is 09:00: today's occurrence stands.
	due, err := NextOccurrence(wednesday, 3, "11:00", lookahead)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 10, 11, 0, 0, 0, time.UTC), due)
}

func TestNextOccurrenceTodayReminderPassedRollsAWeek(t *testing.T) {
	t.Parallel()

	// Due 09:05 today means the reminder instant 08:55 is already gone.
	due, err := NextOccurrence(wednesday, 3, "09:05", lookahead)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 17, 9, 5, 0, 0, time.UTC), due)
}

func TestNextOccurrenceReminderBoundaryRollsAWeek(t *testing.T) {
	t.Parallel()

	// Due 09:10 puts the reminder instant exactly at now; "not strictly in
	// the future" rolls forward.
	due, err := NextOccurrence(wednesday, 3, "09:10", lookahead)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 17, 9, 10, 0, 0, time.UTC), due)
}

func TestNextOccurrenceLaterThisWeek(t *testing.T) {
	t.Parallel()

	// Friday (5) from a Wednesday.
	due, err := NextOccurrence(wednesday, 5, "08:00", lookahead)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 12, 8, 0, 0, 0, time.UTC), due)
}

func TestNextOccurrenceEarlierWeekdayWrapsForward(t *testing.T) {
	t.Parallel()

	// Monday (1) from a Wednesday lands next week, not two days ago.
	due, err := NextOccurrence(wednesday, 1, "08:00", lookahead)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC), due)
	assert.Equal(t, time.Monday, due.Weekday())
}

func TestNextOccurrenceRejectsBadInput(t *testing.T) {
	t.Parallel()

	_, err := NextOccurrence(wednesday, 7, "08:00", lookahead)
	assert.Error(t, err)

	_, err = NextOccurrence(wednesday, 3, "8 o'clock", lookahead)
	assert.ErrorIs(t, err, ErrBadStartTime)
}
