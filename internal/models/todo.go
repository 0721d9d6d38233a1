package models

import "time"

// Todo is a day-scheduled task, optionally with a time-of-day reminder.
// ScheduledDay is 0-6 with Sunday = 0. StartTime is a local "HH:MM" clock
// time used by the client-side reminder path; TargetDatetime is the absolute
// due instant the server scanner treats as authoritative when present.
type Todo struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	Text           string     `json:"text"`
	Completed      bool       `json:"completed"`
	ScheduledDay   *int       `json:"scheduled_day"`
	StartTime      *string    `json:"start_time"`
	TargetDatetime *time.Time `json:"target_datetime"`
	CompletedDate  *time.Time `json:"completed_date"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// HasReminder reports whether the client scheduler can compute a weekly
// occurrence for this todo.
func (t Todo) HasReminder() bool {
	return !t.Completed && t.ScheduledDay != nil && t.StartTime != nil && *t.StartTime != ""
}
