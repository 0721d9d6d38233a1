package models

import "time"

// Notification is the payload the scanner dispatches once per
// (todo, reminder instant). It is what the worker materializes into the
// per-user inbox.
type Notification struct {
	ID        string    `json:"id"`
	TodoID    string    `json:"todo_id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
}

// PendingNotification is the computed due-soon view served by
// GET /notifications: tasks whose reminder instant falls within the
// current minute.
type PendingNotification struct {
	TodoID       string    `json:"todo_id"`
	Text         string    `json:"text"`
	ReminderTime time.Time `json:"reminder_time"`
	MinutesUntil int       `json:"minutes_until"`
}
