package notify

import (
	"math"
	"time"

	"github.com/Mukund-Vijay/pennywise-todo/internal/models"
)

// PendingFromTodos computes the due-soon view for GET /notifications: tasks
// whose reminder instant falls within the current minute. Input is expected
// to be a user's incomplete todos; entries without a due instant are skipped.
func PendingFromTodos(todos []models.Todo, now time.Time, lookahead time.Duration) []models.PendingNotification {
	pending := make([]models.PendingNotification, 0)
	for _, todo := range todos {
		if todo.TargetDatetime == nil {
			continue
		}
		remind := ReminderAt(*todo.TargetDatetime, lookahead)
		minutes := int(math.Round(remind.Sub(now).Minutes()))
		if minutes < 0 || minutes > 1 {
			continue
		}
		pending = append(pending, models.PendingNotification{
			TodoID:       todo.ID,
			Text:         todo.Text,
			ReminderTime: remind,
			MinutesUntil: minutes,
		})
	}
	return pending
}
