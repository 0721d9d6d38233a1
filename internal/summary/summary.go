package summary

import (
	"math"

	"github.com/Mukund-Vijay/pennywise-todo/internal/models"
)

var dayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// Build aggregates per-weekday completion statistics over a user's todos.
// A todo counts toward a day when scheduled there; it counts as on-time when
// its completion instant fell on that same weekday. Rates are rounded whole
// percentages; most/least productive days compare per-day completion rates
// among days with at least one scheduled todo (first day wins ties).
func Build(todos []models.Todo) models.WeeklySummary {
	stats := make(map[int]models.DayStat, 7)
	for day := 0; day < 7; day++ {
		stats[day] = models.DayStat{Name: dayNames[day]}
	}

	out := models.WeeklySummary{}
	for _, todo := range todos {
		if todo.ScheduledDay == nil {
			continue
		}
		day := *todo.ScheduledDay
		if day < 0 || day > 6 {
			continue
		}
		s := stats[day]
		s.Scheduled++
		out.TotalScheduled++
		if todo.Completed {
			s.Completed++
			out.TotalCompleted++
			if todo.CompletedDate != nil && int(todo.CompletedDate.Weekday()) == day {
				s.OnTime++
				out.CompletedOnTime++
			}
		}
		stats[day] = s
	}
	out.DayStats = stats

	maxRate, minRate := -1.0, 101.0
	for day := 0; day < 7; day++ {
		s := stats[day]
		if s.Scheduled == 0 {
			continue
		}
		rate := float64(s.Completed) / float64(s.Scheduled) * 100
		if rate > maxRate {
			maxRate = rate
			out.MostProductiveDay = highlight(day, s, rate)
		}
		if rate < minRate {
			minRate = rate
			out.LeastProductiveDay = highlight(day, s, rate)
		}
	}

	if out.TotalScheduled > 0 {
		out.CompletionRate = roundPercent(out.TotalCompleted, out.TotalScheduled)
	}
	if out.TotalCompleted > 0 {
		out.OnTimeRate = roundPercent(out.CompletedOnTime, out.TotalCompleted)
	}
	return out
}

func highlight(day int, s models.DayStat, rate float64) *models.DayHighlight {
	return &models.DayHighlight{
		Day:            day,
		Name:           s.Name,
		Scheduled:      s.Scheduled,
		Completed:      s.Completed,
		OnTime:         s.OnTime,
		CompletionRate: rate,
	}
}

func roundPercent(part, whole int) int {
	return int(math.Round(float64(part) / float64(whole) * 100))
}
