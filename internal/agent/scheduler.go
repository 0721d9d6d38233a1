package agent

import (
	"context"
	"sync"
	"time"

	"github.com/Mukund-Vijay/pennywise-todo/internal/models"
	"github.com/Mukund-Vijay/pennywise-todo/internal/notify"
	"github.com/Mukund-Vijay/pennywise-todo/pkg/logger"
)

// Alerter receives a local reminder when a task's timer elapses.
type Alerter interface {
	Alert(todo models.Todo, due time.Time)
}

// Scheduler holds at most one pending local timer per task. Refresh is the
// only way timers are created: it cancels everything first and recomputes
// occurrences from the current task list, so edits, completions and deletes
// take effect on the next refresh and reloads never double-schedule.
type Scheduler struct {
	alerter   Alerter
	lookahead time.Duration
	now       func() time.Time

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewScheduler builds an empty scheduler. Zero lookahead falls back to the
// 10-minute default.
func NewScheduler(alerter Alerter, lookahead time.Duration) *Scheduler {
	if lookahead <= 0 {
		lookahead = notify.DefaultLookahead
	}
	return &Scheduler{
		alerter:   alerter,
		lookahead: lookahead,
		now:       time.Now,
		timers:    make(map[string]*time.Timer),
	}
}

// Refresh replaces all pending timers with ones derived from the given task
// list. Only incomplete tasks with both a scheduled day and a start time get
// a timer; everything else is dropped.
func (s *Scheduler) Refresh(todos []models.Todo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}

	now := s.now()
	for _, todo := range todos {
		if !todo.HasReminder() {
			continue
		}
		due, err := NextOccurrence(now, *todo.ScheduledDay, *todo.StartTime, s.lookahead)
		if err != nil {
			logger.Warn(context.Background(), "Skipping unschedulable todo", "todo_id", todo.ID, "error", err)
			continue
		}
		wait := notify.ReminderAt(due, s.lookahead).Sub(now)
		if wait <= 0 {
			continue
		}
		id := todo.ID
		t := todo
		s.timers[id] = time.AfterFunc(wait, func() {
			s.fire(id, t, due)
		})
	}
}

// fire delivers the alert once and forgets the handle; the next refresh
// schedules the following week's occurrence if the task is still pending.
func (s *Scheduler) fire(id string, todo models.Todo, due time.Time) {
	s.mu.Lock()
	delete(s.timers, id)
	s.mu.Unlock()
	s.alerter.Alert(todo, due)
}

// Stop cancels every pending timer.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

// ScheduledCount reports how many timers are pending.
func (s *Scheduler) ScheduledCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
