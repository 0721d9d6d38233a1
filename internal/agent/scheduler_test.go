package agent

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mukund-Vijay/pennywise-todo/internal/models"
)

type recordingAlerter struct {
	mu     sync.Mutex
	alerts []models.Todo
}

func (r *recordingAlerter) Alert(todo models.Todo, due time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, todo)
}

func (r *recordingAlerter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.alerts)
}

func reminderTodo(id string, day int, startTime string) models.Todo {
	return models.Todo{ID: id, Text: "task " + id, ScheduledDay: &day, StartTime: &startTime}
}

func newTestScheduler(a Alerter) *Scheduler {
	s := NewScheduler(a, lookahead)
	// Pin "now" so every computed occurrence is comfortably in the future
	// and no timer elapses during the test.
	s.now = func() time.Time { return wednesday }
	return s
}

func TestRefreshSchedulesOneTimerPerEligibleTask(t *testing.T) {
	t.Parallel()

	a := &recordingAlerter{}
	s := newTestScheduler(a)
	defer s.Stop()

	completed := reminderTodo("done", 5, "08:00")
	completed.Completed = true

	s.Refresh([]models.Todo{
		reminderTodo("a", 5, "08:00"),
		reminderTodo("b", 1, "12:30"),
		completed,                             // completed: no timer
		{ID: "c", Text: "no reminder fields"}, // nothing to schedule
		reminderTodo("bad", 3, "not-a-time"),  // unparsable: skipped
	})

	assert.Equal(t, 2, s.ScheduledCount())
	assert.Zero(t, a.count())
}

func TestRefreshNeverDuplicatesTimers(t *testing.T) {
	t.Parallel()

	s := newTestScheduler(&recordingAlerter{})
	defer s.Stop()

	todos := []models.Todo{
		reminderTodo("a", 5, "08:00"),
		reminderTodo("b", 1, "12:30"),
	}
	for i := 0; i < 5; i++ {
		s.Refresh(todos)
	}
	assert.Equal(t, 2, s.ScheduledCount())
}

func TestRefreshDropsTimersForChangedTasks(t *testing.T) {
	t.Parallel()

	s := newTestScheduler(&recordingAlerter{})
	defer s.Stop()

	s.Refresh([]models.Todo{
		reminderTodo("a", 5, "08:00"),
		reminderTodo("b", 1, "12:30"),
	})
	require.Equal(t, 2, s.ScheduledCount())

	// "a" got completed, "b" lost its start time: both timers must go.
	done := reminderTodo("a", 5, "08:00")
	done.Completed = true
	noTime := models.Todo{ID: "b", Text: "task b", ScheduledDay: intPtr(1)}
	s.Refresh([]models.Todo{done, noTime})
	assert.Zero(t, s.ScheduledCount())
}

func TestFireAlertsOnceAndForgetsHandle(t *testing.T) {
	t.Parallel()

	a := &recordingAlerter{}
	s := newTestScheduler(a)
	defer s.Stop()

	todo := reminderTodo("a", 5, "08:00")
	s.mu.Lock()
	s.timers["a"] = time.AfterFunc(time.Hour, func() {})
	s.mu.Unlock()

	s.fire("a", todo, wednesday.Add(48*time.Hour))
	assert.Equal(t, 1, a.count())
	assert.Zero(t, s.ScheduledCount())
}

func TestStopCancelsEverything(t *testing.T) {
	t.Parallel()

	s := newTestScheduler(&recordingAlerter{})
	s.Refresh([]models.Todo{
		reminderTodo("a", 5, "08:00"),
		reminderTodo("b", 1, "12:30"),
	})
	s.Stop()
	assert.Zero(t, s.ScheduledCount())
}

func intPtr(n int) *int { return &n }
