package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mukund-Vijay/pennywise-todo/internal/models"
)

type fakeSource struct {
	mu    sync.Mutex
	todos []models.Todo
	err   error
}

func (f *fakeSource) ListIncompleteWithDueTime(ctx context.Context) ([]models.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.todos, nil
}

type fakeDispatcher struct {
	mu        sync.Mutex
	delivered []models.Notification
	failNext  int
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, n models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext > 0 {
		f.failNext--
		return errors.New("broker down")
	}
	f.delivered = append(f.delivered, n)
	return nil
}

func (f *fakeDispatcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.delivered)
}

func dueTodo(id, userID string, due time.Time) models.Todo {
	return models.Todo{ID: id, UserID: userID, Text: "walk the dog", TargetDatetime: &due}
}

func newTestScanner(src *fakeSource, d *fakeDispatcher, now time.Time) *Scanner {
	s := NewScanner(src, d, time.Minute, 10*time.Minute)
	s.now = func() time.Time { return now }
	return s
}

func TestScannerDispatchesOncePerOccurrence(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	src := &fakeSource{todos: []models.Todo{dueTodo("todo-1", "u1", now.Add(10*time.Minute))}}
	d := &fakeDispatcher{}
	s := newTestScanner(src, d, now)

	s.tick(context.Background())
	s.tick(context.Background())
	s.tick(context.Background())

	require.Equal(t, 1, d.count())
	n := d.delivered[0]
	assert.Equal(t, "todo-1", n.TodoID)
	assert.Equal(t, "u1", n.UserID)
	assert.Equal(t, "Task Reminder - 10 minutes!", n.Title)
	assert.Contains(t, n.Message, "walk the dog")
	assert.Contains(t, n.Message, "10 minutes")
	assert.NotEmpty(t, n.ID)
}

func TestScannerDistinctOccurrencesFireSeparately(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	src := &fakeSource{todos: []models.Todo{dueTodo("todo-1", "u1", now.Add(10*time.Minute))}}
	d := &fakeDispatcher{}
	s := newTestScanner(src, d, now)
	s.tick(context.Background())

	// Same task, next week's occurrence, scanned a week later.
	nextWeek := now.AddDate(0, 0, 7)
	src.mu.Lock()
	src.todos = []models.Todo{dueTodo("todo-1", "u1", nextWeek.Add(10*time.Minute))}
	src.mu.Unlock()
	s.now = func() time.Time { return nextWeek }
	s.tick(context.Background())

	assert.Equal(t, 2, d.count())
}

func TestScannerSkipsOutOfWindowAndMalformed(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	far := now.Add(2 * time.Hour)
	src := &fakeSource{todos: []models.Todo{
		dueTodo("past", "u1", past),
		dueTodo("far", "u1", far),
		{ID: "no-due", UserID: "u1", Text: "missing due"},
		{ID: "no-user", TargetDatetime: &far},
	}}
	d := &fakeDispatcher{}
	s := newTestScanner(src, d, now)

	s.tick(context.Background())
	assert.Zero(t, d.count())
}

func TestScannerFetchFailureAbortsOnlyThatTick(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	src := &fakeSource{err: errors.New("connection refused")}
	d := &fakeDispatcher{}
	s := newTestScanner(src, d, now)

	s.tick(context.Background())
	assert.Zero(t, d.count())

	src.mu.Lock()
	src.err = nil
	src.todos = []models.Todo{dueTodo("todo-1", "u1", now.Add(10*time.Minute))}
	src.mu.Unlock()
	s.tick(context.Background())
	assert.Equal(t, 1, d.count())
}

func TestScannerDispatchFailureLeavesOccurrenceUnmarked(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	src := &fakeSource{todos: []models.Todo{dueTodo("todo-1", "u1", now.Add(10*time.Minute))}}
	d := &fakeDispatcher{failNext: 1}
	s := newTestScanner(src, d, now)

	s.tick(context.Background())
	require.Zero(t, d.count())

	// Still inside the window on the retry; must deliver exactly once now.
	s.tick(context.Background())
	s.tick(context.Background())
	assert.Equal(t, 1, d.count())
}

func TestScannerStartStopIdempotent(t *testing.T) {
	t.Parallel()

	src := &fakeSource{}
	d := &fakeDispatcher{}
	s := NewScanner(src, d, 10*time.Millisecond, 10*time.Minute)

	// Stop before Start is a no-op.
	s.Stop()

	s.Start(context.Background())
	s.Start(context.Background()) // second Start ignored
	time.Sleep(30 * time.Millisecond)
	s.Stop()
	s.Stop() // second Stop is a no-op
}
