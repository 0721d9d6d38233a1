package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Mukund-Vijay/pennywise-todo/internal/models"
	"github.com/Mukund-Vijay/pennywise-todo/pkg/logger"
)

// maxFiredKeys bounds the dedup set; past this the oldest half is evicted.
const maxFiredKeys = 1000

// TaskSource is the slice of the task store the scanner reads.
type TaskSource interface {
	ListIncompleteWithDueTime(ctx context.Context) ([]models.Todo, error)
}

// Dispatcher delivers a notification payload. The scanner's contract ends
// here: exactly one payload per (task, occurrence).
type Dispatcher interface {
	Dispatch(ctx context.Context, n models.Notification) error
}

// Scanner periodically matches pending tasks against the reminder window and
// dispatches each occurrence once. Reminders are best effort: a failed tick
// is logged and the next tick proceeds independently.
type Scanner struct {
	source     TaskSource
	dispatcher Dispatcher
	interval   time.Duration
	lookahead  time.Duration
	now        func() time.Time

	// fired is mutated only from the tick loop; no lock needed.
	fired *firedSet

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewScanner builds a stopped scanner. Zero interval or lookahead fall back
// to the defaults (1 minute, 10 minutes).
func NewScanner(source TaskSource, dispatcher Dispatcher, interval, lookahead time.Duration) *Scanner {
	if interval <= 0 {
		interval = DefaultScanInterval
	}
	if lookahead <= 0 {
		lookahead = DefaultLookahead
	}
	return &Scanner{
		source:     source,
		dispatcher: dispatcher,
		interval:   interval,
		lookahead:  lookahead,
		now:        time.Now,
		fired:      newFiredSet(maxFiredKeys),
	}
}

// Start begins periodic scanning, with an immediate first tick. Calling
// Start on a running scanner is a no-op.
func (s *Scanner) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	logger.Info(ctx, "Reminder scanner started", "interval", s.interval.String())
	go s.run(ctx)
}

func (s *Scanner) run(ctx context.Context) {
	defer close(s.done)
	s.tick(ctx)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// Stop cancels future ticks and waits for the current one to finish.
// Idempotent; safe to call on a scanner that never started.
func (s *Scanner) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel = nil
	s.done = nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
	logger.Info(context.Background(), "Reminder scanner stopped")
}

// tick runs one scan cycle to completion. A store failure aborts the cycle;
// a dispatch failure skips only that task's occurrence, which stays unmarked
// and may retry while still inside the window.
func (s *Scanner) tick(ctx context.Context) {
	todos, err := s.source.ListIncompleteWithDueTime(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logger.Error(ctx, "Reminder scan fetch failed", "error", err)
		}
		return
	}
	now := s.now()
	for _, todo := range todos {
		if todo.TargetDatetime == nil || todo.UserID == "" {
			continue
		}
		due := *todo.TargetDatetime
		if !DueSoon(now, due, s.lookahead, s.interval) {
			continue
		}
		key := firingKey(todo.ID, ReminderAt(due, s.lookahead))
		if s.fired.hasFired(key) {
			continue
		}
		n := s.buildNotification(todo, now)
		if err := s.dispatcher.Dispatch(ctx, n); err != nil {
			logger.Error(ctx, "Reminder dispatch failed", "error", err, "todo_id", todo.ID)
			continue
		}
		s.fired.markFired(key)
		logger.Info(ctx, "Reminder dispatched", "todo_id", todo.ID, "due", due.Format(time.RFC3339))
	}
}

func (s *Scanner) buildNotification(todo models.Todo, now time.Time) models.Notification {
	lead := int(s.lookahead.Minutes())
	return models.Notification{
		ID:        uuid.New().String(),
		TodoID:    todo.ID,
		UserID:    todo.UserID,
		Title:     fmt.Sprintf("Task Reminder - %d minutes!", lead),
		Message:   fmt.Sprintf("%q starts in %d minutes! Time to float... with productivity!", todo.Text, lead),
		CreatedAt: now,
	}
}
