package notify

import (
	"strconv"
	"time"
)

// firedSet remembers (todo, reminder instant) pairs that already produced a
// notification, so a reminder is dispatched exactly once per occurrence even
// though the same task matches the scan window on consecutive evaluations.
//
// Eviction is approximate: once the set grows past limit, the oldest half by
// insertion order is dropped. Evicted keys are always older than the rolling
// scan window, so they can never be re-matched.
type firedSet struct {
	limit int
	keys  map[string]struct{}
	order []string
}

func newFiredSet(limit int) *firedSet {
	return &firedSet{
		limit: limit,
		keys:  make(map[string]struct{}),
	}
}

// firingKey identifies one occurrence of one task, at millisecond
// granularity to match the stored reminder instant.
func firingKey(todoID string, remindAt time.Time) string {
	return todoID + "_" + strconv.FormatInt(remindAt.UnixMilli(), 10)
}

func (s *firedSet) hasFired(key string) bool {
	_, ok := s.keys[key]
	return ok
}

func (s *firedSet) markFired(key string) {
	if _, ok := s.keys[key]; ok {
		return
	}
	s.keys[key] = struct{}{}
	s.order = append(s.order, key)
	if len(s.keys) > s.limit {
		drop := s.limit / 2
		for _, old := range s.order[:drop] {
			delete(s.keys, old)
		}
		s.order = append([]string(nil), s.order[drop:]...)
	}
}

func (s *firedSet) size() int {
	return len(s.keys)
}
