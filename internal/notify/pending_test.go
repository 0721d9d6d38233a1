package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mukund-Vijay/pennywise-todo/internal/models"
)

func TestPendingFromTodosCurrentMinuteOnly(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	lookahead := 10 * time.Minute

	within := now.Add(lookahead)                   // reminder right now
	nextMinute := now.Add(lookahead + time.Minute) // reminder in one minute
	later := now.Add(lookahead + 5*time.Minute)
	past := now.Add(lookahead - 2*time.Minute)

	todos := []models.Todo{
		{ID: "a", Text: "now", TargetDatetime: &within},
		{ID: "b", Text: "next minute", TargetDatetime: &nextMinute},
		{ID: "c", Text: "later", TargetDatetime: &later},
		{ID: "d", Text: "past", TargetDatetime: &past},
		{ID: "e", Text: "no due"},
	}

	pending := PendingFromTodos(todos, now, lookahead)
	require.Len(t, pending, 2)
	assert.Equal(t, "a", pending[0].TodoID)
	assert.Equal(t, 0, pending[0].MinutesUntil)
	assert.Equal(t, now, pending[0].ReminderTime)
	assert.Equal(t, "b", pending[1].TodoID)
	assert.Equal(t, 1, pending[1].MinutesUntil)
}

func TestPendingFromTodosEmptyInput(t *testing.T) {
	t.Parallel()

	pending := PendingFromTodos(nil, time.Now(), 10*time.Minute)
	assert.NotNil(t, pending)
	assert.Empty(t, pending)
}
