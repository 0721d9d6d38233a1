package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mukund-Vijay/pennywise-todo/internal/models"
)

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func timePtr(t time.Time) *time.Time { return &t }

var patchNow = time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC)

func TestApplyPatchCompletingStampsCompletedDate(t *testing.T) {
	t.Parallel()

	todo := models.Todo{Text: "task"}
	applyPatch(&todo, Patch{Completed: boolPtr(true)}, patchNow)

	assert.True(t, todo.Completed)
	require.NotNil(t, todo.CompletedDate)
	assert.Equal(t, patchNow, *todo.CompletedDate)
	assert.Equal(t, patchNow, todo.UpdatedAt)
}

func TestApplyPatchCompletingTwiceKeepsFirstStamp(t *testing.T) {
	t.Parallel()

	earlier := patchNow.Add(-24 * time.Hour)
	todo := models.Todo{Text: "task", Completed: true, CompletedDate: timePtr(earlier)}
	applyPatch(&todo, Patch{Completed: boolPtr(true)}, patchNow)

	require.NotNil(t, todo.CompletedDate)
	assert.Equal(t, earlier, *todo.CompletedDate)
}

func TestApplyPatchUncompletingClearsCompletedDate(t *testing.T) {
	t.Parallel()

	todo := models.Todo{Text: "task", Completed: true, CompletedDate: timePtr(patchNow)}
	applyPatch(&todo, Patch{Completed: boolPtr(false)}, patchNow.Add(time.Hour))

	assert.False(t, todo.Completed)
	assert.Nil(t, todo.CompletedDate)
}

func TestApplyPatchExplicitCompletedDateOverride(t *testing.T) {
	t.Parallel()

	override := patchNow.Add(-3 * time.Hour)
	todo := models.Todo{Text: "task"}
	applyPatch(&todo, Patch{Completed: boolPtr(true), CompletedDate: timePtr(override)}, patchNow)

	require.NotNil(t, todo.CompletedDate)
	assert.Equal(t, override, *todo.CompletedDate)
}

func TestApplyPatchOverrideIgnoredWhileIncomplete(t *testing.T) {
	t.Parallel()

	todo := models.Todo{Text: "task"}
	applyPatch(&todo, Patch{CompletedDate: timePtr(patchNow)}, patchNow)
	assert.Nil(t, todo.CompletedDate)
}

func TestApplyPatchFieldClears(t *testing.T) {
	t.Parallel()

	todo := models.Todo{
		Text:           "task",
		ScheduledDay:   intPtr(3),
		StartTime:      strPtr("09:00"),
		TargetDatetime: timePtr(patchNow.Add(time.Hour)),
	}
	applyPatch(&todo, Patch{
		ScheduledDay:   intPtr(-1),
		StartTime:      strPtr(""),
		TargetDatetime: timePtr(time.Time{}),
	}, patchNow)

	assert.Nil(t, todo.ScheduledDay)
	assert.Nil(t, todo.StartTime)
	assert.Nil(t, todo.TargetDatetime)
}

func TestApplyPatchPartialUpdateLeavesRestAlone(t *testing.T) {
	t.Parallel()

	todo := models.Todo{Text: "before", ScheduledDay: intPtr(2), StartTime: strPtr("07:15")}
	applyPatch(&todo, Patch{Text: strPtr("after")}, patchNow)

	assert.Equal(t, "after", todo.Text)
	require.NotNil(t, todo.ScheduledDay)
	assert.Equal(t, 2, *todo.ScheduledDay)
	require.NotNil(t, todo.StartTime)
	assert.Equal(t, "07:15", *todo.StartTime)
	assert.False(t, todo.Completed)
}
