package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Mukund-Vijay/pennywise-todo/internal/database"
	"github.com/Mukund-Vijay/pennywise-todo/internal/models"
	"github.com/Mukund-Vijay/pennywise-todo/pkg/logger"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("database unavailable")
)

// Patch is a partial todo update. nil pointer means "no change".
// StartTime "" clears the field; ScheduledDay -1 clears; a zero
// TargetDatetime clears. CompletedDate is an explicit override and only
// applies while the todo ends up completed.
type Patch struct {
	Text           *string
	Completed      *bool
	ScheduledDay   *int
	StartTime      *string
	TargetDatetime *time.Time
	CompletedDate  *time.Time
}

const todoColumns = `id, user_id, text, completed, scheduled_day, start_time, target_datetime, completed_date, created_at, updated_at`

func scanTodo(s interface{ Scan(...any) error }) (models.Todo, error) {
	var t models.Todo
	err := s.Scan(&t.ID, &t.UserID, &t.Text, &t.Completed, &t.ScheduledDay, &t.StartTime,
		&t.TargetDatetime, &t.CompletedDate, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// ListForUser returns all of a user's todos, newest first.
func ListForUser(ctx context.Context, userID string) ([]models.Todo, error) {
	db := database.DB(ctx)
	if db == nil {
		return nil, ErrUnavailable
	}
	rows, err := db.QueryContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		logger.Error(ctx, "Repository ListForUser failed", "error", err)
		return nil, err
	}
	defer rows.Close()
	var todos []models.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			logger.Error(ctx, "Repository scan todo failed", "error", err)
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

// GetForUser returns a single todo owned by the given user.
func GetForUser(ctx context.Context, id, userID string) (models.Todo, error) {
	db := database.DB(ctx)
	if db == nil {
		return models.Todo{}, ErrUnavailable
	}
	row := db.QueryRowContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = $1 AND user_id = $2`, id, userID)
	t, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Todo{}, ErrNotFound
	}
	return t, err
}

// ListIncompleteWithDueTime returns every pending todo that has an absolute
// due instant, across all users. The reminder scanner's read path.
func ListIncompleteWithDueTime(ctx context.Context) ([]models.Todo, error) {
	db := database.DB(ctx)
	if db == nil {
		return nil, ErrUnavailable
	}
	rows, err := db.QueryContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE completed = FALSE AND target_datetime IS NOT NULL`)
	if err != nil {
		logger.Error(ctx, "Repository ListIncompleteWithDueTime failed", "error", err)
		return nil, err
	}
	defer rows.Close()
	var todos []models.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

// ListIncompleteWithDueTimeForUser is the user-scoped variant serving the
// pending-notifications endpoint.
func ListIncompleteWithDueTimeForUser(ctx context.Context, userID string) ([]models.Todo, error) {
	db := database.DB(ctx)
	if db == nil {
		return nil, ErrUnavailable
	}
	rows, err := db.QueryContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE user_id = $1 AND completed = FALSE AND target_datetime IS NOT NULL`, userID)
	if err != nil {
		logger.Error(ctx, "Repository ListIncompleteWithDueTimeForUser failed", "error", err)
		return nil, err
	}
	defer rows.Close()
	var todos []models.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

// Create inserts a new todo.
func Create(ctx context.Context, todo *models.Todo) error {
	db := database.DB(ctx)
	if db == nil {
		return ErrUnavailable
	}
	if todo.ID == "" {
		todo.ID = uuid.New().String()
	}
	now := time.Now()
	todo.CreatedAt = now
	todo.UpdatedAt = now
	_, err := db.ExecContext(ctx,
		`INSERT INTO todos (id, user_id, text, completed, scheduled_day, start_time, target_datetime, completed_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		todo.ID, todo.UserID, todo.Text, todo.Completed, todo.ScheduledDay, todo.StartTime,
		todo.TargetDatetime, todo.CompletedDate, todo.CreatedAt, todo.UpdatedAt)
	if err != nil {
		logger.Error(ctx, "Repository Create failed", "error", err)
		return err
	}
	return nil
}

// Update applies a partial update to a todo owned by the given user and
// returns the updated row.
func Update(ctx context.Context, id, userID string, p Patch) (models.Todo, error) {
	db := database.DB(ctx)
	if db == nil {
		return models.Todo{}, ErrUnavailable
	}
	t, err := GetForUser(ctx, id, userID)
	if err != nil {
		return models.Todo{}, err
	}
	applyPatch(&t, p, time.Now())
	_, err = db.ExecContext(ctx,
		`UPDATE todos SET text = $1, completed = $2, scheduled_day = $3, start_time = $4,
		 target_datetime = $5, completed_date = $6, updated_at = $7 WHERE id = $8 AND user_id = $9`,
		t.Text, t.Completed, t.ScheduledDay, t.StartTime, t.TargetDatetime, t.CompletedDate,
		t.UpdatedAt, id, userID)
	if err != nil {
		logger.Error(ctx, "Repository Update failed", "error", err, "id", id)
		return models.Todo{}, err
	}
	return t, nil
}

// UpdateCompletion sets only the completion state, with an optional explicit
// completion instant. completedAt nil on a false->true transition means
// "stamp now"; transitions to false always clear completed_date.
func UpdateCompletion(ctx context.Context, id, userID string, completed bool, completedAt *time.Time) error {
	p := Patch{Completed: &completed, CompletedDate: completedAt}
	_, err := Update(ctx, id, userID, p)
	return err
}

// Delete removes a todo by ID and owner.
func Delete(ctx context.Context, id, userID string) error {
	db := database.DB(ctx)
	if db == nil {
		return ErrUnavailable
	}
	res, err := db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		logger.Error(ctx, "Repository Delete failed", "error", err, "id", id)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllForUser removes every todo owned by the given user.
func DeleteAllForUser(ctx context.Context, userID string) error {
	db := database.DB(ctx)
	if db == nil {
		return ErrUnavailable
	}
	_, err := db.ExecContext(ctx, `DELETE FROM todos WHERE user_id = $1`, userID)
	if err != nil {
		logger.Error(ctx, "Repository DeleteAllForUser failed", "error", err)
	}
	return err
}

// applyPatch mutates t in place. Completion transitions own completed_date:
// a false->true transition stamps now only when completed_date is nil, any
// transition to false clears it, and an explicit CompletedDate override wins
// while the todo ends up completed.
func applyPatch(t *models.Todo, p Patch, now time.Time) {
	if p.Text != nil && *p.Text != "" {
		t.Text = *p.Text
	}
	if p.ScheduledDay != nil {
		if *p.ScheduledDay < 0 {
			t.ScheduledDay = nil
		} else {
			day := *p.ScheduledDay
			t.ScheduledDay = &day
		}
	}
	if p.StartTime != nil {
		if *p.StartTime == "" {
			t.StartTime = nil
		} else {
			st := *p.StartTime
			t.StartTime = &st
		}
	}
	if p.TargetDatetime != nil {
		if p.TargetDatetime.IsZero() {
			t.TargetDatetime = nil
		} else {
			due := *p.TargetDatetime
			t.TargetDatetime = &due
		}
	}
	if p.Completed != nil {
		switch {
		case *p.Completed && !t.Completed:
			if t.CompletedDate == nil {
				stamp := now
				t.CompletedDate = &stamp
			}
		case !*p.Completed:
			t.CompletedDate = nil
		}
		t.Completed = *p.Completed
	}
	if p.CompletedDate != nil && t.Completed {
		stamp := *p.CompletedDate
		t.CompletedDate = &stamp
	}
	t.UpdatedAt = now
}
