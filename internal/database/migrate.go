package database

import (
	"context"
	"errors"

	"github.com/Mukund-Vijay/pennywise-todo/pkg/logger"
)

var errDBUnavailable = errors.New("database unavailable")

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS todos (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		text TEXT NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		scheduled_day SMALLINT,
		start_time TEXT,
		target_datetime TIMESTAMPTZ,
		completed_date TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_todos_user_created ON todos (user_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_todos_pending_due ON todos (target_datetime) WHERE completed = FALSE AND target_datetime IS NOT NULL`,
}

// MigrateOrCreateSchema creates tables and indexes if they do not exist.
// Idempotent; called at startup.
func MigrateOrCreateSchema(ctx context.Context) error {
	db := DB(ctx)
	if db == nil {
		return errDBUnavailable
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			logger.Error(ctx, "Schema statement failed", "error", err)
			return err
		}
	}
	logger.Info(ctx, "Schema ensured")
	return nil
}
