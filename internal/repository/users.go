package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Mukund-Vijay/pennywise-todo/internal/database"
	"github.com/Mukund-Vijay/pennywise-todo/internal/models"
	"github.com/Mukund-Vijay/pennywise-todo/pkg/logger"
)

var ErrDuplicate = errors.New("already exists")

const userColumns = `id, username, email, password_hash, created_at`

func scanUser(s interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := s.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

// CreateUser inserts a new account. Returns ErrDuplicate when the email or
// username is taken.
func CreateUser(ctx context.Context, user *models.User) error {
	db := database.DB(ctx)
	if db == nil {
		return ErrUnavailable
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	_, err := db.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicate
		}
		logger.Error(ctx, "Repository CreateUser failed", "error", err)
		return err
	}
	return nil
}

// GetUserByEmail returns the account with the given email.
func GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	db := database.DB(ctx)
	if db == nil {
		return models.User{}, ErrUnavailable
	}
	row := db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	return u, err
}

// GetUserByEmailAndUsername matches both fields; used by password reset.
func GetUserByEmailAndUsername(ctx context.Context, email, username string) (models.User, error) {
	db := database.DB(ctx)
	if db == nil {
		return models.User{}, ErrUnavailable
	}
	row := db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 AND username = $2`, email, username)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	return u, err
}

// UpdatePassword replaces the stored bcrypt hash.
func UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	db := database.DB(ctx)
	if db == nil {
		return ErrUnavailable
	}
	_, err := db.ExecContext(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, userID)
	if err != nil {
		logger.Error(ctx, "Repository UpdatePassword failed", "error", err)
	}
	return err
}

// DeleteUser removes an account. The todos FK cascades, but callers delete
// todos explicitly first so a failed user delete never strands a half-removed
// account.
func DeleteUser(ctx context.Context, userID string) error {
	db := database.DB(ctx)
	if db == nil {
		return ErrUnavailable
	}
	res, err := db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		logger.Error(ctx, "Repository DeleteUser failed", "error", err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
