// Seed creates a demo account with a week of reminder-bearing todos.
// Run from project root: go run ./scripts/seed
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Mukund-Vijay/pennywise-todo/internal/database"
)

func main() {
	loadEnvFile(".env")

	ctx := context.Background()
	db := database.InitDB(ctx)
	if db == nil {
		fmt.Fprintln(os.Stderr, "DATABASE_URL not set or DB connection failed")
		os.Exit(1)
	}
	if err := database.MigrateOrCreateSchema(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Schema failed:", err)
		os.Exit(1)
	}

	userID := uuid.New().String()
	hash, err := bcrypt.GenerateFromPassword([]byte("georgie1958"), 10)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Hash failed:", err)
		os.Exit(1)
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, created_at) VALUES ($1, $2, $3, $4, NOW())
		 ON CONFLICT (email) DO NOTHING`,
		userID, "georgie", "georgie@derry.me", string(hash))
	if err != nil {
		fmt.Fprintln(os.Stderr, "User insert failed:", err)
		os.Exit(1)
	}

	now := time.Now()
	startTimes := []string{"08:00", "12:30", "18:45"}
	count := 0
	for day := 0; day < 7; day++ {
		for i, st := range startTimes {
			due := now.Add(time.Duration(day*24+i) * time.Hour).Truncate(time.Minute)
			_, err := db.ExecContext(ctx,
				`INSERT INTO todos (id, user_id, text, completed, scheduled_day, start_time, target_datetime, created_at, updated_at)
				 VALUES ($1, $2, $3, FALSE, $4, $5, $6, NOW(), NOW())`,
				uuid.New().String(), userID,
				fmt.Sprintf("Demo task %d for day %d", i+1, day),
				day, st, due)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Todo insert failed:", err)
				os.Exit(1)
			}
			count++
		}
	}
	fmt.Printf("Seeded user georgie@derry.me with %d todos\n", count)
}

func loadEnvFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, "=")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		val := strings.TrimSpace(line[idx+1:])
		if key != "" && os.Getenv(key) == "" {
			_ = os.Setenv(key, strings.Trim(val, `"'`))
		}
	}
}
