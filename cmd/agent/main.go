// The reminder agent mirrors the server scanner locally: it polls the task
// list and schedules one-shot timers for each weekly occurrence, so reminders
// fire on this machine even between server dispatches.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mukund-Vijay/pennywise-todo/internal/agent"
	"github.com/Mukund-Vijay/pennywise-todo/internal/models"
	"github.com/Mukund-Vijay/pennywise-todo/internal/notify"
	"github.com/Mukund-Vijay/pennywise-todo/pkg/logger"
)

// consoleAlerter prints reminders to the terminal. Where a desktop notifier
// is unavailable this is the degraded path: informational only, no retry.
type consoleAlerter struct{}

func (consoleAlerter) Alert(todo models.Todo, due time.Time) {
	ctx := context.Background()
	fmt.Printf("\n*** Task Reminder: %q starts at %s ***\n", todo.Text, due.Format("Mon 15:04"))
	logger.Info(ctx, "Local reminder fired", "todo_id", todo.ID, "due", due.Format(time.RFC3339))
}

func main() {
	var (
		serverURL = flag.String("server", envOr("SERVER_URL", "http://localhost:8080"), "API base URL")
		token     = flag.String("token", os.Getenv("AGENT_TOKEN"), "bearer token (or set AGENT_EMAIL/AGENT_PASSWORD)")
		email     = flag.String("email", os.Getenv("AGENT_EMAIL"), "login email")
		password  = flag.String("password", os.Getenv("AGENT_PASSWORD"), "login password")
		pollEvery = flag.Duration("poll", 5*time.Minute, "task list refresh interval")
	)
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := agent.NewClient(*serverURL, *token)
	if *token == "" {
		if *email == "" || *password == "" {
			fmt.Fprintln(os.Stderr, "provide -token or -email and -password")
			os.Exit(1)
		}
		if err := client.Login(ctx, *email, *password); err != nil {
			logger.Error(ctx, "Agent login failed", "error", err)
			os.Exit(1)
		}
	}

	scheduler := agent.NewScheduler(consoleAlerter{}, notify.DefaultLookahead)
	defer scheduler.Stop()

	refresh := func() {
		todos, err := client.ListTodos(ctx)
		if err != nil {
			logger.Error(ctx, "Task list refresh failed", "error", err)
			return
		}
		scheduler.Refresh(todos)
		logger.Info(ctx, "Reminders rescheduled", "timers", scheduler.ScheduledCount())
	}
	refresh()

	ticker := time.NewTicker(*pollEvery)
	defer ticker.Stop()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			refresh()
		case <-quit:
			logger.Info(ctx, "Reminder agent stopped")
			return
		}
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
