package main

import (
	"bufio"
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Mukund-Vijay/pennywise-todo/internal/cache"
	"github.com/Mukund-Vijay/pennywise-todo/internal/config"
	"github.com/Mukund-Vijay/pennywise-todo/internal/database"
	"github.com/Mukund-Vijay/pennywise-todo/internal/models"
	"github.com/Mukund-Vijay/pennywise-todo/internal/notify"
	"github.com/Mukund-Vijay/pennywise-todo/internal/queue"
	"github.com/Mukund-Vijay/pennywise-todo/internal/repository"
	"github.com/Mukund-Vijay/pennywise-todo/internal/routes"
	"github.com/Mukund-Vijay/pennywise-todo/internal/worker"
	"github.com/Mukund-Vijay/pennywise-todo/pkg/logger"
)

// storeSource adapts the todo repository to the scanner's read interface.
type storeSource struct{}

func (storeSource) ListIncompleteWithDueTime(ctx context.Context) ([]models.Todo, error) {
	return repository.ListIncompleteWithDueTime(ctx)
}

func main() {
	loadEnvFile(".env")

	ctx := context.Background()
	cfg := config.Get()

	// Initialize DB pool (required for handlers and the reminder scanner)
	db := database.InitDB(ctx)
	if db == nil {
		logger.Error(ctx, "Database not available; exiting")
		os.Exit(1)
	}
	if err := database.MigrateOrCreateSchema(ctx); err != nil {
		logger.Error(ctx, "Schema migration failed", "error", err)
		os.Exit(1)
	}

	// Pre-warm Redis (optional; cache works lazily)
	cache.Client(ctx)

	// Pre-warm Kafka producer and ensure the reminder topic exists
	queue.Producer(ctx)
	queue.EnsureTopic(ctx)

	// Inbox worker consumes dispatched reminders into Redis
	go worker.Run(ctx)

	// Reminder scanner: periodic due-soon scan with per-occurrence dedup
	scanner := notify.NewScanner(
		storeSource{},
		queue.ReminderDispatcher{},
		time.Duration(cfg.ScanIntervalSec)*time.Second,
		time.Duration(cfg.ReminderLeadMin)*time.Minute,
	)
	scanner.Start(ctx)
	defer scanner.Stop()

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      routes.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	go func() {
		logger.Info(ctx, "HTTP server listening", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "Shutting down server")
	scanner.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Server shutdown error", "error", err)
	}
	logger.Info(ctx, "Server stopped")
}

// loadEnvFile reads a .env file and sets env vars (only if not already set).
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
		if strings.HasPrefix(val, `"`) && strings.HasSuffix(val, `"`) {
			val = strings.Trim(val, `"`)
		} else if strings.HasPrefix(val, "'") && strings.HasSuffix(val, "'") {
			val = strings.Trim(val, "'")
		}
		if key != "" && os.Getenv(key) == "" {
			_ = os.Setenv(key, val)
		}
	}
}
