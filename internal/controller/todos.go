package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"

	"github.com/Mukund-Vijay/pennywise-todo/internal/cache"
	"github.com/Mukund-Vijay/pennywise-todo/internal/database"
	"github.com/Mukund-Vijay/pennywise-todo/internal/models"
	"github.com/Mukund-Vijay/pennywise-todo/internal/repository"
	"github.com/Mukund-Vijay/pennywise-todo/internal/summary"
	"github.com/Mukund-Vijay/pennywise-todo/pkg/logger"
)

var getTodosGroup singleflight.Group

func currentUser(c *gin.Context) string {
	v, _ := c.Get("user")
	uid, _ := v.(string)
	return uid
}

// GetTodos returns the user's todos as JSON, cache-first as raw bytes;
// concurrent misses for the same user collapse into one DB read.
func GetTodos(c *gin.Context) {
	ctx := c.Request.Context()
	uid := currentUser(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if b, ok := cache.GetRawTodos(ctx, uid); ok {
		c.Data(http.StatusOK, "application/json", b)
		return
	}
	v, err, _ := getTodosGroup.Do("todos:"+uid, func() (interface{}, error) {
		todos, err := repository.ListForUser(context.Background(), uid)
		if err != nil {
			return nil, err
		}
		if todos == nil {
			todos = []models.Todo{}
		}
		return json.Marshal(todos)
	})
	if err != nil {
		if ctx.Err() != nil || isContextErr(err) {
			return
		}
		logger.Error(ctx, "GetTodos repository failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch todos"})
		return
	}
	b := v.([]byte)
	c.Data(http.StatusOK, "application/json", b)
	go cache.SetRawTodos(context.Background(), uid, b)
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// CreateTodo validates the body, inserts the todo and returns it.
func CreateTodo(c *gin.Context) {
	ctx := c.Request.Context()
	uid := currentUser(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	var body struct {
		Text           string     `json:"text" binding:"required"`
		ScheduledDay   *int       `json:"scheduled_day"`
		StartTime      *string    `json:"start_time"`
		TargetDatetime *time.Time `json:"target_datetime"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text is required", "details": err.Error()})
		return
	}
	if body.ScheduledDay != nil && (*body.ScheduledDay < 0 || *body.ScheduledDay > 6) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scheduled_day must be 0-6"})
		return
	}
	todo := &models.Todo{
		UserID:         uid,
		Text:           body.Text,
		ScheduledDay:   body.ScheduledDay,
		StartTime:      body.StartTime,
		TargetDatetime: body.TargetDatetime,
	}
	if err := repository.Create(ctx, todo); err != nil {
		logger.Error(ctx, "CreateTodo failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create todo"})
		return
	}
	cache.InvalidateTodos(ctx, uid)
	c.JSON(http.StatusCreated, todo)
}

// UpdateTodo applies a partial update and returns the updated todo.
func UpdateTodo(c *gin.Context) {
	ctx := c.Request.Context()
	uid := currentUser(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing todo id"})
		return
	}
	var body struct {
		Text           *string    `json:"text"`
		Completed      *bool      `json:"completed"`
		ScheduledDay   *int       `json:"scheduled_day"`
		StartTime      *string    `json:"start_time"`
		TargetDatetime *time.Time `json:"target_datetime"`
		CompletedDate  *time.Time `json:"completed_date"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	patch := repository.Patch{
		Text:           body.Text,
		Completed:      body.Completed,
		ScheduledDay:   body.ScheduledDay,
		StartTime:      body.StartTime,
		TargetDatetime: body.TargetDatetime,
		CompletedDate:  body.CompletedDate,
	}
	todo, err := repository.Update(ctx, id, uid, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
			return
		}
		logger.Error(ctx, "UpdateTodo failed", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update todo"})
		return
	}
	cache.InvalidateTodos(ctx, uid)
	c.JSON(http.StatusOK, todo)
}

// DeleteTodo removes a todo owned by the user.
func DeleteTodo(c *gin.Context) {
	ctx := c.Request.Context()
	uid := currentUser(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing todo id"})
		return
	}
	if err := repository.Delete(ctx, id, uid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
			return
		}
		logger.Error(ctx, "DeleteTodo failed", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete todo"})
		return
	}
	cache.InvalidateTodos(ctx, uid)
	c.JSON(http.StatusOK, gin.H{"message": "Todo sent to the deadlights"})
}

// WeeklySummary aggregates the user's per-weekday completion stats.
func WeeklySummary(c *gin.Context) {
	ctx := c.Request.Context()
	uid := currentUser(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	todos, err := repository.ListForUser(ctx, uid)
	if err != nil {
		logger.Error(ctx, "WeeklySummary failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get summary"})
		return
	}
	c.JSON(http.StatusOK, summary.Build(todos))
}

// Health returns 200 if the process is alive. Used by load balancers.
func Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// Ready returns 200 if DB and Redis are reachable. Used by K8s readiness probes.
func Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if cache.Client(ctx) == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "redis unavailable"})
		return
	}
	db := database.DB(ctx)
	if db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database unavailable"})
		return
	}
	if err := db.PingContext(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database ping failed"})
		return
	}
	c.String(http.StatusOK, "OK")
}
