package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mukund-Vijay/pennywise-todo/internal/cache"
	"github.com/Mukund-Vijay/pennywise-todo/internal/config"
	"github.com/Mukund-Vijay/pennywise-todo/internal/models"
	"github.com/Mukund-Vijay/pennywise-todo/internal/notify"
	"github.com/Mukund-Vijay/pennywise-todo/internal/repository"
	"github.com/Mukund-Vijay/pennywise-todo/pkg/logger"
)

// GetNotifications returns the user's tasks whose reminder should fire within
// the current minute.
func GetNotifications(c *gin.Context) {
	ctx := c.Request.Context()
	uid := currentUser(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	todos, err := repository.ListIncompleteWithDueTimeForUser(ctx, uid)
	if err != nil {
		logger.Error(ctx, "GetNotifications failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get notifications"})
		return
	}
	lookahead := time.Duration(config.Get().ReminderLeadMin) * time.Minute
	c.JSON(http.StatusOK, notify.PendingFromTodos(todos, time.Now(), lookahead))
}

// GetNotificationHistory returns reminders already dispatched for this user,
// newest first.
func GetNotificationHistory(c *gin.Context) {
	ctx := c.Request.Context()
	uid := currentUser(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	inbox, err := cache.GetInbox(ctx, uid)
	if err != nil {
		logger.Error(ctx, "GetNotificationHistory failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get notifications"})
		return
	}
	if inbox == nil {
		inbox = []models.Notification{}
	}
	c.JSON(http.StatusOK, inbox)
}

// MarkNotificationRead flags a delivered notification as read.
func MarkNotificationRead(c *gin.Context) {
	ctx := c.Request.Context()
	uid := currentUser(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing notification id"})
		return
	}
	if err := cache.MarkNotificationRead(ctx, uid, id); err != nil {
		logger.Error(ctx, "MarkNotificationRead failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification as read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
