package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Mukund-Vijay/pennywise-todo/internal/config"
	"github.com/Mukund-Vijay/pennywise-todo/internal/models"
	"github.com/Mukund-Vijay/pennywise-todo/pkg/logger"
)

// Delivered reminders live in a capped per-user Redis list so clients can
// fetch what the scanner dispatched while they were away.

const inboxTTL = 7 * 24 * time.Hour

func inboxKey(userID string) string {
	return "notifications:inbox:" + userID
}

// PushNotification prepends a delivered notification to the user's inbox,
// trimming it to the configured size.
func PushNotification(ctx context.Context, n models.Notification) error {
	c := Client(ctx)
	if c == nil {
		return nil
	}
	b, err := json.Marshal(n)
	if err != nil {
		return err
	}
	key := inboxKey(n.UserID)
	pipe := c.TxPipeline()
	pipe.LPush(ctx, key, b)
	pipe.LTrim(ctx, key, 0, int64(config.Get().NotifyInboxSize)-1)
	pipe.Expire(ctx, key, inboxTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Debug(ctx, "Redis inbox push failed", "error", err)
		return err
	}
	return nil
}

// GetInbox returns the user's delivered notifications, newest first.
func GetInbox(ctx context.Context, userID string) ([]models.Notification, error) {
	c := Client(ctx)
	if c == nil {
		return nil, nil
	}
	raw, err := c.LRange(ctx, inboxKey(userID), 0, -1).Result()
	if err != nil {
		logger.Debug(ctx, "Redis inbox read failed", "error", err)
		return nil, err
	}
	out := make([]models.Notification, 0, len(raw))
	for _, item := range raw {
		var n models.Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// MarkNotificationRead flips the read flag on an inbox entry in place.
func MarkNotificationRead(ctx context.Context, userID, notificationID string) error {
	c := Client(ctx)
	if c == nil {
		return nil
	}
	key := inboxKey(userID)
	raw, err := c.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return err
	}
	for i, item := range raw {
		var n models.Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			continue
		}
		if n.ID != notificationID {
			continue
		}
		n.Read = true
		b, err := json.Marshal(n)
		if err != nil {
			return err
		}
		return c.LSet(ctx, key, int64(i), b).Err()
	}
	return nil
}
