package storage

import (
	"context"

	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
)

// NotificationStore defines the interface for per-user notifications.
type NotificationStore interface {
	// AddNotification stores n under the next free id and returns it.
	AddNotification(ctx context.Context, n *models.Notification) (uint64, error)

	// ListNotifications retrieves every notification addressed to user.
	ListNotifications(ctx context.Context, user string) ([]models.Notification, error)

	// MarkNotificationRead flags a notification as read. It returns ErrNotFound
	// when the id does not exist and ErrNotOwner when it belongs to another user.
	MarkNotificationRead(ctx context.Context, id uint64, user string) error
}
