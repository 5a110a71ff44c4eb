package events

import (
	"context"
	"fmt"

	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
	"github.com/mohtashimnawaz/satoshiflow/pkg/storage"
)

// NotificationSink stores every event as a notification for its principal.
type NotificationSink struct {
	Store storage.NotificationStore
}

// NewNotificationSink creates a new NotificationSink.
func NewNotificationSink(store storage.NotificationStore) *NotificationSink {
	return &NotificationSink{Store: store}
}

// Make sure we conform to the interface
var _ Sink = (*NotificationSink)(nil)

func (s *NotificationSink) Emit(ctx context.Context, event Event) error {
	_, err := s.Store.AddNotification(ctx, ToNotification(event))
	if err != nil {
		return fmt.Errorf("failed to store notification for %s: %w", event.Principal, err)
	}
	return nil
}

// ToNotification converts an event to an unread notification record.
func ToNotification(event Event) *models.Notification {
	return &models.Notification{
		User:      event.Principal,
		StreamId:  event.StreamId,
		Type:      event.Kind,
		Message:   event.Message,
		Timestamp: event.Timestamp,
	}
}
