package memory

import (
	"context"
	"fmt"

	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
	"github.com/mohtashimnawaz/satoshiflow/pkg/storage"
)

func (s *Store) AddNotification(ctx context.Context, n *models.Notification) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextNotificationID
	s.nextNotificationID++

	c := *n
	c.Id = id
	s.notifications[id] = &c
	return id, nil
}

func (s *Store) ListNotifications(ctx context.Context, user string) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Notification
	for _, n := range s.notifications {
		if n.User == user {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (s *Store) MarkNotificationRead(ctx context.Context, id uint64, user string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok {
		return fmt.Errorf("notification %d: %w", id, storage.ErrNotFound)
	}
	if n.User != user {
		return fmt.Errorf("notification %d: %w", id, storage.ErrNotOwner)
	}
	n.Read = true
	return nil
}
