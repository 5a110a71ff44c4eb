package notifications

import (
	"context"
	"net/http"

	"github.com/mohtashimnawaz/satoshiflow/pkg/api"
	"github.com/mohtashimnawaz/satoshiflow/pkg/handlers/respond"
	"github.com/mohtashimnawaz/satoshiflow/pkg/mapping"
	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
)

// Service is the part of the stream engine behind the notification routes.
type Service interface {
	Notifications(ctx context.Context, user string) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id uint64, user string) error
}

// NotificationsHandler holds the dependencies for notification handlers.
type NotificationsHandler struct {
	Service Service
}

// NewNotificationsHandler creates a new NotificationsHandler.
func NewNotificationsHandler(svc Service) *NotificationsHandler {
	return &NotificationsHandler{Service: svc}
}

// GetNotifications lists the caller's own notifications.
func (h *NotificationsHandler) GetNotifications(w http.ResponseWriter, r *http.Request, params api.GetNotificationsParams) {
	caller, ok := respond.Caller(w, r)
	if !ok {
		return
	}
	list, err := h.Service.Notifications(r.Context(), caller)
	if err != nil {
		respond.Error(w, r, err, "Failed to retrieve notifications")
		return
	}

	unreadOnly := params.Unread != nil && *params.Unread
	out := make([]*api.Notification, 0, len(list))
	for i := range list {
		if unreadOnly && list[i].Read {
			continue
		}
		out = append(out, mapping.ToApiNotification(&list[i]))
	}
	respond.JSON(w, http.StatusOK, out)
}

func (h *NotificationsHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request, notificationId uint64) {
	caller, ok := respond.Caller(w, r)
	if !ok {
		return
	}
	if err := h.Service.MarkNotificationRead(r.Context(), notificationId, caller); err != nil {
		respond.Error(w, r, err, "Failed to mark notification read")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
