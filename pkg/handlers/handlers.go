package handlers

import (
	"github.com/mohtashimnawaz/satoshiflow/pkg/api"
	"github.com/mohtashimnawaz/satoshiflow/pkg/handlers/lifecycle"
	"github.com/mohtashimnawaz/satoshiflow/pkg/handlers/notifications"
	"github.com/mohtashimnawaz/satoshiflow/pkg/handlers/stats"
	"github.com/mohtashimnawaz/satoshiflow/pkg/handlers/templates"
)

// StreamService is everything the API needs from the stream engine.
// *streams.Service satisfies it.
type StreamService interface {
	lifecycle.Service
	templates.Service
	notifications.Service
	stats.Service
}

// ApiHandler implements the server interface by composing the per-resource handlers.
type ApiHandler struct {
	*lifecycle.StreamsHandler
	*templates.TemplatesHandler
	*notifications.NotificationsHandler
	*stats.StatsHandler
}

// NewApiHandler creates a new ApiHandler over svc.
func NewApiHandler(svc StreamService) *ApiHandler {
	return &ApiHandler{
		StreamsHandler:       lifecycle.NewStreamsHandler(svc),
		TemplatesHandler:     templates.NewTemplatesHandler(svc),
		NotificationsHandler: notifications.NewNotificationsHandler(svc),
		StatsHandler:         stats.NewStatsHandler(svc),
	}
}

// Make sure we conform to the interface
var _ api.ServerInterface = (*ApiHandler)(nil)
