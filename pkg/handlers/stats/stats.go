package stats

import (
	"context"
	"net/http"

	"github.com/mohtashimnawaz/satoshiflow/pkg/handlers/respond"
	"github.com/mohtashimnawaz/satoshiflow/pkg/mapping"
	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
)

// Service is the part of the stream engine behind the stats routes.
type Service interface {
	GlobalStats(ctx context.Context) (*models.StreamStats, error)
	UserStats(ctx context.Context, user string) (*models.UserStats, error)
}

// StatsHandler holds the dependencies for stats handlers.
type StatsHandler struct {
	Service Service
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(svc Service) *StatsHandler {
	return &StatsHandler{Service: svc}
}

func (h *StatsHandler) GetGlobalStats(w http.ResponseWriter, r *http.Request) {
	s, err := h.Service.GlobalStats(r.Context())
	if err != nil {
		respond.Error(w, r, err, "Failed to retrieve stats")
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiGlobalStats(s))
}

// GetUserStats returns 404 for a user with no recorded activity.
func (h *StatsHandler) GetUserStats(w http.ResponseWriter, r *http.Request, userId string) {
	s, err := h.Service.UserStats(r.Context(), userId)
	if err != nil {
		respond.Error(w, r, err, "Failed to retrieve user stats")
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiUserStats(s))
}
