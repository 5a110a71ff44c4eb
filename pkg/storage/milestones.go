package storage

import (
	"context"

	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
)

// MilestoneStore defines the interface for attaching and listing milestones.
type MilestoneStore interface {
	// AddMilestone stores a new untriggered milestone and returns its id.
	AddMilestone(ctx context.Context, m *models.Milestone) (uint64, error)

	// ListMilestones retrieves every milestone attached to streamID.
	ListMilestones(ctx context.Context, streamID uint64) ([]models.Milestone, error)
}

// AccrualFunc edits a copy of a stream given its untriggered milestones and
// returns the milestones that fired. Returning an error aborts the write.
type AccrualFunc func(s *models.Stream, pending []models.Milestone) ([]models.Milestone, error)

// AccrualStore defines the privileged interface used by the periodic tick.
// It writes a stream and its milestone latches together, so a milestone can
// never fire without the release that triggered it being stored.
type AccrualStore interface {
	// AccrueStream runs fn against the stream and its untriggered milestones and
	// stores the stream along with the triggered flag of every returned milestone.
	AccrueStream(ctx context.Context, id uint64, fn AccrualFunc) (*models.Stream, []models.Milestone, error)
}
