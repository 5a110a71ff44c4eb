package streams

import (
	"context"
	"fmt"
	"sort"

	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
)

// AddMilestone attaches a one-shot rule to a stream. Any caller may attach one;
// it fires the first time an accrual brings the released total to triggerAmount.
func (s *Service) AddMilestone(ctx context.Context, caller string, streamID, triggerAmount uint64, action models.MilestoneAction) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := action.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if _, err := s.store.GetStream(ctx, streamID); err != nil {
		return 0, err
	}

	id, err := s.store.AddMilestone(ctx, &models.Milestone{
		StreamId:      streamID,
		TriggerAmount: triggerAmount,
		Action:        action,
		CreatedBy:     caller,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to add milestone: %w", err)
	}
	return id, nil
}

// ListMilestones returns a stream's milestones ordered by id.
func (s *Service) ListMilestones(ctx context.Context, streamID uint64) ([]models.Milestone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.GetStream(ctx, streamID); err != nil {
		return nil, err
	}
	list, err := s.store.ListMilestones(ctx, streamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}
	sortMilestones(list)
	return list, nil
}

// dueMilestones picks every untriggered milestone at or below released, in id order,
// and stamps it as fired at now.
func dueMilestones(pending []models.Milestone, released, now uint64) []models.Milestone {
	sortMilestones(pending)
	var due []models.Milestone
	for _, m := range pending {
		if m.Triggered || m.TriggerAmount > released {
			continue
		}
		m.Triggered = true
		m.TriggeredAt = now
		due = append(due, m)
	}
	return due
}

func milestoneMessage(m models.Milestone) string {
	if m.Action.Kind == models.SEND_NOTIFICATION && m.Action.Message != "" {
		return m.Action.Message
	}
	return fmt.Sprintf("Milestone reached at %d sats released", m.TriggerAmount)
}

func sortMilestones(list []models.Milestone) {
	sort.Slice(list, func(i, j int) bool { return list[i].Id < list[j].Id })
}
