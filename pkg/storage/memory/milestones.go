package memory

import (
	"context"
	"fmt"

	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
	"github.com/mohtashimnawaz/satoshiflow/pkg/storage"
)

func (s *Store) AddMilestone(ctx context.Context, m *models.Milestone) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextMilestoneID
	s.nextMilestoneID++

	c := *m
	c.Id = id
	s.milestones[id] = &c
	return id, nil
}

func (s *Store) ListMilestones(ctx context.Context, streamID uint64) ([]models.Milestone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Milestone
	for _, m := range s.milestones {
		if m.StreamId == streamID {
			out = append(out, *m)
		}
	}
	return out, nil
}

// AccrueStream holds the store lock across the stream write and the milestone latches.
func (s *Store) AccrueStream(ctx context.Context, id uint64, fn storage.AccrualFunc) (*models.Stream, []models.Milestone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.streams[id]
	if !ok {
		return nil, nil, fmt.Errorf("stream %d: %w", id, storage.ErrNotFound)
	}

	var pending []models.Milestone
	for _, m := range s.milestones {
		if m.StreamId == id && !m.Triggered {
			pending = append(pending, *m)
		}
	}

	next := current.Clone()
	fired, err := fn(next, pending)
	if err != nil {
		return nil, nil, err
	}

	for _, f := range fired {
		stored, ok := s.milestones[f.Id]
		if !ok || stored.StreamId != id || stored.Triggered {
			return nil, nil, fmt.Errorf("milestone %d is not pending on stream %d: %w", f.Id, id, storage.ErrConflict)
		}
	}
	for i := range fired {
		fired[i].Triggered = true
		stored := fired[i]
		s.milestones[stored.Id] = &stored
	}

	next.Id = id
	next.Version = current.Version + 1
	s.streams[id] = next
	s.index(next)
	return next.Clone(), fired, nil
}
