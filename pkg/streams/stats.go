package streams

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/mohtashimnawaz/satoshiflow/pkg/accrual"
	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
	"github.com/mohtashimnawaz/satoshiflow/pkg/storage"
)

// Notifications returns user's notifications ordered by id.
func (s *Service) Notifications(ctx context.Context, user string) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.store.ListNotifications(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Id < list[j].Id })
	return list, nil
}

func (s *Service) MarkNotificationRead(ctx context.Context, id uint64, user string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.store.MarkNotificationRead(ctx, id, user)
	if errors.Is(err, storage.ErrNotOwner) {
		return fmt.Errorf("%w: notification belongs to another user", ErrUnauthorized)
	}
	return err
}

func (s *Service) GlobalStats(ctx context.Context) (*models.StreamStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.GetGlobalStats(ctx)
}

func (s *Service) UserStats(ctx context.Context, user string) (*models.UserStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.GetUserStats(ctx, user)
}

// StreamStats reports how far a single stream has progressed as of now.
func (s *Service) StreamStats(ctx context.Context, id uint64) (*models.StreamProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.store.GetStream(ctx, id)
	if err != nil {
		return nil, err
	}
	return progress(st, s.clock.Now()), nil
}

func progress(st *models.Stream, now uint64) *models.StreamProgress {
	elapsed := accrual.SaturatingSub(min(now, st.EndTime), st.StartTime)
	p := &models.StreamProgress{
		StreamId:      st.Id,
		Status:        st.Status,
		TotalLocked:   st.TotalLocked,
		TotalReleased: st.TotalReleased,
		TotalClaimed:  accrual.SaturatingSub(st.TotalReleased, st.Buffer),
		Buffer:        st.Buffer,
		Remaining:     st.Remaining(),
		ElapsedSecs:   elapsed,
		RemainingSecs: accrual.SaturatingSub(st.EndTime, max(now, st.StartTime)),
	}
	if st.TotalLocked > 0 {
		p.PercentDone = accrual.SaturatingMul(st.TotalReleased, 100) / st.TotalLocked
	}
	return p
}
