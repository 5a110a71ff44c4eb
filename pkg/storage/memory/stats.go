package memory

import (
	"context"
	"fmt"

	"github.com/mohtashimnawaz/satoshiflow/pkg/accrual"
	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
	"github.com/mohtashimnawaz/satoshiflow/pkg/storage"
)

func (s *Store) RecordStreamCreated(ctx context.Context, sender, recipient string, locked, duration uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := &s.global
	g.TotalStreamsCreated++
	g.TotalVolumeLocked = accrual.SaturatingAdd(g.TotalVolumeLocked, locked)
	g.ActiveStreams++
	g.TotalDuration = accrual.SaturatingAdd(g.TotalDuration, duration)
	g.AverageStreamDuration = g.TotalDuration / g.TotalStreamsCreated

	u := s.user(sender)
	u.StreamsCreated++
	u.TotalSent = accrual.SaturatingAdd(u.TotalSent, locked)
	u.AvgStreamSize = u.TotalSent / u.StreamsCreated

	s.user(recipient).StreamsReceived++
	return nil
}

func (s *Store) RecordStreamClaimed(ctx context.Context, recipient string, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.global.TotalVolumeClaimed = accrual.SaturatingAdd(s.global.TotalVolumeClaimed, amount)
	u := s.user(recipient)
	u.TotalReceived = accrual.SaturatingAdd(u.TotalReceived, amount)
	return nil
}

func (s *Store) RecordStreamCancelled(ctx context.Context, sender string, fee uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := &s.global
	g.CancelledStreams++
	g.ActiveStreams = accrual.SaturatingSub(g.ActiveStreams, 1)
	g.TotalFeesCollected = accrual.SaturatingAdd(g.TotalFeesCollected, fee)

	u := s.user(sender)
	u.TotalFeesPaid = accrual.SaturatingAdd(u.TotalFeesPaid, fee)
	return nil
}

func (s *Store) RecordStreamCompleted(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.global.CompletedStreams++
	s.global.ActiveStreams = accrual.SaturatingSub(s.global.ActiveStreams, 1)
	return nil
}

func (s *Store) GetGlobalStats(ctx context.Context) (*models.StreamStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.global
	return &g, nil
}

func (s *Store) GetUserStats(ctx context.Context, user string) (*models.UserStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.userStats[user]
	if !ok {
		return nil, fmt.Errorf("stats for user %s: %w", user, storage.ErrNotFound)
	}
	c := *u
	return &c, nil
}

// user returns the mutable stats row for principal, creating it. Callers hold mu.
func (s *Store) user(principal string) *models.UserStats {
	u, ok := s.userStats[principal]
	if !ok {
		u = &models.UserStats{User: principal}
		s.userStats[principal] = u
	}
	return u
}
