package streams

import (
	"context"
	"fmt"

	"github.com/mohtashimnawaz/satoshiflow/pkg/accrual"
	"github.com/mohtashimnawaz/satoshiflow/pkg/events"
	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
)

// CreateParams describes a new stream. Descriptive fields are stored as given.
type CreateParams struct {
	Recipient    string
	SatsPerSec   uint64
	DurationSecs uint64
	TotalLocked  uint64
	Title        *string
	Description  *string
	Tags         []string
	Metadata     map[string]string
}

// CreateStream opens an Active stream from sender to p.Recipient starting now.
// Funds are assumed to be escrowed by the caller already.
func (s *Service) CreateStream(ctx context.Context, sender string, p CreateParams) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createStream(ctx, sender, p)
}

func (s *Service) createStream(ctx context.Context, sender string, p CreateParams) (uint64, error) {
	now := s.clock.Now()
	stream := &models.Stream{
		Sender:          sender,
		Recipient:       p.Recipient,
		SatsPerSec:      p.SatsPerSec,
		StartTime:       now,
		EndTime:         accrual.SaturatingAdd(now, p.DurationSecs),
		TotalLocked:     p.TotalLocked,
		LastReleaseTime: now,
		LastClaimTime:   now,
		Status:          models.ACTIVE,
		Title:           p.Title,
		Description:     p.Description,
		Tags:            p.Tags,
		Metadata:        p.Metadata,
	}

	id, err := s.store.InsertStream(ctx, stream)
	if err != nil {
		return 0, fmt.Errorf("failed to create stream: %w", err)
	}

	recordStats("create", id, s.store.RecordStreamCreated(ctx, sender, p.Recipient, p.TotalLocked, p.DurationSecs))
	s.emit(ctx,
		events.New(models.StreamCreated, id, sender, "Stream created successfully", now),
		events.New(models.StreamCreated, id, p.Recipient, "New incoming stream", now).WithAmount(p.TotalLocked),
	)
	return id, nil
}

// TopUp raises the stream's locked ceiling by amount. Rate and end time are
// unchanged. A zero amount is rejected.
func (s *Service) TopUp(ctx context.Context, id uint64, caller string, amount uint64) error {
	if amount == 0 {
		return fmt.Errorf("%w: top-up amount must be positive", ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stream, err := s.store.UpdateStream(ctx, id, func(st *models.Stream) error {
		if st.Sender != caller {
			return fmt.Errorf("%w: only the sender can top up", ErrUnauthorized)
		}
		if st.Status != models.ACTIVE {
			return fmt.Errorf("%w: stream is not active", ErrNotActive)
		}
		st.TotalLocked = accrual.SaturatingAdd(st.TotalLocked, amount)
		return nil
	})
	if err != nil {
		return err
	}

	s.emit(ctx, events.New(models.StreamTopUp, id, stream.Recipient, fmt.Sprintf("Stream topped up by %d sats", amount), s.clock.Now()).WithAmount(amount))
	return nil
}

// Pause stops accrual on an Active stream. Funds already released stay in the buffer.
func (s *Service) Pause(ctx context.Context, id uint64, caller string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stream, err := s.store.UpdateStream(ctx, id, func(st *models.Stream) error {
		if st.Sender != caller {
			return fmt.Errorf("%w: only the sender can pause", ErrUnauthorized)
		}
		if st.Status != models.ACTIVE {
			return fmt.Errorf("%w: stream is not active", ErrInvalidState)
		}
		st.Status = models.PAUSED
		return nil
	})
	if err != nil {
		return err
	}

	s.emit(ctx, events.New(models.StreamPaused, id, stream.Recipient, "Stream paused", s.clock.Now()))
	return nil
}

// Resume reactivates a Paused stream. The release mark jumps to now, so the paused
// interval never accrues.
func (s *Service) Resume(ctx context.Context, id uint64, caller string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	stream, err := s.store.UpdateStream(ctx, id, func(st *models.Stream) error {
		if st.Sender != caller {
			return fmt.Errorf("%w: only the sender can resume", ErrUnauthorized)
		}
		if st.Status != models.PAUSED {
			return fmt.Errorf("%w: stream is not paused", ErrInvalidState)
		}
		st.Status = models.ACTIVE
		st.LastReleaseTime = max(st.LastReleaseTime, now)
		return nil
	})
	if err != nil {
		return err
	}

	s.emit(ctx, events.New(models.StreamResumed, id, stream.Recipient, "Stream resumed", now))
	return nil
}

// Cancel terminates an Active stream and returns the refund and fee the caller
// must settle. The buffer is left in place and stays claimable by the recipient.
func (s *Service) Cancel(ctx context.Context, id uint64, caller string) (models.CancelResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result models.CancelResult
	stream, err := s.store.UpdateStream(ctx, id, func(st *models.Stream) error {
		if st.Sender != caller {
			return fmt.Errorf("%w: only the sender can cancel", ErrUnauthorized)
		}
		if st.Status != models.ACTIVE {
			return fmt.Errorf("%w: stream is not active", ErrInvalidState)
		}
		result = accrual.CancellationSplit(st.TotalLocked, st.TotalReleased, s.cfg.FeeRate)
		st.Status = models.CANCELLED
		return nil
	})
	if err != nil {
		return models.CancelResult{}, err
	}

	now := s.clock.Now()
	recordStats("cancel", id, s.store.RecordStreamCancelled(ctx, stream.Sender, result.Fee))
	s.emit(ctx,
		events.New(models.StreamCancelled, id, stream.Recipient, "Stream cancelled by sender", now),
		events.New(models.StreamCancelled, id, stream.Sender, fmt.Sprintf("Stream cancelled, refund %d sats, fee %d sats", result.Refund, result.Fee), now).WithAmount(result.Refund),
	)
	return result, nil
}

// Claim pays the whole buffer out to the recipient. It works in every status.
func (s *Service) Claim(ctx context.Context, id uint64, caller string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	var amount uint64
	stream, err := s.store.UpdateStream(ctx, id, func(st *models.Stream) error {
		if st.Recipient != caller {
			return fmt.Errorf("%w: only the recipient can claim", ErrUnauthorized)
		}
		if st.Buffer == 0 {
			return fmt.Errorf("%w: no funds to claim", ErrNothingToClaim)
		}
		amount = withdraw(st)
		st.LastClaimTime = now
		return nil
	})
	if err != nil {
		return 0, err
	}

	recordStats("claim", id, s.store.RecordStreamClaimed(ctx, stream.Recipient, amount))
	s.emit(ctx, events.New(models.StreamClaimed, id, stream.Sender, fmt.Sprintf("Recipient claimed %d sats", amount), now).WithAmount(amount))
	return amount, nil
}

// Reclaim returns an unclaimed buffer to the sender once the reclaim window
// after max(end time, last claim) has passed.
func (s *Service) Reclaim(ctx context.Context, id uint64, caller string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	var amount uint64
	stream, err := s.store.UpdateStream(ctx, id, func(st *models.Stream) error {
		if st.Sender != caller {
			return fmt.Errorf("%w: only the sender can reclaim", ErrUnauthorized)
		}
		if st.Buffer == 0 {
			return fmt.Errorf("%w: no unclaimed funds to reclaim", ErrNothingToClaim)
		}
		if now < accrual.ReclaimDeadline(st, s.cfg.ReclaimTimeout) {
			return fmt.Errorf("%w: reclaim timeout not reached", ErrTimeoutNotReached)
		}
		amount = withdraw(st)
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.emit(ctx, events.New(models.StreamReclaimed, id, stream.Recipient, fmt.Sprintf("Sender reclaimed %d unclaimed sats", amount), now).WithAmount(amount))
	return amount, nil
}

// withdraw empties the buffer into the withdrawn total and returns the amount.
func withdraw(st *models.Stream) uint64 {
	amount := st.Buffer
	st.Buffer = 0
	st.TotalWithdrawn = accrual.SaturatingAdd(st.TotalWithdrawn, amount)
	return amount
}

// GetStream returns a snapshot of one stream.
func (s *Service) GetStream(ctx context.Context, id uint64) (*models.Stream, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.GetStream(ctx, id)
}

// ListStreamsForUser returns every stream user sends or receives, ordered by id.
func (s *Service) ListStreamsForUser(ctx context.Context, user string) ([]models.Stream, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.store.ListStreamsByParticipant(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to list streams for %s: %w", user, err)
	}
	sortStreams(list)
	return list, nil
}

// SearchStreams returns caller's streams matching filter, ordered by id.
func (s *Service) SearchStreams(ctx context.Context, caller string, filter models.StreamFilter) ([]models.Stream, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.store.SearchStreams(ctx, caller, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search streams: %w", err)
	}
	sortStreams(list)
	return list, nil
}
