package streams

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mohtashimnawaz/satoshiflow/pkg/accrual"
	"github.com/mohtashimnawaz/satoshiflow/pkg/events"
	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
)

// TickReport summarizes one accrual pass.
type TickReport struct {
	Scanned         int    `json:"scanned"`
	Accrued         int    `json:"accrued"`
	Completed       int    `json:"completed"`
	MilestonesFired int    `json:"milestones_fired"`
	Failed          int    `json:"failed"`
	Released        uint64 `json:"released"`
}

// errNoElapsed aborts an accrual write when no time has passed since the last one.
var errNoElapsed = errors.New("no time elapsed")

// accrualOutcome is what one stream's accrual did, gathered inside the store
// callback and acted on after the write lands.
type accrualOutcome struct {
	released    uint64
	autoClaimed uint64
	toppedUp    uint64
	paused      bool
	completed   bool
	lowBalance  bool
}

// Tick accrues every Active stream up to now. A failure on one stream is logged
// and counted and the pass carries on; only failing to list streams is an error.
func (s *Service) Tick(ctx context.Context) (TickReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var report TickReport
	now := s.clock.Now()

	active, err := s.store.ListActiveStreams(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to list active streams: %w", err)
	}
	sortStreams(active)

	for _, candidate := range active {
		report.Scanned++
		if candidate.LastReleaseTime >= now {
			continue
		}

		stream, fired, out, err := s.accrueStream(ctx, candidate.Id, now)
		if errors.Is(err, errNoElapsed) {
			continue
		}
		if err != nil {
			slog.Error("failed to accrue stream", "streamId", candidate.Id, "error", err)
			report.Failed++
			continue
		}

		report.Accrued++
		report.Released = accrual.SaturatingAdd(report.Released, out.released)
		report.MilestonesFired += len(fired)
		if out.completed {
			report.Completed++
		}
		s.afterAccrual(ctx, stream, fired, out, now)
	}

	if report.Accrued > 0 || report.Failed > 0 {
		slog.Debug("tick finished", "scanned", report.Scanned, "accrued", report.Accrued, "completed", report.Completed, "failed", report.Failed)
	}
	return report, nil
}

func (s *Service) accrueStream(ctx context.Context, id, now uint64) (*models.Stream, []models.Milestone, accrualOutcome, error) {
	var out accrualOutcome
	stream, fired, err := s.store.AccrueStream(ctx, id, func(st *models.Stream, pending []models.Milestone) ([]models.Milestone, error) {
		// The store may call this again after losing a race.
		out = accrualOutcome{}
		if st.Status != models.ACTIVE {
			return nil, errNoElapsed
		}
		release := accrual.Accrue(st, now)
		if release.Elapsed == 0 {
			return nil, errNoElapsed
		}

		releasedBefore := st.TotalReleased
		accrual.Apply(st, release, now)
		out.released = release.Amount

		fired := dueMilestones(pending, st.TotalReleased, now)
		for _, m := range fired {
			s.applyAction(st, m.Action, now, &out)
		}

		if st.Status == models.ACTIVE && accrual.ShouldComplete(st, now) {
			st.Status = models.COMPLETED
			out.completed = true
		}
		out.lowBalance = accrual.CrossedLowBalance(st.TotalLocked, releasedBefore, st.TotalReleased, s.cfg.LowBalancePercent)
		return fired, nil
	})
	return stream, fired, out, err
}

// applyAction performs a fired milestone's effect on the stream being accrued.
func (s *Service) applyAction(st *models.Stream, action models.MilestoneAction, now uint64, out *accrualOutcome) {
	switch action.Kind {
	case models.AUTO_CLAIM:
		if st.Buffer > 0 {
			out.autoClaimed = accrual.SaturatingAdd(out.autoClaimed, withdraw(st))
			st.LastClaimTime = now
		}
	case models.AUTO_PAUSE:
		if st.Status == models.ACTIVE {
			st.Status = models.PAUSED
			out.paused = true
		}
	case models.AUTO_TOP_UP:
		if st.Status == models.ACTIVE {
			st.TotalLocked = accrual.SaturatingAdd(st.TotalLocked, action.Amount)
			out.toppedUp = accrual.SaturatingAdd(out.toppedUp, action.Amount)
		}
	}
}

// afterAccrual emits the events and records the stats of a stored accrual.
func (s *Service) afterAccrual(ctx context.Context, st *models.Stream, fired []models.Milestone, out accrualOutcome, now uint64) {
	var evs []events.Event
	for _, m := range fired {
		evs = append(evs, events.New(models.MilestoneReached, st.Id, m.CreatedBy, milestoneMessage(m), now).WithAmount(m.TriggerAmount))
	}
	if out.autoClaimed > 0 {
		recordStats("auto-claim", st.Id, s.store.RecordStreamClaimed(ctx, st.Recipient, out.autoClaimed))
		evs = append(evs, events.New(models.StreamClaimed, st.Id, st.Sender, fmt.Sprintf("Milestone auto-claimed %d sats", out.autoClaimed), now).WithAmount(out.autoClaimed))
	}
	if out.toppedUp > 0 {
		evs = append(evs, events.New(models.StreamTopUp, st.Id, st.Recipient, fmt.Sprintf("Milestone topped up stream by %d sats", out.toppedUp), now).WithAmount(out.toppedUp))
	}
	if out.paused {
		evs = append(evs, events.New(models.StreamPaused, st.Id, st.Recipient, "Stream paused by milestone", now))
	}
	if out.lowBalance {
		evs = append(evs, events.New(models.LowBalance, st.Id, st.Sender, fmt.Sprintf("Stream has %d sats left to release", st.Remaining()), now).WithAmount(st.Remaining()))
	}
	if out.completed {
		recordStats("complete", st.Id, s.store.RecordStreamCompleted(ctx))
		evs = append(evs,
			events.New(models.StreamCompleted, st.Id, st.Sender, "Stream completed", now),
			events.New(models.StreamCompleted, st.Id, st.Recipient, "Stream completed", now),
		)
		if st.Buffer > 0 {
			evs = append(evs, events.New(models.ClaimReminder, st.Id, st.Recipient, fmt.Sprintf("You have %d sats waiting to be claimed", st.Buffer), now).WithAmount(st.Buffer))
		}
	}
	s.emit(ctx, evs...)
}
