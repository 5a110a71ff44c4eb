package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/mohtashimnawaz/satoshiflow/pkg/streams"
)

// Ticker defines the interface for a component that runs one accrual pass.
type Ticker interface {
	Tick(ctx context.Context) (streams.TickReport, error)
}

// TickerFunc adapts a function to the Ticker interface.
type TickerFunc func(ctx context.Context) (streams.TickReport, error)

func (f TickerFunc) Tick(ctx context.Context) (streams.TickReport, error) { return f(ctx) }

// Heartbeat drives a Ticker at a fixed interval. It is the in-process
// replacement for the scheduled tick lambda.
type Heartbeat struct {
	Ticker   Ticker
	Interval time.Duration
}

// NewHeartbeat creates a new Heartbeat. A non-positive interval falls back to one second.
func NewHeartbeat(ticker Ticker, interval time.Duration) *Heartbeat {
	if interval <= 0 {
		interval = time.Second
	}
	return &Heartbeat{
		Ticker:   ticker,
		Interval: interval,
	}
}

// Run ticks until ctx is done and returns ctx.Err(). A failed pass is logged
// and the next beat tries again.
func (h *Heartbeat) Run(ctx context.Context) error {
	t := time.NewTicker(h.Interval)
	defer t.Stop()

	slog.Info("heartbeat started", "interval", h.Interval.String())
	for {
		select {
		case <-ctx.Done():
			slog.Info("heartbeat stopped")
			return ctx.Err()
		case <-t.C:
			h.Beat(ctx)
		}
	}
}

// Beat runs a single pass and logs its outcome.
func (h *Heartbeat) Beat(ctx context.Context) {
	report, err := h.Ticker.Tick(ctx)
	if err != nil {
		slog.Error("accrual tick failed", "error", err)
		return
	}
	if report.Failed > 0 {
		slog.Error("accrual tick had failures", "failed", report.Failed, "scanned", report.Scanned)
	}
	if report.Accrued > 0 || report.Completed > 0 {
		slog.Debug("accrual tick finished",
			"scanned", report.Scanned,
			"accrued", report.Accrued,
			"completed", report.Completed,
			"milestones_fired", report.MilestonesFired,
			"released", report.Released,
		)
	}
}
