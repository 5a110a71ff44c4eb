// Package streams is the stream lifecycle and accrual engine. Service validates
// and applies every operation against the ledger, runs the periodic accrual
// tick and evaluates milestones, and hands the resulting events to a Sink.
package streams

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/mohtashimnawaz/satoshiflow/pkg/accrual"
	"github.com/mohtashimnawaz/satoshiflow/pkg/clock"
	"github.com/mohtashimnawaz/satoshiflow/pkg/events"
	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
	"github.com/mohtashimnawaz/satoshiflow/pkg/storage"
	"github.com/shopspring/decimal"
)

// Store is the part of the data layer the engine needs.
type Store interface {
	storage.ApiStore
	storage.AccrualStore
}

// Config holds the economic parameters of the engine.
type Config struct {
	FeeRate           decimal.Decimal
	ReclaimTimeout    time.Duration
	LowBalancePercent uint64
}

// DefaultConfig returns a 1% cancellation fee, a 7 day reclaim window and a
// low balance warning at 10% headroom.
func DefaultConfig() Config {
	return Config{
		FeeRate:           accrual.DefaultFeeRate,
		ReclaimTimeout:    accrual.DefaultReclaimTimeout,
		LowBalancePercent: 10,
	}
}

// Service serializes every operation behind one mutex, so no two operations
// interleave within a process. Across processes the store's per-record
// atomicity is what keeps each read-modify-write whole.
type Service struct {
	mu    sync.Mutex
	store Store
	clock clock.Clock
	sink  events.Sink
	cfg   Config
}

// New creates a Service. A nil sink discards events.
func New(store Store, clk clock.Clock, sink events.Sink, cfg Config) *Service {
	if sink == nil {
		sink = events.NoOpSink{}
	}
	return &Service{
		store: store,
		clock: clk,
		sink:  sink,
		cfg:   cfg,
	}
}

// emit hands events to the sink. Delivery failures never fail the operation
// that produced them.
func (s *Service) emit(ctx context.Context, evs ...events.Event) {
	for _, ev := range evs {
		if err := s.sink.Emit(ctx, ev); err != nil {
			slog.Error("failed to emit event", "kind", ev.Kind, "streamId", ev.StreamId, "principal", ev.Principal, "error", err)
		}
	}
}

// recordStats logs a failed statistics update. The stream write it describes
// has already been stored.
func recordStats(op string, streamID uint64, err error) {
	if err != nil {
		slog.Error("failed to record stats", "op", op, "streamId", streamID, "error", err)
	}
}

func sortStreams(list []models.Stream) {
	sort.Slice(list, func(i, j int) bool { return list[i].Id < list[j].Id })
}
