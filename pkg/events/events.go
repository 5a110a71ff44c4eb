package events

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
)

// Event is a structured lifecycle or milestone occurrence addressed to one principal.
type Event struct {
	Id        string                  `json:"id"`
	Kind      models.NotificationType `json:"kind"`
	StreamId  uint64                  `json:"stream_id"`
	Principal string                  `json:"principal"`
	Message   string                  `json:"message"`
	Amount    uint64                  `json:"amount,omitempty"`
	Timestamp uint64                  `json:"timestamp"`
}

// New builds an Event with a fresh id.
func New(kind models.NotificationType, streamID uint64, principal, message string, now uint64) Event {
	return Event{
		Id:        uuid.New().String(),
		Kind:      kind,
		StreamId:  streamID,
		Principal: principal,
		Message:   message,
		Timestamp: now,
	}
}

// WithAmount returns a copy of e carrying amount.
func (e Event) WithAmount(amount uint64) Event {
	e.Amount = amount
	return e
}

// Sink consumes events. The stream engine only emits; delivery is the sink's concern.
type Sink interface {
	Emit(ctx context.Context, event Event) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, event Event) error

func (f SinkFunc) Emit(ctx context.Context, event Event) error { return f(ctx, event) }

// NoOpSink is a sink that does nothing.
type NoOpSink struct{}

// Emit does nothing.
func (NoOpSink) Emit(ctx context.Context, event Event) error { return nil }

// Multi fans an event out to every sink, even when an earlier one fails.
type Multi []Sink

func (m Multi) Emit(ctx context.Context, event Event) error {
	var errs []error
	for _, s := range m {
		if err := s.Emit(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
