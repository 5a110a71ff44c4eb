package websockets

import (
	"context"
	"fmt"

	"github.com/mohtashimnawaz/satoshiflow/pkg/events"
)

// EventSink forwards engine events to websocket clients.
type EventSink struct {
	Publisher Publisher
}

// NewEventSink creates a new EventSink.
func NewEventSink(publisher Publisher) *EventSink {
	return &EventSink{Publisher: publisher}
}

// Make sure we conform to the interface
var _ events.Sink = (*EventSink)(nil)

func (s *EventSink) Emit(ctx context.Context, event events.Event) error {
	if err := s.Publisher.Publish(ctx, NewStreamEventMessage(event)); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Kind, err)
	}
	return nil
}
