package websockets

import "github.com/mohtashimnawaz/satoshiflow/pkg/events"

// MessageType defines the type of a WebSocket message.
type MessageType string

const (
	// MessageTypeStreamEvent carries a lifecycle or milestone event.
	MessageTypeStreamEvent MessageType = "streamEvent"
)

// Message represents a generic WebSocket message.
type Message struct {
	Type    MessageType `json:"type"`
	Payload any         `json:"payload"`
}

// StreamEventPayload is the payload for a streamEvent message.
type StreamEventPayload struct {
	EventID   string `json:"event_id"`
	Kind      string `json:"kind"`
	StreamID  uint64 `json:"stream_id"`
	UserID    string `json:"user_id"`
	Message   string `json:"message"`
	Amount    uint64 `json:"amount,omitempty"`
	Timestamp uint64 `json:"timestamp"`
}

// NewStreamEventMessage wraps an event for delivery to clients.
func NewStreamEventMessage(e events.Event) Message {
	return Message{
		Type: MessageTypeStreamEvent,
		Payload: StreamEventPayload{
			EventID:   e.Id,
			Kind:      string(e.Kind),
			StreamID:  e.StreamId,
			UserID:    e.Principal,
			Message:   e.Message,
			Amount:    e.Amount,
			Timestamp: e.Timestamp,
		},
	}
}
