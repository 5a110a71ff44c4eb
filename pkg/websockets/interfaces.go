package websockets

import (
	"context"
)

// ConnectionManager records which clients are subscribed to the stream event feed.
type ConnectionManager interface {
	AddConnection(ctx context.Context, connectionID string) error
	RemoveConnection(ctx context.Context, connectionID string) error
}

// Publisher delivers a feed message to every subscribed client.
type Publisher interface {
	Publish(ctx context.Context, message Message) error
}

// NoOpPublisher drops every message. Used when no websocket endpoint is configured.
type NoOpPublisher struct{}

func (p *NoOpPublisher) Publish(ctx context.Context, message Message) error {
	return nil
}
