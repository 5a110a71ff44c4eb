package websockets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	apigwtypes "github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi/types"
	"github.com/mohtashimnawaz/satoshiflow/pkg/storage"
)

// GatewayAPI is the subset of the API Gateway management client used to push messages.
type GatewayAPI interface {
	PostToConnection(ctx context.Context, params *apigatewaymanagementapi.PostToConnectionInput, optFns ...func(*apigatewaymanagementapi.Options)) (*apigatewaymanagementapi.PostToConnectionOutput, error)
}

// DefaultPublisher pushes messages to every connection registered with API Gateway.
type DefaultPublisher struct {
	store       storage.ConnectionStore
	apiGwClient GatewayAPI
}

// NewPublisher creates a DefaultPublisher talking to the websocket API at apiEndpoint.
func NewPublisher(ctx context.Context, store storage.ConnectionStore, apiEndpoint string) (*DefaultPublisher, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	apiGwClient := apigatewaymanagementapi.NewFromConfig(cfg, func(o *apigatewaymanagementapi.Options) {
		o.BaseEndpoint = aws.String(apiEndpoint)
	})

	return NewPublisherWithClient(store, apiGwClient), nil
}

// NewPublisherWithClient creates a DefaultPublisher over an existing client.
func NewPublisherWithClient(store storage.ConnectionStore, client GatewayAPI) *DefaultPublisher {
	return &DefaultPublisher{
		store:       store,
		apiGwClient: client,
	}
}

// Make sure we conform to the interface
var _ Publisher = (*DefaultPublisher)(nil)

// Publish sends a message to all connected clients. Connections API Gateway
// reports as gone are removed; other delivery failures are only logged.
func (p *DefaultPublisher) Publish(ctx context.Context, message Message) error {
	connectionIDs, err := p.store.GetAllConnections(ctx)
	if err != nil {
		return fmt.Errorf("failed to get all connections: %w", err)
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	for _, connectionID := range connectionIDs {
		_, err := p.apiGwClient.PostToConnection(ctx, &apigatewaymanagementapi.PostToConnectionInput{
			ConnectionId: aws.String(connectionID),
			Data:         payload,
		})
		if err == nil {
			continue
		}

		var goneErr *apigwtypes.GoneException
		if errors.As(err, &goneErr) {
			slog.Info("stale connection found, deleting", "connectionId", connectionID)
			if err := p.store.RemoveConnection(ctx, connectionID); err != nil {
				slog.Error("failed to delete stale connection", "error", err)
			}
		} else {
			slog.Error("failed to post to connection", "connectionId", connectionID, "error", err)
		}
	}

	return nil
}
