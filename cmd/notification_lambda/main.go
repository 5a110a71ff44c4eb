package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	lambdaevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/mohtashimnawaz/satoshiflow/pkg/config"
	"github.com/mohtashimnawaz/satoshiflow/pkg/events"
	dydbstore "github.com/mohtashimnawaz/satoshiflow/pkg/storage/dynamodb"
	"github.com/mohtashimnawaz/satoshiflow/pkg/websockets"
)

var sink events.Sink

func init() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.ValidateTables(); err != nil {
		log.Fatal(err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}
	store := dydbstore.New(dynamodb.NewFromConfig(awsCfg), cfg.Tables)

	var publisher websockets.Publisher = &websockets.NoOpPublisher{}
	if cfg.WebsocketAPIEndpoint != "" {
		publisher, err = websockets.NewPublisher(context.TODO(), store, cfg.WebsocketAPIEndpoint)
		if err != nil {
			log.Fatalf("failed to create websocket publisher: %v", err)
		}
	} else {
		slog.Warn("WEBSOCKET_API_ENDPOINT not set, live updates disabled")
	}

	sink = events.Multi{
		events.NewNotificationSink(store),
		websockets.NewEventSink(publisher),
	}
}

// HandleRequest stores and broadcasts the stream events queued by the engine.
func HandleRequest(ctx context.Context, sqsEvent lambdaevents.SQSEvent) (lambdaevents.SQSEventResponse, error) {
	resp := events.HandleSQSEvent(ctx, sink, sqsEvent)
	slog.Info("processed event batch", "records", len(sqsEvent.Records), "failed", len(resp.BatchItemFailures))
	return resp, nil
}

func main() {
	lambda.Start(HandleRequest)
}
