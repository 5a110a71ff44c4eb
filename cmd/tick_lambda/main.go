package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/mohtashimnawaz/satoshiflow/pkg/clock"
	"github.com/mohtashimnawaz/satoshiflow/pkg/config"
	"github.com/mohtashimnawaz/satoshiflow/pkg/events"
	dydbstore "github.com/mohtashimnawaz/satoshiflow/pkg/storage/dynamodb"
	"github.com/mohtashimnawaz/satoshiflow/pkg/streams"
)

var svc *streams.Service

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

	var sink events.Sink = events.NewNotificationSink(store)
	if cfg.SQSQueueURL != "" {
		sink = events.NewSQSSink(sqs.NewFromConfig(awsCfg), cfg.SQSQueueURL)
	}

	svc = streams.New(store, clock.System{}, sink, cfg.Engine())
}

// HandleRequest is triggered by an EventBridge Schedule and runs one accrual pass.
func HandleRequest(ctx context.Context) (streams.TickReport, error) {
	report, err := svc.Tick(ctx)
	if err != nil {
		slog.Error("accrual tick failed", "error", err)
		return report, err
	}

	slog.Info("accrual tick finished",
		"scanned", report.Scanned,
		"accrued", report.Accrued,
		"completed", report.Completed,
		"milestones_fired", report.MilestonesFired,
		"failed", report.Failed,
		"released", report.Released,
	)
	return report, nil
}

func main() {
	lambda.Start(HandleRequest)
}
